package http

import (
	"net/http"

	"shop-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.AddProduct(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "cart": cart})
}

func (h *Handler) GetCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cart, err := h.carts.GetCart(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "cart": cart})
}

func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.UpdateQuantity(c.Request.Context(), user.ID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "cart": cart})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	cart, err := h.carts.RemoveItem(c.Request.Context(), user.ID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "cart": cart})
}

func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.ApplyCoupon(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "cart": cart})
}
