package http

import (
	"net/http"

	"shop-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SignatureHeaderName carries the payment provider's event signature.
const SignatureHeaderName = "Payment-Signature"

func (h *Handler) CreateCashOrder(c *gin.Context) {
	cartID, ok := parseID(c, "cartId")
	if !ok {
		return
	}
	var req ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.CreateCashOrder(c.Request.Context(), cartID, user.ID, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "success", "order": order})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	order, err := h.orders.GetOrder(c.Request.Context(), id, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "order": order})
}

func (h *Handler) GetUserOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.orders.GetUserOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "orders": orders})
}

func (h *Handler) GetAllOrders(c *gin.Context) {
	orders, err := h.orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "orders": orders})
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	cartID, ok := parseID(c, "cartId")
	if !ok {
		return
	}
	var req ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	session, err := h.orders.CreateCheckoutSession(c.Request.Context(), cartID, user, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "session": session})
}

// HandlePaymentWebhook consumes provider payment events. The body must
// stay raw for signature verification.
func (h *Handler) HandlePaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	order, err := h.orders.HandlePaymentEvent(c.Request.Context(), body, c.GetHeader(SignatureHeaderName))
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		// Event type we do not act on; acknowledge it.
		c.JSON(http.StatusOK, gin.H{"message": "received"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "success", "order": order})
}
