package http

import (
	"net/http"
	"strconv"

	"shop-service/internal/repository"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if v, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		filter.CategoryID = v
	}
	if v, err := strconv.ParseUint(c.Query("brand"), 10, 64); err == nil {
		filter.BrandID = v
	}

	products, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "products": products})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "product": product})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), services.ProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		Quantity:           req.Quantity,
		CategoryID:         req.CategoryID,
		BrandID:            req.BrandID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "success", "product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, services.ProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		Quantity:           req.Quantity,
		CategoryID:         req.CategoryID,
		BrandID:            req.BrandID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
