package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.coupons.ListCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "coupons": coupons})
}

func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	coupon, err := h.coupons.GetCoupon(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "coupon": coupon})
}

func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires must be RFC3339"})
		return
	}

	coupon, err := h.coupons.CreateCoupon(c.Request.Context(), req.Code, req.Discount, expiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "success", "coupon": coupon})
}

func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expiresAt time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires must be RFC3339"})
			return
		}
		expiresAt = parsed
	}

	coupon, err := h.coupons.UpdateCoupon(c.Request.Context(), id, req.Discount, expiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "coupon": coupon})
}

func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.coupons.DeleteCoupon(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
