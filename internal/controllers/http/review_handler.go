package http

import (
	"net/http"

	"shop-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProductReviews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.reviews.ListByProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "reviews": reviews})
}

func (h *Handler) CreateReview(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	review, err := h.reviews.CreateReview(c.Request.Context(), productID, user.ID, req.Rating, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "success", "review": review})
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	review, err := h.reviews.UpdateReview(c.Request.Context(), id, user.ID, req.Rating, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "review": review})
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.reviews.DeleteReview(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
