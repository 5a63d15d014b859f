package handlers

import (
	"net/http"

	"servicefinder/middleware"
	"servicefinder/models"
	"servicefinder/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler serves review submission and listing.
type ReviewHandler struct {
	ReviewSvc review.ReviewService
	Logger    *zap.Logger
}

func NewReviewHandler(svc review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{ReviewSvc: svc, Logger: logger}
}

// SubmitReview handles POST /api/reviews.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.ReviewSvc.SubmitReview(c.Request.Context(), middleware.Identity(c).ID, req)
	if err != nil {
		respondError(c, h.Logger, "SubmitReview", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListProviderReviews handles GET /api/providers/:id/reviews.
func (h *ReviewHandler) ListProviderReviews(c *gin.Context) {
	reviews, err := h.ReviewSvc.ListProviderReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "ListProviderReviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
