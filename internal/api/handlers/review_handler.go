package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"konnection/backend/internal/services"
)

// ReviewHandler handles REST requests for reviews.
type ReviewHandler struct {
	reviewService services.IReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService services.IReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	RoomID   int64  `json:"roomId" binding:"required"`
	Name     string `json:"name"`
	Reviewed bool   `json:"reviewed"`
	Content  string `json:"content"`
}

type updateReviewRequest struct {
	Name     *string `json:"name"`
	Reviewed *bool   `json:"reviewed"`
	Content  *string `json:"content"`
}

// CreateReview handles POST /api/v1/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), services.CreateReviewInput{
		RoomID:   req.RoomID,
		Name:     req.Name,
		Reviewed: req.Reviewed,
		Content:  req.Content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateReview handles PUT /api/v1/reviews/:reviewId.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := reviewIDParam(c)
	if !ok {
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), id, services.UpdateReviewInput{
		Name:     req.Name,
		Reviewed: req.Reviewed,
		Content:  req.Content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteReview handles DELETE /api/v1/reviews/:reviewId.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := reviewIDParam(c)
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReviews handles GET /api/v1/reviews?name=...&roomId=...
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	name := c.Query("name")

	var roomID *int64
	if raw := c.Query("roomId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roomId"})
			return
		}
		roomID = &id
	}

	reviews, err := h.reviewService.ListByName(c.Request.Context(), name, roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func reviewIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return 0, false
	}
	return id, true
}
