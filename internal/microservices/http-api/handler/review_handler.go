package handler

import (
	"net/http"

	"cocktailhub/internal/microservices/http-api/dto"
	"cocktailhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *zap.Logger
}

func NewReviewHandler(reviewService service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, logger: logger}
}

// RegisterRoutes registers review routes (already authenticated by parent middleware)
func (h *ReviewHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/cocktails/:id/reviews", h.Create)

	reviews := protected.Group("/reviews")
	{
		reviews.PUT("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}

// Create POST /api/cocktails/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	cocktailID, ok := pathID(c, "id", "cocktail")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), cocktailID, userID, req.Content, req.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

// Update PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, ok := pathID(c, "id", "review")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a stranger learns 404/403 before anything about their body
		if _, authErr := h.reviewService.Authorize(c.Request.Context(), reviewID, userID); authErr != nil {
			respondError(c, h.logger, authErr)
			return
		}
		bindError(c, err)
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, userID, service.ReviewPatch{
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// Delete DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, ok := pathID(c, "id", "review")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Review deleted successfully"})
}
