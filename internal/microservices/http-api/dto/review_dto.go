package dto

import (
	"time"

	"cocktailhub/internal/microservices/http-api/models"
)

// CreateReviewRequest for reviewing a cocktail
type CreateReviewRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateReviewRequest: omitted fields keep their current value
type UpdateReviewRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

// ReviewResponse carries the author's username as "user"
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:        review.ID,
		Content:   review.Content,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		resp.User = review.User.Username
	}
	return resp
}
