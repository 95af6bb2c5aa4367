package dto

import (
	"time"

	"cocktailhub/internal/microservices/http-api/models"
)

// UpdateProfileRequest: omitted fields keep their current value
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,max=80"`
	Email    *string `json:"email" binding:"omitempty,email,max=120"`
	Password *string `json:"password"`
}

type ProfileReview struct {
	ID           int64     `json:"id"`
	CocktailName string    `json:"cocktail_name"`
	Content      string    `json:"content"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProfileResponse struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Reviews  []ProfileReview `json:"reviews"`
}

// FromModelToProfileResponse expects user.Reviews to be loaded with their cocktails.
func FromModelToProfileResponse(user *models.User) *ProfileResponse {
	reviews := make([]ProfileReview, 0, len(user.Reviews))
	for _, r := range user.Reviews {
		item := ProfileReview{
			ID:        r.ID,
			Content:   r.Content,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		}
		if r.Cocktail != nil {
			item.CocktailName = r.Cocktail.Name
		}
		reviews = append(reviews, item)
	}

	return &ProfileResponse{
		Username: user.Username,
		Email:    user.Email,
		Reviews:  reviews,
	}
}
