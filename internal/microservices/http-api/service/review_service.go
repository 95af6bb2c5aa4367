package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cocktailhub/internal/microservices/http-api/models"
	"cocktailhub/internal/microservices/http-api/repository"
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewPatch holds the review fields to change.
type ReviewPatch struct {
	Content *string
	Rating  *int
}

type ReviewService interface {
	CreateReview(ctx context.Context, cocktailID, userID int64, content string, rating int) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID, userID int64, patch ReviewPatch) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID int64) error
	Authorize(ctx context.Context, reviewID, userID int64) (*models.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// CreateReview does not look the cocktail up first; a missing cocktail is
// reported by the store as a foreign key violation.
func (s *reviewService) CreateReview(ctx context.Context, cocktailID, userID int64, content string, rating int) (*models.Review, error) {
	if err := checkReview(content, rating); err != nil {
		return nil, err
	}

	review := &models.Review{
		Content:    content,
		Rating:     rating,
		UserID:     userID,
		CocktailID: cocktailID,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrReferentialIntegrity
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	// reload with the author
	created, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return created, nil
}

// Authorize loads the review and checks that userID wrote it.
func (s *reviewService) Authorize(ctx context.Context, reviewID, userID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("load review: %w", err)
	}

	if review.UserID != userID {
		return nil, ErrForbidden
	}
	return review, nil
}

// UpdateReview checks existence, then ownership, then the new values.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID int64, patch ReviewPatch) (*models.Review, error) {
	review, err := s.Authorize(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		review.Content = *patch.Content
	}
	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}

	if err := checkReview(review.Content, review.Rating); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID int64) error {
	if _, err := s.Authorize(ctx, reviewID, userID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func checkReview(content string, rating int) error {
	if strings.TrimSpace(content) == "" {
		return validationError("content is required")
	}
	if rating < minRating || rating > maxRating {
		return validationError("rating must be between %d and %d", minRating, maxRating)
	}
	return nil
}
