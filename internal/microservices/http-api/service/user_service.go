package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cocktailhub/internal/auth"
	"cocktailhub/internal/config"
	"cocktailhub/internal/microservices/http-api/models"
	"cocktailhub/internal/microservices/http-api/repository"

	"go.uber.org/zap"
)

// ProfilePatch holds the profile fields a user asked to change.
type ProfilePatch struct {
	Username *string
	Email    *string
	Password *string
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) error
	DeleteProfile(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo          repository.UserRepository
	reviewRepo        repository.ReviewRepository
	sessions          repository.SessionRepository
	bcryptCost        int
	passwordMinLength int
	now               func() time.Time
	logger            *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	sessions repository.SessionRepository,
	cfg *config.Config,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:          userRepo,
		reviewRepo:        reviewRepo,
		sessions:          sessions,
		bcryptCost:        cfg.BcryptCost,
		passwordMinLength: cfg.PasswordMinLength,
		now:               time.Now,
		logger:            logger,
	}
}

// GetProfile returns the user with all of their reviews, newest first.
// Each review carries its cocktail.
func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	reviews, err := s.reviewRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user reviews: %w", err)
	}
	user.Reviews = reviews

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) error {
	var repoPatch repository.UserPatch

	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username == "" {
			return validationError("username must not be empty")
		}
		repoPatch.Username = &username
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return validationError("email must not be empty")
		}
		repoPatch.Email = &email
	}

	if patch.Password != nil {
		if err := checkPassword(*patch.Password, s.passwordMinLength); err != nil {
			return err
		}
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		repoPatch.PasswordHash = &hash
	}

	if _, err := s.userRepo.Update(ctx, userID, repoPatch); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		if conflict := conflictError(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("update user: %w", err)
	}

	if repoPatch.PasswordHash != nil {
		return s.revokeSessions(ctx, userID)
	}
	return nil
}

// DeleteProfile removes the user together with every review they wrote.
func (s *userService) DeleteProfile(ctx context.Context, userID int64) error {
	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	return s.revokeSessions(ctx, userID)
}

func (s *userService) revokeSessions(ctx context.Context, userID int64) error {
	if err := s.sessions.RevokeUserSessions(ctx, userID, s.now()); err != nil {
		s.logger.Error("failed to revoke sessions", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
