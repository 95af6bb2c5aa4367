package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"cocktailhub/internal/auth"
	"cocktailhub/internal/config"
	"cocktailhub/internal/microservices/http-api/models"
	"cocktailhub/internal/microservices/http-api/repository"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (token string, user *models.User, err error)
	ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error)
}

type authService struct {
	userRepo          repository.UserRepository
	sessions          repository.SessionRepository
	tokens            *auth.TokenManager
	bcryptCost        int
	passwordMinLength int
	dummyHash         string
	logger            *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *auth.TokenManager,
	cfg *config.Config,
	logger *zap.Logger,
) AuthService {
	// compared against on unknown usernames so both login failures cost one bcrypt run
	dummyHash, err := auth.HashPassword("cocktailhub-dummy-password", cfg.BcryptCost)
	if err != nil {
		logger.Warn("failed to prepare dummy password hash", zap.Error(err))
	}

	return &authService{
		userRepo:          userRepo,
		sessions:          sessions,
		tokens:            tokens,
		bcryptCost:        cfg.BcryptCost,
		passwordMinLength: cfg.PasswordMinLength,
		dummyHash:         dummyHash,
		logger:            logger,
	}
}

// Register creates a user after checking the username, then the email, for collisions.
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, validationError("username is required")
	}
	if email == "" {
		return nil, validationError("email is required")
	}
	if err := checkPassword(password, s.passwordMinLength); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	// a concurrent register can slip past the checks above; the unique constraints catch it
	if err := s.userRepo.Create(ctx, user); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues an access token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !repository.IsNotFound(err) {
			return "", nil, fmt.Errorf("lookup user: %w", err)
		}
		_ = auth.VerifyPassword(s.dummyHash, password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// ValidateToken verifies the token and rejects it when it was issued before
// the user's sessions were last revoked.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revokedBefore, err := s.sessions.RevokedBefore(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session revocation: %w", err)
	}

	if !revokedBefore.IsZero() && claims.IssuedAt.Time.Before(revokedBefore) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func checkPassword(password string, minLength int) error {
	if password == "" {
		return validationError("password is required")
	}
	if utf8.RuneCountInString(password) < minLength {
		return validationError("password must be at least %d characters", minLength)
	}
	return nil
}

// conflictError turns a unique violation on the users table into ErrNameInUse
// or ErrEmailInUse, and returns nil for anything else.
func conflictError(err error) error {
	var ce *repository.ConstraintError
	if !errors.As(err, &ce) || !errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	if ce.Constraint == repository.ConstraintEmail {
		return ErrEmailInUse
	}
	return ErrNameInUse
}
