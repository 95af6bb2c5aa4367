package service

import (
	"errors"
	"fmt"
)

var (
	ErrNameInUse            = errors.New("username already in use")
	ErrEmailInUse           = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrForbidden            = errors.New("forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrCocktailNotFound     = errors.New("cocktail not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrReferentialIntegrity = errors.New("referenced record does not exist")
	ErrValidation           = errors.New("validation failed")
)

// validationError wraps ErrValidation with the reason shown to the client.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
