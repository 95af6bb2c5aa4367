package repository

import (
	"context"

	"cocktailhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserPatch carries the profile fields to change; nil fields keep their value.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*models.User, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	// return nil on miss so callers never mistake a zero-value user for a hit
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies patch to the user row in one transaction. The row is locked
// first so the uniqueness checks and the write see the same state.
func (r *userRepository) Update(ctx context.Context, id int64, patch UserPatch) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.Username != nil && *patch.Username != user.Username {
			if err := ensureUnused(tx, "username", *patch.Username, id, ConstraintUsername); err != nil {
				return err
			}
			updates["username"] = *patch.Username
		}

		if patch.Email != nil && *patch.Email != user.Email {
			if err := ensureUnused(tx, "email", *patch.Email, id, ConstraintEmail); err != nil {
				return err
			}
			updates["email"] = *patch.Email
		}

		if patch.PasswordHash != nil {
			updates["password_hash"] = *patch.PasswordHash
		}

		if len(updates) == 0 {
			return nil
		}

		return translateError(tx.Model(&user).Updates(updates).Error)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ensureUnused fails with a duplicate ConstraintError when another user already holds value.
func ensureUnused(tx *gorm.DB, column, value string, selfID int64, constraint string) error {
	var count int64
	if err := tx.Model(&models.User{}).
		Where(column+" = ? AND id <> ?", value, selfID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConstraintError{Kind: ErrDuplicate, Constraint: constraint}
	}
	return nil
}

// DeleteCascade removes the user's reviews and then the user, atomically.
func (r *userRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
