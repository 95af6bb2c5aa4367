package repository

import (
	"context"
	"fmt"

	"cocktailhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientLine is one entry of a cocktail's ingredient list.
type IngredientLine struct {
	Name   string
	Amount string
}

// CocktailPatch carries the cocktail fields to change; nil fields keep their value.
// A non-nil Ingredients replaces the whole list, an empty slice clears it.
type CocktailPatch struct {
	Name         *string
	ImageURL     *string
	Instructions *string
	GlassType    *string
	Ingredients  *[]IngredientLine
}

type CocktailRepository interface {
	List(ctx context.Context) ([]models.Cocktail, error)
	GetByID(ctx context.Context, id int64) (*models.Cocktail, error)
	Create(ctx context.Context, cocktail *models.Cocktail, lines []IngredientLine) error
	Update(ctx context.Context, id int64, patch CocktailPatch) error
	DeleteCascade(ctx context.Context, id int64) error
	CountIngredientLinks(ctx context.Context, id int64) (int64, error)
}

type cocktailRepository struct {
	db *gorm.DB
}

func NewCocktailRepository(db *gorm.DB) CocktailRepository {
	return &cocktailRepository{db: db}
}

// List returns every cocktail with its ingredient links, ordered by id.
func (r *cocktailRepository) List(ctx context.Context) ([]models.Cocktail, error) {
	var list []models.Cocktail
	if err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list cocktails: %w", err)
	}
	return list, nil
}

// GetByID loads a cocktail with its ingredients and its reviews' authors.
func (r *cocktailRepository) GetByID(ctx context.Context, id int64) (*models.Cocktail, error) {
	var c models.Cocktail
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at desc")
		}).
		Preload("Reviews.User").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the cocktail and its ingredient links in one transaction.
func (r *cocktailRepository) Create(ctx context.Context, cocktail *models.Cocktail, lines []IngredientLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(cocktail).Error; err != nil {
			return fmt.Errorf("create cocktail: %w", translateError(err))
		}
		return insertIngredientLinks(tx, cocktail.ID, lines)
	})
}

// Update applies the scalar fields of patch and, when present, swaps the
// ingredient list wholesale. Everything happens in one transaction.
func (r *cocktailRepository) Update(ctx context.Context, id int64, patch CocktailPatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Cocktail
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.ImageURL != nil {
			updates["image_url"] = *patch.ImageURL
		}
		if patch.Instructions != nil {
			updates["instructions"] = *patch.Instructions
		}
		if patch.GlassType != nil {
			updates["glass_type"] = *patch.GlassType
		}

		if len(updates) > 0 {
			if err := tx.Model(&c).Updates(updates).Error; err != nil {
				return fmt.Errorf("update cocktail: %w", translateError(err))
			}
		}

		if patch.Ingredients == nil {
			return nil
		}

		if err := tx.Where("cocktail_id = ?", id).Delete(&models.CocktailIngredient{}).Error; err != nil {
			return fmt.Errorf("clear ingredients: %w", err)
		}
		return insertIngredientLinks(tx, id, *patch.Ingredients)
	})
}

// DeleteCascade removes the cocktail's reviews, then its ingredient links,
// then the cocktail itself, atomically.
func (r *cocktailRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Cocktail
		if err := tx.Select("id").First(&c, id).Error; err != nil {
			return err
		}

		if err := tx.Where("cocktail_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}

		if err := tx.Where("cocktail_id = ?", id).Delete(&models.CocktailIngredient{}).Error; err != nil {
			return fmt.Errorf("delete ingredients: %w", err)
		}

		if err := tx.Delete(&models.Cocktail{}, id).Error; err != nil {
			return fmt.Errorf("delete cocktail: %w", err)
		}
		return nil
	})
}

func (r *cocktailRepository) CountIngredientLinks(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CocktailIngredient{}).Where("cocktail_id = ?", id).Count(&count).Error
	return count, err
}

// insertIngredientLinks resolves each line's ingredient and writes the join rows.
func insertIngredientLinks(tx *gorm.DB, cocktailID int64, lines []IngredientLine) error {
	if len(lines) == 0 {
		return nil
	}

	links := make([]models.CocktailIngredient, 0, len(lines))
	for _, line := range lines {
		ingredient, err := findOrCreateIngredient(tx, line.Name)
		if err != nil {
			return err
		}
		links = append(links, models.CocktailIngredient{
			CocktailID:   cocktailID,
			IngredientID: ingredient.ID,
			Amount:       line.Amount,
		})
	}

	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		return fmt.Errorf("link ingredients: %w", translateError(err))
	}
	return nil
}
