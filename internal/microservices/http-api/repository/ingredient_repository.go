package repository

import (
	"context"
	"fmt"

	"cocktailhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

func (r *IngredientRepo) GetAll(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	return list, nil
}

func (r *IngredientRepo) FindOrCreate(ctx context.Context, name string) (*models.Ingredient, error) {
	return findOrCreateIngredient(r.db.WithContext(ctx), name)
}

// findOrCreateIngredient is a single upsert on the unique name, so concurrent
// writers resolve to the same row. The no-op DO UPDATE makes RETURNING yield
// the id of an existing row too.
func findOrCreateIngredient(tx *gorm.DB, name string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&ingredient).Error
	if err != nil {
		return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
	}
	return &ingredient, nil
}
