package service

import (
	"context"
	"fmt"
	"strings"

	"cocktailhub/internal/microservices/http-api/models"
	"cocktailhub/internal/microservices/http-api/repository"
)

// CocktailInput is a complete cocktail as submitted for creation.
type CocktailInput struct {
	Name         string
	ImageURL     string
	Instructions string
	GlassType    string
	Ingredients  []repository.IngredientLine
}

// IngredientReader lists the ingredient catalogue.
type IngredientReader interface {
	GetAll(ctx context.Context) ([]models.Ingredient, error)
}

type CocktailService interface {
	List(ctx context.Context) ([]models.Cocktail, error)
	Get(ctx context.Context, id int64) (*models.Cocktail, error)
	Create(ctx context.Context, input CocktailInput) (int64, error)
	Update(ctx context.Context, id int64, patch repository.CocktailPatch) error
	Delete(ctx context.Context, id int64) error
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
}

type cocktailService struct {
	cocktailRepo   repository.CocktailRepository
	ingredientRepo IngredientReader
}

func NewCocktailService(cocktailRepo repository.CocktailRepository, ingredientRepo IngredientReader) CocktailService {
	return &cocktailService{
		cocktailRepo:   cocktailRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (s *cocktailService) List(ctx context.Context) ([]models.Cocktail, error) {
	return s.cocktailRepo.List(ctx)
}

func (s *cocktailService) Get(ctx context.Context, id int64) (*models.Cocktail, error) {
	cocktail, err := s.cocktailRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCocktailNotFound
		}
		return nil, fmt.Errorf("load cocktail: %w", err)
	}
	return cocktail, nil
}

// Create stores the cocktail and its ingredient list atomically and returns the new id.
func (s *cocktailService) Create(ctx context.Context, input CocktailInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, validationError("name is required")
	}

	lines, err := normalizeLines(input.Ingredients)
	if err != nil {
		return 0, err
	}

	cocktail := &models.Cocktail{
		Name:         name,
		ImageURL:     input.ImageURL,
		Instructions: input.Instructions,
		GlassType:    input.GlassType,
	}

	if err := s.cocktailRepo.Create(ctx, cocktail, lines); err != nil {
		return 0, fmt.Errorf("create cocktail: %w", err)
	}

	return cocktail.ID, nil
}

// Update changes the fields present in patch. A present ingredient list,
// even an empty one, replaces the stored list entirely.
func (s *cocktailService) Update(ctx context.Context, id int64, patch repository.CocktailPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return validationError("name must not be empty")
		}
		patch.Name = &name
	}

	if patch.Ingredients != nil {
		lines, err := normalizeLines(*patch.Ingredients)
		if err != nil {
			return err
		}
		patch.Ingredients = &lines
	}

	if err := s.cocktailRepo.Update(ctx, id, patch); err != nil {
		if repository.IsNotFound(err) {
			return ErrCocktailNotFound
		}
		return fmt.Errorf("update cocktail: %w", err)
	}
	return nil
}

// Delete removes the cocktail along with its reviews and ingredient links.
func (s *cocktailService) Delete(ctx context.Context, id int64) error {
	if err := s.cocktailRepo.DeleteCascade(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCocktailNotFound
		}
		return fmt.Errorf("delete cocktail: %w", err)
	}
	return nil
}

func (s *cocktailService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return s.ingredientRepo.GetAll(ctx)
}

// normalizeLines trims ingredient names and rejects blank or repeated ones;
// the cocktail-ingredient key allows each ingredient once per cocktail.
func normalizeLines(lines []repository.IngredientLine) ([]repository.IngredientLine, error) {
	out := make([]repository.IngredientLine, 0, len(lines))
	seen := make(map[string]bool, len(lines))

	for i, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			return nil, validationError("ingredient %d: name is required", i+1)
		}
		if seen[name] {
			return nil, validationError("ingredient %q listed more than once", name)
		}
		seen[name] = true

		out = append(out, repository.IngredientLine{
			Name:   name,
			Amount: strings.TrimSpace(line.Amount),
		})
	}
	return out, nil
}
