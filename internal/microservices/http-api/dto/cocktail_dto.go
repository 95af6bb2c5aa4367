package dto

import (
	"cocktailhub/internal/microservices/http-api/models"
	"cocktailhub/internal/microservices/http-api/repository"
)

type IngredientInput struct {
	Name   string `json:"name" binding:"required,max=100"`
	Amount string `json:"amount" binding:"max=50"`
}

// CreateCocktailRequest for adding a cocktail to the catalog
type CreateCocktailRequest struct {
	Name         string            `json:"name" binding:"required,max=100"`
	ImageURL     string            `json:"image_url" binding:"max=255"`
	Instructions string            `json:"instructions"`
	GlassType    string            `json:"glass_type" binding:"max=50"`
	Ingredients  []IngredientInput `json:"ingredients" binding:"dive"`
}

// UpdateCocktailRequest: nil fields are left alone. A present ingredients
// array, empty included, replaces the whole list.
type UpdateCocktailRequest struct {
	Name         *string            `json:"name" binding:"omitempty,max=100"`
	ImageURL     *string            `json:"image_url" binding:"omitempty,max=255"`
	Instructions *string            `json:"instructions"`
	GlassType    *string            `json:"glass_type" binding:"omitempty,max=50"`
	Ingredients  *[]IngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

type IngredientResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type CocktailResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	ImageURL     string               `json:"image_url"`
	Instructions string               `json:"instructions"`
	GlassType    string               `json:"glass_type"`
	Ingredients  []IngredientResponse `json:"ingredients"`
}

type CocktailDetailResponse struct {
	CocktailResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// IngredientNameResponse is one entry of the ingredient catalogue.
type IngredientNameResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ToIngredientLines(in []IngredientInput) []repository.IngredientLine {
	lines := make([]repository.IngredientLine, 0, len(in))
	for _, i := range in {
		lines = append(lines, repository.IngredientLine{Name: i.Name, Amount: i.Amount})
	}
	return lines
}

// ToCocktailPatch converts the request into a repository patch.
func (r *UpdateCocktailRequest) ToCocktailPatch() repository.CocktailPatch {
	patch := repository.CocktailPatch{
		Name:         r.Name,
		ImageURL:     r.ImageURL,
		Instructions: r.Instructions,
		GlassType:    r.GlassType,
	}
	if r.Ingredients != nil {
		lines := ToIngredientLines(*r.Ingredients)
		patch.Ingredients = &lines
	}
	return patch
}

// FromModelToCocktailResponse converts a Cocktail model with loaded ingredients
func FromModelToCocktailResponse(c *models.Cocktail) CocktailResponse {
	ingredients := make([]IngredientResponse, 0, len(c.Ingredients))
	for _, ci := range c.Ingredients {
		item := IngredientResponse{Amount: ci.Amount}
		if ci.Ingredient != nil {
			item.Name = ci.Ingredient.Name
		}
		ingredients = append(ingredients, item)
	}

	return CocktailResponse{
		ID:           c.ID,
		Name:         c.Name,
		ImageURL:     c.ImageURL,
		Instructions: c.Instructions,
		GlassType:    c.GlassType,
		Ingredients:  ingredients,
	}
}

func FromModelsToCocktailResponses(list []models.Cocktail) []CocktailResponse {
	out := make([]CocktailResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModelToCocktailResponse(&list[i]))
	}
	return out
}

// FromModelToCocktailDetailResponse also includes the reviews with their authors
func FromModelToCocktailDetailResponse(c *models.Cocktail) *CocktailDetailResponse {
	reviews := make([]ReviewResponse, 0, len(c.Reviews))
	for i := range c.Reviews {
		reviews = append(reviews, *FromModelToReviewResponse(&c.Reviews[i]))
	}

	return &CocktailDetailResponse{
		CocktailResponse: FromModelToCocktailResponse(c),
		Reviews:          reviews,
	}
}

func FromModelsToIngredientResponses(list []models.Ingredient) []IngredientNameResponse {
	out := make([]IngredientNameResponse, 0, len(list))
	for _, i := range list {
		out = append(out, IngredientNameResponse{ID: i.ID, Name: i.Name})
	}
	return out
}
