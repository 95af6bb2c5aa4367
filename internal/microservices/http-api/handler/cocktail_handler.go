package handler

import (
	"net/http"

	"cocktailhub/internal/microservices/http-api/dto"
	"cocktailhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CocktailHandler struct {
	cocktailService service.CocktailService
	logger          *zap.Logger
}

func NewCocktailHandler(cocktailService service.CocktailService, logger *zap.Logger) *CocktailHandler {
	return &CocktailHandler{cocktailService: cocktailService, logger: logger}
}

// RegisterRoutes registers catalog routes: reads are public, writes need a token
func (h *CocktailHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/cocktails", h.List)
	public.GET("/cocktails/:id", h.GetByID)
	public.GET("/ingredients", h.ListIngredients)

	protected.POST("/cocktails", h.Create)
	protected.PUT("/cocktails/:id", h.Update)
	protected.DELETE("/cocktails/:id", h.Delete)
}

// List GET /api/cocktails
func (h *CocktailHandler) List(c *gin.Context) {
	list, err := h.cocktailService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToCocktailResponses(list))
}

// GetByID GET /api/cocktails/:id
func (h *CocktailHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id", "cocktail")
	if !ok {
		return
	}

	cocktail, err := h.cocktailService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCocktailDetailResponse(cocktail))
}

// Create POST /api/cocktails
func (h *CocktailHandler) Create(c *gin.Context) {
	var req dto.CreateCocktailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.cocktailService.Create(c.Request.Context(), service.CocktailInput{
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		Instructions: req.Instructions,
		GlassType:    req.GlassType,
		Ingredients:  dto.ToIngredientLines(req.Ingredients),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Cocktail created successfully", "id": id})
}

// Update PUT /api/cocktails/:id
func (h *CocktailHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "cocktail")
	if !ok {
		return
	}

	var req dto.UpdateCocktailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.cocktailService.Update(c.Request.Context(), id, req.ToCocktailPatch()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Cocktail updated successfully"})
}

// Delete DELETE /api/cocktails/:id
func (h *CocktailHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "cocktail")
	if !ok {
		return
	}

	if err := h.cocktailService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Cocktail deleted successfully"})
}

// ListIngredients GET /api/ingredients
func (h *CocktailHandler) ListIngredients(c *gin.Context) {
	list, err := h.cocktailService.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToIngredientResponses(list))
}
