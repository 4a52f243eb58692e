package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/service"
)

type RecipeService interface {
	Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	List(ctx context.Context) ([]domain.RecipeView, error)
	Get(ctx context.Context, id string) (*domain.RecipeView, error)
	Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) error
	BulkAddToCart(ctx context.Context, userID, recipeID string, multiplier int, selected []int) (*service.BulkAddResult, error)
}

type RecipeHandler struct {
	recipes RecipeService
}

func NewRecipeHandler(recipes RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

type recipeRequestDTO struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image,omitempty"`
	Servings    int                 `json:"servings"`
	Ingredients []domain.Ingredient `json:"ingredients"`
}

type bulkAddRequestDTO struct {
	Servings int   `json:"servings"`
	Selected []int `json:"selected,omitempty"`
}

// POST /api/recipe (admin)
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	recipe, err := h.recipes.Create(r.Context(), &domain.Recipe{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Servings:    req.Servings,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, "Recipe created", recipe)
}

// GET /api/recipe
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.recipes.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Recipes retrieved", views)
}

// GET /api/recipe/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Recipe retrieved", view)
}

// PUT /api/recipe/{id} (admin)
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req recipeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	recipe, err := h.recipes.Update(r.Context(), &domain.Recipe{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Servings:    req.Servings,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Recipe updated", recipe)
}

// DELETE /api/recipe/{id} (admin)
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Recipe deleted", nil)
}

// POST /api/recipe/{id}/add-to-cart
//
// Adds the recipe's ingredients to the cart one by one. Failures don't roll
// back earlier adds; the response reports both lists and the status code
// reflects a partial outcome.
func (h *RecipeHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req bulkAddRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.recipes.BulkAddToCart(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Servings, req.Selected)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	message := "Ingredients added to cart"
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
		message = "Some ingredients could not be added"
	}

	respondData(w, status, message, result)
}
