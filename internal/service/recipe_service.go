package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

type RecipeService struct {
	recipes  repository.RecipeRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	logger   *zap.Logger
}

func NewRecipeService(
	recipes repository.RecipeRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		products: products,
		carts:    carts,
		logger:   logger,
	}
}

func (s *RecipeService) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if err := s.validate(ctx, recipe); err != nil {
		return nil, err
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if err := s.validate(ctx, recipe); err != nil {
		return nil, err
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, id string) error {
	return s.recipes.Delete(ctx, id)
}

// List returns all recipes with ingredient product details expanded.
func (s *RecipeService) List(ctx context.Context) ([]domain.RecipeView, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, recipe := range recipes {
		for _, ingredient := range recipe.Ingredients {
			ids = append(ids, ingredient.ProductID)
		}
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand ingredient products: %w", err)
	}

	views := make([]domain.RecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		views = append(views, buildRecipeView(recipe, products))
	}
	return views, nil
}

func (s *RecipeService) Get(ctx context.Context, id string) (*domain.RecipeView, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ids = append(ids, ingredient.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand ingredient products: %w", err)
	}

	view := buildRecipeView(*recipe, products)
	return &view, nil
}

// BulkAddResult reports the per-ingredient outcome of a bulk add. Cart
// mutations are independent, so a failure midway leaves earlier adds in
// place; the caller surfaces this as a partial success.
type BulkAddResult struct {
	Added  []BulkAddedItem  `json:"added"`
	Failed []BulkFailedItem `json:"failed"`
}

type BulkAddedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type BulkFailedItem struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id,omitempty"`
	Reason    string `json:"reason"`
}

// BulkAddToCart adds a recipe's ingredients to the user's cart, scaled by a
// serving multiplier. A nil selection means all ingredients.
func (s *RecipeService) BulkAddToCart(ctx context.Context, userID, recipeID string, multiplier int, selected []int) (*BulkAddResult, error) {
	if multiplier == 0 {
		multiplier = 1
	}
	if multiplier < 0 {
		return nil, fmt.Errorf("%w: serving multiplier must be positive", ErrValidation)
	}

	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if selected == nil {
		selected = make([]int, len(recipe.Ingredients))
		for i := range recipe.Ingredients {
			selected[i] = i
		}
	}

	result := &BulkAddResult{
		Added:  []BulkAddedItem{},
		Failed: []BulkFailedItem{},
	}

	for _, idx := range selected {
		if idx < 0 || idx >= len(recipe.Ingredients) {
			result.Failed = append(result.Failed, BulkFailedItem{
				Index:  idx,
				Reason: "ingredient index out of range",
			})
			continue
		}

		ingredient := recipe.Ingredients[idx]
		quantity := ingredient.Quantity * multiplier

		if err := s.carts.AddItem(ctx, userID, ingredient.ProductID, quantity); err != nil {
			s.logger.Warn("bulk add ingredient failed",
				zap.String("recipe_id", recipeID),
				zap.String("product_id", ingredient.ProductID),
				zap.Error(err))
			result.Failed = append(result.Failed, BulkFailedItem{
				Index:     idx,
				ProductID: ingredient.ProductID,
				Reason:    err.Error(),
			})
			continue
		}

		result.Added = append(result.Added, BulkAddedItem{
			ProductID: ingredient.ProductID,
			Quantity:  quantity,
		})
	}

	return result, nil
}

func (s *RecipeService) validate(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if recipe.Servings < 1 {
		return fmt.Errorf("%w: servings must be at least 1", ErrValidation)
	}
	if len(recipe.Ingredients) == 0 {
		return fmt.Errorf("%w: ingredients are required", ErrValidation)
	}

	ids := make([]string, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		if ingredient.Quantity < 1 {
			return fmt.Errorf("%w: ingredient quantity must be at least 1", ErrValidation)
		}
		ids = append(ids, ingredient.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check ingredient products: %w", err)
	}
	for _, ingredient := range recipe.Ingredients {
		if _, ok := products[ingredient.ProductID]; !ok {
			return fmt.Errorf("%w: ingredient references unknown product %s", ErrValidation, ingredient.ProductID)
		}
	}

	return nil
}

func buildRecipeView(recipe domain.Recipe, products map[string]domain.Product) domain.RecipeView {
	ingredients := make([]domain.IngredientView, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		view := domain.IngredientView{Quantity: ingredient.Quantity}
		if product, ok := products[ingredient.ProductID]; ok {
			p := product
			view.Product = &p
		}
		ingredients = append(ingredients, view)
	}
	return domain.RecipeView{Recipe: recipe, Ingredients: ingredients}
}
