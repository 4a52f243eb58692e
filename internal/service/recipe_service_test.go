package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

// mockRecipeRepo implements repository.RecipeRepository over a fixed set.
type mockRecipeRepo struct {
	recipes map[string]*domain.Recipe
}

func newMockRecipeRepo(recipes ...*domain.Recipe) *mockRecipeRepo {
	m := &mockRecipeRepo{recipes: make(map[string]*domain.Recipe)}
	for _, r := range recipes {
		m.recipes[r.ID] = r
	}
	return m
}

func (m *mockRecipeRepo) Create(_ context.Context, recipe *domain.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = "recipe-generated"
	}
	m.recipes[recipe.ID] = recipe
	return nil
}

func (m *mockRecipeRepo) GetByID(_ context.Context, id string) (*domain.Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, repository.ErrRecipeNotFound
	}
	return r, nil
}

func (m *mockRecipeRepo) List(_ context.Context) ([]domain.Recipe, error) {
	result := make([]domain.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRecipeRepo) Update(_ context.Context, recipe *domain.Recipe) error {
	if _, ok := m.recipes[recipe.ID]; !ok {
		return repository.ErrRecipeNotFound
	}
	m.recipes[recipe.ID] = recipe
	return nil
}

func (m *mockRecipeRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.recipes[id]; !ok {
		return repository.ErrRecipeNotFound
	}
	delete(m.recipes, id)
	return nil
}

func pastaRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:       "recipe-pasta",
		Name:     "Weeknight Pasta",
		Servings: 2,
		Ingredients: []domain.Ingredient{
			{ProductID: "p-pasta", Quantity: 1},
			{ProductID: "p-tomato", Quantity: 3},
			{ProductID: "p-cheese", Quantity: 1},
		},
	}
}

func pantryProducts() *mockProductRepo {
	return newMockProductRepo(
		domain.Product{ID: "p-pasta", Name: "Spaghetti", Price: 40},
		domain.Product{ID: "p-tomato", Name: "Tomato", Price: 10},
		domain.Product{ID: "p-cheese", Name: "Parmesan", Price: 120},
	)
}

func TestBulkAddToCart_ScalesQuantitiesByMultiplier(t *testing.T) {
	carts := newMockCartRepo()
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), carts, zap.NewNop())

	result, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-pasta", 2, nil)

	require.NoError(t, err)
	assert.Empty(t, result.Failed)
	require.Len(t, result.Added, 3)
	assert.Equal(t, 6, result.Added[1].Quantity, "3 tomatoes doubled")

	cart := carts.cartFor("user-1")
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 3)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 6, cart.Items[1].Quantity)
}

func TestBulkAddToCart_SelectedIndicesOnly(t *testing.T) {
	carts := newMockCartRepo()
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), carts, zap.NewNop())

	result, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-pasta", 1, []int{0, 2})

	require.NoError(t, err)
	require.Len(t, result.Added, 2)
	assert.Equal(t, "p-pasta", result.Added[0].ProductID)
	assert.Equal(t, "p-cheese", result.Added[1].ProductID)

	cart := carts.cartFor("user-1")
	require.Len(t, cart.Items, 2)
}

func TestBulkAddToCart_OutOfRangeIndexReported(t *testing.T) {
	carts := newMockCartRepo()
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), carts, zap.NewNop())

	result, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-pasta", 1, []int{0, 7})

	require.NoError(t, err)
	assert.Len(t, result.Added, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 7, result.Failed[0].Index)
}

func TestBulkAddToCart_FailureMidwayKeepsEarlierAdds(t *testing.T) {
	carts := newMockCartRepo()
	carts.addErrFor["p-tomato"] = errors.New("storage unavailable")
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), carts, zap.NewNop())

	result, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-pasta", 1, nil)

	require.NoError(t, err)
	require.Len(t, result.Added, 2, "pasta and cheese still go in")
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "p-tomato", result.Failed[0].ProductID)

	cart := carts.cartFor("user-1")
	require.NotNil(t, cart)
	assert.Len(t, cart.Items, 2, "earlier adds are not rolled back")
}

func TestBulkAddToCart_ZeroMultiplierDefaultsToOne(t *testing.T) {
	carts := newMockCartRepo()
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), carts, zap.NewNop())

	result, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-pasta", 0, []int{1})

	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, 3, result.Added[0].Quantity)
}

func TestBulkAddToCart_NegativeMultiplierRejected(t *testing.T) {
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), newMockCartRepo(), zap.NewNop())

	_, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-pasta", -1, nil)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkAddToCart_UnknownRecipe(t *testing.T) {
	svc := NewRecipeService(newMockRecipeRepo(), pantryProducts(), newMockCartRepo(), zap.NewNop())

	_, err := svc.BulkAddToCart(context.Background(), "user-1", "recipe-nope", 1, nil)

	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
}

func TestCreateRecipe_RejectsUnknownIngredientProduct(t *testing.T) {
	svc := NewRecipeService(newMockRecipeRepo(), pantryProducts(), newMockCartRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), &domain.Recipe{
		Name:     "Mystery Soup",
		Servings: 4,
		Ingredients: []domain.Ingredient{
			{ProductID: "p-unknown", Quantity: 2},
		},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRecipe_RejectsEmptyIngredients(t *testing.T) {
	svc := NewRecipeService(newMockRecipeRepo(), pantryProducts(), newMockCartRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), &domain.Recipe{Name: "Air", Servings: 1})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetRecipe_ExpandsIngredientProducts(t *testing.T) {
	svc := NewRecipeService(newMockRecipeRepo(pastaRecipe()), pantryProducts(), newMockCartRepo(), zap.NewNop())

	view, err := svc.Get(context.Background(), "recipe-pasta")

	require.NoError(t, err)
	require.Len(t, view.Ingredients, 3)
	require.NotNil(t, view.Ingredients[0].Product)
	assert.Equal(t, "Spaghetti", view.Ingredients[0].Product.Name)
	assert.Equal(t, 1, view.Ingredients[0].Quantity)
}
