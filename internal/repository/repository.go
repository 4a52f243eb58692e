package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

var (
	ErrCartNotFound            = errors.New("cart not found")
	ErrItemNotFound            = errors.New("item not found in cart")
	ErrProductNotFound         = errors.New("product not found")
	ErrAddressNotFound         = errors.New("address not found")
	ErrRecipeNotFound          = errors.New("recipe not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrDuplicatePaymentSession = errors.New("order for this payment session already exists")
)

// CartRepository defines cart data operations. Consumers define this
// interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, userID string, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID string, productID string) error
	DeleteCart(ctx context.Context, userID string) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type AddressRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Address, error)
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	GetByID(ctx context.Context, id string) (*domain.Recipe, error)
	List(ctx context.Context) ([]domain.Recipe, error)
	Update(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
