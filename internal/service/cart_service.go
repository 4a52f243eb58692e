package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// GetCart returns the user's cart joined with live product details. A user
// without a cart gets an empty view, not an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.CartView, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &domain.CartView{Items: []domain.CartViewItem{}}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand cart products: %w", err)
	}

	view := &domain.CartView{Items: make([]domain.CartViewItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			// Product removed from the catalog since it was added.
			s.logger.Warn("cart references unknown product",
				zap.String("user_id", userID),
				zap.String("product_id", item.ProductID))
			continue
		}
		subtotal := product.EffectivePrice() * float64(item.Quantity)
		view.Items = append(view.Items, domain.CartViewItem{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}

	return view, nil
}

// AddItem inserts a cart line or increments an existing one.
func (s *CartService) AddItem(ctx context.Context, userID string, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fmt.Errorf("%w: unknown product", ErrValidation)
		}
		return err
	}

	return s.carts.AddItem(ctx, userID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return s.carts.SetItemQuantity(ctx, userID, productID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, productID string) error {
	return s.carts.RemoveItem(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	err := s.carts.DeleteCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	return err
}
