package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

// UserOrder is an order with its delivery address expanded for display.
type UserOrder struct {
	domain.Order
	Address *domain.Address `json:"delivery_address,omitempty"`
}

type OrderService struct {
	orders    repository.OrderRepository
	addresses repository.AddressRepository
	events    EventPublisher
	logger    *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	addresses repository.AddressRepository,
	events EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		addresses: addresses,
		events:    events,
		logger:    logger,
	}
}

// ListUserOrders returns the user's orders newest first with delivery
// addresses expanded. A missing address leaves the field empty rather than
// failing the whole listing.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]UserOrder, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	addresses := make(map[string]*domain.Address)
	result := make([]UserOrder, 0, len(orders))
	for _, order := range orders {
		address, ok := addresses[order.AddressID]
		if !ok {
			address, err = s.addresses.GetByID(ctx, order.AddressID)
			if err != nil {
				s.logger.Warn("failed to expand order address",
					zap.String("order_code", order.OrderCode),
					zap.String("address_id", order.AddressID),
					zap.Error(err))
				address = nil
			}
			addresses[order.AddressID] = address
		}
		result = append(result, UserOrder{Order: *order, Address: address})
	}

	return result, nil
}

// ListAllOrders returns every order (optionally filtered by status) plus the
// sum of their totals, for the admin dashboard.
func (s *OrderService) ListAllOrders(ctx context.Context, status string) ([]*domain.Order, float64, error) {
	filter := domain.OrderStatus(status)
	if status != "" && !domain.ValidOrderStatus(filter) {
		return nil, 0, ErrInvalidStatus
	}

	orders, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var totalAmount float64
	for _, order := range orders {
		totalAmount += order.Total
	}

	return orders, totalAmount, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrOrderNotFound
	}
	return s.orders.GetOrderByID(ctx, orderID)
}

// UpdateStatus overwrites the order's status with any value inside the
// fixed enumeration. Backward and skipping moves are allowed; admins use
// them to correct mistakes.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	target := domain.OrderStatus(status)
	if !domain.ValidOrderStatus(target) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrOrderNotFound
	}

	order, err := s.orders.UpdateOrderStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	if err := s.events.OrderStatusChanged(ctx, order); err != nil {
		s.logger.Error("failed to publish status change event",
			zap.String("order_code", order.OrderCode),
			zap.Error(err))
	}

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrOrderNotFound
	}
	return s.orders.DeleteOrder(ctx, orderID)
}
