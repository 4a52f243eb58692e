package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/payment"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

// CheckoutService turns a cart into an order, either synchronously (cash on
// delivery) or via a hosted payment session reconciled later by webhook.
type CheckoutService struct {
	carts     repository.CartRepository
	products  repository.ProductRepository
	addresses repository.AddressRepository
	orders    repository.OrderRepository
	payments  PaymentProvider
	events    EventPublisher
	logger    *zap.Logger

	successURL string
	cancelURL  string
}

func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	addresses repository.AddressRepository,
	orders repository.OrderRepository,
	payments PaymentProvider,
	events EventPublisher,
	logger *zap.Logger,
	successURL, cancelURL string,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		products:   products,
		addresses:  addresses,
		orders:     orders,
		payments:   payments,
		events:     events,
		logger:     logger,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// PlaceCashOnDelivery snapshots the user's cart into an order and clears the
// cart. Address validation happens before anything is written.
func (s *CheckoutService) PlaceCashOnDelivery(ctx context.Context, userID, addressID string) (*domain.Order, error) {
	if _, err := s.validateAddress(ctx, userID, addressID); err != nil {
		return nil, err
	}

	cart, products, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := snapshotItems(cart, products)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:            uuid.New(),
		OrderCode:     domain.NewOrderCode(),
		UserID:        userID,
		AddressID:     addressID,
		Items:         items,
		PaymentID:     "",
		PaymentStatus: "CASH ON DELIVERY",
		SubTotal:      subtotal,
		Total:         subtotal, // delivery is free
		Status:        domain.OrderStatusOrdered,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.finishPlacedOrder(ctx, order)
	return order, nil
}

// InitiateOnlinePayment opens a hosted payment session for the cart. No
// order is created here and the cart stays intact, so an abandoned payment
// loses nothing; reconciliation creates the order when the processor
// confirms.
func (s *CheckoutService) InitiateOnlinePayment(ctx context.Context, userID, addressID, customerEmail string) (*payment.Session, error) {
	if _, err := s.validateAddress(ctx, userID, addressID); err != nil {
		return nil, err
	}

	cart, products, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lineItems := make([]payment.SessionLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: cart references unknown product", ErrValidation)
		}
		lineItems = append(lineItems, payment.SessionLineItem{
			Name:       product.Name,
			Images:     product.Images,
			UnitAmount: toMinorUnits(product.EffectivePrice()),
			Quantity:   item.Quantity,
			Metadata:   map[string]string{"productId": product.ID},
		})
	}

	session, err := s.payments.CreateSession(ctx, payment.SessionParams{
		CustomerEmail: customerEmail,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		Metadata: map[string]string{
			"userId":    userID,
			"addressId": addressID,
		},
		LineItems: lineItems,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment session: %w", err)
	}

	return session, nil
}

// HandlePaymentEvent reconciles a processor event into a durable order,
// exactly once per session. Event types other than session completion are
// acknowledged and ignored; the processor may deliver types the storefront
// does not act on.
func (s *CheckoutService) HandlePaymentEvent(ctx context.Context, event payment.Event) error {
	if event.Type != payment.EventCheckoutSessionCompleted {
		s.logger.Debug("ignoring payment event", zap.String("type", event.Type))
		return nil
	}

	session := event.Data.Object
	userID := session.Metadata["userId"]
	addressID := session.Metadata["addressId"]
	if session.ID == "" || userID == "" {
		return fmt.Errorf("payment event missing session id or user metadata")
	}

	// The processor's line items are the source of truth for what was
	// actually charged, not the cart's view.
	lineItems, err := s.payments.ListLineItems(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("list session line items: %w", err)
	}
	if len(lineItems) == 0 {
		return fmt.Errorf("session %s has no line items", session.ID)
	}

	items := make([]domain.OrderItem, 0, len(lineItems))
	var subtotal float64
	for _, li := range lineItems {
		charged := fromMinorUnits(li.AmountTotal)
		items = append(items, domain.OrderItem{
			ProductID: li.ProductID(),
			Name:      li.Name,
			Images:    li.Images,
			Price:     charged,
			Quantity:  li.Quantity,
		})
		subtotal += charged
	}

	order := &domain.Order{
		ID:               uuid.New(),
		OrderCode:        domain.NewOrderCode(),
		UserID:           userID,
		AddressID:        addressID,
		Items:            items,
		PaymentID:        session.PaymentIntent,
		PaymentSessionID: session.ID,
		PaymentStatus:    session.PaymentStatus,
		SubTotal:         subtotal,
		Total:            subtotal,
		Status:           domain.OrderStatusOrdered,
		CreatedAt:        time.Now().UTC(),
	}

	err = s.orders.CreateOrder(ctx, order)
	if errors.Is(err, repository.ErrDuplicatePaymentSession) {
		// Redelivered event, the order already exists.
		s.logger.Info("payment session already reconciled",
			zap.String("session_id", session.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	s.finishPlacedOrder(ctx, order)
	return nil
}

// finishPlacedOrder clears the cart and publishes the created event. Both
// are best-effort: the order is already durable, a stale cart or missed
// event must not fail the request.
func (s *CheckoutService) finishPlacedOrder(ctx context.Context, order *domain.Order) {
	if err := s.carts.DeleteCart(ctx, order.UserID); err != nil &&
		!errors.Is(err, repository.ErrCartNotFound) {
		s.logger.Error("failed to clear cart after order",
			zap.String("user_id", order.UserID),
			zap.String("order_code", order.OrderCode),
			zap.Error(err))
	}

	if err := s.events.OrderCreated(ctx, order); err != nil {
		s.logger.Error("failed to publish order created event",
			zap.String("order_code", order.OrderCode),
			zap.Error(err))
	}
}

func (s *CheckoutService) validateAddress(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	if addressID == "" {
		return nil, ErrInvalidAddress
	}

	address, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, ErrInvalidAddress
		}
		return nil, fmt.Errorf("fetch address: %w", err)
	}

	if address.UserID != userID || !address.Active {
		return nil, ErrInvalidAddress
	}

	return address, nil
}

func (s *CheckoutService) loadCart(ctx context.Context, userID string) (*domain.Cart, map[string]domain.Product, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, nil, ErrEmptyCart
		}
		return nil, nil, fmt.Errorf("fetch cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch cart products: %w", err)
	}

	return cart, products, nil
}

// snapshotItems freezes product name, images, categories and the discounted
// unit price at purchase time. Later catalog edits never touch the order.
func snapshotItems(cart *domain.Cart, products map[string]domain.Product) ([]domain.OrderItem, float64, error) {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	var subtotal float64

	for _, line := range cart.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: cart references unknown product", ErrValidation)
		}

		unitPrice := product.EffectivePrice()
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Images:      product.Images,
			CategoryIDs: product.CategoryIDs,
			Price:       unitPrice,
			Quantity:    line.Quantity,
		})
		subtotal += unitPrice * float64(line.Quantity)
	}

	return items, subtotal, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
