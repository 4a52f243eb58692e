package service

import (
	"context"
	"errors"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/payment"
)

var (
	// ErrValidation marks rejected input; handlers map it to a 4xx with the
	// wrapped message.
	ErrValidation = errors.New("validation failed")

	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("no active delivery address selected")
	ErrInvalidStatus  = errors.New("invalid status value")
)

// PaymentProvider is the slice of the payment processor the checkout flow
// needs. The concrete client lives in internal/payment.
type PaymentProvider interface {
	CreateSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error)
	ListLineItems(ctx context.Context, sessionID string) ([]payment.LineItem, error)
}

// EventPublisher emits order lifecycle events. Publish failures are logged
// by callers, never surfaced to the user.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order) error
}
