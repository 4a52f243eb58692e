package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusOrdered        OrderStatus = "ordered"
	OrderStatusPickedUp       OrderStatus = "picked up"
	OrderStatusOutForDelivery OrderStatus = "out for delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// OrderStatuses lists the full lifecycle in delivery order.
var OrderStatuses = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusPickedUp,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

func ValidOrderStatus(s OrderStatus) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is a purchase line frozen at checkout time. Name, images and
// price are snapshots; later catalog changes never alter a placed order.
type OrderItem struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Images      []string `json:"images,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
}

type Order struct {
	ID               uuid.UUID   `json:"id"`
	OrderCode        string      `json:"order_code"`
	UserID           string      `json:"user_id"`
	AddressID        string      `json:"address_id"`
	Items            []OrderItem `json:"items"`
	PaymentID        string      `json:"payment_id"`
	PaymentSessionID string      `json:"payment_session_id,omitempty"`
	PaymentStatus    string      `json:"payment_status"`
	SubTotal         float64     `json:"sub_total"`
	Total            float64     `json:"total"`
	Status           OrderStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// NewOrderCode returns a fresh human-readable order code. Generated once at
// creation and never changed.
func NewOrderCode() string {
	return fmt.Sprintf("ORD-%s", uuid.NewString())
}
