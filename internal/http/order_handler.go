package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/payment"
	"github.com/vrushil-parikh/quickpic/internal/service"
)

type CheckoutService interface {
	PlaceCashOnDelivery(ctx context.Context, userID, addressID string) (*domain.Order, error)
	InitiateOnlinePayment(ctx context.Context, userID, addressID, customerEmail string) (*payment.Session, error)
	HandlePaymentEvent(ctx context.Context, event payment.Event) error
}

type OrderService interface {
	ListUserOrders(ctx context.Context, userID string) ([]service.UserOrder, error)
	ListAllOrders(ctx context.Context, status string) ([]*domain.Order, float64, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrderHandler struct {
	checkout CheckoutService
	orders   OrderService
}

func NewOrderHandler(checkout CheckoutService, orders OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
	}
}

type checkoutRequestDTO struct {
	AddressID     string `json:"addressId"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

type updateStatusRequestDTO struct {
	Status string `json:"status"`
}

// adminOrdersDTO matches the admin dashboard's expectation of a listing
// plus the sum of order totals.
type adminOrdersDTO struct {
	TotalAmount float64         `json:"totalAmount"`
	Orders      []*domain.Order `json:"orders"`
}

// POST /api/order/cash-on-delivery
func (h *OrderHandler) CashOnDelivery(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := h.checkout.PlaceCashOnDelivery(r.Context(), getUserID(r.Context()), req.AddressID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Order placed successfully", order)
}

// POST /api/order/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := h.checkout.InitiateOnlinePayment(r.Context(), getUserID(r.Context()), req.AddressID, req.CustomerEmail)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Payment session created", session)
}

// GET /api/order/order-list
func (h *OrderHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListUserOrders(r.Context(), getUserID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Order list retrieved", orders)
}

// GET /api/order/orders (admin)
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	orders, totalAmount, err := h.orders.ListAllOrders(r.Context(), status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	respondData(w, http.StatusOK, "Orders retrieved", adminOrdersDTO{
		TotalAmount: totalAmount,
		Orders:      orders,
	})
}

// GET /api/order/order/{id} (admin)
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Order retrieved", order)
}

// PUT /api/order/order/{id} (admin)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Order status updated successfully", order)
}

// DELETE /api/order/order/{id} (admin)
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Order deleted successfully", nil)
}

// POST /api/order/webhook
//
// The processor retries undelivered events, so any processing failure gets
// a 5xx to trigger redelivery; idempotent reconciliation makes the retry
// safe. Unknown event types are acknowledged so the processor stops
// resending them.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var event payment.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	if err := h.checkout.HandlePaymentEvent(r.Context(), event); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
