package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

// CartService is the slice of cart behavior the handler needs. Consumers
// define this interface, not the service implementation.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.CartView, error)
	AddItem(ctx context.Context, userID string, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, userID string, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID string, productID string) error
}

type CartHandler struct {
	cart CartService
}

func NewCartHandler(cart CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cart.GetCart(r.Context(), getUserID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Cart retrieved", view)
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if err := h.cart.AddItem(r.Context(), getUserID(r.Context()), req.ProductID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, "Item added to cart", nil)
}

// PUT /api/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "productID is required")
		return
	}

	var req updateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), getUserID(r.Context()), productID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Cart updated", nil)
}

// DELETE /api/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "productID is required")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), getUserID(r.Context()), productID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Item removed from cart", nil)
}
