package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrushil-parikh/quickpic/internal/repository"
)

type ProductHandler struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductHandler(products repository.ProductRepository, categories repository.CategoryRepository) *ProductHandler {
	return &ProductHandler{
		products:   products,
		categories: categories,
	}
}

type productsByCategoryRequestDTO struct {
	ID string `json:"id"`
}

// GET /api/product
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Products retrieved", products)
}

// GET /api/category
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Categories retrieved", categories)
}

// GET /api/product/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Product retrieved", product)
}

// POST /api/product/by-category
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	var req productsByCategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "category id is required")
		return
	}

	products, err := h.products.ListByCategory(r.Context(), req.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Products retrieved", products)
}
