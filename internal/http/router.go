package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Cart            *CartHandler
	Order           *OrderHandler
	Recipe          *RecipeHandler
	Product         *ProductHandler
	Recommendations *RecommendationHandler
}

func NewRouter(h Handlers, logger *zap.Logger, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(AuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/order", func(r chi.Router) {
			r.Post("/cash-on-delivery", RequireUser(h.Order.CashOnDelivery))
			r.Post("/checkout", RequireUser(h.Order.Checkout))
			r.Post("/webhook", h.Order.Webhook)
			r.Get("/order-list", RequireUser(h.Order.ListUserOrders))

			r.Get("/orders", RequireAdmin(h.Order.ListAllOrders))
			r.Get("/order/{id}", RequireAdmin(h.Order.GetOrder))
			r.Put("/order/{id}", RequireAdmin(h.Order.UpdateStatus))
			r.Delete("/order/{id}", RequireAdmin(h.Order.DeleteOrder))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", RequireUser(h.Cart.GetCart))
			r.Post("/items", RequireUser(h.Cart.AddItem))
			r.Put("/items/{productID}", RequireUser(h.Cart.UpdateQuantity))
			r.Delete("/items/{productID}", RequireUser(h.Cart.RemoveItem))
		})

		r.Route("/recipe", func(r chi.Router) {
			r.Get("/", h.Recipe.List)
			r.Get("/{id}", h.Recipe.Get)
			r.Post("/", RequireAdmin(h.Recipe.Create))
			r.Put("/{id}", RequireAdmin(h.Recipe.Update))
			r.Delete("/{id}", RequireAdmin(h.Recipe.Delete))
			r.Post("/{id}/add-to-cart", RequireUser(h.Recipe.AddToCart))
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/{id}", h.Product.Get)
			r.Post("/by-category", h.Product.ListByCategory)
		})

		r.Get("/category", h.Product.ListCategories)

		r.Get("/recommendations", RequireUser(h.Recommendations.ForUser))
	})

	return r
}
