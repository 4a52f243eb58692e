package http

import (
	"context"
	"net/http"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

type RecommendationService interface {
	ForUser(ctx context.Context, userID string) ([]domain.Product, error)
}

type RecommendationHandler struct {
	recommendations RecommendationService
}

func NewRecommendationHandler(recommendations RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// GET /api/recommendations
func (h *RecommendationHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	products, err := h.recommendations.ForUser(r.Context(), getUserID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, "Recommendations retrieved", products)
}
