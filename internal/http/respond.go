package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vrushil-parikh/quickpic/internal/repository"
	"github.com/vrushil-parikh/quickpic/internal/service"
)

// envelope is the uniform response shape every endpoint returns.
type envelope struct {
	Message string      `json:"message"`
	Error   bool        `json:"error"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondData(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, envelope{
		Message: message,
		Error:   false,
		Success: true,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{
		Message: message,
		Error:   true,
		Success: false,
	})
}

// handleServiceError maps service and repository errors onto the envelope:
// validation to 400, unresolved references to 404, everything else to 500
// with the underlying message echoed.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrRecipeNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrAddressNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
