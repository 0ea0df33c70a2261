package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abnormalforhad/Spicy-website/internal/checkout"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service-layer errors to HTTP status codes.
// Provider rejections and provider unavailability get distinct codes so the
// frontend can tell "fix your card" from "try again later".
func handleServiceError(w http.ResponseWriter, err error) {
	var svcErr *payments.ServiceError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrMissingEmail),
		errors.Is(err, checkout.ErrMissingOrigin),
		errors.Is(err, checkout.ErrInvalidItem):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, repository.ErrTransactionNotFound),
		errors.Is(err, payments.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session_not_found", "checkout session not found")
	case errors.As(err, &svcErr):
		respondError(w, http.StatusUnprocessableEntity, "payment_rejected", svcErr.Message)
	case errors.Is(err, payments.ErrProviderUnavailable):
		respondError(w, http.StatusBadGateway, "provider_unavailable", "payment provider unreachable, try again")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
