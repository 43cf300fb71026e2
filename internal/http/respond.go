package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/checkout"
	"github.com/electromart/storefront/internal/mutation"
	"github.com/electromart/storefront/internal/session"
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
		logrus.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// respondCoreError maps the core's error taxonomy onto HTTP. Only
// auth_required and no_checkout_source tell the client to navigate away;
// everything else is recoverable in place.
func respondCoreError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "auth_required", "please sign in to continue")
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation_error", verr.Error())
	case errors.Is(err, checkout.ErrNoSource):
		respondError(w, http.StatusBadRequest, "no_checkout_source", "no items selected for checkout; return to cart")
	case errors.Is(err, checkout.ErrStaleSelection):
		respondError(w, http.StatusConflict, "stale_selection", "selected cart items are no longer in the cart")
	case errors.Is(err, checkout.ErrSubmitConflict):
		respondError(w, http.StatusConflict, "submit_conflict", "order submission already in progress or completed")
	case errors.Is(err, mutation.ErrConfirmationRequired):
		respondError(w, http.StatusBadRequest, "confirmation_required", "cart deletion requires explicit confirmation")
	default:
		respondError(w, http.StatusBadGateway, "backend_error", err.Error())
	}
}
