// internal/api/apiutil/respond.go
package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/openfield/courtbook/internal/booking"
)

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError maps domain errors onto HTTP statuses: business-rule
// violations are 422, illegal transitions 409, missing records 404,
// everything else 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var transitionErr *booking.TransitionError
	switch {
	case errors.Is(err, booking.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &transitionErr):
		WriteJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrPastBooking),
		errors.Is(err, booking.ErrDurationTooShort),
		errors.Is(err, booking.ErrDurationTooLong),
		errors.Is(err, booking.ErrCourtUnavailable),
		errors.Is(err, booking.ErrCourtNotBookable):
		WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// WriteValidationError renders a payload validation failure as 400.
func WriteValidationError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: first.Error()})
		return
	}
	WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// DecodeJSON parses a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
