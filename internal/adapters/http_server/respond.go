package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/etczermerivil/Rgb-bnb/internal/adapters/observability"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// writeError maps the domain error taxonomy onto the HTTP bodies the API
// promises. Anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: ve.Message, Errors: ve.Errors})
		return
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorBody{Message: nf.Error()})
		return
	}

	var bc *domain.BookingConflictError
	if errors.As(err, &bc) {
		observability.ObserveBookingConflict()
		fields := map[string]string{}
		if bc.StartDate {
			fields["startDate"] = "Start date conflicts with an existing booking"
		}
		if bc.EndDate {
			fields["endDate"] = "End date conflicts with an existing booking"
		}
		writeJSON(w, http.StatusForbidden, errorBody{Message: bc.Error(), Errors: fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Message: "Forbidden"})
	case errors.Is(err, domain.ErrPastBooking):
		writeJSON(w, http.StatusForbidden, errorBody{Message: "Past bookings can't be modified"})
	case errors.Is(err, domain.ErrBookingStarted):
		writeJSON(w, http.StatusForbidden, errorBody{Message: "Bookings that have been started can't be deleted"})
	case errors.Is(err, domain.ErrUserExists):
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Message: "User already exists",
			Errors:  map[string]string{"email": "User with that email or username already exists"},
		})
	case errors.Is(err, domain.ErrReviewExists):
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "User already has a review for this spot"})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal Server Error"})
	}
}

// decodeJSON rejects unreadable bodies uniformly.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Message: "Bad Request",
			Errors:  map[string]string{"body": "request body could not be parsed"},
		})
		return false
	}
	return true
}
