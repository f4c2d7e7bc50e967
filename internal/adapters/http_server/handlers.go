package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/etczermerivil/Rgb-bnb/internal/adapters/auth"
	"github.com/etczermerivil/Rgb-bnb/internal/app"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

type Handlers struct {
	Spots    *app.SpotService
	Bookings *app.BookingService
	Reviews  *app.ReviewService
	Users    domain.UserStore
	Auth     *auth.Manager
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Use(Identity(h.Auth))

		r.Post("/users", h.signup)
		r.Post("/session", h.login)
		r.Get("/session", h.currentUser)

		r.Route("/spots", func(r chi.Router) {
			r.Get("/", h.listSpots)
			r.With(requireAuth).Post("/", h.createSpot)
			r.With(requireAuth).Get("/current", h.listOwnedSpots)

			r.Route("/{spotId}", func(r chi.Router) {
				r.Get("/", h.getSpot)
				r.With(requireAuth).Put("/", h.updateSpot)
				r.With(requireAuth).Delete("/", h.deleteSpot)
				r.With(requireAuth).Post("/images", h.addSpotImage)

				r.Get("/reviews", h.listSpotReviews)
				r.With(requireAuth).Post("/reviews", h.createReview)

				r.With(requireAuth).Get("/bookings", h.listSpotBookings)
				r.With(requireAuth).Post("/bookings", h.createBooking)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/current", h.listOwnBookings)
			r.Put("/{bookingId}", h.updateBooking)
			r.Delete("/{bookingId}", h.deleteBooking)
		})

		r.With(requireAuth).Delete("/reviews/{reviewId}", h.deleteReview)
	})
}

// pathID parses an integer URL parameter; a non-integer is a 400 naming
// the parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Message: "Bad Request",
			Errors:  map[string]string{name: name + " must be a positive integer"},
		})
		return 0, false
	}
	return id, true
}

// ---- spots ----

func (h *Handlers) listSpots(w http.ResponseWriter, r *http.Request) {
	f, err := app.ParseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Spots.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) listOwnedSpots(w http.ResponseWriter, r *http.Request) {
	out, err := h.Spots.ListOwned(r.Context(), requesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	detail, err := h.Spots.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handlers) createSpot(w http.ResponseWriter, r *http.Request) {
	var in app.SpotInput
	if !decodeJSON(w, r, &in) {
		return
	}
	spot, err := h.Spots.Create(r.Context(), requesterID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app.NewSpotView(spot))
}

func (h *Handlers) updateSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	var in app.SpotInput
	if !decodeJSON(w, r, &in) {
		return
	}
	spot, err := h.Spots.Update(r.Context(), id, requesterID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.NewSpotView(spot))
}

func (h *Handlers) deleteSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	if err := h.Spots.Delete(r.Context(), id, requesterID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully deleted"})
}

func (h *Handlers) addSpotImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	var in struct {
		URL     string `json:"url"`
		Preview bool   `json:"preview"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	img, err := h.Spots.AddImage(r.Context(), id, requesterID(r), in.URL, in.Preview)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		ID      int64  `json:"id"`
		URL     string `json:"url"`
		Preview bool   `json:"preview"`
	}{img.ID, img.URL, img.Preview})
}

// ---- bookings ----

type bookingDates struct {
	StartDate *app.DateOnly `json:"startDate"`
	EndDate   *app.DateOnly `json:"endDate"`
}

func (b bookingDates) times() (start, end app.DateOnly) {
	if b.StartDate != nil {
		start = *b.StartDate
	}
	if b.EndDate != nil {
		end = *b.EndDate
	}
	return start, end
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	var in bookingDates
	if !decodeJSON(w, r, &in) {
		return
	}
	start, end := in.times()
	b, err := h.Bookings.Create(r.Context(), id, requesterID(r), start.Time(), end.Time())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app.NewBookingView(b))
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "bookingId")
	if !ok {
		return
	}
	var in bookingDates
	if !decodeJSON(w, r, &in) {
		return
	}
	start, end := in.times()
	b, err := h.Bookings.Update(r.Context(), id, requesterID(r), start.Time(), end.Time())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.NewBookingView(b))
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "bookingId")
	if !ok {
		return
	}
	if err := h.Bookings.Delete(r.Context(), id, requesterID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully deleted"})
}

func (h *Handlers) listSpotBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	out, err := h.Bookings.ListForSpot(r.Context(), id, requesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listOwnBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Bookings.ListForUser(r.Context(), requesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- reviews ----

func (h *Handlers) listSpotReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	out, err := h.Reviews.ListForSpot(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "spotId")
	if !ok {
		return
	}
	var in app.ReviewInput
	if !decodeJSON(w, r, &in) {
		return
	}
	review, err := h.Reviews.Create(r.Context(), id, requesterID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app.NewReviewView(review))
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "reviewId")
	if !ok {
		return
	}
	if err := h.Reviews.Delete(r.Context(), id, requesterID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully deleted"})
}
