package app

import (
	"context"
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/authz"
	"github.com/etczermerivil/Rgb-bnb/internal/availability"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

type BookingService struct {
	bookings domain.BookingStore
	spots    domain.SpotStore
	users    domain.UserStore
	now      func() time.Time
}

func NewBookingService(bookings domain.BookingStore, spots domain.SpotStore, users domain.UserStore) *BookingService {
	return &BookingService{bookings: bookings, spots: spots, users: users, now: time.Now}
}

// Create books [start, end) on the spot. The store runs the conflict scan
// and the insert atomically; a losing racer observes the conflict error.
// Nothing stops an owner booking their own spot.
func (s *BookingService) Create(ctx context.Context, spotID, userID int64, start, end time.Time) (domain.Booking, error) {
	if err := availability.ValidateRange(start, end); err != nil {
		return domain.Booking{}, err
	}
	if _, err := s.spots.GetSpot(ctx, spotID); err != nil {
		return domain.Booking{}, err
	}
	return s.bookings.CreateBooking(ctx, domain.Booking{
		SpotID: spotID, UserID: userID, StartDate: start, EndDate: end,
	})
}

func (s *BookingService) Update(ctx context.Context, id, userID int64, start, end time.Time) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !authz.CanManageBooking(b, userID) {
		return domain.Booking{}, domain.ErrForbidden
	}
	if b.EndDate.Before(s.now()) {
		return domain.Booking{}, domain.ErrPastBooking
	}
	if err := availability.ValidateRange(start, end); err != nil {
		return domain.Booking{}, err
	}
	return s.bookings.UpdateBooking(ctx, id, start, end)
}

func (s *BookingService) Delete(ctx context.Context, id, userID int64) error {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManageBooking(b, userID) {
		return domain.ErrForbidden
	}
	if !s.now().Before(b.StartDate) {
		return domain.ErrBookingStarted
	}
	return s.bookings.DeleteBooking(ctx, id)
}

// ListForSpot returns all bookings on a spot. Only the spot owner sees
// who holds them; other requesters get the reserved dates alone.
func (s *BookingService) ListForSpot(ctx context.Context, spotID, requesterID int64) (SpotBookings, error) {
	sp, err := s.spots.GetSpot(ctx, spotID)
	if err != nil {
		return SpotBookings{}, err
	}
	bookings, err := s.bookings.ListSpotBookings(ctx, spotID)
	if err != nil {
		return SpotBookings{}, err
	}

	out := SpotBookings{Bookings: make([]SpotBookingItem, 0, len(bookings))}
	if !authz.CanManageSpot(sp, requesterID) {
		for _, b := range bookings {
			out.Bookings = append(out.Bookings, SpotBookingItem{
				SpotID:    b.SpotID,
				StartDate: DateOnly(b.StartDate),
				EndDate:   DateOnly(b.EndDate),
			})
		}
		return out, nil
	}

	guests := map[int64]domain.UserRef{}
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if _, seen := guests[b.UserID]; !seen {
			guests[b.UserID] = domain.UserRef{}
			ids = append(ids, b.UserID)
		}
	}
	users, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		return SpotBookings{}, err
	}
	for _, u := range users {
		guests[u.ID] = u.Ref()
	}
	for _, b := range bookings {
		b := b
		guest := guests[b.UserID]
		out.Bookings = append(out.Bookings, SpotBookingItem{
			User:      &guest,
			ID:        &b.ID,
			SpotID:    b.SpotID,
			UserID:    &b.UserID,
			StartDate: DateOnly(b.StartDate),
			EndDate:   DateOnly(b.EndDate),
			CreatedAt: &b.CreatedAt,
			UpdatedAt: &b.UpdatedAt,
		})
	}
	return out, nil
}

// ListForUser returns the requester's bookings with their spots, preview
// image included, fetched batched rather than per booking.
func (s *BookingService) ListForUser(ctx context.Context, userID int64) (UserBookings, error) {
	bookings, err := s.bookings.ListUserBookings(ctx, userID)
	if err != nil {
		return UserBookings{}, err
	}
	out := UserBookings{Bookings: make([]UserBookingItem, 0, len(bookings))}
	if len(bookings) == 0 {
		return out, nil
	}

	seen := map[int64]bool{}
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if !seen[b.SpotID] {
			seen[b.SpotID] = true
			ids = append(ids, b.SpotID)
		}
	}
	spots, err := s.spots.GetSpots(ctx, ids)
	if err != nil {
		return UserBookings{}, err
	}
	images, err := s.spots.ListSpotImages(ctx, ids)
	if err != nil {
		return UserBookings{}, err
	}
	bySpotImages := groupImages(images)

	refs := make(map[int64]BookingSpotRef, len(spots))
	for _, sp := range spots {
		refs[sp.ID] = BookingSpotRef{
			ID: sp.ID, OwnerID: sp.OwnerID,
			Address: sp.Address, City: sp.City, State: sp.State, Country: sp.Country,
			Lat: sp.Lat, Lng: sp.Lng, Name: sp.Name, Price: sp.Price,
			PreviewImage: previewURL(bySpotImages[sp.ID]),
		}
	}
	for _, b := range bookings {
		out.Bookings = append(out.Bookings, UserBookingItem{
			ID: b.ID, SpotID: b.SpotID, Spot: refs[b.SpotID], UserID: b.UserID,
			StartDate: DateOnly(b.StartDate), EndDate: DateOnly(b.EndDate),
			CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
		})
	}
	return out, nil
}
