package domain

import (
	"context"
	"time"
)

type UserStore interface {
	CreateUser(ctx context.Context, u User) (User, error) // ErrUserExists on duplicate email/username
	GetUser(ctx context.Context, id int64) (User, error)
	GetUsers(ctx context.Context, ids []int64) ([]User, error)
	GetUserByCredential(ctx context.Context, credential string) (User, error) // username or email
}

type SpotStore interface {
	CreateSpot(ctx context.Context, s Spot) (Spot, error)
	GetSpot(ctx context.Context, id int64) (Spot, error)
	GetSpots(ctx context.Context, ids []int64) ([]Spot, error)
	ListSpots(ctx context.Context, f SpotFilter) ([]Spot, error)
	ListSpotsByOwner(ctx context.Context, ownerID int64) ([]Spot, error)
	UpdateSpot(ctx context.Context, s Spot) (Spot, error)
	// DeleteSpot removes the spot and all of its images, reviews and
	// bookings in a single transaction.
	DeleteSpot(ctx context.Context, id int64) error

	AddSpotImage(ctx context.Context, img SpotImage) (SpotImage, error)
	// ListSpotImages returns images for all given spots in id order.
	ListSpotImages(ctx context.Context, spotIDs []int64) ([]SpotImage, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, r Review) (Review, error) // ErrReviewExists on second review per user/spot
	GetReview(ctx context.Context, id int64) (Review, error)
	DeleteReview(ctx context.Context, id int64) error
	// ListReviews returns reviews for all given spots.
	ListReviews(ctx context.Context, spotIDs []int64) ([]Review, error)
}

type BookingStore interface {
	// CreateBooking runs the conflict scan and the insert in one
	// transaction; returns *BookingConflictError when the range overlaps
	// an existing booking for the spot.
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	// UpdateBooking replaces the date range, excluding the booking itself
	// from the conflict scan; same atomicity as CreateBooking.
	UpdateBooking(ctx context.Context, id int64, start, end time.Time) (Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListSpotBookings(ctx context.Context, spotID int64) ([]Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]Booking, error)
}

// Store is what the MySQL repository implements; services depend on the
// narrow slices above.
type Store interface {
	UserStore
	SpotStore
	ReviewStore
	BookingStore
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
