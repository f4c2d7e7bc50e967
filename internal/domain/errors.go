package domain

import "errors"

var (
	ErrUnauthorized   = errors.New("authentication required")
	ErrForbidden      = errors.New("forbidden")
	ErrUserExists     = errors.New("user already exists")
	ErrReviewExists   = errors.New("user already has a review for this spot")
	ErrPastBooking    = errors.New("past bookings can't be modified")
	ErrBookingStarted = errors.New("bookings that have been started can't be deleted")
)

// NotFoundError names the missing resource type; its message is the
// client-facing body ("Spot couldn't be found").
type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string { return e.Resource + " couldn't be found" }

func NotFound(resource string) error { return &NotFoundError{Resource: resource} }

// ValidationError carries a field→reason map. Message distinguishes body
// validation ("Validation Error") from query-param validation ("Bad Request").
type ValidationError struct {
	Message string
	Errors  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(errs map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation Error", Errors: errs}
}

func NewBadRequest(errs map[string]string) *ValidationError {
	return &ValidationError{Message: "Bad Request", Errors: errs}
}

// BookingConflictError reports which boundary of the candidate range
// collides with an existing booking.
type BookingConflictError struct {
	StartDate bool
	EndDate   bool
}

func (e *BookingConflictError) Error() string {
	return "Sorry, this spot is already booked for the specified dates"
}
