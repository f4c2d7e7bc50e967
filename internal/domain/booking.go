package domain

import "time"

type Booking struct {
	ID        int64
	SpotID    int64
	UserID    int64
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingSpan is the minimal shape the conflict scan operates on.
type BookingSpan struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
}

func (b Booking) Span() BookingSpan {
	return BookingSpan{ID: b.ID, StartDate: b.StartDate, EndDate: b.EndDate}
}

type Review struct {
	ID        int64
	SpotID    int64
	UserID    int64
	Review    string
	Stars     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
