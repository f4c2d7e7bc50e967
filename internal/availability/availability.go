// Package availability decides whether a candidate booking date range may
// be committed against a spot's existing bookings. It is pure: callers run
// it over rows they have already locked, then persist on acceptance.
package availability

import (
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

// Decision reports which boundary of the candidate range collides with an
// existing booking. The zero value is an acceptance.
type Decision struct {
	StartConflict bool
	EndConflict   bool
}

func (d Decision) OK() bool { return !d.StartConflict && !d.EndConflict }

func (d Decision) Err() error {
	if d.OK() {
		return nil
	}
	return &domain.BookingConflictError{StartDate: d.StartConflict, EndDate: d.EndConflict}
}

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2)
// intersect. Ranges that touch at an endpoint do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Check scans existing bookings for overlap with [start, end). excludeID
// skips the booking being updated; pass 0 for a new booking. When the
// candidate fully contains an existing booking, both boundaries are
// reported so the caller can surface field errors on each date.
func Check(start, end time.Time, existing []domain.BookingSpan, excludeID int64) Decision {
	var d Decision
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !Overlaps(start, end, b.StartDate, b.EndDate) {
			continue
		}
		startIn := !start.Before(b.StartDate) && start.Before(b.EndDate)
		endIn := end.After(b.StartDate) && !end.After(b.EndDate)
		if startIn {
			d.StartConflict = true
		}
		if endIn {
			d.EndConflict = true
		}
		if !startIn && !endIn {
			// candidate surrounds the existing booking
			d.StartConflict = true
			d.EndConflict = true
		}
	}
	return d
}

// ValidateRange checks the candidate dates before any store access.
func ValidateRange(start, end time.Time) error {
	errs := map[string]string{}
	if start.IsZero() {
		errs["startDate"] = "startDate is required"
	}
	if end.IsZero() {
		errs["endDate"] = "endDate is required"
	}
	if len(errs) > 0 {
		return domain.NewValidation(errs)
	}
	if !end.After(start) {
		return domain.NewValidation(map[string]string{
			"endDate": "endDate cannot be on or before startDate",
		})
	}
	return nil
}
