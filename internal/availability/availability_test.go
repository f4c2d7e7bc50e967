package availability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/availability"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func span(id int64, start, end string) domain.BookingSpan {
	return domain.BookingSpan{ID: id, StartDate: day(start), EndDate: day(end)}
}

func TestCheck_NoExistingBookings(t *testing.T) {
	d := availability.Check(day("2024-01-01"), day("2024-01-05"), nil, 0)
	if !d.OK() {
		t.Fatalf("expected acceptance, got %+v", d)
	}
	if d.Err() != nil {
		t.Fatalf("expected nil error, got %v", d.Err())
	}
}

func TestCheck_AdjacentRangesDoNotConflict(t *testing.T) {
	existing := []domain.BookingSpan{span(1, "2024-01-01", "2024-01-05")}

	// booking starting the day another ends
	if d := availability.Check(day("2024-01-05"), day("2024-01-10"), existing, 0); !d.OK() {
		t.Fatalf("range starting at existing end must not conflict: %+v", d)
	}
	// booking ending the day another starts
	if d := availability.Check(day("2023-12-28"), day("2024-01-01"), existing, 0); !d.OK() {
		t.Fatalf("range ending at existing start must not conflict: %+v", d)
	}
}

func TestCheck_OverlapBoundaries(t *testing.T) {
	existing := []domain.BookingSpan{span(1, "2024-01-03", "2024-01-07")}

	cases := []struct {
		name       string
		start, end string
		wantStart  bool
		wantEnd    bool
	}{
		{"start inside existing", "2024-01-05", "2024-01-10", true, false},
		{"end inside existing", "2024-01-01", "2024-01-05", false, true},
		{"candidate inside existing", "2024-01-04", "2024-01-06", true, true},
		{"candidate surrounds existing", "2024-01-01", "2024-01-10", true, true},
		{"identical range", "2024-01-03", "2024-01-07", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := availability.Check(day(tc.start), day(tc.end), existing, 0)
			if d.StartConflict != tc.wantStart || d.EndConflict != tc.wantEnd {
				t.Fatalf("got %+v, want start=%v end=%v", d, tc.wantStart, tc.wantEnd)
			}
			var conflict *domain.BookingConflictError
			if !errors.As(d.Err(), &conflict) {
				t.Fatalf("expected BookingConflictError, got %v", d.Err())
			}
			if conflict.StartDate != tc.wantStart || conflict.EndDate != tc.wantEnd {
				t.Fatalf("conflict error %+v does not match decision %+v", conflict, d)
			}
		})
	}
}

func TestCheck_ExcludesOwnBookingOnUpdate(t *testing.T) {
	existing := []domain.BookingSpan{
		span(7, "2024-01-03", "2024-01-07"),
		span(8, "2024-02-01", "2024-02-05"),
	}
	// extending booking 7 over its own current range is fine
	if d := availability.Check(day("2024-01-03"), day("2024-01-09"), existing, 7); !d.OK() {
		t.Fatalf("own booking must be excluded from the scan: %+v", d)
	}
	// but not over someone else's
	if d := availability.Check(day("2024-01-30"), day("2024-02-03"), existing, 7); d.OK() {
		t.Fatal("expected conflict against booking 8")
	}
}

func TestValidateRange(t *testing.T) {
	if err := availability.ValidateRange(day("2024-01-01"), day("2024-01-02")); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}

	var ve *domain.ValidationError
	err := availability.ValidateRange(day("2024-01-05"), day("2024-01-05"))
	if !errors.As(err, &ve) || ve.Errors["endDate"] == "" {
		t.Fatalf("equal dates must fail on endDate, got %v", err)
	}
	err = availability.ValidateRange(day("2024-01-05"), day("2024-01-01"))
	if !errors.As(err, &ve) || ve.Errors["endDate"] == "" {
		t.Fatalf("inverted range must fail on endDate, got %v", err)
	}
	err = availability.ValidateRange(time.Time{}, time.Time{})
	if !errors.As(err, &ve) || ve.Errors["startDate"] == "" || ve.Errors["endDate"] == "" {
		t.Fatalf("zero dates must fail on both fields, got %v", err)
	}
}
