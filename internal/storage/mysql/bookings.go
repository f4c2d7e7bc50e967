package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/availability"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

// CreateBooking locks the spot's booking rows, runs the conflict scan and
// inserts inside one transaction. Of two racing overlapping requests the
// second blocks on the lock and then observes the first one's row.
func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	spans, err := lockSpotSpans(ctx, tx, b.SpotID)
	if err != nil {
		return domain.Booking{}, err
	}
	if d := availability.Check(b.StartDate, b.EndDate, spans, 0); !d.OK() {
		return domain.Booking{}, d.Err()
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.SpotID, b.UserID, b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout))
	if err != nil {
		return domain.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Booking{}, err
	}
	created, err := getBooking(ctx, tx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	return created, tx.Commit()
}

// UpdateBooking is CreateBooking's sibling for date changes; the booking
// itself is excluded from the conflict scan.
func (r *Repo) UpdateBooking(ctx context.Context, id int64, start, end time.Time) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	b, err := getBooking(ctx, tx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	spans, err := lockSpotSpans(ctx, tx, b.SpotID)
	if err != nil {
		return domain.Booking{}, err
	}
	if d := availability.Check(start, end, spans, id); !d.OK() {
		return domain.Booking{}, d.Err()
	}

	if _, err := tx.ExecContext(ctx, updateBookingSQL,
		start.Format(dateLayout), end.Format(dateLayout), id); err != nil {
		return domain.Booking{}, err
	}
	updated, err := getBooking(ctx, tx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	return updated, tx.Commit()
}

func lockSpotSpans(ctx context.Context, tx *sql.Tx, spotID int64) ([]domain.BookingSpan, error) {
	rows, err := tx.QueryContext(ctx, lockSpanSQL, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spans []domain.BookingSpan
	for rows.Next() {
		var s domain.BookingSpan
		if err := rows.Scan(&s.ID, &s.StartDate, &s.EndDate); err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	return spans, rows.Err()
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getBooking(ctx context.Context, q rowQuerier, id int64) (domain.Booking, error) {
	var b domain.Booking
	err := q.QueryRowContext(ctx, getBookingSQL+" WHERE id = ?", id).Scan(
		&b.ID, &b.SpotID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.NotFound("Booking")
	}
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return getBooking(ctx, r.db, id)
}

func (r *Repo) DeleteBooking(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Booking")
	}
	return nil
}

func (r *Repo) ListSpotBookings(ctx context.Context, spotID int64) ([]domain.Booking, error) {
	return r.queryBookings(ctx, getBookingSQL+" WHERE spot_id = ? ORDER BY start_date, id", spotID)
}

func (r *Repo) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.queryBookings(ctx, getBookingSQL+" WHERE user_id = ? ORDER BY start_date, id", userID)
}

func (r *Repo) queryBookings(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.SpotID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
