package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

func (r *Repo) CreateSpot(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	res, err := r.db.ExecContext(ctx, insertSpotSQL,
		s.OwnerID, s.Address, s.City, s.State, s.Country,
		s.Lat, s.Lng, s.Name, s.Description, s.Price)
	if err != nil {
		return domain.Spot{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Spot{}, err
	}
	return r.GetSpot(ctx, id)
}

func (r *Repo) GetSpot(ctx context.Context, id int64) (domain.Spot, error) {
	var s domain.Spot
	err := r.db.QueryRowContext(ctx, getSpotSQL+" WHERE id = ?", id).Scan(
		&s.ID, &s.OwnerID, &s.Address, &s.City, &s.State, &s.Country,
		&s.Lat, &s.Lng, &s.Name, &s.Description, &s.Price, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Spot{}, domain.NotFound("Spot")
	}
	if err != nil {
		return domain.Spot{}, err
	}
	return s, nil
}

func (r *Repo) GetSpots(ctx context.Context, ids []int64) ([]domain.Spot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ph, args := inClause(ids)
	return r.querySpots(ctx, getSpotSQL+" WHERE id IN ("+ph+") ORDER BY id", args...)
}

// ListSpots folds the present bounds into a conjunctive WHERE with
// LIMIT/OFFSET pagination. Validation happened upstream.
func (r *Repo) ListSpots(ctx context.Context, f domain.SpotFilter) ([]domain.Spot, error) {
	var conds []string
	var args []any
	bound := func(expr string, v *float64) {
		if v != nil {
			conds = append(conds, expr)
			args = append(args, *v)
		}
	}
	bound("lat >= ?", f.MinLat)
	bound("lat <= ?", f.MaxLat)
	bound("lng >= ?", f.MinLng)
	bound("lng <= ?", f.MaxLng)
	bound("price >= ?", f.MinPrice)
	bound("price <= ?", f.MaxPrice)

	q := getSpotSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, f.Size, (f.Page-1)*f.Size)

	return r.querySpots(ctx, q, args...)
}

func (r *Repo) ListSpotsByOwner(ctx context.Context, ownerID int64) ([]domain.Spot, error) {
	return r.querySpots(ctx, getSpotSQL+" WHERE owner_id = ? ORDER BY id", ownerID)
}

func (r *Repo) querySpots(ctx context.Context, q string, args ...any) ([]domain.Spot, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Spot
	for rows.Next() {
		var s domain.Spot
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Address, &s.City, &s.State, &s.Country,
			&s.Lat, &s.Lng, &s.Name, &s.Description, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateSpot(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	res, err := r.db.ExecContext(ctx, updateSpotSQL,
		s.Address, s.City, s.State, s.Country,
		s.Lat, s.Lng, s.Name, s.Description, s.Price, s.ID)
	if err != nil {
		return domain.Spot{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// either missing or unchanged; confirm via read
	}
	return r.GetSpot(ctx, s.ID)
}

// DeleteSpot removes bookings, reviews and images before the spot, all in
// one transaction, so a mid-sequence failure cannot orphan children.
func (r *Repo) DeleteSpot(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM bookings WHERE spot_id = ?",
		"DELETE FROM reviews WHERE spot_id = ?",
		"DELETE FROM spot_images WHERE spot_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM spots WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Spot")
	}
	return tx.Commit()
}

func (r *Repo) AddSpotImage(ctx context.Context, img domain.SpotImage) (domain.SpotImage, error) {
	res, err := r.db.ExecContext(ctx, insertSpotImageSQL, img.SpotID, img.URL, img.Preview)
	if err != nil {
		return domain.SpotImage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.SpotImage{}, err
	}
	img.ID = id
	return img, nil
}

func (r *Repo) ListSpotImages(ctx context.Context, spotIDs []int64) ([]domain.SpotImage, error) {
	if len(spotIDs) == 0 {
		return nil, nil
	}
	ph, args := inClause(spotIDs)
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, spot_id, url, preview FROM spot_images WHERE spot_id IN ("+ph+") ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SpotImage
	for rows.Next() {
		var img domain.SpotImage
		if err := rows.Scan(&img.ID, &img.SpotID, &img.URL, &img.Preview); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}
