package mysql

import (
	"context"
	"database/sql"

	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL, rv.SpotID, rv.UserID, rv.Review, rv.Stars)
	if err != nil {
		if isDuplicate(err) {
			return domain.Review{}, domain.ErrReviewExists
		}
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	return r.GetReview(ctx, id)
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	var rv domain.Review
	err := r.db.QueryRowContext(ctx, getReviewSQL+" WHERE id = ?", id).Scan(
		&rv.ID, &rv.SpotID, &rv.UserID, &rv.Review, &rv.Stars, &rv.CreatedAt, &rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.NotFound("Review")
	}
	if err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Review")
	}
	return nil
}

func (r *Repo) ListReviews(ctx context.Context, spotIDs []int64) ([]domain.Review, error) {
	if len(spotIDs) == 0 {
		return nil, nil
	}
	ph, args := inClause(spotIDs)
	rows, err := r.db.QueryContext(ctx, getReviewSQL+" WHERE spot_id IN ("+ph+") ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.SpotID, &rv.UserID, &rv.Review, &rv.Stars, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
