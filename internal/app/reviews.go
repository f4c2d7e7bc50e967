package app

import (
	"context"
	"strings"

	"github.com/etczermerivil/Rgb-bnb/internal/authz"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

type ReviewService struct {
	reviews domain.ReviewStore
	spots   domain.SpotStore
	users   domain.UserStore
	cache   domain.Cache
}

func NewReviewService(reviews domain.ReviewStore, spots domain.SpotStore, users domain.UserStore, cache domain.Cache) *ReviewService {
	return &ReviewService{reviews: reviews, spots: spots, users: users, cache: cache}
}

type ReviewInput struct {
	Review string `json:"review"`
	Stars  *int   `json:"stars"`
}

func (in ReviewInput) validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(in.Review) == "" {
		errs["review"] = "Review text is required"
	}
	if in.Stars == nil || *in.Stars < 1 || *in.Stars > 5 {
		errs["stars"] = "Stars must be an integer from 1 to 5"
	}
	if len(errs) > 0 {
		return domain.NewValidation(errs)
	}
	return nil
}

func (s *ReviewService) ListForSpot(ctx context.Context, spotID int64) (SpotReviews, error) {
	if _, err := s.spots.GetSpot(ctx, spotID); err != nil {
		return SpotReviews{}, err
	}
	reviews, err := s.reviews.ListReviews(ctx, []int64{spotID})
	if err != nil {
		return SpotReviews{}, err
	}

	ids := make([]int64, 0, len(reviews))
	seen := map[int64]bool{}
	for _, r := range reviews {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	authors := map[int64]domain.UserRef{}
	if len(ids) > 0 {
		users, err := s.users.GetUsers(ctx, ids)
		if err != nil {
			return SpotReviews{}, err
		}
		for _, u := range users {
			authors[u.ID] = u.Ref()
		}
	}

	out := SpotReviews{Reviews: make([]ReviewView, 0, len(reviews))}
	for _, r := range reviews {
		v := NewReviewView(r)
		if a, ok := authors[r.UserID]; ok {
			a := a
			v.User = &a
		}
		out.Reviews = append(out.Reviews, v)
	}
	return out, nil
}

func (s *ReviewService) Create(ctx context.Context, spotID, userID int64, in ReviewInput) (domain.Review, error) {
	if err := in.validate(); err != nil {
		return domain.Review{}, err
	}
	if _, err := s.spots.GetSpot(ctx, spotID); err != nil {
		return domain.Review{}, err
	}
	r, err := s.reviews.CreateReview(ctx, domain.Review{
		SpotID: spotID, UserID: userID, Review: in.Review, Stars: *in.Stars,
	})
	if err != nil {
		return domain.Review{}, err
	}
	// avgRating and numReviews on the cached detail just changed
	_ = s.cache.Del(ctx, spotCacheKey(spotID))
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewID, userID int64) error {
	r, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if !authz.CanManageReview(r, userID) {
		return domain.ErrForbidden
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, spotCacheKey(r.SpotID))
	return nil
}
