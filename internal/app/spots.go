package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/authz"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

type SpotService struct {
	spots    domain.SpotStore
	reviews  domain.ReviewStore
	users    domain.UserStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSpotService(spots domain.SpotStore, reviews domain.ReviewStore, users domain.UserStore, cache domain.Cache, ttl time.Duration) *SpotService {
	return &SpotService{spots: spots, reviews: reviews, users: users, cache: cache, cacheTTL: ttl}
}

type SpotInput struct {
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func (in SpotInput) validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(in.Address) == "" {
		errs["address"] = "Street address is required"
	}
	if strings.TrimSpace(in.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(in.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(in.Country) == "" {
		errs["country"] = "Country is required"
	}
	if in.Lat == nil || *in.Lat < -90 || *in.Lat > 90 {
		errs["lat"] = "Latitude must be within -90 and 90"
	}
	if in.Lng == nil || *in.Lng < -180 || *in.Lng > 180 {
		errs["lng"] = "Longitude must be within -180 and 180"
	}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required"
	} else if len(in.Name) > 50 {
		errs["name"] = "Name must be less than 50 characters"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "Description is required"
	}
	if in.Price == nil || *in.Price <= 0 {
		errs["price"] = "Price per day must be a positive number"
	}
	if len(errs) > 0 {
		return domain.NewValidation(errs)
	}
	return nil
}

func spotCacheKey(id int64) string { return fmt.Sprintf("spot:%d", id) }

func (s *SpotService) List(ctx context.Context, f domain.SpotFilter) (SpotsPage, error) {
	spots, err := s.spots.ListSpots(ctx, f)
	if err != nil {
		return SpotsPage{}, err
	}
	items, err := s.decorate(ctx, spots)
	if err != nil {
		return SpotsPage{}, err
	}
	return SpotsPage{Spots: items, Page: f.Page, Size: f.Size}, nil
}

func (s *SpotService) ListOwned(ctx context.Context, ownerID int64) (OwnedSpots, error) {
	spots, err := s.spots.ListSpotsByOwner(ctx, ownerID)
	if err != nil {
		return OwnedSpots{}, err
	}
	items, err := s.decorate(ctx, spots)
	if err != nil {
		return OwnedSpots{}, err
	}
	return OwnedSpots{Spots: items}, nil
}

// decorate attaches the derived avgRating and previewImage to each spot.
// Related rows are fetched once for the whole batch and grouped here, not
// one query per spot.
func (s *SpotService) decorate(ctx context.Context, spots []domain.Spot) ([]SpotListItem, error) {
	items := make([]SpotListItem, 0, len(spots))
	if len(spots) == 0 {
		return items, nil
	}
	ids := spotIDs(spots)
	reviews, err := s.reviews.ListReviews(ctx, ids)
	if err != nil {
		return nil, err
	}
	images, err := s.spots.ListSpotImages(ctx, ids)
	if err != nil {
		return nil, err
	}
	bySpotReviews := groupReviews(reviews)
	bySpotImages := groupImages(images)

	for _, sp := range spots {
		items = append(items, SpotListItem{
			ID: sp.ID, OwnerID: sp.OwnerID,
			Address: sp.Address, City: sp.City, State: sp.State, Country: sp.Country,
			Lat: sp.Lat, Lng: sp.Lng,
			Name: sp.Name, Description: sp.Description, Price: sp.Price,
			CreatedAt: sp.CreatedAt, UpdatedAt: sp.UpdatedAt,
			AvgRating:    averageRating(bySpotReviews[sp.ID]),
			PreviewImage: previewURL(bySpotImages[sp.ID]),
		})
	}
	return items, nil
}

func (s *SpotService) Get(ctx context.Context, id int64) (SpotDetail, error) {
	key := spotCacheKey(id)
	var cached SpotDetail
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	sp, err := s.spots.GetSpot(ctx, id)
	if err != nil {
		return SpotDetail{}, err
	}
	reviews, err := s.reviews.ListReviews(ctx, []int64{id})
	if err != nil {
		return SpotDetail{}, err
	}
	images, err := s.spots.ListSpotImages(ctx, []int64{id})
	if err != nil {
		return SpotDetail{}, err
	}
	owner, err := s.users.GetUser(ctx, sp.OwnerID)
	if err != nil {
		return SpotDetail{}, err
	}

	detail := SpotDetail{
		ID: sp.ID, OwnerID: sp.OwnerID,
		Address: sp.Address, City: sp.City, State: sp.State, Country: sp.Country,
		Lat: sp.Lat, Lng: sp.Lng,
		Name: sp.Name, Description: sp.Description, Price: sp.Price,
		CreatedAt: sp.CreatedAt, UpdatedAt: sp.UpdatedAt,
		NumReviews: len(reviews),
		SpotImages: images,
		Owner:      owner.Ref(),
	}
	if detail.SpotImages == nil {
		detail.SpotImages = []domain.SpotImage{}
	}
	if avg := averageRating(reviews); avg != nil {
		r := Rating(*avg)
		detail.AvgStarRating = &r
	}

	_ = s.cache.Set(ctx, key, detail, int(s.cacheTTL.Seconds()))
	return detail, nil
}

func (s *SpotService) Create(ctx context.Context, ownerID int64, in SpotInput) (domain.Spot, error) {
	if err := in.validate(); err != nil {
		return domain.Spot{}, err
	}
	return s.spots.CreateSpot(ctx, domain.Spot{
		OwnerID: ownerID,
		Address: in.Address, City: in.City, State: in.State, Country: in.Country,
		Lat: *in.Lat, Lng: *in.Lng,
		Name: in.Name, Description: in.Description, Price: *in.Price,
	})
}

func (s *SpotService) Update(ctx context.Context, id, userID int64, in SpotInput) (domain.Spot, error) {
	sp, err := s.spots.GetSpot(ctx, id)
	if err != nil {
		return domain.Spot{}, err
	}
	if !authz.CanManageSpot(sp, userID) {
		return domain.Spot{}, domain.ErrForbidden
	}
	if err := in.validate(); err != nil {
		return domain.Spot{}, err
	}
	sp.Address, sp.City, sp.State, sp.Country = in.Address, in.City, in.State, in.Country
	sp.Lat, sp.Lng = *in.Lat, *in.Lng
	sp.Name, sp.Description, sp.Price = in.Name, in.Description, *in.Price
	updated, err := s.spots.UpdateSpot(ctx, sp)
	if err != nil {
		return domain.Spot{}, err
	}
	_ = s.cache.Del(ctx, spotCacheKey(id))
	return updated, nil
}

// Delete cascades over the spot's images, reviews and bookings. A
// non-owner gets NotFound rather than Forbidden so a destructive request
// cannot probe for a spot's existence.
func (s *SpotService) Delete(ctx context.Context, id, userID int64) error {
	sp, err := s.spots.GetSpot(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManageSpot(sp, userID) {
		return domain.NotFound("Spot")
	}
	if err := s.spots.DeleteSpot(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, spotCacheKey(id))
	return nil
}

func (s *SpotService) AddImage(ctx context.Context, spotID, userID int64, url string, preview bool) (domain.SpotImage, error) {
	sp, err := s.spots.GetSpot(ctx, spotID)
	if err != nil {
		return domain.SpotImage{}, err
	}
	if !authz.CanManageSpot(sp, userID) {
		return domain.SpotImage{}, domain.ErrForbidden
	}
	if strings.TrimSpace(url) == "" {
		return domain.SpotImage{}, domain.NewValidation(map[string]string{"url": "Image url is required"})
	}
	img, err := s.spots.AddSpotImage(ctx, domain.SpotImage{SpotID: spotID, URL: url, Preview: preview})
	if err != nil {
		return domain.SpotImage{}, err
	}
	_ = s.cache.Del(ctx, spotCacheKey(spotID))
	return img, nil
}
