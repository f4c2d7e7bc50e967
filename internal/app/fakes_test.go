package app_test

import (
	"context"
	"sort"
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/app"
	"github.com/etczermerivil/Rgb-bnb/internal/availability"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

// ---- fakes ----

// fakeStore is an in-memory domain.Store honoring the same contracts as
// the MySQL repo: conflict-checked booking writes, cascade spot delete,
// duplicate-review rejection.
type fakeStore struct {
	users    map[int64]domain.User
	spots    map[int64]domain.Spot
	images   []domain.SpotImage
	reviews  []domain.Review
	bookings map[int64]domain.Booking
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[int64]domain.User{},
		spots:    map[int64]domain.Spot{},
		bookings: map[int64]domain.Booking{},
	}
}

func (f *fakeStore) id() int64 { f.nextID++; return f.nextID }

func (f *fakeStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	for _, e := range f.users {
		if e.Email == u.Email || e.Username == u.Username {
			return domain.User{}, domain.ErrUserExists
		}
	}
	u.ID = f.id()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.NotFound("User")
	}
	return u, nil
}

func (f *fakeStore) GetUsers(ctx context.Context, ids []int64) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) GetUserByCredential(ctx context.Context, cred string) (domain.User, error) {
	for _, u := range f.users {
		if u.Username == cred || u.Email == cred {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFound("User")
}

func (f *fakeStore) CreateSpot(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	s.ID = f.id()
	f.spots[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetSpot(ctx context.Context, id int64) (domain.Spot, error) {
	s, ok := f.spots[id]
	if !ok {
		return domain.Spot{}, domain.NotFound("Spot")
	}
	return s, nil
}

func (f *fakeStore) GetSpots(ctx context.Context, ids []int64) ([]domain.Spot, error) {
	var out []domain.Spot
	for _, id := range ids {
		if s, ok := f.spots[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSpots(ctx context.Context, q domain.SpotFilter) ([]domain.Spot, error) {
	ids := make([]int64, 0, len(f.spots))
	for id := range f.spots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var all []domain.Spot
	for _, id := range ids {
		s := f.spots[id]
		if q.MinLat != nil && s.Lat < *q.MinLat {
			continue
		}
		if q.MaxLat != nil && s.Lat > *q.MaxLat {
			continue
		}
		if q.MinLng != nil && s.Lng < *q.MinLng {
			continue
		}
		if q.MaxLng != nil && s.Lng > *q.MaxLng {
			continue
		}
		if q.MinPrice != nil && s.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && s.Price > *q.MaxPrice {
			continue
		}
		all = append(all, s)
	}
	off := (q.Page - 1) * q.Size
	if off >= len(all) {
		return nil, nil
	}
	end := off + q.Size
	if end > len(all) {
		end = len(all)
	}
	return all[off:end], nil
}

func (f *fakeStore) ListSpotsByOwner(ctx context.Context, ownerID int64) ([]domain.Spot, error) {
	var out []domain.Spot
	for _, s := range f.spots {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateSpot(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	if _, ok := f.spots[s.ID]; !ok {
		return domain.Spot{}, domain.NotFound("Spot")
	}
	f.spots[s.ID] = s
	return s, nil
}

func (f *fakeStore) DeleteSpot(ctx context.Context, id int64) error {
	if _, ok := f.spots[id]; !ok {
		return domain.NotFound("Spot")
	}
	delete(f.spots, id)
	var imgs []domain.SpotImage
	for _, img := range f.images {
		if img.SpotID != id {
			imgs = append(imgs, img)
		}
	}
	f.images = imgs
	var revs []domain.Review
	for _, r := range f.reviews {
		if r.SpotID != id {
			revs = append(revs, r)
		}
	}
	f.reviews = revs
	for bid, b := range f.bookings {
		if b.SpotID == id {
			delete(f.bookings, bid)
		}
	}
	return nil
}

func (f *fakeStore) AddSpotImage(ctx context.Context, img domain.SpotImage) (domain.SpotImage, error) {
	img.ID = f.id()
	f.images = append(f.images, img)
	return img, nil
}

func (f *fakeStore) ListSpotImages(ctx context.Context, spotIDs []int64) ([]domain.SpotImage, error) {
	want := map[int64]bool{}
	for _, id := range spotIDs {
		want[id] = true
	}
	var out []domain.SpotImage
	for _, img := range f.images {
		if want[img.SpotID] {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CreateReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	for _, e := range f.reviews {
		if e.SpotID == r.SpotID && e.UserID == r.UserID {
			return domain.Review{}, domain.ErrReviewExists
		}
	}
	r.ID = f.id()
	f.reviews = append(f.reviews, r)
	return r, nil
}

func (f *fakeStore) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Review{}, domain.NotFound("Review")
}

func (f *fakeStore) DeleteReview(ctx context.Context, id int64) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("Review")
}

func (f *fakeStore) ListReviews(ctx context.Context, spotIDs []int64) ([]domain.Review, error) {
	want := map[int64]bool{}
	for _, id := range spotIDs {
		want[id] = true
	}
	var out []domain.Review
	for _, r := range f.reviews {
		if want[r.SpotID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) spanList(spotID int64) []domain.BookingSpan {
	var spans []domain.BookingSpan
	for _, b := range f.bookings {
		if b.SpotID == spotID {
			spans = append(spans, b.Span())
		}
	}
	return spans
}

func (f *fakeStore) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if d := availability.Check(b.StartDate, b.EndDate, f.spanList(b.SpotID), 0); !d.OK() {
		return domain.Booking{}, d.Err()
	}
	b.ID = f.id()
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeStore) UpdateBooking(ctx context.Context, id int64, start, end time.Time) (domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.NotFound("Booking")
	}
	if d := availability.Check(start, end, f.spanList(b.SpotID), id); !d.OK() {
		return domain.Booking{}, d.Err()
	}
	b.StartDate, b.EndDate = start, end
	f.bookings[id] = b
	return b, nil
}

func (f *fakeStore) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.NotFound("Booking")
	}
	return b, nil
}

func (f *fakeStore) DeleteBooking(ctx context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return domain.NotFound("Booking")
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeStore) ListSpotBookings(ctx context.Context, spotID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.SpotID == spotID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ domain.Store = (*fakeStore)(nil)

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*app.SpotDetail); ok {
		*d = v.(app.SpotDetail)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- shared helpers ----

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }
