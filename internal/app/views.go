package app

import (
	"strconv"
	"time"

	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

// DateOnly renders and parses booking dates as YYYY-MM-DD.
type DateOnly time.Time

func (d DateOnly) Time() time.Time { return time.Time(d) }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = DateOnly(t)
	return nil
}

// Rating renders with exactly one decimal place ("4.0"). The list view
// intentionally uses the raw float instead.
type Rating float64

func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 1, 64)), nil
}

type SpotListItem struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	AvgRating    *float64  `json:"avgRating"`
	PreviewImage *string   `json:"previewImage"`
}

type SpotsPage struct {
	Spots []SpotListItem `json:"Spots"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type OwnedSpots struct {
	Spots []SpotListItem `json:"Spots"`
}

type SpotDetail struct {
	ID            int64              `json:"id"`
	OwnerID       int64              `json:"ownerId"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	Country       string             `json:"country"`
	Lat           float64            `json:"lat"`
	Lng           float64            `json:"lng"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Price         float64            `json:"price"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	NumReviews    int                `json:"numReviews"`
	AvgStarRating *Rating            `json:"avgStarRating"`
	SpotImages    []domain.SpotImage `json:"SpotImages"`
	Owner         domain.UserRef     `json:"Owner"`
}

type SpotView struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewSpotView(s domain.Spot) SpotView {
	return SpotView{
		ID: s.ID, OwnerID: s.OwnerID,
		Address: s.Address, City: s.City, State: s.State, Country: s.Country,
		Lat: s.Lat, Lng: s.Lng,
		Name: s.Name, Description: s.Description, Price: s.Price,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

type BookingView struct {
	ID        int64     `json:"id"`
	SpotID    int64     `json:"spotId"`
	UserID    int64     `json:"userId"`
	StartDate DateOnly  `json:"startDate"`
	EndDate   DateOnly  `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewBookingView(b domain.Booking) BookingView {
	return BookingView{
		ID: b.ID, SpotID: b.SpotID, UserID: b.UserID,
		StartDate: DateOnly(b.StartDate), EndDate: DateOnly(b.EndDate),
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

// SpotBookingItem serves both audiences of GET /spots/:id/bookings: the
// spot owner sees the full record with the guest, everyone else only the
// reserved dates.
type SpotBookingItem struct {
	User      *domain.UserRef `json:"User,omitempty"`
	ID        *int64          `json:"id,omitempty"`
	SpotID    int64           `json:"spotId"`
	UserID    *int64          `json:"userId,omitempty"`
	StartDate DateOnly        `json:"startDate"`
	EndDate   DateOnly        `json:"endDate"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

type SpotBookings struct {
	Bookings []SpotBookingItem `json:"Bookings"`
}

// BookingSpotRef is the spot summary attached to a guest's own bookings.
type BookingSpotRef struct {
	ID           int64   `json:"id"`
	OwnerID      int64   `json:"ownerId"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PreviewImage *string `json:"previewImage"`
}

type UserBookingItem struct {
	ID        int64          `json:"id"`
	SpotID    int64          `json:"spotId"`
	Spot      BookingSpotRef `json:"Spot"`
	UserID    int64          `json:"userId"`
	StartDate DateOnly       `json:"startDate"`
	EndDate   DateOnly       `json:"endDate"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type UserBookings struct {
	Bookings []UserBookingItem `json:"Bookings"`
}

type ReviewView struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	SpotID    int64           `json:"spotId"`
	Review    string          `json:"review"`
	Stars     int             `json:"stars"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	User      *domain.UserRef `json:"User,omitempty"`
}

func NewReviewView(r domain.Review) ReviewView {
	return ReviewView{
		ID: r.ID, UserID: r.UserID, SpotID: r.SpotID,
		Review: r.Review, Stars: r.Stars,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type SpotReviews struct {
	Reviews []ReviewView `json:"Reviews"`
}
