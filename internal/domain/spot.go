package domain

import "time"

type Spot struct {
	ID          int64
	OwnerID     int64
	Address     string
	City        string
	State       string
	Country     string
	Lat         float64
	Lng         float64
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SpotImage struct {
	ID      int64  `json:"id"`
	SpotID  int64  `json:"spotId"`
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// SpotFilter is the validated listing predicate. Nil bounds are absent;
// present bounds compose conjunctively.
type SpotFilter struct {
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Size     int
}
