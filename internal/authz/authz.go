// Package authz holds the ownership decision rules. How a denial is
// reported (404 vs 403) is per endpoint and decided by the caller.
package authz

import "github.com/etczermerivil/Rgb-bnb/internal/domain"

// CanManageSpot reports whether userID may mutate the spot or attach
// images to it.
func CanManageSpot(s domain.Spot, userID int64) bool { return s.OwnerID == userID }

// CanManageBooking reports whether userID may modify or cancel the
// booking (the guest who holds it).
func CanManageBooking(b domain.Booking, userID int64) bool { return b.UserID == userID }

// CanManageReview reports whether userID may delete the review.
func CanManageReview(r domain.Review, userID int64) bool { return r.UserID == userID }
