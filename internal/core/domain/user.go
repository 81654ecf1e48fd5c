package domain

import (
	"math"
	"time"
)

// Role distinguishes job posters from bidders.
type Role string

const (
	RoleSeeker   Role = "pencari_jasa"
	RoleProvider Role = "penyedia_jasa"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleProvider
}

// Location is a WGS84 point.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// DefaultLocation is used when a registration omits a location (Jakarta).
var DefaultLocation = Location{Lat: -6.2088, Lng: 106.8456}

// User models a registered marketplace participant.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Role          Role      `json:"role"`
	Location      Location  `json:"location"`
	Rating        float64   `json:"rating"`
	TotalRatings  int       `json:"total_ratings"`
	WalletBalance int64     `json:"wallet_balance"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// MeanRating returns sum/count rounded to one decimal place, or 0 when count is 0.
func MeanRating(sum int64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
