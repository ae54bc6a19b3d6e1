// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Account is a vendor ("vender") registered on the platform. It carries the login identity,
// the session slot and the public business profile.
type Account struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"` // Lower-cased, unique.
	Email    string    `json:"email"`    // Lower-cased, unique.
	FullName string    `json:"fullName"`

	PasswordHash string  `json:"-"` // bcrypt digest, never the plaintext.
	RefreshToken *string `json:"-"` // The only refresh token accepted for this account; nil when logged out.

	MobileNo     string     `json:"mobileNo"`
	AltMobileNo  string     `json:"altMobileNo,omitempty"`
	BusinessName string     `json:"businessName,omitempty"`
	OwnerName    string     `json:"ownerName,omitempty"`
	Address      string     `json:"address,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	FCMToken     string     `json:"fcmToken,omitempty"`
	CategoryID   *uuid.UUID `json:"category,omitempty"`
	Avatar       string     `json:"avatar"`
	CoverImage   string     `json:"coverImage"`
	Status       bool       `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns a copy of the account without its secrets.
func (a *Account) Sanitized() *Account {
	if a == nil {
		return nil
	}

	clone := *a
	clone.PasswordHash = ""
	clone.RefreshToken = nil

	return &clone
}

// HasActiveSession reports whether a refresh token is currently stored.
func (a *Account) HasActiveSession() bool {
	return a.RefreshToken != nil && *a.RefreshToken != ""
}

// Location returns the account's coordinates as a point, if both are set.
func (a *Account) Location() (orb.Point, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return orb.Point{}, false
	}

	return orb.Point{*a.Longitude, *a.Latitude}, true
}

// ProfileUpdate holds the editable business profile of an account.
type ProfileUpdate struct {
	BusinessName string
	OwnerName    string
	MobileNo     string
	AltMobileNo  string
	CategoryID   uuid.UUID
	Address      string
	Location     orb.Point // [longitude, latitude]
	FCMToken     string
}
