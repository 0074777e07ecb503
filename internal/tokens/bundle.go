package tokens

import (
	"time"
)

// Bundle is a user's OAuth token pair plus expiry and marketplace region.
// It is serialized as JSON into the durable store, so the field names form
// part of the storage format.
type Bundle struct {
	// AccessToken is the short-lived LWA access token.
	AccessToken string `json:"accessToken"`

	// RefreshToken is the long-lived LWA refresh token. A bundle without
	// a refresh token is never considered authenticated.
	RefreshToken string `json:"refreshToken"`

	// ExpiresOn is the absolute access-token expiry in milliseconds since
	// the Unix epoch.
	ExpiresOn int64 `json:"expiresOn"`

	// Region is the marketplace region tag the seller authorized in
	// (e.g. "NA", "EU", "FE").
	Region string `json:"region"`
}

// ExpiredAt reports whether the access token has expired at the given time.
func (b *Bundle) ExpiredAt(now time.Time) bool {
	return b.ExpiresOn <= now.UnixMilli()
}

// Authenticated reports whether the bundle can ever produce a valid access
// token, i.e. it carries a refresh token.
func (b *Bundle) Authenticated() bool {
	return b != nil && b.RefreshToken != ""
}

// ExpiryTime returns the access-token expiry as a time.Time.
func (b *Bundle) ExpiryTime() time.Time {
	return time.UnixMilli(b.ExpiresOn)
}
