package domain

import "time"

// Credential is the stored Strava OAuth token. The system is single-user, so
// at most one credential exists in storage at a time; it is always replaced
// wholesale, never partially updated.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // epoch seconds
}

// Expired reports whether the access token has expired as of now.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt <= now.Unix()
}
