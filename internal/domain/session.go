package domain

import "time"

// Session is the authenticated identity state held by the session store.
// The token is opaque to callers; a JWT access token derived from it is
// what travels on requests.
type Session struct {
	Token     string
	UserID    string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
