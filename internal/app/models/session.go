package models

import "time"

// CalendarToken is the calendar-scoped grant obtained through the identity
// provider's incremental consent flow. It lives on the session, never in a
// package-level variable, so expiry travels with the value.
type CalendarToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (t *CalendarToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

type Session struct {
	SessionID string         `json:"session_id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Calendar  *CalendarToken `json:"calendar,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
}

func (s *Session) IsPatient() bool {
	return s.Role == "patient"
}

func (s *Session) IsDoctor() bool {
	return s.Role == "doctor"
}

func (s *Session) IsNotPatient() bool {
	return !s.IsPatient()
}

// HasVerifiedEmail reports whether the identity provider handed us an email
// for this login. Booking requires it.
func (s *Session) HasVerifiedEmail() bool {
	return s.Email != ""
}
