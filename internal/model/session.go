package model

import "time"

// Session is the per-client state container surviving across requests.
// A session with no UserID is equivalent to "logged out"; the game fields
// are only meaningful while UserID is present.
type Session struct {
	Token        string    `json:"token"`
	UserID       *UserID   `json:"user_id,omitempty"`
	Username     string    `json:"username,omitempty"`
	TargetNumber *int      `json:"target_number,omitempty"`
	Attempts     int       `json:"attempts"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Authenticated reports whether the session is bound to a user
func (s *Session) Authenticated() bool {
	return s.UserID != nil
}

// RoundActive reports whether a guessing round is in progress
func (s *Session) RoundActive() bool {
	return s.TargetNumber != nil
}

// Principal returns the authenticated identity bound to the session.
// The second return is false for a logged-out session.
func (s *Session) Principal() (Principal, bool) {
	if s.UserID == nil {
		return Principal{}, false
	}
	return Principal{UserID: *s.UserID, Username: s.Username}, true
}
