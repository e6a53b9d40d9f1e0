package model

import "time"

// UserID uniquely identifies a user; assigned by storage at creation
type UserID int64

// User represents a registered account
type User struct {
	ID             UserID    `json:"id"`
	Username       string    `json:"username"` // unique, immutable after creation
	Email          string    `json:"email"`    // unique
	PasswordDigest []byte    `json:"password_digest"`
	CreatedAt      time.Time `json:"created_at"`
}

// Principal is the authenticated identity derived from a valid session
type Principal struct {
	UserID   UserID
	Username string
}
