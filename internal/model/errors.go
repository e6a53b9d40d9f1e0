package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser deliberately does not reveal which of username or
	// email collided
	ErrDuplicateUser = errors.New("username or email already registered")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
