package response

import "github.com/nkessler/guessgame-go/internal/model"

// User is the API representation of a user account
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUser converts a model user
func NewUser(user *model.User) User {
	return User{
		ID:       int64(user.ID),
		Username: user.Username,
		Email:    user.Email,
	}
}

// Session is returned after login and registration
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Round describes the state of the caller's guessing round
type Round struct {
	Active   bool `json:"active"`
	Attempts int  `json:"attempts"`
}

// GuessResult is returned after evaluating a guess
type GuessResult struct {
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
