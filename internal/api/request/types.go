package request

// Register is the request body for POST /api/v1/register
type Register struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Login is the request body for POST /api/v1/login
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Guess is the request body for POST /api/v1/game/guess
type Guess struct {
	Guess string `json:"guess"`
}
