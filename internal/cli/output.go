package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSessionResult(v)
	case User:
		o.printUser(v)
	case Round:
		o.printRound(v)
	case GuessResult:
		o.printGuessResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionResult response type (matches API)
type SessionResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// User response type
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Round response type
type Round struct {
	Active   bool `json:"active"`
	Attempts int  `json:"attempts"`
}

// GuessResult response type
type GuessResult struct {
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSessionResult(s SessionResult) {
	fmt.Printf("Logged in as: %s\n", s.Username)
	fmt.Printf("Token: %s\n", s.Token)
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (#%d)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
}

func (o *Output) printRound(r Round) {
	if !r.Active {
		fmt.Println("No round in progress")
		return
	}
	fmt.Println("Round in progress")
	fmt.Printf("Attempts: %d\n", r.Attempts)
}

func (o *Output) printGuessResult(g GuessResult) {
	switch g.Outcome {
	case "too_low":
		fmt.Println("Too low!")
	case "too_high":
		fmt.Println("Too high!")
	case "correct":
		fmt.Printf("Correct! You got it in %d attempts.\n", g.Attempts)
		return
	}
	fmt.Printf("Attempts: %d\n", g.Attempts)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
