package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nkessler/guessgame-go/internal/dependencies/random"
	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/auth"
)

const (
	minTarget = 1
	maxTarget = 100
)

// ErrNoActiveRound is returned when a guess arrives with no round in progress
var ErrNoActiveRound = errors.New("no round in progress")

// InvalidGuessError reports a guess that could not be parsed as an integer.
// The unparseable input does not consume an attempt.
type InvalidGuessError struct {
	Input    string
	Attempts int
}

func (e *InvalidGuessError) Error() string {
	return fmt.Sprintf("invalid guess %q: not a whole number", e.Input)
}

// Outcome classifies a guess against the target
type Outcome int

const (
	TooLow Outcome = iota
	TooHigh
	Correct
)

func (o Outcome) String() string {
	switch o {
	case TooLow:
		return "too_low"
	case TooHigh:
		return "too_high"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Result is the evaluation of a single guess
type Result struct {
	Outcome  Outcome
	Attempts int
}

// Service runs the number guessing game over session state
type Service struct {
	auth   *auth.Service
	random random.Random
	logger *slog.Logger
}

// New creates a new game service
func New(auth *auth.Service, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		auth:   auth,
		random: random,
		logger: logger,
	}
}

// Session returns the current session state for the token
func (s *Service) Session(ctx context.Context, token string) (*model.Session, error) {
	return s.auth.GetSession(ctx, token)
}

// StartRound begins a fresh round for the session, overwriting any round
// already in progress. Callers that want to keep an in-progress round
// check RoundActive first.
func (s *Service) StartRound(ctx context.Context, token string) error {
	return s.auth.UpdateSession(ctx, token, func(session *model.Session) error {
		if _, err := s.auth.RequireAuthenticated(session); err != nil {
			return err
		}
		target := s.random.Intn(maxTarget-minTarget+1) + minTarget
		session.TargetNumber = &target
		session.Attempts = 0

		s.logger.Info("round started",
			slog.String("username", session.Username),
		)
		return nil
	})
}

// Guess evaluates raw input against the session's active round. Each parsed
// guess consumes an attempt; a correct guess immediately starts a fresh
// round with a new target and a reset attempt count.
func (s *Service) Guess(ctx context.Context, token string, raw string) (*Result, error) {
	var result *Result
	err := s.auth.UpdateSession(ctx, token, func(session *model.Session) error {
		if _, err := s.auth.RequireAuthenticated(session); err != nil {
			return err
		}
		if !session.RoundActive() {
			return ErrNoActiveRound
		}

		guess, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return &InvalidGuessError{Input: raw, Attempts: session.Attempts}
		}

		session.Attempts++
		target := *session.TargetNumber

		switch {
		case guess < target:
			result = &Result{Outcome: TooLow, Attempts: session.Attempts}
		case guess > target:
			result = &Result{Outcome: TooHigh, Attempts: session.Attempts}
		default:
			result = &Result{Outcome: Correct, Attempts: session.Attempts}

			s.logger.Info("round won",
				slog.String("username", session.Username),
				slog.Int("attempts", session.Attempts),
			)

			// Redraw immediately so the next page view shows a new round
			next := s.random.Intn(maxTarget-minTarget+1) + minTarget
			session.TargetNumber = &next
			session.Attempts = 0
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
