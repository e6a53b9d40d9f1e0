package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/game"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: register, log in, and play a round to completion
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Step 1: Register an account
	user, err := s.app.CredentialService.Register(s.ctx, "alice", "alice@example.com", "hunter2", "hunter2")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)

	// Step 2: Start a browser session and log in
	session, err := s.app.AuthService.StartSession(s.ctx)
	s.Require().NoError(err)
	s.False(session.Authenticated())

	loggedIn, err := s.app.AuthService.Login(s.ctx, session.Token, "alice", "hunter2")
	s.Require().NoError(err)
	s.True(loggedIn.Authenticated())

	// Step 3: Start a round with a known target of 42
	s.app.MockRandom.QueueIntn(41)
	s.Require().NoError(s.app.GameService.StartRound(s.ctx, session.Token))

	// Step 4: Narrow in on the target
	result, err := s.app.GameService.Guess(s.ctx, session.Token, "50")
	s.Require().NoError(err)
	s.Equal(game.TooHigh, result.Outcome)
	s.Equal(1, result.Attempts)

	result, err = s.app.GameService.Guess(s.ctx, session.Token, "25")
	s.Require().NoError(err)
	s.Equal(game.TooLow, result.Outcome)
	s.Equal(2, result.Attempts)

	// Step 5: Win; the next round's target is drawn immediately
	s.app.MockRandom.QueueIntn(10)
	result, err = s.app.GameService.Guess(s.ctx, session.Token, "42")
	s.Require().NoError(err)
	s.Equal(game.Correct, result.Outcome)
	s.Equal(3, result.Attempts)

	current, err := s.app.AuthService.GetSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Zero(current.Attempts)
	s.Require().NotNil(current.TargetNumber)
	s.Equal(11, *current.TargetNumber)

	// Step 6: Log out; the round fields stay behind but the guard fails
	s.Require().NoError(s.app.AuthService.Logout(s.ctx, session.Token))
	current, err = s.app.AuthService.GetSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.False(current.Authenticated())
	s.Require().NotNil(current.TargetNumber)
	s.Equal(11, *current.TargetNumber)

	_, err = s.app.GameService.Guess(s.ctx, session.Token, "11")
	s.ErrorIs(err, auth.ErrNotAuthenticated)
}

// Test: sessions expire under the mock clock
func (s *IntegrationSuite) TestSessionExpiry() {
	session, err := s.app.AuthService.StartSession(s.ctx)
	s.Require().NoError(err)

	s.app.MockClock.Advance(25 * time.Hour)

	_, err = s.app.AuthService.GetSession(s.ctx, session.Token)
	s.ErrorIs(err, auth.ErrInvalidSession)
}

// Test: two sessions for the same user hold independent rounds
func (s *IntegrationSuite) TestIndependentSessions() {
	_, err := s.app.CredentialService.Register(s.ctx, "alice", "alice@example.com", "hunter2", "hunter2")
	s.Require().NoError(err)

	first, err := s.app.AuthService.StartSession(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.AuthService.Login(s.ctx, first.Token, "alice", "hunter2")
	s.Require().NoError(err)

	second, err := s.app.AuthService.StartSession(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.AuthService.Login(s.ctx, second.Token, "alice", "hunter2")
	s.Require().NoError(err)

	s.app.MockRandom.QueueIntn(41)
	s.Require().NoError(s.app.GameService.StartRound(s.ctx, first.Token))

	_, err = s.app.GameService.Guess(s.ctx, first.Token, "10")
	s.Require().NoError(err)

	// The second session has no round of its own yet
	_, err = s.app.GameService.Guess(s.ctx, second.Token, "10")
	s.ErrorIs(err, game.ErrNoActiveRound)
}
