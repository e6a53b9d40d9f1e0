package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nkessler/guessgame-go/internal/dependencies/clock"
	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service manages sessions and login state
type Service struct {
	storage     storage.Storage
	credentials *credential.Service
	clock       clock.Clock
	logger      *slog.Logger

	sessionDuration time.Duration

	// Per-token locks serialising read-modify-write cycles on a session.
	// Tokens are never reused, so entries are left to accumulate for the
	// process lifetime; they are a mutex each.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new auth service
func New(storage storage.Storage, credentials *credential.Service, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		credentials:     credentials,
		clock:           clock,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
		locks:           make(map[string]*sync.Mutex),
	}
}

// StartSession creates a fresh anonymous session
func (s *Service) StartSession(ctx context.Context) (*model.Session, error) {
	now := s.clock.Now()
	session := &model.Session{
		Token:     generateToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}
	if err := s.storage.SaveSession(ctx, session, s.sessionDuration); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by token, treating expired sessions as
// invalid and removing them
func (s *Service) GetSession(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if s.clock.Now().After(session.ExpiresAt) {
		if err := s.storage.DeleteSession(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", slog.String("error", err.Error()))
		}
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Login verifies the credentials and binds the user to the session.
// Game fields are not touched; only starting a round overwrites them.
func (s *Service) Login(ctx context.Context, token, username, password string) (*model.Session, error) {
	user, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		// Unknown user and wrong password collapse into one error so the
		// response doesn't reveal which usernames exist
		if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	var result *model.Session
	err = s.UpdateSession(ctx, token, func(session *model.Session) error {
		session.UserID = &user.ID
		session.Username = user.Username
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		slog.Int64("user_id", int64(user.ID)),
		slog.String("username", user.Username),
	)

	return result, nil
}

// Logout unbinds the user from the session. Logging out a session that is
// already anonymous is a no-op. Round fields go stale rather than being
// cleared; they stay until a new round overwrites them.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.UpdateSession(ctx, token, func(session *model.Session) error {
		session.UserID = nil
		session.Username = ""
		return nil
	})
	if errors.Is(err, ErrInvalidSession) {
		return nil
	}
	return err
}

// RequireAuthenticated returns the principal bound to the session, or
// ErrNotAuthenticated for an anonymous session
func (s *Service) RequireAuthenticated(session *model.Session) (model.Principal, error) {
	principal, ok := session.Principal()
	if !ok {
		return model.Principal{}, ErrNotAuthenticated
	}
	return principal, nil
}

// UpdateSession applies fn to the session under the token's lock and saves
// the result. If fn returns an error the session is not saved and the error
// is returned unchanged.
func (s *Service) UpdateSession(ctx context.Context, token string, fn func(session *model.Session) error) error {
	lock := s.lockFor(token)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.GetSession(ctx, token)
	if err != nil {
		return err
	}

	if err := fn(session); err != nil {
		return err
	}

	ttl := session.ExpiresAt.Sub(s.clock.Now())
	return s.storage.SaveSession(ctx, session, ttl)
}

func (s *Service) lockFor(token string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[token]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[token] = lock
	}
	return lock
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}