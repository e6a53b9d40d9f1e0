package credential

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nkessler/guessgame-go/internal/dependencies/clock"
	"github.com/nkessler/guessgame-go/internal/mailer"
	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/storage"
)

// Errors
var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Service handles user registration and credential verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	mailer  mailer.Mailer
	logger  *slog.Logger
}

// New creates a new credential service
func New(storage storage.Storage, clock clock.Clock, mailer mailer.Mailer, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		mailer:  mailer,
		logger:  logger,
	}
}

// Register validates the submitted form fields, creates the user, and sends
// a welcome email. Registration succeeds even if the email cannot be sent.
func (s *Service) Register(ctx context.Context, username, email, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" || confirm == "" {
		return nil, ErrMissingFields
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	// Pre-checks give a friendly error before the insert; the storage
	// layer's uniqueness constraints remain the authoritative check.
	if _, err := s.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, model.ErrDuplicateUser
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, model.ErrDuplicateUser
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordDigest: digest,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", int64(user.ID)),
		slog.String("username", user.Username),
	)

	if err := s.mailer.SendWelcome(ctx, user.Email, user.Username); err != nil {
		s.logger.Warn("welcome email not sent",
			slog.Int64("user_id", int64(user.ID)),
			slog.String("error", err.Error()),
		)
	}

	return user, nil
}

// Verify checks a username/password pair against the stored digest.
// It returns the user on success and model.ErrUserNotFound or
// bcrypt's mismatch error otherwise; callers map both to a single
// invalid-credentials response so the two cases are indistinguishable.
func (s *Service) Verify(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordDigest, []byte(password)); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername retrieves a user by username
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.storage.GetUserByUsername(ctx, username)
}
