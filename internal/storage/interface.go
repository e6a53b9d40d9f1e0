package storage

import (
	"context"
	"time"

	"github.com/nkessler/guessgame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations.
	// CreateUser assigns the user's ID and is the authoritative
	// race-breaker for username/email uniqueness: it returns
	// model.ErrDuplicateUser when either is already taken, regardless of
	// any pre-check the caller performed.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Close releases any underlying resources
	Close() error
}
