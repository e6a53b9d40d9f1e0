package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/storage"
)

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// SaveSession inserts or replaces the session record. Expiry is enforced by
// the auth service against ExpiresAt, so the ttl argument is unused here.
func (s *Storage) SaveSession(ctx context.Context, session *model.Session, _ time.Duration) error {
	query := `
		INSERT INTO sessions (token, user_id, username, target_number, attempts, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			target_number = excluded.target_number,
			attempts = excluded.attempts,
			expires_at = excluded.expires_at
	`

	var userID any
	if session.UserID != nil {
		userID = int64(*session.UserID)
	}
	var target any
	if session.TargetNumber != nil {
		target = int64(*session.TargetNumber)
	}

	_, err := s.db.ExecContext(ctx, query,
		session.Token,
		userID,
		session.Username,
		target,
		session.Attempts,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by token
func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	query := `
		SELECT token, user_id, username, target_number, attempts, created_at, expires_at
		FROM sessions
		WHERE token = ?
	`

	session := &model.Session{}
	var userID sql.NullInt64
	var target sql.NullInt64

	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&userID,
		&session.Username,
		&target,
		&session.Attempts,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if userID.Valid {
		id := model.UserID(userID.Int64)
		session.UserID = &id
	}
	if target.Valid {
		t := int(target.Int64)
		session.TargetNumber = &t
	}

	return session, nil
}

// DeleteSession removes a session by token
func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
