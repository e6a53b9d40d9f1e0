package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkessler/guessgame-go/internal/model"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func newTestUser(username, email string) *model.User {
	return &model.User{
		Username:       username,
		Email:          email,
		PasswordDigest: []byte("$2a$10$digest"),
		CreatedAt:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	alice := newTestUser("alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, alice))
	assert.Equal(t, model.UserID(1), alice.ID)

	bob := newTestUser("bob", "bob@example.com")
	require.NoError(t, s.CreateUser(ctx, bob))
	assert.Equal(t, model.UserID(2), bob.ID)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCreateUserDuplicate(t *testing.T) {
	tests := []struct {
		name string
		dup  *model.User
	}{
		{
			name: "duplicate username",
			dup:  newTestUser("alice", "other@example.com"),
		},
		{
			name: "duplicate email",
			dup:  newTestUser("other", "alice@example.com"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t)
			ctx := context.Background()

			require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))

			err := s.CreateUser(ctx, tt.dup)
			assert.ErrorIs(t, err, model.ErrDuplicateUser)

			count, err := s.CountUsers(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestGetUser(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	alice := newTestUser("alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, alice))

	byUsername, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byUsername.ID)
	assert.Equal(t, "alice@example.com", byUsername.Email)
	assert.Equal(t, alice.PasswordDigest, byUsername.PasswordDigest)

	byEmail, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", byEmail.Username)

	byID, err := s.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, model.UserID(99))
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestSaveAndGetSession(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := model.UserID(7)
	target := 42

	session := &model.Session{
		Token:        "sess_abc",
		UserID:       &userID,
		Username:     "alice",
		TargetNumber: &target,
		Attempts:     3,
		CreatedAt:    now,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	require.NoError(t, s.SaveSession(ctx, session, 24*time.Hour))

	got, err := s.GetSession(ctx, "sess_abc")
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
	assert.Equal(t, "alice", got.Username)
	require.NotNil(t, got.TargetNumber)
	assert.Equal(t, 42, *got.TargetNumber)
	assert.Equal(t, 3, got.Attempts)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))
}

func TestSaveSessionAnonymous(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := &model.Session{
		Token:     "sess_anon",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, s.SaveSession(ctx, session, 24*time.Hour))

	got, err := s.GetSession(ctx, "sess_anon")
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.TargetNumber)
	assert.Empty(t, got.Username)
	assert.Zero(t, got.Attempts)
}

func TestSaveSessionUpsert(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := &model.Session{
		Token:     "sess_abc",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, s.SaveSession(ctx, session, 24*time.Hour))

	userID := model.UserID(1)
	session.UserID = &userID
	session.Username = "alice"
	session.Attempts = 5
	require.NoError(t, s.SaveSession(ctx, session, 24*time.Hour))

	got, err := s.GetSession(ctx, "sess_abc")
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, 5, got.Attempts)
}

func TestDeleteSession(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := &model.Session{
		Token:     "sess_abc",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, s.SaveSession(ctx, session, 24*time.Hour))

	require.NoError(t, s.DeleteSession(ctx, "sess_abc"))

	_, err := s.GetSession(ctx, "sess_abc")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	// Deleting again is a no-op
	assert.NoError(t, s.DeleteSession(ctx, "sess_abc"))
}

func TestGetSessionNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetSession(context.Background(), "sess_missing")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
