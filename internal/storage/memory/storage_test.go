package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkessler/guessgame-go/internal/model"
)

func testUser(username, email string) *model.User {
	return &model.User{
		Username:       username,
		Email:          email,
		PasswordDigest: []byte("$2a$10$digest"),
		CreatedAt:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateUserAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := testUser("alice", "a@x.com")
	require.NoError(t, s.CreateUser(ctx, alice))

	bob := testUser("bob", "b@x.com")
	require.NoError(t, s.CreateUser(ctx, bob))

	assert.Equal(t, model.UserID(1), alice.ID)
	assert.Equal(t, model.UserID(2), bob.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, testUser("alice", "a@x.com")))

	err := s.CreateUser(ctx, testUser("alice", "b@x.com"))
	assert.ErrorIs(t, err, model.ErrDuplicateUser)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, testUser("alice", "a@x.com")))

	err := s.CreateUser(ctx, testUser("bob", "a@x.com"))
	assert.ErrorIs(t, err, model.ErrDuplicateUser)
}

func TestGetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s := New()

	created := testUser("alice", "a@x.com")
	require.NoError(t, s.CreateUser(ctx, created))

	user, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, testUser("alice", "a@x.com")))

	user, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = s.GetUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	uid := model.UserID(7)
	target := 42
	session := &model.Session{
		Token:        "sess_abc",
		UserID:       &uid,
		Username:     "alice",
		TargetNumber: &target,
		Attempts:     3,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt:    time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveSession(ctx, session, 24*time.Hour))

	got, err := s.GetSession(ctx, "sess_abc")
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, uid, *got.UserID)
	require.NotNil(t, got.TargetNumber)
	assert.Equal(t, 42, *got.TargetNumber)
	assert.Equal(t, 3, got.Attempts)
}

func TestGetSessionNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SaveSession(ctx, &model.Session{Token: "sess_abc"}, time.Hour))
	require.NoError(t, s.DeleteSession(ctx, "sess_abc"))

	_, err := s.GetSession(ctx, "sess_abc")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	// Deleting an unknown session is not an error
	assert.NoError(t, s.DeleteSession(ctx, "missing"))
}

func TestSavedUserIsCopied(t *testing.T) {
	ctx := context.Background()
	s := New()

	created := testUser("alice", "a@x.com")
	require.NoError(t, s.CreateUser(ctx, created))

	// Mutating the caller's struct must not affect the stored record
	created.Email = "changed@x.com"

	user, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}
