package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		wantError error
		user      *models.User
		name      string
	}{
		{
			name: "create new user successfully",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "testuser1",
				PasswordHash: "hash123",
				CreatedAt:    time.Now(),
				LastLogin:    nil,
			},
			wantError: nil,
		},
		{
			name: "create user with last login",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "testuser2",
				PasswordHash: "hash456",
				CreatedAt:    time.Now(),
				LastLogin:    timePtr(time.Now()),
			},
			wantError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, tt.user)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)

				got, err := s.GetUserByID(ctx, tt.user.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.user.Username, got.Username)
				assert.Equal(t, tt.user.PasswordHash, got.PasswordHash)
			}
		})
	}
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	other := &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate",
		PasswordHash: "otherhash",
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, other)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "lookup",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUserByUsername(ctx, "lookup")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Nil(t, got.LastLogin)

	_, err = s.GetUserByUsername(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "lastlogin",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	loginTime := time.Now()
	require.NoError(t, s.UpdateLastLogin(ctx, user.ID, loginTime))

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, loginTime, *got.LastLogin, time.Second)

	err = s.UpdateLastLogin(ctx, uuid.New().String(), loginTime)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
