package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tocadiscos/internal/errors"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))

	other, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salted")

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestVerifyPassword_Legacy(t *testing.T) {
	tests := []struct {
		stored, given string
		want          bool
	}{
		{"admin123", "admin123", true},
		{"admin123", "admin12", false},
		{"argon2id$!!$!!", "x", false},
		{"", "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerifyPassword(tt.stored, tt.given), "stored %q", tt.stored)
	}
}

func TestSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte("username,password,admin\nroot, toor ,admin\nguest,guest,user\n"), 0644))

	s := NewSession(path)
	assert.False(t, s.IsAuthorized())

	require.ErrorIs(t, s.Login("root", "nope"), ErrInvalidCredentials)
	assert.False(t, s.IsAuthorized())

	require.NoError(t, s.Login("guest", "guest"))
	assert.Equal(t, "guest", s.User())
	assert.False(t, s.IsAuthorized(), "non-admin login is not authorized")

	require.NoError(t, s.Login("root", "toor"))
	assert.True(t, s.IsAuthorized())

	s.Logout()
	assert.False(t, s.IsAuthorized())
}

func TestSession_MissingFile(t *testing.T) {
	s := NewSession(filepath.Join(t.TempDir(), "users.csv"))
	assert.ErrorIs(t, s.Login("root", "toor"), ErrInvalidCredentials)
}

func TestAddUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	ctx := context.Background()

	require.NoError(t, AddUser(ctx, path, "label", "pa,ss", true))
	require.NoError(t, AddUser(ctx, path, "intern", "pw", false))
	assert.ErrorIs(t, AddUser(ctx, path, "label", "other", false), errors.ErrAlreadyExists)
	assert.ErrorIs(t, AddUser(ctx, path, " ", "pw", false), errors.ErrInvalidInput)

	users, err := LoadUsers(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, IsHashed(users[0].Password))
	assert.True(t, users[0].IsAdmin())
	assert.False(t, users[1].IsAdmin())

	s := NewSession(path)
	require.NoError(t, s.Login("label", "pa,ss"))
	assert.True(t, s.IsAuthorized())
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).IsAuthorized())
	assert.False(t, Static(false).IsAuthorized())
}
