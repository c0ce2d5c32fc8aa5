package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence/inmem"
)

func TestAuthService(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, svc *AuthService, storage *inmem.Storage,
	){
		"test login and parse token": testLoginAndParseToken,
		"test wrong password":        testWrongPassword,
		"test unknown email":         testUnknownEmail,
		"test tampered token":        testTamperedToken,
		"test expired token":         testExpiredToken,
	} {
		t.Run(scenario, func(t *testing.T) {
			storage := inmem.NewStorage()
			hash, err := HashPassword("s3cret")
			require.NoError(t, err)
			user := &model.User{
				ID:           "u-1",
				TenantID:     "t-1",
				Email:        "admin@example.com",
				PasswordHash: hash,
				Role:         "admin",
			}
			require.NoError(t, storage.Users().Save(context.Background(), user))

			fn(t, NewAuthService(storage.Users(), "test-signing-secret", time.Hour), storage)
		})
	}
}

func testLoginAndParseToken(t *testing.T, svc *AuthService, storage *inmem.Storage) {
	token, user, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.NotEmpty(t, token)

	principal, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", principal.UserID)
	require.Equal(t, "t-1", principal.TenantID)
}

func testWrongPassword(t *testing.T, svc *AuthService, storage *inmem.Storage) {
	_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func testUnknownEmail(t *testing.T, svc *AuthService, storage *inmem.Storage) {
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func testTamperedToken(t *testing.T, svc *AuthService, storage *inmem.Storage) {
	token, _, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	other := NewAuthService(storage.Users(), "different-secret", time.Hour)
	_, err = other.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken(token + "x")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func testExpiredToken(t *testing.T, svc *AuthService, storage *inmem.Storage) {
	short := NewAuthService(storage.Users(), "test-signing-secret", -time.Minute)
	token, _, err := short.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
