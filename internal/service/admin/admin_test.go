package admin

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/crypto"
	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/jwt"
)

const testPassword = "correct horse battery staple"

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hash, err := crypto.HashPassword(testPassword, 4)
	require.NoError(t, err)

	manager := jwt.NewManager(&jwt.Config{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "test",
	})

	svc := NewService(manager, client, &config.AdminConfig{
		PasswordHash:   hash,
		MaxAttempts:    3,
		LockoutMinutes: 15,
	})
	return svc, mr
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Login(context.Background(), testPassword, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, jwt.RoleAdmin, result.Role)
	assert.Greater(t, result.ExpiresAt, time.Now().Unix())

	role, err := svc.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "wrong", "10.0.0.1")
	assert.ErrorIs(t, err, apperrors.ErrPasswordError)
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ip := "10.0.0.2"

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, "wrong", ip)
		assert.ErrorIs(t, err, apperrors.ErrPasswordError)
	}

	// Threshold reached: even the correct password is refused.
	_, err := svc.Login(ctx, testPassword, ip)
	assert.ErrorIs(t, err, apperrors.ErrLoginLocked)

	// A different IP is unaffected.
	_, err = svc.Login(ctx, testPassword, "10.0.0.3")
	assert.NoError(t, err)
}

func TestLoginLockoutExpires(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()
	ip := "10.0.0.4"

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, "wrong", ip)
	}
	_, err := svc.Login(ctx, testPassword, ip)
	assert.ErrorIs(t, err, apperrors.ErrLoginLocked)

	mr.FastForward(16 * time.Minute)

	_, err = svc.Login(ctx, testPassword, ip)
	assert.NoError(t, err)
}

func TestLoginSuccessClearsAttempts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ip := "10.0.0.5"

	_, _ = svc.Login(ctx, "wrong", ip)
	_, _ = svc.Login(ctx, "wrong", ip)

	_, err := svc.Login(ctx, testPassword, ip)
	require.NoError(t, err)

	// The counter was reset, so two more failures do not lock.
	_, _ = svc.Login(ctx, "wrong", ip)
	_, _ = svc.Login(ctx, "wrong", ip)
	_, err = svc.Login(ctx, testPassword, ip)
	assert.NoError(t, err)
}

func TestLoginNoHashConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := jwt.NewManager(&jwt.Config{Secret: "s", ExpireTime: time.Hour, Issuer: "t"})
	svc := NewService(manager, client, &config.AdminConfig{MaxAttempts: 3, LockoutMinutes: 15})

	_, err := svc.Login(context.Background(), "anything", "10.0.0.6")
	assert.ErrorIs(t, err, apperrors.ErrPasswordError)
}

func TestVerifyBadToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
