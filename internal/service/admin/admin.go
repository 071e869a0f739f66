// Package admin implements the admin panel session flow.
package admin

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/crypto"
	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/jwt"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
)

// Service issues admin sessions. The site has a single admin identified by
// password only; failed attempts are counted per client IP in redis.
type Service struct {
	jwtManager *jwt.Manager
	redis      *redis.Client
	cfg        *config.AdminConfig
}

// NewService creates an admin service.
func NewService(jwtManager *jwt.Manager, redisClient *redis.Client, cfg *config.AdminConfig) *Service {
	return &Service{
		jwtManager: jwtManager,
		redis:      redisClient,
		cfg:        cfg,
	}
}

// LoginResult carries the issued session token.
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Role      string `json:"role"`
}

func attemptsKey(ip string) string {
	return fmt.Sprintf("admin:login:attempts:%s", ip)
}

// Login verifies the admin password and issues a session token. The per-IP
// attempt counter locks the caller out for the configured window once the
// threshold is reached.
func (s *Service) Login(ctx context.Context, password, ip string) (*LoginResult, error) {
	locked, err := s.isLockedOut(ctx, ip)
	if err != nil {
		logger.Warn("login lockout check failed", logger.Module("admin"), logger.Err(err))
	}
	if locked {
		return nil, apperrors.ErrLoginLocked
	}

	if s.cfg.PasswordHash == "" || !crypto.VerifyPassword(password, s.cfg.PasswordHash) {
		s.recordFailure(ctx, ip)
		logger.Warn("admin login failed", logger.Module("admin"), logger.IP(ip))
		return nil, apperrors.ErrPasswordError
	}

	s.clearFailures(ctx, ip)

	token, expiresAt, err := s.jwtManager.GenerateToken(jwt.RoleAdmin)
	if err != nil {
		return nil, apperrors.ErrInternalError.WithError(err)
	}

	logger.Info("admin login", logger.Module("admin"), logger.IP(ip))
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      jwt.RoleAdmin,
	}, nil
}

func (s *Service) isLockedOut(ctx context.Context, ip string) (bool, error) {
	if s.redis == nil {
		return false, nil
	}
	count, err := s.redis.Get(ctx, attemptsKey(ip)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= s.cfg.MaxAttempts, nil
}

func (s *Service) recordFailure(ctx context.Context, ip string) {
	if s.redis == nil {
		return
	}
	key := attemptsKey(ip)
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn("login attempt record failed", logger.Module("admin"), logger.Err(err))
		return
	}
	if count == 1 {
		s.redis.Expire(ctx, key, s.cfg.LockoutWindow())
	}
}

func (s *Service) clearFailures(ctx context.Context, ip string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, attemptsKey(ip))
}

// Verify parses a session token and returns its role.
func (s *Service) Verify(tokenString string) (string, error) {
	claims, err := s.jwtManager.ParseToken(tokenString)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrTokenInvalid
	}
	return claims.Role, nil
}
