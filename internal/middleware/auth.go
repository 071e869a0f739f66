package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/jwt"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
)

// ClaimsKey is the context key for verified session claims.
const ClaimsKey = "claims"

// AdminAuth verifies the admin session. The token is read from the session
// cookie first, falling back to a bearer header for API clients.
func AdminAuth(manager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, apperrors.ErrUnauthorized.Message)
			c.Abort()
			return
		}

		claims, err := manager.ParseToken(token)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, apperrors.ErrTokenExpired.Message)
			} else {
				response.Unauthorized(c, apperrors.ErrTokenInvalid.Message)
			}
			c.Abort()
			return
		}

		if claims.Role != jwt.RoleAdmin {
			response.Forbidden(c, apperrors.ErrPermissionDenied.Message)
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// GetClaims returns the verified claims from the context.
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}
