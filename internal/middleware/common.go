// Package middleware provides gin middleware.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
)

// RequestIDKey is the context key for the request ID.
const RequestIDKey = "request_id"

// RequestIDHeader is the request ID header name.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID, honoring an inbound one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID from the context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// Recovery recovers from panics and returns a clean 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					logger.RequestID(GetRequestID(c)),
					logger.String("path", c.Request.URL.Path),
					logger.Any("error", err),
				)
				response.InternalError(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// SecureHeaders sets common security headers.
func SecureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// NoCache disables response caching.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// MethodNotAllowed handles unsupported methods on known routes.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, response.Response{
			Code:    http.StatusMethodNotAllowed,
			Message: "method not allowed",
		})
	}
}
