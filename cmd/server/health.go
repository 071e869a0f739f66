package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
)

var startedAt = time.Now()

func registerHealthRoutes(r *gin.Engine, app *application) {
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{
			"status":  "ok",
			"service": app.cfg.Server.Name,
			"uptime":  time.Since(startedAt).String(),
		})
	})

	// Readiness checks the real dependencies.
	r.GET("/ready", func(c *gin.Context) {
		checks := gin.H{}
		healthy := true

		sqlDB, err := app.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if app.redis != nil {
			if err := app.redis.Ping(c.Request.Context()).Err(); err != nil {
				checks["redis"] = err.Error()
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "disabled"
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Code:    http.StatusServiceUnavailable,
				Message: "not ready",
				Data:    checks,
			})
			return
		}
		response.Success(c, checks)
	})
}
