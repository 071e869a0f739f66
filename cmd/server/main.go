package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/cache"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/database"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/metrics"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		logger.String("service", cfg.Server.Name),
		logger.String("mode", cfg.Server.Mode),
	)

	db, err := database.Init(&cfg.Database)
	if err != nil {
		logger.Fatal("database init failed", logger.Err(err))
	}
	defer database.Close()

	if err := db.AutoMigrate(
		&models.PropertyPricing{},
		&models.SeasonRule{},
		&models.Booking{},
		&models.ContactMessage{},
	); err != nil {
		logger.Fatal("migration failed", logger.Err(err))
	}

	// Redis is optional: without it rate limiting and login lockout degrade
	// to pass-through.
	redisClient, err := cache.Init(&cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", logger.Err(err))
		redisClient = nil
	} else {
		defer cache.Close()
	}

	if cfg.Metrics.Enabled {
		metrics.Init("casa_sueno")
	}

	app := newApplication(cfg, db, redisClient)

	sched := scheduler.New()
	sched.Register(scheduler.NewExpiryTask(
		app.bookings,
		time.Duration(cfg.Booking.ExpiryCheckInterval)*time.Minute,
	))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("http server listening", logger.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", logger.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", logger.Err(err))
	}
	logger.Info("bye")
}
