package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/jwt"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/metrics"
	adminhandler "github.com/Ulvounth/casa-sueno-backend/internal/handler/admin"
	bookinghandler "github.com/Ulvounth/casa-sueno-backend/internal/handler/booking"
	contacthandler "github.com/Ulvounth/casa-sueno-backend/internal/handler/contact"
	paymenthandler "github.com/Ulvounth/casa-sueno-backend/internal/handler/payment"
	pricinghandler "github.com/Ulvounth/casa-sueno-backend/internal/handler/pricing"
	"github.com/Ulvounth/casa-sueno-backend/internal/middleware"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
	adminsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/admin"
	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
	contactsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/contact"
	paymentsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/payment"
	"github.com/Ulvounth/casa-sueno-backend/internal/service/pricing"
	"github.com/Ulvounth/casa-sueno-backend/pkg/mailer"
)

// application wires repositories, services and handlers.
type application struct {
	cfg   *config.Config
	db    *gorm.DB
	redis *redis.Client

	jwtManager *jwt.Manager

	bookings *bookingsvc.Service
	admins   *adminsvc.Service
	contacts *contactsvc.Service
	payments *paymentsvc.Service
}

func newApplication(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *application {
	bookingRepo := repository.NewBookingRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	contactRepo := repository.NewContactRepository(db)

	source := pricing.NewFallbackSource(
		pricing.NewStoreSource(pricingRepo),
		pricing.NewStaticSource(),
	)

	sender := mailer.NewSender(&mailer.Config{
		Provider:   cfg.Mail.Provider,
		APIKey:     cfg.Mail.APIKey,
		FromName:   cfg.Mail.FromName,
		FromEmail:  cfg.Mail.FromEmail,
		OwnerEmail: cfg.Mail.OwnerEmail,
		ReplyTo:    cfg.Mail.ReplyTo,
	})

	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:     cfg.JWT.Secret,
		ExpireTime: cfg.JWT.TokenDuration(),
		Issuer:     cfg.JWT.Issuer,
	})

	bookings := bookingsvc.NewService(bookingRepo, source, sender, cfg)

	return &application{
		cfg:        cfg,
		db:         db,
		redis:      redisClient,
		jwtManager: jwtManager,
		bookings:   bookings,
		admins:     adminsvc.NewService(jwtManager, redisClient, &cfg.Admin),
		contacts:   contactsvc.NewService(contactRepo, sender, cfg.Mail.OwnerEmail),
		payments:   paymentsvc.NewService(bookingRepo, bookings, &cfg.Payment),
	}
}

// router builds the gin engine with the full middleware stack and routes.
func (app *application) router() *gin.Engine {
	if app.cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(&app.cfg.CORS))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.AccessLog())
	if app.cfg.Metrics.Enabled {
		r.Use(metrics.Get().Middleware())
	}

	registerHealthRoutes(r, app)

	if app.cfg.Metrics.Enabled {
		r.GET(app.cfg.Metrics.Path, metrics.Handler())
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	adminAuth := middleware.AdminAuth(app.jwtManager, app.cfg.JWT.CookieName)

	v1 := r.Group("/api/v1")
	if app.cfg.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(app.redis, app.cfg.RateLimit.RequestsPerMinute))
	}

	pricinghandler.NewHandler(app.bookings).RegisterRoutes(v1)
	bookinghandler.NewHandler(app.bookings).RegisterRoutes(v1, adminAuth)
	contacthandler.NewHandler(app.contacts).RegisterRoutes(v1)
	paymenthandler.NewHandler(app.payments).RegisterRoutes(v1)

	// Login gets a tighter per-IP limit than the general API.
	loginLimit := middleware.RateLimit(app.redis, 10)
	adminGroup := v1.Group("/admin")
	adminhandler.NewHandler(app.admins, app.bookings, &app.cfg.JWT).
		RegisterRoutes(adminGroup, adminAuth, loginLimit)

	return r
}
