// Package config provides application configuration management.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig *Config
	once         sync.Once
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Mail      MailConfig      `mapstructure:"mail"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Booking   BookingConfig   `mapstructure:"booking"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Name            string `mapstructure:"name"`
	Mode            string `mapstructure:"mode"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds postgres connection settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogMode         bool   `mapstructure:"log_mode"`
	SlowThreshold   int    `mapstructure:"slow_threshold"`
}

// DSN returns the postgres connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.Timezone,
	)
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	DialTimeout  int    `mapstructure:"dial_timeout"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// Addr returns the redis address.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds admin session token settings.
type JWTConfig struct {
	Secret       string `mapstructure:"secret"`
	ExpireHours  int    `mapstructure:"expire_hours"`
	Issuer       string `mapstructure:"issuer"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieDomain string `mapstructure:"cookie_domain"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// TokenDuration returns the admin session lifetime.
func (j *JWTConfig) TokenDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// AdminConfig holds admin panel login settings.
type AdminConfig struct {
	PasswordHash   string `mapstructure:"password_hash"`
	MaxAttempts    int    `mapstructure:"max_attempts"`
	LockoutMinutes int    `mapstructure:"lockout_minutes"`
	BcryptCost     int    `mapstructure:"bcrypt_cost"`
}

// LockoutWindow returns the login lockout duration.
func (a *AdminConfig) LockoutWindow() time.Duration {
	return time.Duration(a.LockoutMinutes) * time.Minute
}

// MailConfig holds transactional email settings.
type MailConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key"`
	FromName   string `mapstructure:"from_name"`
	FromEmail  string `mapstructure:"from_email"`
	OwnerEmail string `mapstructure:"owner_email"`
	ReplyTo    string `mapstructure:"reply_to"`
}

// PaymentConfig selects and configures the payment flow.
type PaymentConfig struct {
	// Flow is "bank_transfer" (active) or "stripe" (superseded card flow).
	Flow          string `mapstructure:"flow"`
	BankName      string `mapstructure:"bank_name"`
	BankIBAN      string `mapstructure:"bank_iban"`
	BankBIC       string `mapstructure:"bank_bic"`
	BankHolder    string `mapstructure:"bank_holder"`
	StripeKey     string `mapstructure:"stripe_key"`
	StripeWebhook string `mapstructure:"stripe_webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
	CancelURL     string `mapstructure:"cancel_url"`
}

// LoggerConfig holds zap/lumberjack settings.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Caller     bool   `mapstructure:"caller"`
}

// MetricsConfig holds prometheus settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RateLimitConfig holds request rate limit settings.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// BookingConfig holds booking funnel business settings.
type BookingConfig struct {
	// PendingExpiryDays is how long an unpaid bank-transfer booking is held.
	PendingExpiryDays   int `mapstructure:"pending_expiry_days"`
	ExpiryCheckInterval int `mapstructure:"expiry_check_interval"`
	MaxGuests           int `mapstructure:"max_guests"`
}

// Load reads the configuration file, applying env overrides and defaults.
func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if configPath != "" {
			v.SetConfigFile(configPath)
		} else {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath("./configs")
			v.AddConfigPath(".")
		}

		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		setDefaults(v)

		if err = v.ReadInConfig(); err != nil {
			// Missing config file falls back to defaults.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return
			}
			err = nil
		}

		globalConfig = &Config{}
		if err = v.Unmarshal(globalConfig); err != nil {
			return
		}
	})

	return globalConfig, err
}

// Get returns the global configuration, defaulting when Load was never called.
func Get() *Config {
	if globalConfig == nil {
		globalConfig = &Config{}
		v := viper.New()
		setDefaults(v)
		_ = v.Unmarshal(globalConfig)
	}
	return globalConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.name", "casa-sueno-backend")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 10)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "casa_sueno")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "Europe/Madrid")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.log_mode", true)
	v.SetDefault("database.slow_threshold", 200)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 50)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.dial_timeout", 5)
	v.SetDefault("redis.read_timeout", 3)
	v.SetDefault("redis.write_timeout", 3)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("jwt.issuer", "casa-sueno")
	v.SetDefault("jwt.cookie_name", "admin_session")
	v.SetDefault("jwt.cookie_secure", true)

	// Admin defaults
	v.SetDefault("admin.max_attempts", 5)
	v.SetDefault("admin.lockout_minutes", 15)
	v.SetDefault("admin.bcrypt_cost", 10)

	// Mail defaults
	v.SetDefault("mail.provider", "mock")
	v.SetDefault("mail.from_name", "Casa Sueño")
	v.SetDefault("mail.from_email", "bookings@casa-sueno.com")
	v.SetDefault("mail.owner_email", "owner@casa-sueno.com")

	// Payment defaults
	v.SetDefault("payment.flow", "bank_transfer")
	v.SetDefault("payment.bank_holder", "Casa Sueño")

	// Logger defaults
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "./logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.caller", true)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 86400)

	// Booking defaults
	v.SetDefault("booking.pending_expiry_days", 5)
	v.SetDefault("booking.expiry_check_interval", 60)
	v.SetDefault("booking.max_guests", 6)
}

// IsDebug reports whether the server runs in debug mode.
func (c *Config) IsDebug() bool {
	return c.Server.Mode == "debug"
}

// IsRelease reports whether the server runs in release mode.
func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}
