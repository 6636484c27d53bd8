// Package config provides application configuration through environment variables.
package config

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/branca/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// BrancaKeys is the key ring: "id:key[,id:key...]". Keys are base62, or
	// base64 KMS ciphertexts when KMSKeyURI is set.
	BrancaKeys string
	// ActiveBrancaKeyID names the key used to issue new tokens.
	ActiveBrancaKeyID string

	// KMSProvider names the KMS in use (informational, e.g. "gcpkms", "awskms").
	KMSProvider string
	// KMSKeyURI is the gocloud.dev secrets URI of the key wrapping BrancaKeys.
	KMSKeyURI string

	// TokenTTLInitial is how long an issued token verifies.
	TokenTTLInitial time.Duration
	// TokenTTLRefresh is how long an issued token can be exchanged for a new one.
	TokenTTLRefresh time.Duration

	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ServerShutdownTimeout bounds graceful shutdown.
	ServerShutdownTimeout time.Duration

	// RateLimitEnabled enables per-IP rate limiting of the token endpoints.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the sustained request rate allowed per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size allowed per IP.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Keys
		BrancaKeys:        env.GetString("BRANCA_KEYS", ""),
		ActiveBrancaKeyID: env.GetString("ACTIVE_BRANCA_KEY_ID", ""),
		KMSProvider:       env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:         env.GetString("KMS_KEY_URI", ""),

		// Token lifetimes
		TokenTTLInitial: env.GetDuration("TOKEN_TTL_INITIAL_SECONDS", 600, time.Second),
		TokenTTLRefresh: env.GetDuration("TOKEN_TTL_REFRESH_SECONDS", 600, time.Second),

		// Server
		ServerHost:            env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:            env.GetInt("SERVER_PORT", 8080),
		ServerShutdownTimeout: env.GetDuration("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Rate limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "branca"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the values the server cannot start without sensible
// settings for. Key material is validated when the key ring is loaded.
func (c *Config) Validate() error {
	maxTTL := time.Duration(math.MaxUint32) * time.Second
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.TokenTTLInitial, validation.Min(time.Duration(0)), validation.Max(maxTTL)),
		validation.Field(&c.TokenTTLRefresh, validation.Min(time.Duration(0)), validation.Max(maxTTL)),
		validation.Field(&c.ServerHost, validation.Required, customValidation.NotBlank),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.ServerShutdownTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimitRequestsPerSec,
			validation.When(c.RateLimitEnabled, validation.Required, validation.Min(0.0)),
		),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitEnabled, validation.Required, validation.Min(1))),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
	)
}

// TokenTTLInitialSeconds returns the initial TTL in whole seconds.
func (c *Config) TokenTTLInitialSeconds() uint32 {
	return durationSeconds(c.TokenTTLInitial)
}

// TokenTTLRefreshSeconds returns the refresh TTL in whole seconds.
func (c *Config) TokenTTLRefreshSeconds() uint32 {
	return durationSeconds(c.TokenTTLRefresh)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

func durationSeconds(d time.Duration) uint32 {
	s := int64(d / time.Second)
	switch {
	case s <= 0:
		return 0
	case s > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(s)
	}
}

// loadDotEnv searches for a .env file from the current directory up to the
// root and loads the first one found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
