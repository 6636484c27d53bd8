// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/branca/internal/config"
	"github.com/allisson/branca/internal/http"
	"github.com/allisson/branca/internal/metrics"
	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenHTTP "github.com/allisson/branca/internal/token/http"
	tokenService "github.com/allisson/branca/internal/token/service"
	tokenUseCase "github.com/allisson/branca/internal/token/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	// Configuration
	config    *config.Config
	logOutput io.Writer

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	tokenMetrics    metrics.TokenMetrics
	kmsService      tokenService.KMSService

	// Token
	keyRing      *tokenDomain.KeyRing
	codec        tokenService.TokenCodec
	tokenUseCase tokenUseCase.TokenUseCase
	tokenHandler *tokenHTTP.TokenHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	tokenMetricsInit    sync.Once
	kmsServiceInit      sync.Once
	keyRingInit         sync.Once
	codecInit           sync.Once
	tokenUseCaseInit    sync.Once
	tokenHandlerInit    sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the
// provided configuration. Logs go to stderr.
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithLogOutput(cfg, os.Stderr)
}

// NewContainerWithLogOutput is NewContainer with logs written to w.
func NewContainerWithLogOutput(cfg *config.Config, w io.Writer) *Container {
	return &Container{
		config:     cfg,
		logOutput:  w,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		var err error
		c.metricsProvider, err = c.initMetricsProvider()
		c.setInitError("metricsProvider", err)
	})
	return c.metricsProvider, c.initError("metricsProvider")
}

// TokenMetrics returns the token instruments, a no-op when metrics are disabled.
func (c *Container) TokenMetrics() (metrics.TokenMetrics, error) {
	c.tokenMetricsInit.Do(func() {
		var err error
		c.tokenMetrics, err = c.initTokenMetrics()
		c.setInitError("tokenMetrics", err)
	})
	return c.tokenMetrics, c.initError("tokenMetrics")
}

// KMSService returns the gocloud.dev backed KMS service.
func (c *Container) KMSService() tokenService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = tokenService.NewKMSService()
	})
	return c.kmsService
}

// MetricsServer returns the metrics HTTP server.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		var err error
		c.metricsServer, err = c.initMetricsServer()
		c.setInitError("metricsServer", err)
	})
	return c.metricsServer, c.initError("metricsServer")
}

// Shutdown stops the servers, flushes metrics and zeroes the key ring.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.keyRing != nil {
		c.keyRing.Close()
	}

	return errors.Join(errs...)
}

// setInitError records the initialization error of component, if any.
func (c *Container) setInitError(component string, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[component] = err
}

// initError returns the stored error for component, if any.
func (c *Container) initError(component string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[component]
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(c.logOutput, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initTokenMetrics() (metrics.TokenMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpTokenMetrics(), nil
	}
	return metrics.NewTokenMetrics(provider.Meter(), provider.Namespace())
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
