package app

import (
	"context"
	"fmt"

	"github.com/allisson/branca/internal/http"
	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenHTTP "github.com/allisson/branca/internal/token/http"
	tokenService "github.com/allisson/branca/internal/token/service"
	tokenUseCase "github.com/allisson/branca/internal/token/usecase"
)

// KeyRing returns the key ring loaded from BRANCA_KEYS, unwrapping the keys
// through KMS when KMS_KEY_URI is set.
func (c *Container) KeyRing(ctx context.Context) (*tokenDomain.KeyRing, error) {
	c.keyRingInit.Do(func() {
		var err error
		c.keyRing, err = c.initKeyRing(ctx)
		c.setInitError("keyRing", err)
	})
	return c.keyRing, c.initError("keyRing")
}

// Codec returns the Branca codec.
func (c *Container) Codec() tokenService.TokenCodec {
	c.codecInit.Do(func() {
		c.codec = tokenService.NewCodec()
	})
	return c.codec
}

// TokenUseCase returns the token use case, instrumented when metrics are enabled.
func (c *Container) TokenUseCase(ctx context.Context) (tokenUseCase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		var err error
		c.tokenUseCase, err = c.initTokenUseCase(ctx)
		c.setInitError("tokenUseCase", err)
	})
	return c.tokenUseCase, c.initError("tokenUseCase")
}

// TokenHandler returns the token HTTP handler.
func (c *Container) TokenHandler(ctx context.Context) (*tokenHTTP.TokenHandler, error) {
	c.tokenHandlerInit.Do(func() {
		var err error
		c.tokenHandler, err = c.initTokenHandler(ctx)
		c.setInitError("tokenHandler", err)
	})
	return c.tokenHandler, c.initError("tokenHandler")
}

// HTTPServer returns the token API server with its router set up.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		var err error
		c.httpServer, err = c.initHTTPServer(ctx)
		c.setInitError("httpServer", err)
	})
	return c.httpServer, c.initError("httpServer")
}

func (c *Container) initKeyRing(ctx context.Context) (*tokenDomain.KeyRing, error) {
	keyRing, err := tokenService.LoadKeyRing(ctx, tokenService.KeyRingConfig{
		Keys:        c.config.BrancaKeys,
		ActiveKeyID: c.config.ActiveBrancaKeyID,
		KMSProvider: c.config.KMSProvider,
		KMSKeyURI:   c.config.KMSKeyURI,
	}, c.KMSService(), c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to load key ring: %w", err)
	}
	return keyRing, nil
}

func (c *Container) initTokenUseCase(ctx context.Context) (tokenUseCase.TokenUseCase, error) {
	keyRing, err := c.KeyRing(ctx)
	if err != nil {
		return nil, err
	}

	tokenMetrics, err := c.TokenMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get token metrics for token use case: %w", err)
	}

	useCase := tokenUseCase.NewTokenUseCase(c.Codec(), keyRing, tokenUseCase.TTLConfig{
		Initial: c.config.TokenTTLInitialSeconds(),
		Refresh: c.config.TokenTTLRefreshSeconds(),
	}, nil)

	return tokenUseCase.NewTokenUseCaseWithMetrics(useCase, tokenMetrics), nil
}

func (c *Container) initTokenHandler(ctx context.Context) (*tokenHTTP.TokenHandler, error) {
	useCase, err := c.TokenUseCase(ctx)
	if err != nil {
		return nil, err
	}
	return tokenHTTP.NewTokenHandler(useCase, c.Logger()), nil
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	handler, err := c.TokenHandler(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	keyRing, err := c.KeyRing(ctx)
	if err != nil {
		return nil, err
	}

	server := http.NewServer(c.config.ServerHost, c.config.ServerPort, c.Logger(), func(context.Context) error {
		if keyRing.Len() == 0 {
			return tokenDomain.ErrKeyRingClosed
		}
		return nil
	})
	server.SetupRouter(ctx, c.config, handler, provider)
	return server, nil
}
