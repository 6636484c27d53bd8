package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/branca/internal/config"
	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:          "info",
		BrancaKeys:        "k1:" + tokenService.Base62Encode(bytes.Repeat([]byte{0x42}, tokenDomain.KeySize)),
		ActiveBrancaKeyID: "k1",
		TokenTTLInitial:   0,
		TokenTTLRefresh:   0,
		ServerHost:        "localhost",
		ServerPort:        8080,
		MetricsEnabled:    true,
		MetricsNamespace:  "di_test",
		MetricsPort:       8081,
	}
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.LogLevel = "warn"
	container := NewContainerWithLogOutput(cfg, &buf)

	logger := container.Logger()
	assert.Same(t, logger, container.Logger())

	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestContainer_TokenUseCase(t *testing.T) {
	ctx := context.Background()
	container := NewContainerWithLogOutput(testConfig(), io.Discard)
	defer func() { assert.NoError(t, container.Shutdown(ctx)) }()

	uc, err := container.TokenUseCase(ctx)
	require.NoError(t, err)

	issued, err := uc.Issue(ctx, []byte("/docs/a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "k1", issued.KeyID)

	decoded, err := uc.Verify(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, []byte("/docs/a.txt"), decoded.Payload)

	again, err := container.TokenUseCase(ctx)
	require.NoError(t, err)
	assert.Same(t, uc, again)
}

func TestContainer_KeyRingError(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.BrancaKeys = ""
	container := NewContainerWithLogOutput(cfg, io.Discard)

	_, err := container.KeyRing(ctx)
	assert.ErrorIs(t, err, tokenDomain.ErrKeysNotSet)

	// The error is remembered for every dependent component.
	_, err = container.HTTPServer(ctx)
	assert.ErrorIs(t, err, tokenDomain.ErrKeysNotSet)
	_, err = container.KeyRing(ctx)
	assert.ErrorIs(t, err, tokenDomain.ErrKeysNotSet)
}

func TestContainer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	container := NewContainerWithLogOutput(cfg, io.Discard)

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	tm, err := container.TokenMetrics()
	require.NoError(t, err)
	assert.NotNil(t, tm)
}

func TestContainer_HTTPServer(t *testing.T) {
	ctx := context.Background()
	container := NewContainerWithLogOutput(testConfig(), io.Discard)
	defer func() { assert.NoError(t, container.Shutdown(ctx)) }()

	server, err := container.HTTPServer(ctx)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "di_test_http_requests_total")
}

func TestContainer_ShutdownClosesKeyRing(t *testing.T) {
	ctx := context.Background()
	container := NewContainerWithLogOutput(testConfig(), io.Discard)

	keyRing, err := container.KeyRing(ctx)
	require.NoError(t, err)
	require.NoError(t, container.Shutdown(ctx))

	_, err = keyRing.Active()
	assert.ErrorIs(t, err, tokenDomain.ErrKeyRingClosed)
}
