package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the exposition text served by provider.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// assertMetricLine matches a sample by name, a label pattern and a value. The
// exporter adds otel_scope_* labels, so labels are matched partially.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func TestNewProvider(t *testing.T) {
	t.Run("with namespace", func(t *testing.T) {
		provider, err := NewProvider("branca")
		require.NoError(t, err)
		assert.Equal(t, "branca", provider.Namespace())
		assert.NotNil(t, provider.Meter())
		assert.NotNil(t, provider.MeterProvider())
	})

	t.Run("empty namespace", func(t *testing.T) {
		provider, err := NewProvider("")
		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("branca")
	require.NoError(t, err)

	output := scrape(t, provider)
	assert.Contains(t, output, "go_goroutines")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("running provider", func(t *testing.T) {
		provider, err := NewProvider("branca")
		require.NoError(t, err)
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("nil meter provider", func(t *testing.T) {
		provider := &Provider{}
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
