package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.Meter(), provider.Namespace()))
	router.POST("/v1/tokens", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"token": "x"})
	})
	router.POST("/v1/tokens/decode", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	})

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/tokens", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/tokens/decode", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	output := scrape(t, provider)
	assertMetricLine(
		t,
		output,
		`http_test_http_requests_total`,
		`method="POST".*path="/v1/tokens".*status_code="201"`,
		`3`,
	)
	assertMetricLine(
		t,
		output,
		`http_test_http_requests_total`,
		`method="POST".*path="/v1/tokens/decode".*status_code="401"`,
		`1`,
	)
	assertMetricLine(t, output, `http_test_http_requests_total`, `path="unknown".*status_code="404"`, `1`)
	assertMetricLine(t, output, `http_test_http_requests_in_flight`, ``, `0`)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/v1/tokens", routeLabel("/v1/tokens"))
	assert.Equal(t, "unknown", routeLabel(""))
}
