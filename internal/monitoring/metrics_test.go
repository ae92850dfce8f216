package monitoring_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker/backend/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveOnce(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()

	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serveOnce(router, "/ok")
	serveOnce(router, "/ok")
	serveOnce(router, "/missing")

	snapshot := metrics.Snapshot()
	assert.Equal(t, int64(3), snapshot.RequestCount)
	assert.Equal(t, int64(1), snapshot.ErrorCount)
	assert.Equal(t, int64(0), snapshot.ActiveRequests)
	assert.Equal(t, int64(2), snapshot.Endpoints["GET /ok"])
	assert.Equal(t, int64(1), snapshot.StatusCodes[http.StatusText(http.StatusNotFound)])
}

func TestMetricsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()

	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler())

	w := serveOnce(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "request_count")
	assert.Contains(t, w.Body.String(), "goroutine_count")
}

func TestHealthChecker_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	checker := monitoring.NewHealthChecker()
	checker.Register("database", func(ctx context.Context) error { return nil })

	router := gin.New()
	router.GET("/ready", checker.ReadinessHandler())

	w := serveOnce(router, "/ready")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)

	checker.Register("cache", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	w = serveOnce(router, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not ready")
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestHealthChecker_Run(t *testing.T) {
	checker := monitoring.NewHealthChecker()
	checker.Register("ok", func(ctx context.Context) error { return nil })
	checker.Register("bad", func(ctx context.Context) error { return errors.New("down") })

	results := checker.Run(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "healthy", results["ok"].Status)
	assert.Equal(t, "unhealthy", results["bad"].Status)
	assert.Equal(t, "down", results["bad"].Message)
}
