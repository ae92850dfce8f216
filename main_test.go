package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker/backend/internal/handlers"
	"task-tracker/backend/internal/middleware"
	"task-tracker/backend/internal/monitoring"
	"task-tracker/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newApp assembles the full middleware and routing stack over in-memory
// storage, mirroring the serve command without a listening socket.
func newApp() *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := storage.NewMemoryStore()

	checker := monitoring.NewHealthChecker()
	checker.Register("storage", func(ctx context.Context) error { return nil })

	metrics := monitoring.NewMetrics()

	engine := gin.New()
	engine.Use(middleware.RecoveryWithLogger(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(metrics.Middleware())

	handlers.RegisterRoutes(engine, store, store, log)
	engine.GET("/metrics", metrics.Handler())
	engine.GET("/ready", checker.ReadinessHandler())
	return engine
}

func request(t *testing.T, app *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func fields(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestTaskLifecycle(t *testing.T) {
	app := newApp()

	w := request(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", fields(t, w)["status"])

	// Invalid payload is rejected with full messages.
	w = request(t, app, http.MethodPost, "/api/tasks", gin.H{"task": gin.H{
		"title": "Missing everything else", "status": "bogus",
	}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Number can't be blank")
	assert.Contains(t, w.Body.String(), "Status is not included in the list")

	w = request(t, app, http.MethodPost, "/api/tasks", gin.H{"task": gin.H{
		"number":   "REL-100",
		"title":    "Ship release",
		"status":   "in_progress",
		"priority": "High",
		"due_date": "2026-09-15",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	task := fields(t, w)
	taskID := task["id"].(string)
	assert.Equal(t, "in_progress", task["status"])
	assert.Equal(t, "2026-09-15T12:00:00Z", task["due_date"])

	// Duplicate number among active tasks.
	w = request(t, app, http.MethodPost, "/api/tasks", gin.H{"task": gin.H{
		"number": "REL-100", "title": "Clone", "status": "Initiated", "priority": "Low",
	}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Number has already been taken")

	// Comment with the camelCase author spelling.
	w = request(t, app, http.MethodPost, "/api/tasks/"+taskID+"/comments", gin.H{"comment": gin.H{
		"userName": "Alice", "comment": "On track",
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Alice", fields(t, w)["user_name"])

	// Partial update leaves unspecified fields alone.
	w = request(t, app, http.MethodPut, "/api/tasks/"+taskID, gin.H{"task": gin.H{
		"status": "Completed",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	updated := fields(t, w)
	assert.Equal(t, "Completed", updated["status"])
	assert.Equal(t, "Ship release", updated["title"])

	w = request(t, app, http.MethodDelete, "/api/tasks/"+taskID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, app, http.MethodGet, "/api/tasks/"+taskID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Record not found"}`, w.Body.String())

	w = request(t, app, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// Comments survive the soft delete and stay reachable by task.
	w = request(t, app, http.MethodGet, "/api/tasks/"+taskID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The number frees up once its holder is deleted.
	w = request(t, app, http.MethodPost, "/api/tasks", gin.H{"task": gin.H{
		"number": "REL-100", "title": "Ship release again", "status": "Initiated", "priority": "High",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestOperationalEndpoints(t *testing.T) {
	app := newApp()

	request(t, app, http.MethodGet, "/health", nil)

	w := request(t, app, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "request_count")
}
