package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker/backend/internal/handlers"
	"task-tracker/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	handlers.RegisterRoutes(router, store, store, logger)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
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
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	return fields
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	return items
}

func taskBody(fields map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"task": fields}
}

func commentBody(fields map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"comment": fields}
}

func createTask(t *testing.T, router *gin.Engine, fields map[string]interface{}) map[string]interface{} {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/tasks", taskBody(fields))
	require.Equal(t, http.StatusCreated, w.Code, "create task failed: %s", w.Body.String())
	return decodeBody(t, w)
}

func validTaskFields() map[string]interface{} {
	return map[string]interface{}{
		"number":   "TASK-001",
		"title":    "Write spec",
		"status":   "Initiated",
		"priority": "Medium",
	}
}
