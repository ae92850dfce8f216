package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_AliasUserName(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	w := doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"userName": "Alice",
		"comment":  "Looks good",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Alice", body["user_name"])
	assert.Equal(t, "Looks good", body["comment"])
	assert.NotContains(t, body, "updated_at")
}

func TestCreateComment_CanonicalFieldWins(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	w := doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"user_name": "Canonical",
		"userName":  "Alias",
		"comment":   "Both spellings sent",
	}))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Canonical", decodeBody(t, w)["user_name"])
}

func TestCreateComment_TaskMissing(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/tasks/6a5a297e-0000-0000-0000-000000000000/comments", commentBody(map[string]interface{}{
		"userName": "Alice",
		"comment":  "Looks good",
	}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateComment_ValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	w := doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{}))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "User name can't be blank")
	assert.Contains(t, w.Body.String(), "Comment can't be blank")
}

func TestListComments(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	w := doJSON(t, router, http.MethodGet, "/api/tasks/"+taskID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"user_name": "Alice", "comment": "first",
	}))
	doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"user_name": "Bob", "comment": "second",
	}))

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+taskID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	comments := decodeList(t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, "Alice", comments[0]["user_name"])
	assert.Equal(t, "Bob", comments[1]["user_name"])
}

func TestListComments_TaskMissing(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/tasks/6a5a297e-0000-0000-0000-000000000000/comments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListComments_SoftDeletedTaskStillResolves(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"user_name": "Alice", "comment": "before delete",
	}))

	w := doJSON(t, router, http.MethodDelete, "/api/tasks/"+taskID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+taskID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestCommentByID_Lifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	w := doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"user_name": "Alice", "comment": "original",
	}))
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodGet, "/api/comments/"+commentID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "original", decodeBody(t, w)["comment"])

	w = doJSON(t, router, http.MethodPut, "/api/comments/"+commentID, commentBody(map[string]interface{}{
		"comment": "edited",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "edited", body["comment"])
	assert.Equal(t, "Alice", body["user_name"])

	w = doJSON(t, router, http.MethodDelete, "/api/comments/"+commentID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/comments/"+commentID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/comments/"+commentID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateComment_ValidationError(t *testing.T) {
	router, _ := newTestRouter(t)

	task := createTask(t, router, validTaskFields())
	taskID := task["id"].(string)

	w := doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/comments", commentBody(map[string]interface{}{
		"user_name": "Alice", "comment": "original",
	}))
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPut, "/api/comments/"+commentID, commentBody(map[string]interface{}{
		"comment": nil,
	}))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Comment can't be blank")
}
