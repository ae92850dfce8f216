package handlers

import (
	"net/http"

	"task-tracker/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	store  storage.CommentStore
	logger *logrus.Logger
}

func NewCommentHandler(store storage.CommentStore, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{store: store, logger: logger}
}

// GetComments lists the comments of one task. The task resolves even when
// soft-deleted; only a missing row is a 404.
func (h *CommentHandler) GetComments(c *gin.Context) {
	taskID := uuid.FromStringOrNil(c.Param("id"))
	comments, err := h.store.GetCommentsByTask(taskID)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetCommentByID(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	comment, err := h.store.GetCommentByID(id)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	taskID := uuid.FromStringOrNil(c.Param("id"))
	params, ok := h.bindCommentParams(c)
	if !ok {
		return
	}
	comment, err := h.store.CreateComment(taskID, params)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	params, ok := h.bindCommentParams(c)
	if !ok {
		return
	}
	comment, err := h.store.UpdateComment(id, params)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	if err := h.store.DeleteComment(id); err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *CommentHandler) bindCommentParams(c *gin.Context) (storage.CommentParams, bool) {
	var envelope commentEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return storage.CommentParams{}, false
	}
	if envelope.Comment == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingCommentPayload.Error()})
		return storage.CommentParams{}, false
	}
	params, err := buildCommentParams(envelope.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return storage.CommentParams{}, false
	}
	return params, true
}
