package handlers

import (
	"net/http"

	"task-tracker/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	store  storage.TaskStore
	logger *logrus.Logger
}

func NewTaskHandler(store storage.TaskStore, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{store: store, logger: logger}
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.store.GetTasks()
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.store.GetTaskByID(id)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	params, ok := h.bindTaskParams(c)
	if !ok {
		return
	}
	task, err := h.store.CreateTask(params)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	params, ok := h.bindTaskParams(c)
	if !ok {
		return
	}
	task, err := h.store.UpdateTask(id, params)
	if err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	if err := h.store.DeleteTask(id); err != nil {
		writeStoreError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *TaskHandler) bindTaskParams(c *gin.Context) (storage.TaskParams, bool) {
	var envelope taskEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return storage.TaskParams{}, false
	}
	if envelope.Task == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingTaskPayload.Error()})
		return storage.TaskParams{}, false
	}
	params, err := buildTaskParams(envelope.Task)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return storage.TaskParams{}, false
	}
	return params, true
}
