package handlers

import (
	"task-tracker/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RegisterRoutes wires the HTTP surface onto the engine. Task and comment
// stores are injected so tests can run against the in-memory backend.
func RegisterRoutes(engine *gin.Engine, tasks storage.TaskStore, comments storage.CommentStore, logger *logrus.Logger) {
	taskHandler := NewTaskHandler(tasks, logger)
	commentHandler := NewCommentHandler(comments, logger)

	engine.GET("/health", HealthCheck)

	api := engine.Group("/api")
	{
		api.GET("/tasks", taskHandler.GetTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:id", taskHandler.GetTaskByID)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.GET("/tasks/:id/comments", commentHandler.GetComments)
		api.POST("/tasks/:id/comments", commentHandler.CreateComment)

		api.GET("/comments/:id", commentHandler.GetCommentByID)
		api.PUT("/comments/:id", commentHandler.UpdateComment)
		api.DELETE("/comments/:id", commentHandler.DeleteComment)
	}
}
