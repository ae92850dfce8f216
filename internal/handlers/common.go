package handlers

import (
	"errors"
	"net/http"

	"task-tracker/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// writeStoreError maps store failures onto the wire contract: not-found and
// validation outcomes are part of the API, anything else stays generic so
// storage internals never leak to clients.
func writeStoreError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *storage.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Messages})
	default:
		if logger != nil {
			logger.WithError(err).Error("store operation failed")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
	}
}
