package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RecoveryWithLog converts handler panics into a 500 with a generic body.
func RecoveryWithLog() gin.HandlerFunc {
	return RecoveryWithLogger(nil)
}

// RecoveryWithLogger is RecoveryWithLog with the panic recorded on the
// given logger.
func RecoveryWithLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.WithFields(logrus.Fields{
						"panic": r,
						"path":  c.Request.URL.Path,
					}).Error("recovered from panic")
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
