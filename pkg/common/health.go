package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns a liveness handler
func HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// DBCheck returns a storage reachability handler. Every check must pass for the
// database to be reported healthy; failures answer 404 with the failing error.
func DBCheck(checks ...func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, check := range checks {
			if err := check(); err != nil {
				ErrorResponse(c, http.StatusNotFound, err.Error())
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"database_status": "healthy"})
	}
}
