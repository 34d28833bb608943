package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is the liveness endpoint used by the front end and by container
// orchestrators; it touches no collaborator.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
