package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	JSONErrorKind(c, status, err, message, "")
}

// JSONErrorKind sends a structured error response tagged with a machine-readable error kind
func JSONErrorKind(c *gin.Context, status int, err error, message, kind string) {
	body := gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}
	if kind != "" {
		body["kind"] = kind
	}
	c.AbortWithStatusJSON(status, body)
}
