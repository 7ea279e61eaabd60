package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response with success=true merged with the given payload
// fields, e.g. {"success":true,"sessionId":"...","message":"..."}.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// BadRequest sends 400 with a failure message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

// NotFound sends 404 with a failure message.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msg})
}

// Internal sends 500 with a failure message.
func Internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}
