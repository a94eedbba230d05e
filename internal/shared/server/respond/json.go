package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Success writes a 200 response with the success flag the UI checks on
// every happy path.
func Success(c *gin.Context, payload gin.H) {
	payload["success"] = true
	JSON(c, http.StatusOK, payload)
}
