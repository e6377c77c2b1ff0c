package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// Success writes the payload as-is; handlers own the response shape.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Error(c *gin.Context, status int, code int, message string) {
	c.JSON(status, errBody{Success: false, Error: message, Code: code})
}

// Fail writes a 200 with success:false, used where a missing precondition is
// an expected client state rather than a protocol error.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, errBody{Success: false, Error: message, Code: code})
}
