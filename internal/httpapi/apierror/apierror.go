// Package apierror gives every HTTP handler one consistent error shape,
// replacing the teacher's per-handler ad-hoc gin.H{"error": ...} literals
// (handlers/pipeline.go) with a single type and a single writer.
package apierror

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the JSON body written for every non-2xx response.
type Error struct {
	Message string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

// NotFound writes a 404 with msg.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Error{Message: msg})
}

// BadRequest writes a 400 with msg and, if err is non-nil, its message as
// Detail.
func BadRequest(c *gin.Context, msg string, err error) {
	e := Error{Message: msg}
	if err != nil {
		e.Detail = err.Error()
	}
	c.JSON(http.StatusBadRequest, e)
}

// Internal writes a 500. The underlying error is never included in the
// response body; callers are expected to have already logged it.
func Internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Error{Message: msg})
}
