package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

// Result is the tagged envelope every endpoint returns. The mobile client
// branches on Success instead of catching exceptions, so business failures
// are folded into this shape rather than surfaced as transport errors.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK sends a successful result with the given payload.
func OK(c *gin.Context, code int, data any) {
	c.JSON(code, Result{Success: true, Data: data})
}

// Error sends a failed result. AppErrors keep their status code and message;
// stale-state errors are reported generically, and anything unclassified
// becomes a 500 with no internal detail leaked.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Kind == apperror.KindStaleState {
			msg = "please refresh and try again"
		}
		c.JSON(appErr.Code, Result{Success: false, Error: msg})
		return
	}
	c.JSON(http.StatusInternalServerError, Result{Success: false, Error: "internal server error"})
}
