package middleware

import (
	"user-gate/internal/pipeline"
	gate_errors "user-gate/pkg/errors"
	"user-gate/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler runs the last error recorded on the context through the
// pipeline and writes the pipeline's response.
func ErrorHandler(p *pipeline.Pipeline, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := gate_errors.From(c.Errors.Last().Err)
		res := p.Run(c.Request.Context(), appErr)

		if c.Writer.Written() {
			l.WithContext(c.Request.Context()).Warnf("response already written, dropping pipeline result %d for: %s", res.Status, appErr.Message)
			return
		}
		c.String(res.Status, res.Message)
	}
}

// Recovery turns a handler panic into a pipeline error. It must be
// registered after ErrorHandler.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rvr := recover(); rvr != nil {
				_ = c.Error(gate_errors.FromPanic(rvr))
				c.Abort()
			}
		}()
		c.Next()
	}
}
