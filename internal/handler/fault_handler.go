package handler

import (
	"context"
	"net/http"

	gate_errors "user-gate/pkg/errors"

	"github.com/gin-gonic/gin"
)

// FaultHandler exposes endpoints that fail on purpose so the error pipeline
// can be exercised end to end.
type FaultHandler struct{}

func NewFaultHandler() *FaultHandler {
	return &FaultHandler{}
}

// Sync panics inside the handler; the recovery middleware forwards it.
func (h *FaultHandler) Sync(c *gin.Context) {
	panic(gate_errors.Generic(gate_errors.DefaultName, "synchronous error"))
}

// Async fails in a separate goroutine. Nothing recovers errors from other
// goroutines, so the result is forwarded to the pipeline explicitly.
func (h *FaultHandler) Async(c *gin.Context) {
	ctx := c.Request.Context()
	done := make(chan error, 1)
	go func() {
		done <- failingOperation(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
	case <-ctx.Done():
		_ = c.Error(gate_errors.From(ctx.Err()))
		c.Abort()
		return
	}

	c.Status(http.StatusNoContent)
}

func failingOperation(context.Context) error {
	return gate_errors.Generic(gate_errors.DefaultName, "asynchronous error")
}

// NotFound forwards every unmatched request to the pipeline as a not-found
// error carrying the original request URI.
func NotFound(c *gin.Context) {
	_ = c.Error(gate_errors.NotFound(c.Request.URL.RequestURI()))
	c.Abort()
}
