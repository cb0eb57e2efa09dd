package pipeline

import (
	"context"
	"net/http"

	gate_errors "user-gate/pkg/errors"
)

// DefaultNotFoundMessage is sent when a 404 carries no message.
const DefaultNotFoundMessage = "Oops! Resource not found"

// ClassifyStage answers not-found errors with 404 and forwards the rest.
type ClassifyStage struct{}

func (ClassifyStage) Name() string { return "classify" }

func (ClassifyStage) Handle(_ context.Context, err *gate_errors.AppError) (Result, bool) {
	if !err.IsNotFound() {
		return Result{}, false
	}
	return Result{Status: http.StatusNotFound, Message: messageOr(err.Message, DefaultNotFoundMessage)}, true
}

// FallbackStage answers every error with 500.
type FallbackStage struct{}

func (FallbackStage) Name() string { return "fallback" }

func (FallbackStage) Handle(_ context.Context, err *gate_errors.AppError) (Result, bool) {
	return Result{Status: http.StatusInternalServerError, Message: messageOr(err.Message, DefaultServerMessage)}, true
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
