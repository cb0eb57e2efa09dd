package pipeline

import (
	"context"

	"user-gate/internal/errorlog"
	gate_errors "user-gate/pkg/errors"
	"user-gate/pkg/logger"
)

// Appender persists one error record.
type Appender interface {
	Append(rec errorlog.Record) error
}

// LogStage writes the error to the append-only error log. It never
// terminates; append failures are reported through the service logger.
type LogStage struct {
	out    Appender
	logger *logger.Logger
}

func NewLogStage(out Appender, l *logger.Logger) *LogStage {
	return &LogStage{out: out, logger: l}
}

func (s *LogStage) Name() string { return "log" }

func (s *LogStage) Handle(ctx context.Context, err *gate_errors.AppError) (Result, bool) {
	rec := errorlog.Record{
		Name:      err.Name,
		Message:   err.Message,
		Stack:     err.Stack,
		Timestamp: err.Timestamp,
	}
	if appendErr := s.out.Append(rec); appendErr != nil {
		s.logger.WithContext(ctx).Errorf("error log append failed: %v", appendErr)
	}
	return Result{}, false
}
