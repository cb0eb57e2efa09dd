package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	Logger *zap.Logger
}

var (
	ProductionMode  = "production"
	ReleaseMode     = "release"
	DevelopmentMode = "development"
)

func New(mode string) *Logger {
	var config zap.Config
	if mode == ProductionMode || mode == ReleaseMode {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return &Logger{Logger: zapLogger}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

type ctxKey string

var RequestIdKey ctxKey = "request_id"

// WithContext returns a logger annotated with the request id stored in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if l == nil || ctx == nil {
		return l
	}
	if requestId, ok := ctx.Value(RequestIdKey).(string); ok {
		return &Logger{Logger: l.Logger.With(zap.String(string(RequestIdKey), requestId))}
	}
	return l
}

func (l *Logger) Infof(template string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Sugar().Infof(template, args...)
}

func (l *Logger) Warnf(template string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Sugar().Warnf(template, args...)
}

func (l *Logger) Errorf(template string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Logger.Sugar().Errorf(template, args...)
}

func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.Logger.Sync()
}
