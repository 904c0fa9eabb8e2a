// Package logging wraps zap with the few context-aware helpers mindful needs.
package logging

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Logger is a thin zap wrapper; the zero value is not usable, use New or Nop.
type Logger struct {
	zap *zap.Logger
}

// New builds a logger writing to stderr so command output on stdout stays
// machine-readable. format is "json" or "console".
func New(level, format string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl)
	return &Logger{zap: zap.New(core)}, nil
}

// FromZap adopts an existing zap logger, e.g. one backed by an observer in tests.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{zap: z}
}

func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// WithContext stores fields that every log call made with ctx will carry.
func WithContext(ctx context.Context, fields ...zap.Field) context.Context {
	existing := ContextFields(ctx)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]zap.Field)
	return fields
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Debug(msg, append(ContextFields(ctx), fields...)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Info(msg, append(ContextFields(ctx), fields...)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Warn(msg, append(ContextFields(ctx), fields...)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Error(msg, append(ContextFields(ctx), fields...)...)
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}
