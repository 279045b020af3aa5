// Package logging adapts structured loggers to scopestack.FrameLogger.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	scopestack "github.com/goliatone/go-scopestack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. An empty name is info and
// "warning" is accepted as an alias for warn.
func ParseLevel(level string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		name = "warn"
	}
	parsed, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return parsed, nil
}

// NewZap builds a console zap logger at the given level. Debug enables the
// development encoder.
func NewZap(level string) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if zapLevel == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}

// NewLogr builds a logr.Logger backed by NewZap.
func NewLogr(level string) (logr.Logger, error) {
	zl, err := NewZap(level)
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(zl), nil
}

// Zap returns a FrameLogger writing frame transitions at debug level and
// violations or hook failures at error level.
func Zap(logger *zap.Logger) scopestack.FrameLogger {
	if logger == nil {
		return nil
	}
	return scopestack.FrameLoggerFunc(func(event scopestack.FrameEvent) {
		fields := []zap.Field{
			zap.String("stack", event.Stack),
			zap.String("op", string(event.Op)),
			zap.Int("depth", event.Depth),
			zap.Int("len", event.Len),
			zap.Stringer("state", event.State),
		}
		if event.Err != nil {
			logger.Error("scopestack frame", append(fields, zap.Error(event.Err))...)
			return
		}
		logger.Debug("scopestack frame", fields...)
	})
}

// Logr returns a FrameLogger writing transitions at V(1) and errors through
// logger.Error.
func Logr(logger logr.Logger) scopestack.FrameLogger {
	return scopestack.FrameLoggerFunc(func(event scopestack.FrameEvent) {
		kv := []any{
			"stack", event.Stack,
			"op", string(event.Op),
			"depth", event.Depth,
			"len", event.Len,
			"state", event.State.String(),
		}
		if event.Err != nil {
			logger.Error(event.Err, "scopestack frame", kv...)
			return
		}
		logger.V(1).Info("scopestack frame", kv...)
	})
}
