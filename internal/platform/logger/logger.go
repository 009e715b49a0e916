package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string // debug, info, warn, error
	Development bool
}

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// Init builds the process logger. Until it is called every log call is a no-op.
func Init(cfg Config) error {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.EncoderConfig.CallerKey = "file"

	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	current.Store(l)
	return nil
}

// L returns the underlying logger for callers that want to add fields once.
func L() *zap.Logger {
	return current.Load()
}

// Replace swaps the process logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := current.Swap(l)
	return func() { current.Store(prev) }
}

func Sync() {
	_ = current.Load().Sync()
}

func Debug(msg string, fields ...zap.Field) { current.Load().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { current.Load().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { current.Load().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { current.Load().Error(msg, fields...) }
