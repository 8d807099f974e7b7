package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// Init builds the global structured logger. LOG_LEVEL=debug enables debug output.
func Init() {
	once.Do(func() {
		level := zapcore.InfoLevel
		if os.Getenv("LOG_LEVEL") == "debug" {
			level = zapcore.DebugLevel
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
}

// L returns the global logger instance.
func L() *zap.SugaredLogger {
	if logger == nil {
		Init()
	}
	return logger
}

func Info(msg string, kv ...any)  { L().Infow(msg, kv...) }
func Debug(msg string, kv ...any) { L().Debugw(msg, kv...) }
func Warn(msg string, kv ...any)  { L().Warnw(msg, kv...) }
func Error(msg string, kv ...any) { L().Errorw(msg, kv...) }
