package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the process logger. Production emits JSON, anything else a
// human-friendly console encoding.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1), zap.Fields(zap.String("environment", environment)))
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
		l, err = cfg.Build(zap.AddCallerSkip(1), zap.Fields(zap.String("environment", environment)))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return
	}

	log = l
	zap.ReplaceGlobals(l)
}

// Get returns the underlying zap logger.
func Get() *zap.Logger {
	return log
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, args ...any) {
	log.Debug(msg, fields(args)...)
}

func Info(msg string, args ...any) {
	log.Info(msg, fields(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, fields(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, fields(args)...)
}

func Fatal(msg string, args ...any) {
	log.Fatal(msg, fields(args)...)
}

// fields accepts zap fields, errors, and "key", value pairs in any mix.
func fields(args []any) []zap.Field {
	out := make([]zap.Field, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case zap.Field:
			out = append(out, v)
		case error:
			out = append(out, zap.Error(v))
		case string:
			if i+1 < len(args) {
				out = append(out, zap.Any(v, args[i+1]))
				i++
				continue
			}
			out = append(out, zap.String("detail", v))
		default:
			out = append(out, zap.Any(fmt.Sprintf("arg%d", i), v))
		}
	}
	return out
}
