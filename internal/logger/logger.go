package logger

import (
	"os"

	"github.com/samvad-hq/pdd-open-client/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// obj backs the *Obj helpers; it skips one frame so the caller of the helper
// is reported.
var obj *zap.Logger

// Logger is the structured object logging surface handed to the client packages.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Init initializes a zap SugaredLogger using settings from config.
func Init(cfg *config.Config) (Logger, error) {
	var level zapcore.Level
	switch cfg.LogLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	// stdout carries command output, so logs go to stderr.
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		level,
	)

	return install(core, cfg.AppName), nil
}

func install(core zapcore.Core, appName string) Logger {
	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", appName))
	S = base.Sugar()
	obj = base.WithOptions(zap.AddCallerSkip(1))
	return objLogger{l: obj}
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// Minimal object logging helpers -------------------------------------------------
// These are tiny wrappers that log the given object as a structured field named
// `key` and do not attempt to parse arbitrary kv arrays.
func InfoObj(msg, key string, v interface{}) {
	if obj == nil {
		return
	}
	obj.Info(msg, zap.Any(key, v))
}

func DebugObj(msg, key string, v interface{}) {
	if obj == nil {
		return
	}
	obj.Debug(msg, zap.Any(key, v))
}

func WarnObj(msg, key string, v interface{}) {
	if obj == nil {
		return
	}
	obj.Warn(msg, zap.Any(key, v))
}

func ErrorObj(msg, key string, v interface{}) {
	if obj == nil {
		return
	}
	obj.Error(msg, zap.Any(key, v))
}

// objLogger logs straight to zap so the frame it skips is its own method.
type objLogger struct{ l *zap.Logger }

func (o objLogger) InfoObj(msg, key string, v interface{})  { o.l.Info(msg, zap.Any(key, v)) }
func (o objLogger) DebugObj(msg, key string, v interface{}) { o.l.Debug(msg, zap.Any(key, v)) }
func (o objLogger) WarnObj(msg, key string, v interface{})  { o.l.Warn(msg, zap.Any(key, v)) }
func (o objLogger) ErrorObj(msg, key string, v interface{}) { o.l.Error(msg, zap.Any(key, v)) }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}
