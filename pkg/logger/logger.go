package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// Init builds the process logger. Development environments log at debug
// level with a console encoder; everything else uses zap's production
// JSON config.
func Init(environment string) error {
	var cfg zap.Config
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the process logger. Tests use it to install zaptest or
// observer loggers.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	// The printf helpers below add one frame.
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func sugared() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// L returns the process logger for call sites that attach structured fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

func Info(format string, v ...interface{}) {
	sugared().Infof(format, v...)
}

func Warn(format string, v ...interface{}) {
	sugared().Warnf(format, v...)
}

func Error(format string, v ...interface{}) {
	sugared().Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	sugared().Debugf(format, v...)
}
