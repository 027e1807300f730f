package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

var (
	mu   sync.RWMutex
	root *zap.Logger
)

// Init replaces the process logger. It is safe to call more than once.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	conf := zap.NewProductionConfig()
	if development {
		conf = zap.NewDevelopmentConfig()
	}
	conf.Level = zap.NewAtomicLevelAt(lvl)

	l, err := conf.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

// Replace swaps the process logger, mostly for tests.
func Replace(l *zap.Logger) {
	mu.Lock()
	root = l
	mu.Unlock()
}

func L() *zap.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		l, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		root = l
	}
	return root
}

func MustNamed(name string) *zap.SugaredLogger {
	return L().Named(name).Sugar()
}

func Sync() error {
	return L().Sync()
}
