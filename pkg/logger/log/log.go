// Package log writes structured log lines enriched with the key/value pairs
// carried by the request context.
package log

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront/pkg/ctxval"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

type fieldsKey struct{}

// WithFields attaches key/value pairs to ctx. When ctx was wrapped by
// ctxval.Wrap the pairs are stored in place and visible to every holder of ctx.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	merged := append(append([]any{}, fields(ctx)...), keysAndValues...)
	if ctxval.Wrapped(ctx) {
		ctxval.Set(ctx, fieldsKey{}, merged)
		return ctx
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	if f, ok := ctxval.Get[fieldsKey, []any](ctx, fieldsKey{}); ok {
		return f
	}
	if f, ok := ctx.Value(fieldsKey{}).([]any); ok {
		return f
	}
	return nil
}

func Logw(ctx context.Context, level logger.Level, msg string, keysAndValues ...any) {
	l := logger.L().Sugar()
	args := append(append([]any{}, fields(ctx)...), keysAndValues...)
	switch level {
	case logger.DebugLevel:
		l.Debugw(msg, args...)
	case logger.WarnLevel:
		l.Warnw(msg, args...)
	case logger.ErrorLevel:
		l.Errorw(msg, args...)
	default:
		l.Infow(msg, args...)
	}
}

func Debugw(ctx context.Context, msg string, keysAndValues ...any) {
	Logw(ctx, logger.DebugLevel, msg, keysAndValues...)
}

func Infow(ctx context.Context, msg string, keysAndValues ...any) {
	Logw(ctx, logger.InfoLevel, msg, keysAndValues...)
}

func Warnw(ctx context.Context, msg string, keysAndValues ...any) {
	Logw(ctx, logger.WarnLevel, msg, keysAndValues...)
}

func Errorw(ctx context.Context, msg string, keysAndValues ...any) {
	Logw(ctx, logger.ErrorLevel, msg, keysAndValues...)
}

func Infof(ctx context.Context, template string, args ...any) {
	Logw(ctx, logger.InfoLevel, fmt.Sprintf(template, args...))
}

func Warnf(ctx context.Context, template string, args ...any) {
	Logw(ctx, logger.WarnLevel, fmt.Sprintf(template, args...))
}

func Errorf(ctx context.Context, template string, args ...any) {
	Logw(ctx, logger.ErrorLevel, fmt.Sprintf(template, args...))
}
