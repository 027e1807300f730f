// Package ctxval attaches a mutable, goroutine-safe value bag to a context so
// middleware further down the chain can publish values to callers above it.
package ctxval

import (
	"context"
	"sync"
)

type bagKey struct{}

type bag struct {
	mu     sync.RWMutex
	values map[any]any
}

// Wrap returns ctx with an empty bag attached. Wrapping twice is a no-op.
func Wrap(ctx context.Context) context.Context {
	if Wrapped(ctx) {
		return ctx
	}
	return context.WithValue(ctx, bagKey{}, &bag{values: make(map[any]any)})
}

// Wrapped reports whether ctx carries a bag.
func Wrapped(ctx context.Context) bool {
	_, ok := getBag(ctx)
	return ok
}

// Set stores v under k. It does nothing when ctx was never wrapped.
func Set[K comparable, V any](ctx context.Context, k K, v V) {
	b, ok := getBag(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	b.values[k] = v
	b.mu.Unlock()
}

func Get[K comparable, V any](ctx context.Context, k K) (V, bool) {
	b, ok := getBag(ctx)
	if !ok {
		return *new(V), false
	}
	b.mu.RLock()
	raw, found := b.values[k]
	b.mu.RUnlock()
	if !found {
		return *new(V), false
	}
	v, ok := raw.(V)
	return v, ok
}

func getBag(ctx context.Context) (*bag, bool) {
	if ctx == nil {
		return nil, false
	}
	b, ok := ctx.Value(bagKey{}).(*bag)
	return b, ok
}
