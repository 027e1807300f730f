package util

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Ptr returns a pointer to a copy of t.
func Ptr[T any](t T) *T {
	return &t
}

func ConvertList[A any, B any](listA []A, convert func(A) B) []B {
	listB := make([]B, len(listA))
	for i, a := range listA {
		listB[i] = convert(a)
	}
	return listB
}

var latencyBuckets = []float64{
	0.0005,
	0.001, // 1ms
	0.002,
	0.005,
	0.01, // 10ms
	0.02,
	0.05,
	0.1, // 100ms
	0.2,
	0.5,
	1.0, // 1s
	2.0,
	5.0,
}

func GetHistogramVec(name string, labels ...string) (*prometheus.HistogramVec, error) {
	return register(prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Buckets: latencyBuckets,
	}, labels))
}

func GetCounterVec(name, help string, labels ...string) (*prometheus.CounterVec, error) {
	return register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels))
}

// register returns the already registered collector when one with the same
// descriptor exists, so constructors can run more than once per process.
func register[C prometheus.Collector](c C) (C, error) {
	if err := prometheus.Register(c); err != nil {
		var registeredErr prometheus.AlreadyRegisteredError
		if errors.As(err, &registeredErr) {
			if existing, ok := registeredErr.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register: %w", err)
	}
	return c, nil
}
