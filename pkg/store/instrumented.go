package store

import (
	"context"
	"time"

	"github.com/matzehuels/dreamhouse/pkg/observability"
)

// Instrumented reports every operation of s to the registered store hooks.
func Instrumented(s Store, backend string) Store {
	return &instrumented{inner: s, backend: backend}
}

type instrumented struct {
	inner   Store
	backend string
}

func (s *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Save(ctx context.Context, d Design) (id string, err error) {
	defer func(start time.Time) { s.observe(ctx, "save", start, err) }(time.Now())
	return s.inner.Save(ctx, d)
}

func (s *instrumented) List(ctx context.Context, limit int) (out []Summary, err error) {
	defer func(start time.Time) { s.observe(ctx, "list", start, err) }(time.Now())
	return s.inner.List(ctx, limit)
}

func (s *instrumented) Get(ctx context.Context, id string) (d Design, err error) {
	defer func(start time.Time) { s.observe(ctx, "get", start, err) }(time.Now())
	return s.inner.Get(ctx, id)
}

func (s *instrumented) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { s.observe(ctx, "delete", start, err) }(time.Now())
	return s.inner.Delete(ctx, id)
}

func (s *instrumented) Close() error { return s.inner.Close() }
