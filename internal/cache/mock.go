package cache

import (
	"context"
	"time"
)

// Mock is a test double for Cache with overridable functions.
type Mock[V any] struct {
	GetFunc          func(ctx context.Context, key string) (V, error)
	SetFunc          func(ctx context.Context, key string, value V, ttl time.Duration) error
	DeleteFunc       func(ctx context.Context, key string) error
	DeletePrefixFunc func(ctx context.Context, prefix string) error
}

var _ Cache[string] = (*Mock[string])(nil)

func (m *Mock[V]) Get(ctx context.Context, key string) (V, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	var zero V
	return zero, ErrCacheMiss
}

func (m *Mock[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *Mock[V]) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *Mock[V]) DeletePrefix(ctx context.Context, prefix string) error {
	if m.DeletePrefixFunc != nil {
		return m.DeletePrefixFunc(ctx, prefix)
	}
	return nil
}
