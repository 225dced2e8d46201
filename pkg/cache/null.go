package cache

import (
	"context"
	"time"
)

// NullCache stands in for a real cache when analyses and renders should be
// recomputed every time: the CLI's --no-cache flag, a missing user cache
// directory, and pipeline runners built without a cache. Every lookup misses
// and every write is dropped, so callers need no nil checks.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
