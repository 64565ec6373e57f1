// Package db defines the key-value storage contract behind the embedding
// cache. Implementations live in subpackages.
package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound reports a missing key; a cache miss, not a failure.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants name the failed operation in Error values.
const (
	OpGet = "GET"
	OpSet = "SET"
)

// Error carries the operation name alongside the underlying failure.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Store is the full key-value store facade handed to main.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides the byte-oriented operations the embedding cache needs.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
