// Package kv provides the durable key-value stores the board persists into.
//
// Every backend stores opaque byte values under string keys. The board keeps
// exactly two keys (pins and snapshots), so backends favour simplicity over
// throughput: one file per key, one row per key, or one Redis string per key.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the narrow synchronous interface the board persists through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Options select and configure a backend.
type Options struct {
	Backend string
	DataDir string // file and sqlite backends

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open returns the store named by opts.Backend. An empty backend selects file.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}
	var (
		store Store
		err   error
	)
	switch backend {
	case BackendFile:
		store, err = NewFileStore(opts.DataDir)
	case BackendSQLite:
		store, err = OpenSQLite(opts.DataDir)
	case BackendRedis:
		store, err = OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	case BackendMemory:
		store = NewMemory()
	case BackendNone:
		store = Nop{}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return store, nil
}

// Nop is the store used when no durable storage is available. Reads always
// miss and writes are dropped.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }
func (Nop) Put(context.Context, string, []byte) error   { return nil }
func (Nop) Close() error                                { return nil }

// Pinger is implemented by stores that can check their backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it implements Pinger and reports nil otherwise.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
