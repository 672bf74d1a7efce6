// Package rashmap provides an embedded Robin Hood hash map for Go, mapping
// string keys to generic values with automatic growth and shrinkage.
//
// The core engine lives in the robinhood package: fibonacci-folded
// distribution over a power-of-two bucket array, Robin Hood linear probing
// with displacement bookkeeping, backward-shift deletion and failure-safe
// resize rollback. This package wraps it with structured logging, metrics
// hooks and functional options.
//
// # Quick Start
//
//	m := rashmap.New[string]()
//	defer m.Close()
//
//	_ = m.Set("key1", "value1")
//
//	if v, ok := m.Get("key1"); ok {
//	    fmt.Println(v)
//	}
//
//	m.Delete("key1")
//
// # Concurrency
//
// A Map is single-threaded and non-reentrant: it performs no internal locking
// and every operation runs to completion before returning. Callers needing
// concurrency must serialize access externally, for example with one
// exclusive lock per Map, or shard across independent Maps.
//
// # Value Ownership
//
// Stored values are borrowed: the map never finalizes them on its own.
// CloseFunc visits each surviving value exactly once so the caller can
// reclaim it.
package rashmap

import (
	"time"

	"github.com/hupe1980/rashmap/robinhood"
)

// Map is a Robin Hood hash map from string keys to values of type V.
//
// Use New to create one; the zero value is not usable.
type Map[V any] struct {
	table   *robinhood.Table[V]
	metrics MetricsCollector
	logger  *Logger
	closed  bool
}

// New creates an empty map.
func New[V any](optFns ...Option) *Map[V] {
	opts := applyOptions(optFns)

	table := robinhood.New[V](func(o *robinhood.Options) {
		if opts.hasher != nil {
			o.Hasher = opts.hasher
		}
	})

	return &Map[V]{
		table:   table,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

// Set adds a key/value pair, replacing the value of an existing equal key.
// Replacing does not change Len and the prior value is discarded, not
// reclaimed.
//
// It returns ErrClosed after Close, or a resize error if a required grow
// failed; the map then still holds its prior entries.
func (m *Map[V]) Set(key string, value V) error {
	start := time.Now()

	if m.closed {
		return ErrClosed
	}

	err := m.table.Set(key, value)

	m.metrics.RecordSet(time.Since(start), err)
	m.logger.LogSet(key, err)

	return err
}

// Get returns the value stored for key. The second result is false if the
// key is absent; absence is not an error.
func (m *Map[V]) Get(key string) (V, bool) {
	if m.closed {
		var zero V
		return zero, false
	}

	value, ok := m.table.Get(key)

	m.metrics.RecordGet(ok)

	return value, ok
}

// Delete removes key and reports whether it did. It returns false if the key
// is absent, after Close, or if a triggered shrink failed — in the last case
// the key is still present (fail-fast policy of the engine).
func (m *Map[V]) Delete(key string) bool {
	start := time.Now()

	if m.closed {
		return false
	}

	removed := m.table.Delete(key)

	m.metrics.RecordDelete(time.Since(start), removed)
	m.logger.LogDelete(key, removed)

	return removed
}

// Len returns the current number of live entries.
func (m *Map[V]) Len() int {
	if m.closed {
		return 0
	}

	return m.table.Len()
}

// Stats returns statistics about the underlying table.
func (m *Map[V]) Stats() robinhood.Stats {
	if m.closed {
		return robinhood.Stats{}
	}

	return m.table.Stats()
}

// Close releases the map without visiting the stored values. Further
// operations report absence or ErrClosed; closing twice is a no-op.
func (m *Map[V]) Close() {
	m.CloseFunc(nil)
}

// CloseFunc releases the map. If visit is non-nil it is called exactly once
// with each surviving value before its entry is dropped.
func (m *Map[V]) CloseFunc(visit func(value V)) {
	if m.closed {
		return
	}

	count := m.table.Len()

	m.table.Close(visit)
	m.closed = true

	m.logger.LogClose(count)
}
