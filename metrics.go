package rashmap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordSet is called after each set operation.
	// duration is the total time taken, err is nil if successful.
	RecordSet(duration time.Duration, err error)

	// RecordGet is called after each lookup. hit reports whether the key
	// was present.
	RecordGet(hit bool)

	// RecordDelete is called after each delete operation. removed reports
	// whether an entry was actually removed.
	RecordDelete(duration time.Duration, removed bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSet(time.Duration, error)   {}
func (NoopMetricsCollector) RecordGet(bool)                   {}
func (NoopMetricsCollector) RecordDelete(time.Duration, bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetCount         atomic.Int64
	SetErrors        atomic.Int64
	SetTotalNanos    atomic.Int64
	GetCount         atomic.Int64
	GetHits          atomic.Int64
	DeleteCount      atomic.Int64
	DeleteRemoved    atomic.Int64
	DeleteTotalNanos atomic.Int64
}

// RecordSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSet(duration time.Duration, err error) {
	b.SetCount.Add(1)
	b.SetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SetErrors.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(hit bool) {
	b.GetCount.Add(1)
	if hit {
		b.GetHits.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, removed bool) {
	b.DeleteCount.Add(1)
	b.DeleteTotalNanos.Add(duration.Nanoseconds())
	if removed {
		b.DeleteRemoved.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetCount:      b.SetCount.Load(),
		SetErrors:     b.SetErrors.Load(),
		SetAvgNanos:   b.getAvgSetNanos(),
		GetCount:      b.GetCount.Load(),
		GetHits:       b.GetHits.Load(),
		DeleteCount:   b.DeleteCount.Load(),
		DeleteRemoved: b.DeleteRemoved.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSetNanos() int64 {
	count := b.SetCount.Load()
	if count == 0 {
		return 0
	}
	return b.SetTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetCount      int64
	SetErrors     int64
	SetAvgNanos   int64
	GetCount      int64
	GetHits       int64
	DeleteCount   int64
	DeleteRemoved int64
}
