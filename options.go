package rashmap

import (
	"log/slog"

	"github.com/hupe1980/rashmap/robinhood"
)

type options struct {
	hasher           robinhood.Hasher
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Map constructor behavior.
type Option func(*options)

// WithHasher configures the raw key hash function.
//
// If nil is passed, the engine default (robinhood.DJB2) is used. The
// distribution over bucket slots is always the fibonacci fold, independent of
// the hasher.
func WithHasher(h robinhood.Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &rashmap.BasicMetricsCollector{}
//	m := rashmap.New[int](rashmap.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Sets: %d, Avg latency: %dns\n", stats.SetCount, stats.SetAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
