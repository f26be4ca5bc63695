package pipeline

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/modality/internal/metrics"
	"github.com/BaSui01/modality/modality"
)

// DefaultBatchConcurrency bounds ConvertBatch when no option overrides it.
const DefaultBatchConcurrency = 4

// Option configures the Service created by New.
type Option func(*options)

type options struct {
	logger           *zap.Logger
	metrics          *metrics.Collector
	tracer           trace.Tracer
	meterProvider    metric.MeterProvider
	cache            Cache
	batchConcurrency int
	registry         *modality.Registry
	quality          modality.QualityPolicy
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithTracer sets the tracer for pipeline spans. Defaults to the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMeterProvider sets the OTel meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithCache enables result caching.
func WithCache(c Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithBatchConcurrency bounds the number of conversions ConvertBatch runs at once.
// Values below 1 are ignored.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchConcurrency = n
		}
	}
}

// WithRegistry shares r with the caller. Without it the service owns a
// fresh default registry.
func WithRegistry(r *modality.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithQualityPolicy replaces the default quality table.
func WithQualityPolicy(p modality.QualityPolicy) Option {
	return func(o *options) { o.quality = p }
}
