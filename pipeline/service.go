package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/modality/internal/cache"
	"github.com/BaSui01/modality/internal/ctxkeys"
	imetrics "github.com/BaSui01/modality/internal/metrics"
	"github.com/BaSui01/modality/modality"
	"github.com/BaSui01/modality/types"
)

const instrumentationName = "github.com/BaSui01/modality/pipeline"

// Request describes one Normalize call.
type Request struct {
	// Source 源模态，为空时自动检测
	Source types.Modality
	// Target 目标模态，必填
	Target types.Modality
	// MimeType 为空时使用 text/plain
	MimeType string
	// Metadata 原样附加到输入上
	Metadata map[string]any
}

// Service 模态处理服务
type Service struct {
	registry  *modality.Registry
	router    *modality.Router
	converter *modality.Converter

	logger           *zap.Logger
	metrics          *imetrics.Collector
	tracer           trace.Tracer
	cache            Cache
	batchConcurrency int

	conversions        metric.Int64Counter
	conversionDuration metric.Float64Histogram
}

// New creates a Service. Its Router and Converter share one registry.
func New(opts ...Option) (*Service, error) {
	o := &options{batchConcurrency: DefaultBatchConcurrency}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry = modality.DefaultRegistry()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(instrumentationName)
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	modOpts := []modality.Option{modality.WithRegistry(o.registry)}
	if o.quality != nil {
		modOpts = append(modOpts, modality.WithQualityPolicy(o.quality))
	}

	s := &Service{
		registry:         o.registry,
		router:           modality.NewRouter(modOpts...),
		converter:        modality.NewConverter(modOpts...),
		logger:           o.logger.With(zap.String("component", "pipeline")),
		metrics:          o.metrics,
		tracer:           o.tracer,
		cache:            o.cache,
		batchConcurrency: o.batchConcurrency,
	}

	meter := o.meterProvider.Meter(instrumentationName)

	var err error
	s.conversions, err = meter.Int64Counter("modality.conversion.total",
		metric.WithDescription("Total number of conversions"),
		metric.WithUnit("{conversion}"))
	if err != nil {
		return nil, fmt.Errorf("create conversion counter: %w", err)
	}

	s.conversionDuration, err = meter.Float64Histogram("modality.conversion.duration",
		metric.WithDescription("Conversion duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create conversion histogram: %w", err)
	}

	return s, nil
}

// Registry returns the registry shared by routing and conversion.
func (s *Service) Registry() *modality.Registry {
	return s.registry
}

// =============================================================================
// 🔍 检测与路由
// =============================================================================

// Detect classifies raw content as text or structured.
func (s *Service) Detect(ctx context.Context, raw types.Content) types.Modality {
	_, span := s.tracer.Start(ctx, "modality.detect")
	defer span.End()

	m := s.router.Detect(raw)
	span.SetAttributes(attribute.String("modality.detected", m.String()))
	if s.metrics != nil {
		s.metrics.RecordDetection(m.String())
	}
	s.logger.Debug("modality detected",
		zap.String("modality", m.String()),
		zap.Int("content_length", raw.Len()),
	)
	return m
}

// Route hands in to the handler registered for its modality.
func (s *Service) Route(ctx context.Context, in types.Input) (types.Output, error) {
	_, span := s.tracer.Start(ctx, "modality.route",
		trace.WithAttributes(attribute.String("modality.source", in.Modality.String())))
	defer span.End()

	out, err := s.router.Route(in)
	if s.metrics != nil {
		s.metrics.RecordRoute(in.Modality.String(), err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Debug("route failed", zap.String("modality", in.Modality.String()), zap.Error(err))
		return types.Output{}, err
	}
	return out, nil
}

// =============================================================================
// 🔄 转换
// =============================================================================

// Convert converts in to target. Both handlers are resolved before the cache
// is consulted; cached results are scoped to the current handler set.
// A request id already carried by ctx is reused; otherwise a new one is made.
func (s *Service) Convert(ctx context.Context, in types.Input, target types.Modality) (types.ConversionResult, error) {
	requestID, ok := ctxkeys.RequestID(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = ctxkeys.WithRequestID(ctx, requestID)
	}
	source := in.Modality.String()

	ctx, span := s.tracer.Start(ctx, "modality.convert",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("modality.source", source),
			attribute.String("modality.target", target.String()),
		))
	defer span.End()

	logger := s.logger.With(
		zap.String("request_id", requestID),
		zap.String("source", source),
		zap.String("target", target.String()),
	)
	if batchID, ok := ctxkeys.BatchID(ctx); ok {
		logger = logger.With(zap.String("batch_id", batchID))
		span.SetAttributes(attribute.String("batch.id", batchID))
	}

	sourceHandler, targetHandler, err := s.converter.Resolve(in.Modality, target)
	if err != nil {
		s.record(ctx, source, target.String(), 0, 0, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("conversion failed", zap.Error(err))
		return types.ConversionResult{}, err
	}
	scope := cacheScope(s.registry, sourceHandler, targetHandler)

	if result, ok := s.lookupCache(ctx, logger, in, target, scope); ok {
		span.SetAttributes(
			attribute.Bool("cache.hit", true),
			attribute.Float64("conversion.quality", result.QualityScore),
		)
		logger.Debug("conversion served from cache")
		return result, nil
	}

	start := time.Now()
	result, err := s.converter.Convert(in, target)
	duration := time.Since(start)

	s.record(ctx, source, target.String(), duration, result.QualityScore, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("conversion failed", zap.Error(err))
		return types.ConversionResult{}, err
	}

	s.storeCache(ctx, logger, in, target, scope, result)

	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.Float64("conversion.quality", result.QualityScore),
	)
	logger.Debug("conversion completed",
		zap.Float64("quality", result.QualityScore),
		zap.Duration("duration", duration),
	)
	return result, nil
}

// Normalize is the modality-agnostic entry point: it detects the source
// modality when req.Source is empty, builds the input and converts it.
func (s *Service) Normalize(ctx context.Context, raw types.Content, req Request) (types.ConversionResult, error) {
	if req.Target == "" {
		return types.ConversionResult{}, types.NewError(types.ErrValidation, "target modality is required").
			WithField("target")
	}

	source := req.Source
	if source == "" {
		source = s.Detect(ctx, raw)
	}

	in, err := types.NewInput(source, raw,
		types.WithMimeType(req.MimeType),
		types.WithMetadata(req.Metadata),
	)
	if err != nil {
		return types.ConversionResult{}, err
	}

	return s.Convert(ctx, in, req.Target)
}

// ConvertBatch converts every input to target with bounded concurrency.
// Results keep input order; the first error cancels the remaining work.
func (s *Service) ConvertBatch(ctx context.Context, inputs []types.Input, target types.Modality) ([]types.ConversionResult, error) {
	results := make([]types.ConversionResult, len(inputs))
	batchID := uuid.NewString()
	s.logger.Debug("batch started",
		zap.String("batch_id", batchID),
		zap.Int("size", len(inputs)),
		zap.String("target", target.String()),
	)

	g, gctx := errgroup.WithContext(ctxkeys.WithBatchID(ctx, batchID))
	g.SetLimit(s.batchConcurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.Convert(gctx, in, target)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// =============================================================================
// 📋 注册表
// =============================================================================

// RegisterHandler registers h on the shared registry. Routing and
// conversion both see it. Must not run concurrently with other calls.
func (s *Service) RegisterHandler(h modality.Handler) {
	if h == nil {
		return
	}
	s.registry.Register(h)
	s.logger.Info("handler registered", zap.String("modality", h.Modality().String()))
}

// SupportedModalities returns the registered modalities in declaration order.
func (s *Service) SupportedModalities() []types.Modality {
	return s.converter.SupportedModalities()
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// cacheScope names the handler set a conversion runs against. Any Register
// on the registry moves the generation, so a replaced handler never sees
// results cached for its predecessor.
func cacheScope(reg *modality.Registry, source, target modality.Handler) string {
	return fmt.Sprintf("%d:%T:%T", reg.Generation(), source, target)
}

func (s *Service) lookupCache(ctx context.Context, logger *zap.Logger, in types.Input, target types.Modality, scope string) (types.ConversionResult, bool) {
	if s.cache == nil {
		return types.ConversionResult{}, false
	}
	result, err := s.cache.Lookup(ctx, in, target, scope)
	switch {
	case err == nil:
		if s.metrics != nil {
			s.metrics.RecordCacheHit(imetrics.CacheResult)
		}
		return result, true
	case cache.IsCacheMiss(err):
		if s.metrics != nil {
			s.metrics.RecordCacheMiss(imetrics.CacheResult)
		}
	default:
		logger.Warn("cache lookup failed", zap.Error(err))
	}
	return types.ConversionResult{}, false
}

func (s *Service) storeCache(ctx context.Context, logger *zap.Logger, in types.Input, target types.Modality, scope string, result types.ConversionResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(ctx, in, target, scope, result); err != nil {
		logger.Warn("cache store failed", zap.Error(err))
	}
}

func (s *Service) record(ctx context.Context, source, target string, duration time.Duration, quality float64, err error) {
	if s.metrics != nil {
		s.metrics.RecordConversion(source, target, duration, quality, err)
	}

	status := imetrics.StatusSuccess
	if err != nil {
		status = imetrics.StatusError
	}
	attrs := metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("target", target),
		attribute.String("status", status),
	)
	s.conversions.Add(ctx, 1, attrs)
	s.conversionDuration.Record(ctx, duration.Seconds(), attrs)
}
