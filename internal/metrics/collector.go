// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Cache label values.
const (
	CacheResult = "conversion_result"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// 检测与路由指标
	detectionsTotal *prometheus.CounterVec
	routesTotal     *prometheus.CounterVec

	// 转换指标
	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	conversionQuality  *prometheus.HistogramVec

	// 缓存指标
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器
// reg 为 nil 时注册到 prometheus.DefaultRegisterer
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.detectionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Total number of modality detections",
		},
		[]string{"modality"},
	)

	c.routesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_total",
			Help:      "Total number of routed inputs",
		},
		[]string{"modality", "status"},
	)

	c.conversionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Total number of conversions",
		},
		[]string{"source", "target", "status"},
	)

	c.conversionDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Conversion duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"source", "target"},
	)

	c.conversionQuality = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_quality",
			Help:      "Quality score of successful conversions",
			Buckets:   []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 1},
		},
		[]string{"source", "target"},
	)

	c.cacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	c.cacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// 🔍 检测与路由指标记录
// =============================================================================

// RecordDetection 记录一次模态检测
func (c *Collector) RecordDetection(modality string) {
	c.detectionsTotal.WithLabelValues(modality).Inc()
}

// RecordRoute 记录一次路由
func (c *Collector) RecordRoute(modality string, err error) {
	c.routesTotal.WithLabelValues(modality, status(err)).Inc()
}

// =============================================================================
// 🔄 转换指标记录
// =============================================================================

// RecordConversion 记录一次转换；quality 只在成功时观测
func (c *Collector) RecordConversion(source, target string, duration time.Duration, quality float64, err error) {
	c.conversionsTotal.WithLabelValues(source, target, status(err)).Inc()
	c.conversionDuration.WithLabelValues(source, target).Observe(duration.Seconds())
	if err == nil {
		c.conversionQuality.WithLabelValues(source, target).Observe(quality)
	}
}

// =============================================================================
// 💾 缓存指标记录
// =============================================================================

// RecordCacheHit 记录缓存命中
func (c *Collector) RecordCacheHit(cacheType string) {
	c.cacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss 记录缓存未命中
func (c *Collector) RecordCacheMiss(cacheType string) {
	c.cacheMisses.WithLabelValues(cacheType).Inc()
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
