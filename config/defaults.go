// =============================================================================
// 📦 Modality 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import "time"

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
		Metrics:   DefaultMetricsConfig(),
		Cache:     DefaultCacheConfig(),
		Pipeline:  DefaultPipelineConfig(),
		Speech:    DefaultSpeechConfig(),
	}
}

// DefaultLogConfig 返回默认日志配置
// CLI 的转换结果写到 stdout，因此日志默认输出到 stderr
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "warn",
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		EnableCaller:     false,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "modality",
		SampleRate:   0.1,
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "modality",
	}
}

// DefaultCacheConfig 返回默认缓存配置
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:     false,
		Addr:        "localhost:6379",
		Password:    "",
		DB:          0,
		TTL:         10 * time.Minute,
		KeyPrefix:   "modality:conv:",
		DialTimeout: 5 * time.Second,
	}
}

// DefaultPipelineConfig 返回默认流水线配置
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		BatchConcurrency: 4,
	}
}

// DefaultSpeechConfig 返回默认 voice 扩展配置
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Timeout:         30 * time.Second,
		RateLimitRPS:    0,
		RateLimitBurst:  1,
		DefaultMimeType: "audio/wav",
	}
}
