// 配置加载器与校验测试。
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/modality/types"
)

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Pipeline.BatchConcurrency)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "modality.yaml")

	yamlContent := `
log:
  level: "debug"
  format: "json"
  output_paths: ["stdout", "/tmp/modality.log"]

telemetry:
  enabled: true
  otlp_endpoint: "otel:4317"
  sample_rate: 0.5

metrics:
  enabled: true
  namespace: "conv"

cache:
  enabled: true
  addr: "redis.example.com:6379"
  password: "secret"
  db: 2
  ttl: 1h

pipeline:
  batch_concurrency: 16

speech:
  timeout: 5s
  rate_limit_rps: 2.5
  rate_limit_burst: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"stdout", "/tmp/modality.log"}, cfg.Log.OutputPaths)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otel:4317", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, 0.5, cfg.Telemetry.SampleRate)
	assert.Equal(t, "modality", cfg.Telemetry.ServiceName, "unset fields keep defaults")

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "conv", cfg.Metrics.Namespace)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis.example.com:6379", cfg.Cache.Addr)
	assert.Equal(t, "secret", cfg.Cache.Password)
	assert.Equal(t, 2, cfg.Cache.DB)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)

	assert.Equal(t, 16, cfg.Pipeline.BatchConcurrency)

	assert.Equal(t, 5*time.Second, cfg.Speech.Timeout)
	assert.Equal(t, 2.5, cfg.Speech.RateLimitRPS)
	assert.Equal(t, 3, cfg.Speech.RateLimitBurst)

	require.NoError(t, cfg.Validate())
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [unclosed"), 0644))

	_, err := NewLoader().WithConfigPath(configPath).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoader_LoadFromEnv(t *testing.T) {
	t.Setenv("MODALITY_LOG_LEVEL", "error")
	t.Setenv("MODALITY_LOG_OUTPUT_PATHS", "stderr, /var/log/modality.log")
	t.Setenv("MODALITY_CACHE_ENABLED", "true")
	t.Setenv("MODALITY_CACHE_TTL", "90s")
	t.Setenv("MODALITY_PIPELINE_BATCH_CONCURRENCY", "8")
	t.Setenv("MODALITY_SPEECH_RATE_LIMIT_RPS", "0.75")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, []string{"stderr", "/var/log/modality.log"}, cfg.Log.OutputPaths)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 8, cfg.Pipeline.BatchConcurrency)
	assert.Equal(t, 0.75, cfg.Speech.RateLimitRPS)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "modality.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("pipeline:\n  batch_concurrency: 2\nlog:\n  format: json\n"), 0644))

	t.Setenv("MODALITY_PIPELINE_BATCH_CONCURRENCY", "12")

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Pipeline.BatchConcurrency)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	t.Setenv("MYAPP_METRICS_NAMESPACE", "custom")

	cfg, err := NewLoader().WithEnvPrefix("MYAPP").Load()
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Metrics.Namespace)
}

func TestLoader_InvalidEnvValue(t *testing.T) {
	t.Setenv("MODALITY_CACHE_TTL", "soon")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODALITY_CACHE_TTL")
}

func TestLoader_WithValidator(t *testing.T) {
	_, err := NewLoader().
		WithValidator(func(c *Config) error { return c.Validate() }).
		WithValidator(func(*Config) error { return assert.AnError }).
		Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// --- Validate 测试 ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"sample rate", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, "sample_rate"},
		{"telemetry endpoint", func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.OTLPEndpoint = "" }, "otlp_endpoint"},
		{"cache addr", func(c *Config) { c.Cache.Enabled = true; c.Cache.Addr = "" }, "cache addr"},
		{"cache ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache ttl"},
		{"batch", func(c *Config) { c.Pipeline.BatchConcurrency = 0 }, "batch_concurrency"},
		{"speech rps", func(c *Config) { c.Speech.RateLimitRPS = -1 }, "rate_limit_rps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, types.IsValidation(err))
		})
	}

	require.NoError(t, DefaultConfig().Validate())
}

func TestMustLoad_Panics(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [unclosed"), 0644))

	assert.Panics(t, func() { MustLoad(configPath) })
}
