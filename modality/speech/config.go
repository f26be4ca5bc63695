package speech

import "github.com/BaSui01/modality/config"

// FromConfig translates the speech section of the configuration into options.
func FromConfig(cfg config.SpeechConfig) []Option {
	return []Option{
		WithTimeout(cfg.Timeout),
		WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		WithDefaultMimeType(cfg.DefaultMimeType),
	}
}
