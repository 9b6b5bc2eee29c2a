package domain

import "time"

// Config is the complete application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Sources     SourcesConfig     `mapstructure:"sources"`
	Translate   TranslateConfig   `mapstructure:"translate"`
	MeSH        MeSHConfig        `mapstructure:"mesh"`
	AI          AIConfig          `mapstructure:"ai"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	CORSOrigins []string          `mapstructure:"cors_origins"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// SourceConfig holds settings for one bibliographic source
type SourceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	APIKey  string        `mapstructure:"api_key"`
}

// SourcesConfig holds settings for the six bibliographic sources
type SourcesConfig struct {
	PubMed   SourceConfig `mapstructure:"pubmed"`
	JStage   SourceConfig `mapstructure:"jstage"`
	S2       SourceConfig `mapstructure:"s2"`
	OpenAlex SourceConfig `mapstructure:"openalex"`
	CiNii    SourceConfig `mapstructure:"cinii"`
	EPMC     SourceConfig `mapstructure:"epmc"`
}

// TranslateConfig holds settings for the translation endpoint
type TranslateConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MeSHConfig holds settings for the MeSH lookup proxy
type MeSHConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AIConfig holds settings for the generative-model proxy endpoints
type AIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig holds the per-IP fixed-window limiter settings
type RateLimitConfig struct {
	Window      time.Duration `mapstructure:"window"`
	MaxRequests int           `mapstructure:"max_requests"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
