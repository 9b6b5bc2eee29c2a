// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/evidence-navigator-server/internal/domain"
)

// Manager loads and holds the application configuration using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from file, environment and defaults
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/evidence-navigator/")

	viper.SetEnvPrefix("EVIDENCE_NAV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("sources.pubmed.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/")
	viper.SetDefault("sources.pubmed.timeout", "8s")
	viper.SetDefault("sources.jstage.base_url", "https://api.jstage.jst.go.jp/searchapi/do")
	viper.SetDefault("sources.jstage.timeout", "8s")
	viper.SetDefault("sources.s2.base_url", "https://api.semanticscholar.org/graph/v1")
	viper.SetDefault("sources.s2.timeout", "8s")
	viper.SetDefault("sources.openalex.base_url", "https://api.openalex.org")
	viper.SetDefault("sources.openalex.timeout", "8s")
	viper.SetDefault("sources.cinii.base_url", "https://cir.nii.ac.jp/opensearch")
	viper.SetDefault("sources.cinii.timeout", "8s")
	viper.SetDefault("sources.epmc.base_url", "https://www.ebi.ac.uk/europepmc/webservices/rest")
	viper.SetDefault("sources.epmc.timeout", "8s")

	viper.SetDefault("translate.base_url", "https://translate.googleapis.com/translate_a/single")
	viper.SetDefault("translate.timeout", "5s")

	viper.SetDefault("mesh.base_url", "https://id.nlm.nih.gov/mesh/lookup")
	viper.SetDefault("mesh.timeout", "5s")

	viper.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("ai.model", "gemini-2.0-flash")
	viper.SetDefault("ai.timeout", "30s")

	viper.SetDefault("rate_limit.window", "60s")
	viper.SetDefault("rate_limit.max_requests", 60)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("cors_origins", []string{
		"https://evidence-navigator.pages.dev",
		"http://localhost:3000",
		"http://localhost:8788",
	})
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns the server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	for name, src := range map[string]domain.SourceConfig{
		"pubmed":   config.Sources.PubMed,
		"jstage":   config.Sources.JStage,
		"s2":       config.Sources.S2,
		"openalex": config.Sources.OpenAlex,
		"cinii":    config.Sources.CiNii,
		"epmc":     config.Sources.EPMC,
	} {
		if src.BaseURL == "" {
			return fmt.Errorf("%s base URL is required", name)
		}
	}
	if config.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("invalid rate limit: %d", config.RateLimit.MaxRequests)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	return nil
}
