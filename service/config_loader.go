package service

import (
	"github.com/joho/godotenv"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
)

// ConfigurationLoaderImpl wraps config loading with domain error typing and
// .env support, so callers see one uniform failure mode.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path. An empty path
// falls back to file discovery and then the built-in defaults.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	// .env carries local secrets like the LLM API key. Absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig returns a working configuration no matter what: the
// discovered file if one loads, the built-in defaults otherwise.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	if cfg, err := c.LoadConfig(""); err == nil {
		return cfg
	}
	return config.DefaultConfig()
}
