package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/answerlens/aeoscan/domain"
	"github.com/spf13/viper"
)

// weightEpsilon is the tolerance when checking that weight tables sum to 1.0.
const weightEpsilon = 1e-6

// Default LLM generation settings
const (
	// DefaultLLMMaxIssues caps how many top-priority issues get an LLM call
	DefaultLLMMaxIssues = 5

	// DefaultLLMDelayMillis is the pause between sequential LLM calls
	DefaultLLMDelayMillis = 500

	// DefaultLLMTimeoutSeconds bounds a single LLM call
	DefaultLLMTimeoutSeconds = 30

	// DefaultLLMMaxTokens bounds the response size
	DefaultLLMMaxTokens = 1024

	// DefaultGenerationMaxIssues caps how many issues enter generation.
	// It matches the largest tier cap so no paid tier is starved.
	DefaultGenerationMaxIssues = 50
)

// SubfactorConfig is one scored heuristic within a category: its weight in
// the category score and the minimum score below which an issue is raised.
type SubfactorConfig struct {
	Name      string  `json:"name" mapstructure:"name" yaml:"name"`
	Weight    float64 `json:"weight" mapstructure:"weight" yaml:"weight"`
	Threshold float64 `json:"threshold" mapstructure:"threshold" yaml:"threshold"`
}

// CategoryConfig is one top-level scoring dimension. Slice order is the
// canonical iteration order, which keeps issue tie-breaking deterministic.
type CategoryConfig struct {
	Name       string            `json:"name" mapstructure:"name" yaml:"name"`
	Weight     float64           `json:"weight" mapstructure:"weight" yaml:"weight"`
	Subfactors []SubfactorConfig `json:"subfactors" mapstructure:"subfactors" yaml:"subfactors"`
}

// Subfactor returns the named subfactor config, or nil if absent.
func (c *CategoryConfig) Subfactor(name string) *SubfactorConfig {
	for i := range c.Subfactors {
		if c.Subfactors[i].Name == name {
			return &c.Subfactors[i]
		}
	}
	return nil
}

// ScoringConfig holds the full rubric: eight weighted categories with their
// weighted, thresholded subfactors.
type ScoringConfig struct {
	Categories []CategoryConfig `json:"categories" mapstructure:"categories" yaml:"categories"`
}

// Category returns the named category config, or nil if absent.
func (s *ScoringConfig) Category(name string) *CategoryConfig {
	for i := range s.Categories {
		if s.Categories[i].Name == name {
			return &s.Categories[i]
		}
	}
	return nil
}

// CategoryWeight returns the weight of the named category, or 0 if absent.
func (s *ScoringConfig) CategoryWeight(name string) float64 {
	if c := s.Category(name); c != nil {
		return c.Weight
	}
	return 0
}

// LLMConfig holds settings for the LLM-backed generation strategy.
type LLMConfig struct {
	// BaseURL of an OpenAI-compatible chat-completions endpoint
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	Model string `json:"model" mapstructure:"model" yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env" yaml:"api_key_env"`

	// MaxIssues caps how many top-priority issues get an LLM attempt
	MaxIssues int `json:"max_issues" mapstructure:"max_issues" yaml:"max_issues"`

	// DelayMillis is the pause between sequential calls
	DelayMillis int `json:"delay_millis" mapstructure:"delay_millis" yaml:"delay_millis"`

	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTokens      int `json:"max_tokens" mapstructure:"max_tokens" yaml:"max_tokens"`
}

// Timeout returns the per-call timeout as a duration.
func (l *LLMConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return DefaultLLMTimeoutSeconds * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// GenerationConfig bounds the recommendation generation pipeline.
type GenerationConfig struct {
	// MaxIssues caps how many issues enter generation at all, independent
	// of tier filtering, so hidden counts stay meaningful across tiers
	MaxIssues int `json:"max_issues" mapstructure:"max_issues" yaml:"max_issues"`
}

// OutputConfig holds output formatting configuration.
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether the subfactor breakdown is printed
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// Config represents the main configuration structure
type Config struct {
	Scoring    ScoringConfig                `json:"scoring" mapstructure:"scoring" yaml:"scoring"`
	Tiers      map[string]domain.TierLimits `json:"tiers" mapstructure:"tiers" yaml:"tiers"`
	LLM        LLMConfig                    `json:"llm" mapstructure:"llm" yaml:"llm"`
	Generation GenerationConfig             `json:"generation" mapstructure:"generation" yaml:"generation"`
	Output     OutputConfig                 `json:"output" mapstructure:"output" yaml:"output"`
}

// LimitsFor returns the tier limits for the given tier. Unknown tiers get
// the anonymous limits (everything locked).
func (c *Config) LimitsFor(tier domain.Tier) domain.TierLimits {
	if limits, ok := c.Tiers[string(tier)]; ok {
		return limits
	}
	return domain.TierLimits{}
}

// Validate checks the configuration invariants. Violations are programming
// or deployment errors and are fatal at startup, not masked at request time.
func (c *Config) Validate() error {
	if len(c.Scoring.Categories) == 0 {
		return fmt.Errorf("scoring config has no categories")
	}

	var categorySum float64
	for i := range c.Scoring.Categories {
		cat := &c.Scoring.Categories[i]
		if cat.Name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if cat.Weight < 0 {
			return fmt.Errorf("category %s has negative weight %f", cat.Name, cat.Weight)
		}
		categorySum += cat.Weight

		if len(cat.Subfactors) == 0 {
			return fmt.Errorf("category %s has no subfactors", cat.Name)
		}
		var subfactorSum float64
		for j := range cat.Subfactors {
			sf := &cat.Subfactors[j]
			if sf.Name == "" {
				return fmt.Errorf("category %s subfactor %d has no name", cat.Name, j)
			}
			if sf.Threshold < 0 || sf.Threshold > 100 {
				return fmt.Errorf("category %s subfactor %s threshold %f out of range [0,100]", cat.Name, sf.Name, sf.Threshold)
			}
			subfactorSum += sf.Weight
		}
		if math.Abs(subfactorSum-1.0) > weightEpsilon {
			return fmt.Errorf("category %s subfactor weights sum to %f, expected 1.0", cat.Name, subfactorSum)
		}
	}
	if math.Abs(categorySum-1.0) > weightEpsilon {
		return fmt.Errorf("category weights sum to %f, expected 1.0", categorySum)
	}

	for tier, limits := range c.Tiers {
		if limits.MaxRecommendations < 0 {
			return fmt.Errorf("tier %s has negative max_recommendations", tier)
		}
	}

	if c.LLM.MaxIssues < 0 || c.LLM.DelayMillis < 0 {
		return fmt.Errorf("llm config has negative limits")
	}
	if c.Generation.MaxIssues <= 0 {
		return fmt.Errorf("generation max_issues must be positive, got %d", c.Generation.MaxIssues)
	}

	return nil
}

// LoadConfig loads configuration from the specified path, merged over the
// defaults. An empty path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile()
	}
	return loadConfigFromFile(configPath)
}

func loadConfigFromFile(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	// New viper instance per load to avoid shared state
	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// discoverConfigFile finds a configuration file in the working directory or
// its ancestors.
func discoverConfigFile() string {
	configFiles := []string{
		"aeoscan.yaml",
		"aeoscan.yml",
		"aeoscan.json",
		".aeoscan.yaml",
		".aeoscan.yml",
		".aeoscan.json",
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, file := range configFiles {
			configPath := filepath.Join(currentDir, file)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}
