package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/answerlens/aeoscan/domain"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
}

func TestDefaultConfig_CategoryWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Scoring.Categories) != 8 {
		t.Fatalf("Expected 8 categories, got %d", len(cfg.Scoring.Categories))
	}

	var sum float64
	for _, cat := range cfg.Scoring.Categories {
		sum += cat.Weight
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("Category weights sum to %f, expected 1.0", sum)
	}
}

func TestDefaultConfig_SubfactorWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	for _, cat := range cfg.Scoring.Categories {
		var sum float64
		for _, sf := range cat.Subfactors {
			sum += sf.Weight
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("Category %s subfactor weights sum to %f, expected 1.0", cat.Name, sum)
		}
	}
}

func TestDefaultConfig_SubfactorCount(t *testing.T) {
	cfg := DefaultConfig()
	total := 0
	for _, cat := range cfg.Scoring.Categories {
		total += len(cat.Subfactors)
	}
	if total < 50 {
		t.Errorf("Rubric has %d subfactors, expected at least 50", total)
	}
}

func TestValidate_BadCategoryWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Categories[0].Weight = 0.5

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for category weights not summing to 1.0")
	}
}

func TestValidate_BadSubfactorWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Categories[0].Subfactors[0].Weight += 0.2

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for subfactor weights not summing to 1.0")
	}
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Categories[0].Subfactors[0].Threshold = 120

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for threshold above 100")
	}
}

func TestValidate_NoCategories(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for empty scoring config")
	}
}

func TestLimitsFor(t *testing.T) {
	cfg := DefaultConfig()

	pro := cfg.LimitsFor(domain.TierPro)
	if pro.MaxRecommendations != 25 || !pro.ShowCodeSnippets || !pro.ShowEvidence || !pro.LLMEnabled {
		t.Errorf("Unexpected pro limits: %+v", pro)
	}

	anon := cfg.LimitsFor(domain.TierAnonymous)
	if anon.MaxRecommendations != 0 || anon.ShowCodeSnippets {
		t.Errorf("Unexpected anonymous limits: %+v", anon)
	}

	// Unknown tiers fall back to fully locked limits
	unknown := cfg.LimitsFor(domain.Tier("platinum"))
	if unknown.MaxRecommendations != 0 || unknown.LLMEnabled {
		t.Errorf("Unknown tier should get zero limits, got %+v", unknown)
	}
}

func TestScoringConfig_Lookups(t *testing.T) {
	cfg := DefaultConfig()

	cat := cfg.Scoring.Category(CategoryTechnicalSetup)
	if cat == nil {
		t.Fatal("technicalSetup category should exist")
	}
	if sf := cat.Subfactor("structuredDataScore"); sf == nil {
		t.Error("structuredDataScore subfactor should exist")
	}
	if sf := cat.Subfactor("nope"); sf != nil {
		t.Error("Unknown subfactor should return nil")
	}

	if w := cfg.Scoring.CategoryWeight("unknown"); w != 0 {
		t.Errorf("Unknown category weight should be 0, got %f", w)
	}
}

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	// Run from a temp dir so no repo-level config file is discovered.
	tmp := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	defer func() { _ = os.Chdir(oldWd) }()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.Scoring.Categories) != 8 {
		t.Errorf("Expected default rubric, got %d categories", len(cfg.Scoring.Categories))
	}
}

func TestLoadConfig_FromYAMLFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "aeoscan.yaml")
	content := []byte("llm:\n  max_issues: 2\n  delay_millis: 100\noutput:\n  format: json\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LLM.MaxIssues != 2 {
		t.Errorf("Expected llm.max_issues 2, got %d", cfg.LLM.MaxIssues)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected output.format json, got %s", cfg.Output.Format)
	}
	// Untouched sections keep their defaults
	if len(cfg.Scoring.Categories) != 8 {
		t.Errorf("Rubric should keep defaults, got %d categories", len(cfg.Scoring.Categories))
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/aeoscan.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
