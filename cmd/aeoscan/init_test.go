package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aeoscan.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"scoring",
		"categories",
		"tiers",
		"llm",
		"output",
		"threshold",
	}
	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aeoscan.yaml")
	if err := os.WriteFile(configPath, []byte("existing"), 0644); err != nil {
		t.Fatalf("Failed to seed config file: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error when config already exists")
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aeoscan.yaml")
	if err := os.WriteFile(configPath, []byte("existing"), 0644); err != nil {
		t.Fatalf("Failed to seed config file: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if string(content) == "existing" {
		t.Error("Config file was not overwritten")
	}
}

func TestInitCommand_MissingDirectory(t *testing.T) {
	cmd := initCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing", "aeoscan.yaml")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error for missing parent directory")
	}
}

func TestInitCommand_UnknownStrictness(t *testing.T) {
	cmd := initCmd()
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "aeoscan.yaml"),
		"--strictness", "draconian",
	})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error for unknown strictness")
	}
}
