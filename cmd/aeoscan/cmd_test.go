package main

import (
	"testing"

	"github.com/answerlens/aeoscan/domain"
)

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	expectedFlags := []string{"format", "json", "output", "config", "tier", "no-recommendations", "no-progress", "debug"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestAnalyzeCmd_DefaultValues(t *testing.T) {
	cmd := analyzeCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be 'text', got '%s'", formatFlag.DefValue)
	}

	tierFlag := cmd.Flags().Lookup("tier")
	if tierFlag == nil {
		t.Fatal("tier flag not found")
	}
	if tierFlag.DefValue != "pro" {
		t.Errorf("Expected default tier to be 'pro', got '%s'", tierFlag.DefValue)
	}
}

func TestAnalyzeCmd_NoURLError(t *testing.T) {
	cmd := analyzeCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no URL specified")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"min-score", "max-critical", "json", "verbose", "config"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_InvalidMinScore(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{"--min-score", "150", "https://example.com"})

	err := cmd.Execute()
	exitErr, ok := err.(*CheckExitError)
	if !ok {
		t.Fatalf("Expected CheckExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Expected exit code 2, got %d", exitErr.Code)
	}
}

func TestCheckExitError_Message(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "threshold violated"}
	if err.Error() != "threshold violated" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestServeCmd_FlagsExist(t *testing.T) {
	cmd := serveCmd()

	for _, flagName := range []string{"addr", "debug"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}

	addrFlag := cmd.Flags().Lookup("addr")
	if addrFlag.DefValue != ":8080" {
		t.Errorf("Expected default addr to be ':8080', got '%s'", addrFlag.DefValue)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name          string
		format        string
		jsonShorthand bool
		want          domain.OutputFormat
		wantErr       bool
	}{
		{"default text", "text", false, domain.OutputFormatText, false},
		{"empty defaults to text", "", false, domain.OutputFormatText, false},
		{"json", "json", false, domain.OutputFormatJSON, false},
		{"yaml", "yaml", false, domain.OutputFormatYAML, false},
		{"yml alias", "yml", false, domain.OutputFormatYAML, false},
		{"case insensitive", "JSON", false, domain.OutputFormatJSON, false},
		{"json shorthand wins", "text", true, domain.OutputFormatJSON, false},
		{"unsupported", "xml", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.format, tt.jsonShorthand)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveTier(t *testing.T) {
	for _, name := range []string{"anonymous", "free", "starter", "pro", "enterprise"} {
		tier, err := resolveTier(name)
		if err != nil {
			t.Errorf("Unexpected error for tier %s: %v", name, err)
		}
		if string(tier) != name {
			t.Errorf("Expected tier %s, got %s", name, tier)
		}
	}

	if _, err := resolveTier("platinum"); err == nil {
		t.Error("Expected error for unknown tier")
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	if cmd.Flags().Lookup("verbose") == nil {
		t.Error("Missing --verbose flag")
	}
}
