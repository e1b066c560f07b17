package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Strictness scales the issue thresholds in a generated config file.
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

const templateHeader = `# aeoscan configuration
# Generated by "aeoscan init". Category and subfactor weights must each
# sum to 1.0; thresholds are the minimum subfactor score before an issue
# is raised.
`

// ConfigTemplate renders a complete configuration file at the given
// strictness. Relaxed lowers every threshold, strict raises it; weights
// are never touched so scoring stays comparable across setups.
func ConfigTemplate(strictness Strictness) (string, error) {
	cfg := DefaultConfig()

	scale := 1.0
	switch strictness {
	case StrictnessRelaxed:
		scale = 0.85
	case StrictnessStrict:
		scale = 1.1
	case StrictnessStandard, "":
	default:
		return "", fmt.Errorf("unknown strictness: %s", strictness)
	}

	if scale != 1.0 {
		for i := range cfg.Scoring.Categories {
			for j := range cfg.Scoring.Categories[i].Subfactors {
				sf := &cfg.Scoring.Categories[i].Subfactors[j]
				sf.Threshold = clampThreshold(sf.Threshold * scale)
			}
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return templateHeader + string(data), nil
}

func clampThreshold(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
