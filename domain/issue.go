package domain

// Severity classifies how far a subfactor fell below its threshold.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityForGap maps a threshold shortfall to its severity band.
func SeverityForGap(gap float64) Severity {
	switch {
	case gap > 40:
		return SeverityCritical
	case gap > 25:
		return SeverityHigh
	case gap > 10:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Issue is one subfactor that scored below its configured threshold.
// Issues are created fresh per analysis run and never persisted.
type Issue struct {
	Category     string   `json:"category"`
	Subfactor    string   `json:"subfactor"`
	CurrentScore float64  `json:"currentScore"`
	Threshold    float64  `json:"threshold"`
	Gap          float64  `json:"gap"`
	Severity     Severity `json:"severity"`

	// Priority is categoryWeight * gap / 10; issue lists are ordered
	// descending by this value.
	Priority float64 `json:"priority"`

	// EvidenceSlice is the subset of Evidence relevant to this shortfall.
	EvidenceSlice map[string]interface{} `json:"evidenceSlice,omitempty"`

	PageURL string `json:"pageUrl"`
}
