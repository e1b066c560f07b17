package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Grade is the five-band letter mapping of the total score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeForScore maps a 0-100 total score to its letter grade.
func GradeForScore(score float64) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// CategoryScore is the result of one category analyzer: a 0-100 score, the
// category's weight in the total, and the per-subfactor breakdown.
type CategoryScore struct {
	Score      float64            `json:"score" yaml:"score"`
	Weight     float64            `json:"weight" yaml:"weight"`
	Subfactors map[string]float64 `json:"subfactors" yaml:"subfactors"`
}

// AnalyzeRequest represents a request for a page readiness analysis
type AnalyzeRequest struct {
	// Page to analyze
	URL string

	// Pre-extracted evidence. When set, extraction is skipped and the
	// object is used as-is (the API surface supplies it this way).
	Evidence *Evidence

	// Caller's service plan
	Tier Tier

	// Whether to generate recommendations
	IncludeRecommendations bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// Configuration
	ConfigPath string

	// Disable progress reporting
	NoProgress bool
}

// AnalyzeResponse is the complete analysis result returned to the caller.
type AnalyzeResponse struct {
	URL        string                   `json:"url" yaml:"url"`
	TotalScore float64                  `json:"totalScore" yaml:"totalScore"`
	Grade      Grade                    `json:"grade" yaml:"grade"`
	Categories map[string]CategoryScore `json:"categories" yaml:"categories"`

	// Present only when recommendations were requested.
	Recommendations *FilteredRecommendations `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`

	// Evidence validation warnings; analysis still completed.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	GeneratedAt string `json:"generatedAt" yaml:"generatedAt"`
	Version     string `json:"version" yaml:"version"`
}

// AnalysisService defines the core business logic for page analysis
type AnalysisService interface {
	// Analyze scores the page, detects issues and, when requested,
	// generates tier-filtered recommendations.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}

// EvidenceExtractor produces the Evidence object for one page. Implemented
// by the extraction collaborator; the analysis core only consumes it.
type EvidenceExtractor interface {
	Extract(ctx context.Context, url string) (*Evidence, error)
}

// RecommendationService generates recommendations for detected issues.
type RecommendationService interface {
	Generate(ctx context.Context, issues []Issue, evidence *Evidence, tier Tier) ([]Recommendation, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *AnalyzeResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *AnalyzeResponse, format OutputFormat, writer io.Writer) error
}

// ProgressManager coordinates progress reporting for long-running work.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks one task's progress.
type TaskProgress interface {
	Increment(n int)
	Complete()
}
