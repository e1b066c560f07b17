package domain

// Tier is a caller's service plan. It controls recommendation volume and
// artifact visibility.
type Tier string

const (
	TierAnonymous  Tier = "anonymous"
	TierFree       Tier = "free"
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// GenerationStrategy identifies which strategy produced a recommendation.
type GenerationStrategy string

const (
	GeneratedByLibrary      GenerationStrategy = "library"
	GeneratedByProgrammatic GenerationStrategy = "programmatic"
	GeneratedByLLM          GenerationStrategy = "llm"
	GeneratedByTemplate     GenerationStrategy = "template"
)

// Difficulty is the estimated implementation difficulty of a recommendation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Recommendation is one actionable remediation for a detected issue.
// Constructed once per issue per run and immutable afterward; consumed only
// by the tier filter.
type Recommendation struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Subfactor     string   `json:"subfactor"`
	Priority      Severity `json:"priority"`
	PriorityScore float64  `json:"priorityScore"`

	Finding     string   `json:"finding"`
	Impact      string   `json:"impact"`
	ActionSteps []string `json:"actionSteps"`
	CodeSnippet string   `json:"codeSnippet,omitempty"`
	QuickWins   []string `json:"quickWins,omitempty"`

	EstimatedTime      string     `json:"estimatedTime"`
	Difficulty         Difficulty `json:"difficulty"`
	EstimatedScoreGain float64    `json:"estimatedScoreGain"`
	CurrentScore       float64    `json:"currentScore"`
	TargetScore        float64    `json:"targetScore"`

	Evidence map[string]interface{} `json:"evidence,omitempty"`

	GeneratedBy GenerationStrategy `json:"generatedBy"`
}

// TierLimits is the per-plan output-shaping configuration. It is supplied
// by the caller's configuration, not computed by the core.
type TierLimits struct {
	MaxRecommendations int  `json:"maxRecommendations" mapstructure:"max_recommendations" yaml:"max_recommendations"`
	ShowCodeSnippets   bool `json:"showCodeSnippets" mapstructure:"show_code_snippets" yaml:"show_code_snippets"`
	ShowEvidence       bool `json:"showEvidence" mapstructure:"show_evidence" yaml:"show_evidence"`
	LLMEnabled         bool `json:"llmEnabled" mapstructure:"llm_enabled" yaml:"llm_enabled"`
}

// UpgradeInfo is the call-to-action attached to tier-limited results.
type UpgradeInfo struct {
	Message     string `json:"message"`
	HiddenCount int    `json:"hiddenCount"`
	NextTier    Tier   `json:"nextTier,omitempty"`
}

// RecommendationSummary aggregates the full recommendation set, including
// entries hidden by the tier cap.
type RecommendationSummary struct {
	Total              int            `json:"total"`
	BySeverity         map[string]int `json:"bySeverity"`
	TotalPotentialGain float64        `json:"totalPotentialGain"`
	EstimatedTotalTime string         `json:"estimatedTotalTime"`
}

// FilteredRecommendations is the tier filter's output envelope.
type FilteredRecommendations struct {
	Tier            Tier                  `json:"tier"`
	Limits          TierLimits            `json:"limits"`
	Recommendations []Recommendation      `json:"recommendations"`
	Upgrade         *UpgradeInfo          `json:"upgrade,omitempty"`
	Summary         RecommendationSummary `json:"summary"`
}
