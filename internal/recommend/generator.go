package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
	"github.com/answerlens/aeoscan/internal/llm"
)

// Generator turns detected issues into recommendations by trying four
// strategies in fixed order: curated library, programmatic derivation,
// LLM generation, static template. The template strategy cannot fail, so
// every issue that enters generation produces a recommendation.
type Generator struct {
	cfg       *config.Config
	library   Library
	completer llm.Completer
	logger    *zap.Logger

	// sleep is the inter-call pacing hook, replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Generator.
type Option func(*Generator)

// WithLibrary installs a curated recommendation library.
func WithLibrary(lib Library) Option {
	return func(g *Generator) {
		if lib != nil {
			g.library = lib
		}
	}
}

// WithCompleter installs the LLM client. Without one the LLM strategy is
// skipped entirely.
func WithCompleter(c llm.Completer) Option {
	return func(g *Generator) { g.completer = c }
}

// WithLogger installs a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Generator) { g.sleep = fn }
}

// NewGenerator builds a Generator with the default no-op library and no
// LLM client.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:     cfg,
		library: NoopLibrary{},
		logger:  zap.NewNop(),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces one recommendation per issue, up to the configured
// batch cap. Issues arrive sorted by priority, so the cap keeps the most
// important ones. LLM attempts are limited to the top issues, gated on
// the tier, and paced sequentially; any LLM failure falls back to the
// remaining strategies for that issue alone.
func (g *Generator) Generate(ctx context.Context, issues []domain.Issue, evidence *domain.Evidence, tier domain.Tier) ([]domain.Recommendation, error) {
	if len(issues) == 0 {
		return []domain.Recommendation{}, nil
	}
	if max := g.cfg.Generation.MaxIssues; max > 0 && len(issues) > max {
		issues = issues[:max]
	}

	limits := g.cfg.LimitsFor(tier)
	llmBudget := 0
	if limits.LLMEnabled && g.completer != nil {
		llmBudget = g.cfg.LLM.MaxIssues
	}

	recs := make([]domain.Recommendation, 0, len(issues))
	llmCalls := 0
	for _, issue := range issues {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewGenerationError("recommendation generation cancelled", err)
		}

		useLLM := llmCalls < llmBudget
		rec := g.generateOne(ctx, issue, evidence, useLLM, llmCalls > 0)
		if useLLM {
			llmCalls++
		}
		g.ensureComplete(&rec, issue)
		recs = append(recs, rec)
	}
	return recs, nil
}

// generateOne walks the strategy chain for a single issue.
func (g *Generator) generateOne(ctx context.Context, issue domain.Issue, ev *domain.Evidence, useLLM, pace bool) domain.Recommendation {
	if rec, ok := g.library.Lookup(issue, ev); ok && rec != nil {
		rec.GeneratedBy = domain.GeneratedByLibrary
		return *rec
	}

	if rec, ok := generateProgrammatic(issue, ev); ok {
		return *rec
	}

	if useLLM {
		if pace && g.cfg.LLM.DelayMillis > 0 {
			delay := time.Duration(g.cfg.LLM.DelayMillis) * time.Millisecond
			if err := g.sleep(ctx, delay); err != nil {
				// Cancelled mid-pacing; fall through to the template
				return *generateTemplate(issue)
			}
		}
		if rec, ok := generateLLM(ctx, g.completer, issue, ev); ok {
			return *rec
		}
		g.logger.Debug("llm generation fell back to template",
			zap.String("category", issue.Category),
			zap.String("subfactor", issue.Subfactor))
	}

	return *generateTemplate(issue)
}

// newRecommendation is the shared skeleton every strategy starts from. The
// strategy fills in the narrative fields; identity, scoring and effort
// fields are derived from the issue alone.
func newRecommendation(issue domain.Issue, strategy domain.GenerationStrategy) *domain.Recommendation {
	estTime, difficulty := effortForSeverity(issue.Severity)
	return &domain.Recommendation{
		ID:            uuid.NewString(),
		Category:      issue.Category,
		Subfactor:     issue.Subfactor,
		Priority:      issue.Severity,
		PriorityScore: issue.Priority,
		EstimatedTime: estTime,
		Difficulty:    difficulty,
		CurrentScore:  issue.CurrentScore,
		TargetScore:   issue.Threshold,
		Evidence:      issue.EvidenceSlice,
		GeneratedBy:   strategy,
	}
}

// ensureComplete back-fills any narrative field a strategy left blank, so
// downstream consumers never see a partial recommendation. It also derives
// the estimated total-score gain from the rubric weights.
func (g *Generator) ensureComplete(rec *domain.Recommendation, issue domain.Issue) {
	if rec.Title == "" {
		rec.Title = fmt.Sprintf("Improve %s", humanizeSubfactor(issue.Subfactor))
	}
	if rec.Finding == "" {
		rec.Finding = fmt.Sprintf("This page scores %.0f out of 100 for %s, below the %.0f target.",
			issue.CurrentScore, humanizeSubfactor(issue.Subfactor), issue.Threshold)
	}
	if rec.Impact == "" {
		rec.Impact = fmt.Sprintf("Improving %s strengthens the %s category of the page's readiness score.",
			humanizeSubfactor(issue.Subfactor), humanizeCategory(issue.Category))
	}
	if len(rec.ActionSteps) == 0 {
		rec.ActionSteps = []string{
			fmt.Sprintf("Review the page's %s against the factors in the report", humanizeSubfactor(issue.Subfactor)),
			"Apply the category guidance and re-run the analysis",
		}
	}
	if rec.EstimatedTime == "" || rec.Difficulty == "" {
		estTime, difficulty := effortForSeverity(issue.Severity)
		if rec.EstimatedTime == "" {
			rec.EstimatedTime = estTime
		}
		if rec.Difficulty == "" {
			rec.Difficulty = difficulty
		}
	}
	rec.EstimatedScoreGain = g.scoreGain(issue)
}

// scoreGain is the total-score improvement available from closing the gap:
// gap scaled by the subfactor's weight within its category and the
// category's weight within the total.
func (g *Generator) scoreGain(issue domain.Issue) float64 {
	cat := g.cfg.Scoring.Category(issue.Category)
	if cat == nil {
		return 0
	}
	sf := cat.Subfactor(issue.Subfactor)
	if sf == nil {
		return 0
	}
	return issue.Gap * sf.Weight * cat.Weight
}

// effortForSeverity maps severity to a human effort estimate.
func effortForSeverity(s domain.Severity) (string, domain.Difficulty) {
	switch s {
	case domain.SeverityCritical:
		return "4-8 hours", domain.DifficultyHard
	case domain.SeverityHigh:
		return "2-4 hours", domain.DifficultyMedium
	case domain.SeverityMedium:
		return "1-2 hours", domain.DifficultyMedium
	default:
		return "30-60 minutes", domain.DifficultyEasy
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// humanizeSubfactor turns a camelCase subfactor name into readable words.
func humanizeSubfactor(name string) string {
	name = strings.TrimSuffix(name, "Score")
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return name
	}
	return b.String()
}

func humanizeCategory(name string) string {
	return humanizeSubfactor(name)
}
