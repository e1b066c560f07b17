package scoring

import (
	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
)

// Engine combines the eight pure category analyzers with the configured
// rubric weights. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg *config.ScoringConfig
	faq FAQScoring
}

// NewEngine creates a scoring engine for the given rubric.
func NewEngine(cfg *config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg, faq: DefaultFAQScoring()}
}

// NewEngineWithFAQScoring creates an engine with custom FAQ/question-density
// formulas.
func NewEngineWithFAQScoring(cfg *config.ScoringConfig, faq FAQScoring) *Engine {
	return &Engine{cfg: cfg, faq: faq}
}

// AnalyzeCategory runs the analyzer for one category and weights its
// subfactor scores into a CategoryScore. The second return is false for an
// unknown category name.
func (e *Engine) AnalyzeCategory(name string, ev *domain.Evidence) (domain.CategoryScore, bool) {
	catCfg := e.cfg.Category(name)
	if catCfg == nil {
		return domain.CategoryScore{}, false
	}

	var subfactors map[string]float64
	switch name {
	case config.CategoryAIReadability:
		subfactors = AnalyzeAIReadability(ev)
	case config.CategoryContentStructure:
		subfactors = AnalyzeContentStructure(ev, e.faq)
	case config.CategoryTechnicalSetup:
		subfactors = AnalyzeTechnicalSetup(ev)
	case config.CategoryContentQuality:
		subfactors = AnalyzeContentQuality(ev)
	case config.CategoryAuthoritySignals:
		subfactors = AnalyzeAuthoritySignals(ev)
	case config.CategoryEntityRecognition:
		subfactors = AnalyzeEntityRecognition(ev)
	case config.CategoryConversationalReadiness:
		subfactors = AnalyzeConversationalReadiness(ev, e.faq)
	case config.CategoryMediaAccessibility:
		subfactors = AnalyzeMediaAccessibility(ev)
	default:
		return domain.CategoryScore{}, false
	}

	// Clamp every subfactor before weighting so adversarial inputs cannot
	// push the category outside [0,100].
	var score float64
	for i := range catCfg.Subfactors {
		sf := &catCfg.Subfactors[i]
		value := Clamp(subfactors[sf.Name], 0, 100)
		subfactors[sf.Name] = value
		score += value * sf.Weight
	}

	return domain.CategoryScore{
		Score:      Clamp(score, 0, 100),
		Weight:     catCfg.Weight,
		Subfactors: subfactors,
	}, true
}

// Analyze runs all configured categories sequentially and returns the
// per-category scores plus the weighted, clamped total.
func (e *Engine) Analyze(ev *domain.Evidence) (map[string]domain.CategoryScore, float64) {
	categories := make(map[string]domain.CategoryScore, len(e.cfg.Categories))
	for i := range e.cfg.Categories {
		name := e.cfg.Categories[i].Name
		if cs, ok := e.AnalyzeCategory(name, ev); ok {
			categories[name] = cs
		}
	}
	return categories, TotalScore(categories)
}

// TotalScore computes the weighted sum of category scores, clamped to
// [0,100].
func TotalScore(categories map[string]domain.CategoryScore) float64 {
	var total float64
	for _, cs := range categories {
		total += cs.Score * cs.Weight
	}
	return Clamp(total, 0, 100)
}
