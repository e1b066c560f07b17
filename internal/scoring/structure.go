package scoring

import (
	"github.com/answerlens/aeoscan/domain"
)

// FAQScoring holds the two configurable formulas behind the max-of-two FAQ
// and question-density scores: an absolute per-item score and a coverage
// multiplier. The defaults mirror the hand-tuned production values.
type FAQScoring struct {
	PerPairScore       float64
	CoverageMultiplier float64
}

// DefaultFAQScoring returns the production FAQ scoring formulas.
func DefaultFAQScoring() FAQScoring {
	return FAQScoring{PerPairScore: 20, CoverageMultiplier: 2.0}
}

// AnalyzeContentStructure scores heading discipline, FAQ presence, and
// semantic markup, the signals answer engines use to segment a page.
func AnalyzeContentStructure(ev *domain.Evidence, faq FAQScoring) map[string]float64 {
	return map[string]float64{
		"headingHierarchy":  headingHierarchyScore(ev),
		"h1Presence":        h1PresenceScore(len(ev.Content.H1)),
		"headingFrequency":  headingFrequencyScore(ev),
		"faqScore":          faqContentScore(ev, faq),
		"listTableScore":    listTableScore(ev),
		"tocScore":          tocScore(ev),
		"semanticLandmarks": landmarkScore(ev.Structure),
	}
}

func headingHierarchyScore(ev *domain.Evidence) float64 {
	score := 0.0
	if len(ev.Content.H1) == 1 {
		score += 40
	} else if len(ev.Content.H1) > 1 {
		score += 15
	}
	if len(ev.Content.H2) >= 2 {
		score += 30
	} else if len(ev.Content.H2) == 1 {
		score += 20
	}
	if len(ev.Content.H3) > 0 && len(ev.Content.H2) > 0 {
		score += 15
	}
	// Skipped levels break the outline
	if len(ev.Content.H3) > 0 && len(ev.Content.H2) == 0 {
		score -= 10
	} else {
		score += 15
	}
	return Clamp(score, 0, 100)
}

func h1PresenceScore(count int) float64 {
	switch {
	case count == 1:
		return 100
	case count > 1:
		return 50
	default:
		return 0
	}
}

func headingFrequencyScore(ev *domain.Evidence) float64 {
	headings := len(ev.Content.H2) + len(ev.Content.H3) + len(ev.Content.H4)
	if ev.Content.WordCount == 0 {
		return 20
	}
	if headings == 0 {
		return 10
	}
	// One heading per ~300 words keeps sections answer-sized
	wordsPerHeading := float64(ev.Content.WordCount) / float64(headings)
	switch {
	case wordsPerHeading <= 350:
		return 100
	case wordsPerHeading <= 500:
		return 75
	case wordsPerHeading <= 800:
		return 50
	default:
		return 30
	}
}

// faqContentScore takes the max of the absolute-count and schema-presence
// scores. A detected FAQPage schema floors the score even when no pairs
// were extracted from the page text.
func faqContentScore(ev *domain.Evidence, faq FAQScoring) float64 {
	countScore := DensityScore(len(ev.Content.FAQPairs), faq.PerPairScore, 100, 0)
	schemaScore := 0.0
	if ev.HasSchemaType("FAQPage") {
		schemaScore = 70
	}
	score := MaxScore(countScore, schemaScore)
	if score == 0 {
		return 10
	}
	return score
}

func listTableScore(ev *domain.Evidence) float64 {
	score := 0.0
	lists := ev.Content.Lists.Ordered + ev.Content.Lists.Unordered
	if lists > 0 {
		score += 50
		if lists >= 3 {
			score += 20
		}
	}
	if ev.Content.Tables.Count > 0 {
		score += 20
		if ev.Content.Tables.WithHeaders > 0 {
			score += 10
		}
	}
	if score == 0 {
		return 15
	}
	return Clamp(score, 0, 100)
}

func tocScore(ev *domain.Evidence) float64 {
	if ev.Structure.HasTOC {
		return 100
	}
	// Short pages don't need a table of contents
	if len(ev.Content.H2)+len(ev.Content.H3) < 5 {
		return 70
	}
	return 20
}

func landmarkScore(s domain.Structure) float64 {
	present := 0
	for _, has := range []bool{s.HasHeader, s.HasNav, s.HasMain, s.HasArticle, s.HasAside, s.HasFooter} {
		if has {
			present++
		}
	}
	return CoverageScore(present, 6, 0)
}
