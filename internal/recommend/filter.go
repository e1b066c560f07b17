package recommend

import (
	"fmt"
	"sort"

	"github.com/answerlens/aeoscan/domain"
)

// redactedMarker replaces gated fields so paid-tier value is visible
// without leaking it.
const redactedMarker = "available on upgrade"

// nextTier maps each plan to the next one up the ladder.
var nextTier = map[domain.Tier]domain.Tier{
	domain.TierAnonymous: domain.TierFree,
	domain.TierFree:      domain.TierStarter,
	domain.TierStarter:   domain.TierPro,
	domain.TierPro:       domain.TierEnterprise,
}

// FilterForTier shapes the full recommendation set for one plan: sorts by
// priority, truncates to the plan's cap, and redacts gated fields. The
// summary always reflects the full set so callers can show what the page
// needs even when most of it is hidden. The input slice is not mutated;
// filtering the same set for different tiers yields independent results.
func FilterForTier(recs []domain.Recommendation, tier domain.Tier, limits domain.TierLimits) *domain.FilteredRecommendations {
	sorted := make([]domain.Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityScore > sorted[j].PriorityScore
	})

	summary := summarize(sorted)

	visible := sorted
	hidden := 0
	if limits.MaxRecommendations < len(sorted) {
		hidden = len(sorted) - limits.MaxRecommendations
		visible = sorted[:limits.MaxRecommendations]
	}

	shaped := make([]domain.Recommendation, len(visible))
	for i, rec := range visible {
		shaped[i] = redact(rec, limits)
	}

	out := &domain.FilteredRecommendations{
		Tier:            tier,
		Limits:          limits,
		Recommendations: shaped,
		Summary:         summary,
	}
	if hidden > 0 {
		out.Upgrade = upgradeInfo(tier, hidden)
	}
	return out
}

// redact clears the fields the plan does not include. Copies the slices it
// keeps so the caller's set stays untouched.
func redact(rec domain.Recommendation, limits domain.TierLimits) domain.Recommendation {
	rec.ActionSteps = append([]string{}, rec.ActionSteps...)
	rec.QuickWins = append([]string(nil), rec.QuickWins...)

	if !limits.ShowCodeSnippets && rec.CodeSnippet != "" {
		rec.CodeSnippet = redactedMarker
	}
	if !limits.ShowEvidence && rec.Evidence != nil {
		rec.Evidence = map[string]interface{}{"redacted": redactedMarker}
	} else if rec.Evidence != nil {
		ev := make(map[string]interface{}, len(rec.Evidence))
		for k, v := range rec.Evidence {
			ev[k] = v
		}
		rec.Evidence = ev
	}
	return rec
}

func summarize(recs []domain.Recommendation) domain.RecommendationSummary {
	bySeverity := map[string]int{}
	var totalGain float64
	var totalMinutes int
	for _, rec := range recs {
		bySeverity[string(rec.Priority)]++
		totalGain += rec.EstimatedScoreGain
		totalMinutes += estimateMinutes(rec.Priority)
	}
	return domain.RecommendationSummary{
		Total:              len(recs),
		BySeverity:         bySeverity,
		TotalPotentialGain: totalGain,
		EstimatedTotalTime: formatMinutes(totalMinutes),
	}
}

// estimateMinutes uses the midpoint of each severity's effort range.
func estimateMinutes(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return 360
	case domain.SeverityHigh:
		return 180
	case domain.SeverityMedium:
		return 90
	default:
		return 45
	}
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d minutes", m)
	}
	hours := m / 60
	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}
	if rem := m % 60; rem != 0 {
		return fmt.Sprintf("%d %s %d minutes", hours, unit, rem)
	}
	return fmt.Sprintf("%d %s", hours, unit)
}

func upgradeInfo(tier domain.Tier, hidden int) *domain.UpgradeInfo {
	next, ok := nextTier[tier]
	if !ok {
		// Top tier already; hidden entries only mean the cap was hit
		return &domain.UpgradeInfo{
			Message:     fmt.Sprintf("%d additional recommendations exceed the plan cap", hidden),
			HiddenCount: hidden,
		}
	}
	noun := "recommendations"
	if hidden == 1 {
		noun = "recommendation"
	}
	return &domain.UpgradeInfo{
		Message:     fmt.Sprintf("%d more %s available on the %s plan", hidden, noun, next),
		HiddenCount: hidden,
		NextTier:    next,
	}
}
