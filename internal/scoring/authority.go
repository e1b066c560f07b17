package scoring

import (
	"github.com/answerlens/aeoscan/domain"
)

var (
	citationPhrases  = []string{"according to", "research", "study", "studies show", "source:", "survey"}
	expertisePhrases = []string{"years of experience", "certified", "licensed", "accredited", "award", "phd", "expert"}
	socialPhrases    = []string{"testimonial", "reviews", "rated", "customers", "clients", "trusted by"}
	trustPhrases     = []string{"contact us", "privacy policy", "about us", "terms of service"}
)

// AnalyzeAuthoritySignals scores whether the page demonstrates who stands
// behind it, the trust signals answer engines require before citing.
func AnalyzeAuthoritySignals(ev *domain.Evidence) map[string]float64 {
	text := ev.Content.BodyText

	return map[string]float64{
		"authorCredentials":   authorCredentialsScore(ev.Entities),
		"organizationClarity": organizationClarityScore(ev),
		"externalCitations":   DensityScore(CountPatterns(text, citationPhrases), 20, 100, 15),
		"expertiseSignals":    DensityScore(CountPatterns(text, expertisePhrases), 20, 100, 15),
		"trustMarkers":        trustMarkersScore(ev),
		"socialProof":         socialProofScore(ev),
	}
}

func authorCredentialsScore(entities domain.Entities) float64 {
	creds := len(entities.Credentials)
	if creds == 0 {
		// A named author without credentials is still better than nothing
		if len(entities.People) > 0 {
			return 40
		}
		return 20
	}
	return ScoreTiered(float64(creds), []Band{
		{Threshold: 3, Score: 100},
		{Threshold: 2, Score: 80},
		{Threshold: 1, Score: 60},
	}, false, 20)
}

func organizationClarityScore(ev *domain.Evidence) float64 {
	score := 0.0
	if len(ev.Entities.Organizations) > 0 {
		score += 40
	}
	if ev.Metadata.OGSiteName != "" {
		score += 30
	}
	if ev.HasSchemaType("Organization") {
		score += 30
	}
	if score == 0 {
		return 10
	}
	return score
}

func trustMarkersScore(ev *domain.Evidence) float64 {
	score := 0.0
	if ev.Technical.HTTPS {
		score += 40
	}
	matched := CountPatterns(ev.Content.BodyText, trustPhrases)
	score += Clamp(float64(matched)*20, 0, 60)
	if score == 0 {
		return 10
	}
	return Clamp(score, 0, 100)
}

func socialProofScore(ev *domain.Evidence) float64 {
	score := DensityScore(CountPatterns(ev.Content.BodyText, socialPhrases), 20, 80, 0)
	if ev.HasSchemaType("Review") || ev.HasSchemaType("AggregateRating") {
		score += 20
	}
	if score == 0 {
		return 15
	}
	return Clamp(score, 0, 100)
}
