package scoring

import (
	"github.com/answerlens/aeoscan/domain"
)

// AnalyzeMediaAccessibility scores alternative text, captions, and ARIA
// signals. Accessible markup doubles as machine-readable markup.
func AnalyzeMediaAccessibility(ev *domain.Evidence) map[string]float64 {
	return map[string]float64{
		"altTextCoverage":   altTextCoverageScore(ev.Media.Images),
		"captionCoverage":   captionCoverageScore(ev.Media),
		"ariaUsage":         ariaUsageScore(ev.Accessibility),
		"formLabelCoverage": Clamp(ev.Accessibility.LabelCoverage*100, 0, 100),
		"languageDeclared":  languageDeclaredScore(ev),
		"mediaDiversity":    mediaDiversityScore(ev),
	}
}

// altTextCoverageScore scores 100 for a page with no images: there is
// nothing to describe.
func altTextCoverageScore(images []domain.ImageInfo) float64 {
	withAlt := 0
	for _, img := range images {
		if img.HasAlt {
			withAlt++
		}
	}
	return CoverageScore(withAlt, len(images), 100)
}

func captionCoverageScore(media domain.Media) float64 {
	total := 0
	captioned := 0
	for _, img := range media.Images {
		total++
		if img.HasCaption {
			captioned++
		}
	}
	for _, v := range media.Videos {
		total++
		if v.HasCaptions {
			captioned++
		}
	}
	// Captions are a softer requirement than alt text
	return CoverageScore(captioned, total, 70)
}

func ariaUsageScore(a domain.Accessibility) float64 {
	total := a.AriaAttributeCount + a.AriaRoleCount
	return ScoreTiered(float64(total), []Band{
		{Threshold: 10, Score: 100},
		{Threshold: 5, Score: 80},
		{Threshold: 1, Score: 60},
	}, false, 30)
}

func languageDeclaredScore(ev *domain.Evidence) float64 {
	if ev.Accessibility.HasLangAttribute || ev.Metadata.Language != "" {
		return 100
	}
	return 0
}

func mediaDiversityScore(ev *domain.Evidence) float64 {
	score := 0.0
	if len(ev.Media.Images) > 0 {
		score += 40
	}
	if len(ev.Media.Videos) > 0 {
		score += 30
	}
	if len(ev.Media.Audios) > 0 {
		score += 10
	}
	if ev.Content.Tables.Count > 0 || ev.Content.Lists.Ordered+ev.Content.Lists.Unordered > 0 {
		score += 20
	}
	if score == 0 {
		return 20
	}
	return Clamp(score, 0, 100)
}
