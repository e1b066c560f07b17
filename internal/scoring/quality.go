package scoring

import (
	"regexp"
	"sort"
	"strings"

	"github.com/answerlens/aeoscan/domain"
)

var (
	statisticsPattern = regexp.MustCompile(`\d+(\.\d+)?%|\$\d[\d,]*|\b\d{3,}\b`)
	yearPattern       = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	examplePhrases = []string{"for example", "for instance", "e.g.", "such as", "case study", "in practice"}

	stopwords = map[string]bool{
		"the": true, "and": true, "for": true, "are": true, "but": true,
		"not": true, "you": true, "all": true, "can": true, "her": true,
		"was": true, "one": true, "our": true, "out": true, "has": true,
		"have": true, "this": true, "that": true, "with": true, "from": true,
		"they": true, "will": true, "what": true, "when": true, "your": true,
		"which": true, "their": true, "about": true, "would": true, "there": true,
		"more": true, "other": true, "into": true, "than": true, "them": true,
		"these": true, "some": true, "also": true, "been": true, "were": true,
	}
)

// AnalyzeContentQuality scores depth, concreteness, and freshness of the
// page text.
func AnalyzeContentQuality(ev *domain.Evidence) map[string]float64 {
	text := ev.Content.BodyText

	return map[string]float64{
		"contentDepth":     contentDepthScore(ev.Content.WordCount),
		"statisticsUsage":  DensityScore(CountRegex(text, statisticsPattern), 12, 100, 20),
		"exampleUsage":     DensityScore(CountPatterns(text, examplePhrases), 25, 100, 20),
		"citationScore":    citationScore(ev.Structure.ExternalLinks),
		"freshnessSignals": freshnessScore(ev),
		"topicFocus":       topicFocusScore(text),
	}
}

func contentDepthScore(wordCount int) float64 {
	return ScoreTiered(float64(wordCount), []Band{
		{Threshold: 2500, Score: 100},
		{Threshold: 1500, Score: 85},
		{Threshold: 1000, Score: 70},
		{Threshold: 600, Score: 55},
		{Threshold: 300, Score: 40},
	}, false, 20)
}

func citationScore(externalLinks int) float64 {
	return ScoreTiered(float64(externalLinks), []Band{
		{Threshold: 6, Score: 100},
		{Threshold: 3, Score: 70},
		{Threshold: 1, Score: 40},
	}, false, 10)
}

// freshnessScore looks for recent year mentions relative to the extraction
// timestamp. A dateless page reads as stale to answer engines.
func freshnessScore(ev *domain.Evidence) float64 {
	years := yearPattern.FindAllString(ev.Content.BodyText, -1)
	if len(years) == 0 {
		return 30
	}
	currentYear := ev.Timestamp.Year()
	for _, y := range years {
		parsed := int(y[0]-'0')*1000 + int(y[1]-'0')*100 + int(y[2]-'0')*10 + int(y[3]-'0')
		if parsed >= currentYear-1 {
			return 100
		}
	}
	return 60
}

// topicFocusScore measures the density of the most frequent non-stopword
// token. A focused page repeats its topic term without stuffing it.
func topicFocusScore(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < 50 {
		return 30
	}

	freq := make(map[string]int)
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) < 4 || stopwords[w] {
			continue
		}
		freq[w]++
	}
	if len(freq) == 0 {
		return 30
	}

	type wordCount struct {
		word  string
		count int
	}
	counts := make([]wordCount, 0, len(freq))
	for w, c := range freq {
		counts = append(counts, wordCount{w, c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].word < counts[j].word
	})

	density := float64(counts[0].count) / float64(len(words)) * 100
	switch {
	case density >= 0.5 && density <= 3.0:
		return 100
	case density > 3.0 && density <= 5.0:
		return 70
	case density > 5.0:
		return 40
	default:
		return 60
	}
}
