package scoring

import (
	"strings"

	"github.com/answerlens/aeoscan/domain"
)

var (
	voicePhrases        = []string{"how to", "what is", "why does", "where can", "near me", "best way"}
	questionStarters    = []string{"how", "what", "why", "when", "where", "who", "which", "can", "should", "is", "are", "do", "does"}
	conversationalWords = []string{"you", "your", "we", "our", "let's"}
)

// AnalyzeConversationalReadiness scores how well the page matches spoken
// queries and snippet extraction.
func AnalyzeConversationalReadiness(ev *domain.Evidence, faq FAQScoring) map[string]float64 {
	text := ev.Content.BodyText

	return map[string]float64{
		"questionHeadings":   questionHeadingsScore(ev, faq),
		"faqCoverage":        faqCoverageScore(ev, faq),
		"conversationalTone": conversationalToneScore(text),
		"snippetability":     snippetabilityScore(ev.Content.Paragraphs),
		"voiceSearchPhrases": DensityScore(CountPatterns(text, voicePhrases), 20, 100, 15),
		"speakableSchema":    speakableSchemaScore(ev),
	}
}

// IsQuestionHeading reports whether a heading reads as a question: it ends
// with a question mark or opens with an interrogative word.
func IsQuestionHeading(heading string) bool {
	trimmed := strings.TrimSpace(heading)
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	first := strings.ToLower(strings.Fields(trimmed)[0])
	for _, starter := range questionStarters {
		if first == starter {
			return true
		}
	}
	return false
}

// questionHeadingsScore takes the max of the absolute-count and the
// percentage-coverage formulas.
func questionHeadingsScore(ev *domain.Evidence, faq FAQScoring) float64 {
	headings := append(append([]string{}, ev.Content.H2...), ev.Content.H3...)
	if len(headings) == 0 {
		return 10
	}
	questions := 0
	for _, h := range headings {
		if IsQuestionHeading(h) {
			questions++
		}
	}
	if questions == 0 {
		return 10
	}

	countScore := Clamp(float64(questions)*25, 0, 100)
	coverageScore := Clamp(float64(questions)/float64(len(headings))*100*faq.CoverageMultiplier, 0, 100)
	return MaxScore(countScore, coverageScore)
}

func faqCoverageScore(ev *domain.Evidence, faq FAQScoring) float64 {
	countScore := DensityScore(len(ev.Content.FAQPairs), faq.PerPairScore, 100, 0)
	schemaScore := 0.0
	if ev.HasSchemaType("FAQPage") {
		schemaScore = 60
	}
	score := MaxScore(countScore, schemaScore)
	if score == 0 {
		return 10
	}
	return score
}

func conversationalToneScore(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 25
	}
	matches := 0
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'")
		for _, cw := range conversationalWords {
			if w == cw {
				matches++
				break
			}
		}
	}
	density := float64(matches) / float64(len(words)) * 100
	return ScoreTiered(density, []Band{
		{Threshold: 2.0, Score: 100},
		{Threshold: 1.0, Score: 75},
		{Threshold: 0.5, Score: 50},
	}, false, 25)
}

// snippetabilityScore counts answer-sized paragraphs (40-60 words), the
// length voice assistants prefer to read aloud.
func snippetabilityScore(paragraphs []string) float64 {
	snippets := 0
	for _, p := range paragraphs {
		words := CountWords(p)
		if words >= 40 && words <= 60 {
			snippets++
		}
	}
	return ScoreTiered(float64(snippets), []Band{
		{Threshold: 3, Score: 100},
		{Threshold: 2, Score: 75},
		{Threshold: 1, Score: 55},
	}, false, 20)
}

func speakableSchemaScore(ev *domain.Evidence) float64 {
	if ev.HasSchemaType("SpeakableSpecification") || ev.HasSchemaType("Speakable") {
		return 100
	}
	if ev.HasSchemaType("FAQPage") {
		return 60
	}
	return 20
}
