package scoring

import (
	"strings"

	"github.com/answerlens/aeoscan/domain"
)

var definitionPhrases = []string{" is a ", " is an ", " is the ", " refers to ", " means ", " stands for "}

// AnalyzeAIReadability scores how easily an answer engine can lift a direct,
// plainly-worded answer from the page text.
func AnalyzeAIReadability(ev *domain.Evidence) map[string]float64 {
	text := ev.Content.BodyText

	return map[string]float64{
		"readabilityScore":   ReadabilityScore(text),
		"sentenceClarity":    sentenceClarityScore(text),
		"paragraphStructure": paragraphStructureScore(ev.Content.Paragraphs),
		"directAnswerScore":  directAnswerScore(ev),
		"contentLength":      contentLengthScore(ev.Content.WordCount),
		"listUsage":          listUsageScore(ev.Content.Lists),
	}
}

func sentenceClarityScore(text string) float64 {
	sentences := SplitSentences(text)
	if len(sentences) < 3 {
		return 30
	}
	words := CountWords(text)
	avg := float64(words) / float64(len(sentences))
	return ScoreTiered(avg, []Band{
		{Threshold: 28, Score: 30},
		{Threshold: 22, Score: 50},
		{Threshold: 18, Score: 70},
		{Threshold: 14, Score: 85},
	}, false, 100)
}

func paragraphStructureScore(paragraphs []string) float64 {
	if len(paragraphs) < 3 {
		return 30
	}
	totalWords := 0
	for _, p := range paragraphs {
		totalWords += CountWords(p)
	}
	avg := float64(totalWords) / float64(len(paragraphs))
	switch {
	case avg <= 40:
		return 70
	case avg <= 90:
		return 100
	case avg <= 130:
		return 80
	case avg <= 180:
		return 55
	default:
		return 30
	}
}

// directAnswerScore rewards an opening paragraph that answers the page's
// topic outright: 40-80 words, definition-style phrasing, early placement.
func directAnswerScore(ev *domain.Evidence) float64 {
	if len(ev.Content.Paragraphs) == 0 {
		return 20
	}
	first := ev.Content.Paragraphs[0]
	words := CountWords(first)

	score := 20.0
	// Length credit only applies when the opener summarizes a larger page;
	// on a page this thin the paragraph is not an answer, it is the page.
	if ev.Content.WordCount >= 100 {
		if words >= 40 && words <= 80 {
			score += 40
		} else if words >= 20 && words <= 120 {
			score += 20
		}
	}

	lower := " " + strings.ToLower(first) + " "
	for _, phrase := range definitionPhrases {
		if strings.Contains(lower, phrase) {
			score += 30
			break
		}
	}

	// Questions in the opening headings suggest an answer-first layout
	if len(ev.Content.H1) > 0 && strings.Contains(ev.Content.H1[0], "?") {
		score += 10
	}

	return Clamp(score, 0, 100)
}

func contentLengthScore(wordCount int) float64 {
	return ScoreTiered(float64(wordCount), []Band{
		{Threshold: 2000, Score: 100},
		{Threshold: 1200, Score: 85},
		{Threshold: 800, Score: 70},
		{Threshold: 400, Score: 55},
		{Threshold: 200, Score: 40},
		{Threshold: 100, Score: 25},
	}, false, 10)
}

func listUsageScore(lists domain.ListSummary) float64 {
	total := lists.Ordered + lists.Unordered
	return ScoreTiered(float64(total), []Band{
		{Threshold: 3, Score: 100},
		{Threshold: 2, Score: 80},
		{Threshold: 1, Score: 60},
	}, false, 20)
}
