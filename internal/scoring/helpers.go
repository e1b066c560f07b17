// Package scoring implements the eight pure category analyzers and the
// shared text-metric helpers they are built from. Every function here is
// deterministic and side-effect-free: identical Evidence input always yields
// identical output.
package scoring

import (
	"regexp"
	"strings"
)

// Band pairs a metric threshold with the score awarded when the value
// satisfies it. Band lists are ordered by descending threshold.
type Band struct {
	Threshold float64
	Score     float64
}

// ScoreTiered returns the score of the first band the value satisfies.
// In the default mode higher values are better: the value must be >= the
// band threshold. With reverse set, lower is better and the bands are
// ordered by ascending threshold with value <= threshold matching; this is
// used for latency-like metrics. Values matching no band get the fallback.
func ScoreTiered(value float64, bands []Band, reverse bool, fallback float64) float64 {
	for _, b := range bands {
		if reverse {
			if value <= b.Threshold {
				return b.Score
			}
		} else if value >= b.Threshold {
			return b.Score
		}
	}
	return fallback
}

// CoverageScore returns matching/total as a 0-100 percentage. When total is
// zero there is nothing to cover and emptyScore is returned instead.
func CoverageScore(matching, total int, emptyScore float64) float64 {
	if total <= 0 {
		return emptyScore
	}
	return Clamp(float64(matching)/float64(total)*100, 0, 100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MaxScore returns the larger of two scores. Several question-density
// subfactors compute both a percentage-coverage and an absolute-count score
// and keep the max.
func MaxScore(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on terminal punctuation, dropping fragments
// shorter than two words.
func SplitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(strings.Fields(p)) >= 2 {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSyllables approximates syllables in a word by counting vowel
// clusters, with a silent-e adjustment. Always returns at least 1 for a
// non-empty word.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return r < 'a' || r > 'z'
	}))
	if word == "" {
		return 0
	}

	isVowel := func(c byte) bool {
		switch c {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			return true
		}
		return false
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent trailing e
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

// fleschReadingEase computes the classic reading-ease formula from average
// sentence length and average syllables per word.
func fleschReadingEase(text string) float64 {
	sentences := SplitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*avgSentenceLen - 84.6*avgSyllables
}

// ReadabilityScore maps the reading-ease formula into the discrete
// 20/40/60/80/100 bands. Empty text lands in the lowest band.
func ReadabilityScore(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 20
	}
	ease := fleschReadingEase(text)
	var score float64
	switch {
	case ease >= 70:
		score = 100
	case ease >= 60:
		score = 80
	case ease >= 50:
		score = 60
	case ease >= 30:
		score = 40
	default:
		score = 20
	}
	// The ease formula needs real sentence structure behind it; a wall of
	// fragments cannot earn the top bands.
	if len(SplitSentences(text)) < 3 || CountWords(text) < 20 {
		return Clamp(score, 0, 40)
	}
	return score
}

// CountPatterns counts total case-insensitive occurrences of the given
// literal phrases in text.
func CountPatterns(text string, phrases []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, p := range phrases {
		count += strings.Count(lower, strings.ToLower(p))
	}
	return count
}

// CountRegex counts matches of an already-compiled pattern.
func CountRegex(text string, re *regexp.Regexp) int {
	return len(re.FindAllStringIndex(text, -1))
}

// DensityScore maps an occurrence count to a capped score: base when the
// count is zero, otherwise count*perMatch clamped to cap.
func DensityScore(count int, perMatch, cap, base float64) float64 {
	if count <= 0 {
		return base
	}
	return Clamp(float64(count)*perMatch, 0, cap)
}
