// Package recommend turns detected issues into actionable recommendations
// via a fixed strategy chain: curated library, deterministic generators,
// LLM-backed generation, and a template fallback that always succeeds.
package recommend

import (
	"html"
	"regexp"
	"strings"
)

// Output sections the LLM prompt contract requires.
const (
	SectionTitle       = "TITLE"
	SectionFinding     = "FINDING"
	SectionImpact      = "IMPACT"
	SectionActionSteps = "ACTION STEPS"
	SectionCode        = "CODE"
	SectionQuickWins   = "QUICK WINS"
)

// sectionLabels in contract order. Used to find where one section's content
// ends and the next begins.
var sectionLabels = []string{
	SectionTitle,
	SectionFinding,
	SectionImpact,
	SectionActionSteps,
	SectionCode,
	SectionQuickWins,
}

// Field length clamps applied to extracted LLM text.
const (
	maxTitleLen   = 120
	maxFindingLen = 600
	maxImpactLen  = 600
	maxStepLen    = 300
	maxCodeLen    = 4000
)

type markerMatch struct {
	start        int
	contentStart int
}

// findMarker locates a section marker: the strict bracketed form first,
// then a markdown-heading fallback.
func findMarker(text, label string) (markerMatch, bool) {
	quoted := regexp.QuoteMeta(label)

	bracketed := regexp.MustCompile(`(?i)\[` + quoted + `\]\s*:?`)
	if loc := bracketed.FindStringIndex(text); loc != nil {
		return markerMatch{start: loc[0], contentStart: loc[1]}, true
	}

	heading := regexp.MustCompile(`(?im)^#{1,6}\s*` + quoted + `\s*:?\s*$`)
	if loc := heading.FindStringIndex(text); loc != nil {
		return markerMatch{start: loc[0], contentStart: loc[1]}, true
	}

	// Last resort: a line that is exactly "LABEL:".
	labeled := regexp.MustCompile(`(?im)^` + quoted + `\s*:`)
	if loc := labeled.FindStringIndex(text); loc != nil {
		return markerMatch{start: loc[0], contentStart: loc[1]}, true
	}

	return markerMatch{}, false
}

// ExtractSection returns the content of one labeled section of generated
// text. The second return distinguishes "section absent" from "found but
// empty": a present marker with no content returns ("", true) so the caller
// can decide how to fall back.
func ExtractSection(text, label string) (string, bool) {
	marker, ok := findMarker(text, label)
	if !ok {
		return "", false
	}

	end := len(text)
	for _, other := range sectionLabels {
		if strings.EqualFold(other, label) {
			continue
		}
		if m, ok := findMarker(text, other); ok && m.start >= marker.contentStart && m.start < end {
			end = m.start
		}
	}

	return strings.TrimSpace(text[marker.contentStart:end]), true
}

var (
	numberedStep = regexp.MustCompile(`^\s{0,3}(\d+)[.)]\s+(.*\S)\s*$`)
	nestedStep   = regexp.MustCompile(`^\s*(\d+[.)]\s+|\d+\.\d+[.)]?\s+)`)
	bulletLine   = regexp.MustCompile(`^\s*[-*•]\s+`)
)

// ParseActionSteps parses a flat numbered list into steps. Nested or
// sub-bulleted text violates the contract and returns ok=false so the issue
// falls through to the template strategy.
func ParseActionSteps(text string) ([]string, bool) {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if bulletLine.MatchString(line) {
			return nil, false
		}
		if m := numberedStep.FindStringSubmatch(line); m != nil {
			steps = append(steps, m[2])
			continue
		}
		// A numbered marker that is indented past the list margin, or a
		// dotted marker like "1.1", is a sub-step rather than a
		// continuation line.
		if nestedStep.MatchString(line) {
			return nil, false
		}
		// Wrapped continuation of the previous step is tolerated;
		// loose text before any step is not a list.
		if len(steps) == 0 {
			return nil, false
		}
		steps[len(steps)-1] += " " + trimmed
	}
	if len(steps) == 0 {
		return nil, false
	}
	return steps, true
}

// ParseQuickWins parses an optional loose list: numbered or bulleted lines
// both count, nothing is rejected.
func ParseQuickWins(text string) []string {
	var wins []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		trimmed = bulletLine.ReplaceAllString(trimmed, "")
		if m := numberedStep.FindStringSubmatch(trimmed); m != nil {
			trimmed = m[2]
		}
		wins = append(wins, Sanitize(trimmed, maxStepLen))
	}
	return wins
}

// Sanitize escapes text for embedding in markup and clamps its length at a
// rune boundary.
func Sanitize(s string, max int) string {
	s = html.EscapeString(strings.TrimSpace(s))
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max]) + "..."
	}
	return s
}

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
