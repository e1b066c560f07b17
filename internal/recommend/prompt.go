package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/answerlens/aeoscan/domain"
)

// BuildPrompt assembles the fixed prompt contract for one issue: page
// context, a compact human-readable evidence summary, and the required
// output sections. The full raw Evidence object is never embedded.
func BuildPrompt(issue domain.Issue, ev *domain.Evidence) string {
	var b strings.Builder

	b.WriteString("You are an answer engine optimization consultant. A web page scored poorly on one factor and needs a concrete, actionable fix.\n\n")

	b.WriteString("[ISSUE]\n")
	fmt.Fprintf(&b, "Page: %s\n", issue.PageURL)
	fmt.Fprintf(&b, "Category: %s\n", issue.Category)
	fmt.Fprintf(&b, "Factor: %s\n", issue.Subfactor)
	fmt.Fprintf(&b, "Current score: %.0f of 100 (minimum expected: %.0f, severity: %s)\n\n", issue.CurrentScore, issue.Threshold, issue.Severity)

	b.WriteString("[PAGE FACTS]\n")
	b.WriteString(EvidenceSummary(issue, ev))
	b.WriteString("\n")

	b.WriteString("[REQUIRED OUTPUT]\n")
	b.WriteString("Respond with exactly these labeled sections:\n")
	b.WriteString("[TITLE] one-line recommendation title\n")
	b.WriteString("[FINDING] what is wrong on this specific page, 2-3 sentences\n")
	b.WriteString("[IMPACT] why it matters for AI citation, 1-2 sentences\n")
	b.WriteString("[ACTION STEPS] a flat numbered list (1. 2. 3.), no sub-bullets\n")
	b.WriteString("[CODE] ready-to-paste markup if applicable, otherwise write none\n")
	b.WriteString("[QUICK WINS] up to three one-line improvements\n")

	return b.String()
}

// EvidenceSummary renders the issue's evidence slice plus a few page-level
// facts as short plain-text lines.
func EvidenceSummary(issue domain.Issue, ev *domain.Evidence) string {
	var lines []string

	if ev != nil {
		if ev.Metadata.Title != "" {
			lines = append(lines, fmt.Sprintf("- Page title: %s", truncateForPrompt(ev.Metadata.Title, 100)))
		}
		lines = append(lines, fmt.Sprintf("- Word count: %d", ev.Content.WordCount))
		if types := schemaTypeList(ev); len(types) > 0 {
			lines = append(lines, fmt.Sprintf("- Structured data present: %s", strings.Join(types, ", ")))
		} else {
			lines = append(lines, "- Structured data present: none")
		}
	}

	// Stable key order keeps prompts deterministic for identical input.
	keys := make([]string, 0, len(issue.EvidenceSlice))
	for k := range issue.EvidenceSlice {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, formatFact(issue.EvidenceSlice[k])))
	}

	if len(lines) == 0 {
		return "- no additional facts extracted\n"
	}
	return strings.Join(lines, "\n") + "\n"
}

func schemaTypeList(ev *domain.Evidence) []string {
	types := make([]string, 0, len(ev.Technical.StructuredData))
	for _, b := range ev.Technical.StructuredData {
		if b.Type != "" {
			types = append(types, b.Type)
		}
	}
	sort.Strings(types)
	return types
}

func formatFact(v interface{}) string {
	switch val := v.(type) {
	case string:
		return truncateForPrompt(val, 120)
	case []string:
		if len(val) == 0 {
			return "none"
		}
		return truncateForPrompt(strings.Join(val, "; "), 200)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func truncateForPrompt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
