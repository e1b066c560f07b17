package recommend

import (
	"context"
	"strings"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/llm"
)

// generateLLM attempts the LLM-backed strategy for one issue. Any failure
// (transport error, missing sections, nested action steps) returns ok=false
// so the caller falls through to the template strategy; failures never
// propagate.
func generateLLM(ctx context.Context, completer llm.Completer, issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool) {
	if completer == nil {
		return nil, false
	}

	raw, err := completer.Complete(ctx, BuildPrompt(issue, ev))
	if err != nil {
		return nil, false
	}

	return parseLLMResponse(raw, issue)
}

// parseLLMResponse validates and converts untrusted generated text into a
// Recommendation. The title, finding, and action-steps sections are
// mandatory; impact is back-filled by the generator when absent.
func parseLLMResponse(raw string, issue domain.Issue) (*domain.Recommendation, bool) {
	title, ok := ExtractSection(raw, SectionTitle)
	if !ok || title == "" {
		return nil, false
	}
	finding, ok := ExtractSection(raw, SectionFinding)
	if !ok || finding == "" {
		return nil, false
	}

	stepsText, ok := ExtractSection(raw, SectionActionSteps)
	if !ok || stepsText == "" {
		return nil, false
	}
	steps, ok := ParseActionSteps(stepsText)
	if !ok {
		return nil, false
	}

	rec := newRecommendation(issue, domain.GeneratedByLLM)
	rec.Title = Sanitize(firstLine(title), maxTitleLen)
	rec.Finding = Sanitize(finding, maxFindingLen)

	if impact, ok := ExtractSection(raw, SectionImpact); ok && impact != "" {
		rec.Impact = Sanitize(impact, maxImpactLen)
	}

	rec.ActionSteps = make([]string, 0, len(steps))
	for _, s := range steps {
		rec.ActionSteps = append(rec.ActionSteps, Sanitize(s, maxStepLen))
	}

	if code, ok := ExtractSection(raw, SectionCode); ok {
		code = stripCodeFence(code)
		if code != "" && !strings.EqualFold(code, "none") {
			if len(code) > maxCodeLen {
				code = code[:maxCodeLen]
			}
			rec.CodeSnippet = code
		}
	}

	if wins, ok := ExtractSection(raw, SectionQuickWins); ok && wins != "" {
		if parsed := ParseQuickWins(wins); len(parsed) > 0 {
			if len(parsed) > 3 {
				parsed = parsed[:3]
			}
			rec.QuickWins = parsed
		}
	}

	return rec, true
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
