package recommend

import (
	"strings"
	"testing"

	"github.com/answerlens/aeoscan/domain"
)

func testIssue(category, subfactor string, score, threshold float64) domain.Issue {
	gap := threshold - score
	return domain.Issue{
		Category:     category,
		Subfactor:    subfactor,
		CurrentScore: score,
		Threshold:    threshold,
		Gap:          gap,
		Severity:     domain.SeverityForGap(gap),
		Priority:     0.15 * gap / 10,
		PageURL:      "https://example.com/guide",
	}
}

func TestStructuredDataEmitsOnlyMissingTypes(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Metadata.OGSiteName = "Example Co"
	ev.Technical.StructuredData = []domain.StructuredDataBlock{{Type: "Organization"}}

	rec, ok := generateProgrammatic(testIssue("technicalSetup", "structuredDataScore", 40, 70), ev)
	if !ok {
		t.Fatal("expected a programmatic recommendation")
	}
	if rec.GeneratedBy != domain.GeneratedByProgrammatic {
		t.Errorf("GeneratedBy = %q", rec.GeneratedBy)
	}
	if !strings.Contains(rec.CodeSnippet, `"WebSite"`) || !strings.Contains(rec.CodeSnippet, `"WebPage"`) {
		t.Error("snippet should cover the missing WebSite and WebPage types")
	}
	if strings.Contains(rec.Title, "Organization") {
		t.Errorf("title should not list the already-present type: %q", rec.Title)
	}
	if !strings.Contains(rec.CodeSnippet, "#website") {
		t.Error("snippet should link nodes with @id identifiers")
	}
}

func TestStructuredDataNothingMissing(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Technical.StructuredData = []domain.StructuredDataBlock{
		{Type: "Organization"}, {Type: "WebSite"}, {Type: "WebPage"},
	}
	if _, ok := generateProgrammatic(testIssue("technicalSetup", "structuredDataScore", 60, 70), ev); ok {
		t.Error("no recommendation expected when the triad is already present")
	}
}

func TestFAQSchemaWithoutContentFramedAsIncomplete(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Technical.StructuredData = []domain.StructuredDataBlock{{Type: "FAQPage"}}

	rec, ok := generateProgrammatic(testIssue("contentStructure", "faqScore", 30, 60), ev)
	if !ok {
		t.Fatal("expected a programmatic recommendation")
	}
	if !strings.Contains(rec.Finding, "incomplete") {
		t.Errorf("finding should frame the markup as incomplete: %q", rec.Finding)
	}
	if rec.CodeSnippet != "" {
		t.Error("no snippet expected when the fix is writing content, not markup")
	}
}

func TestFAQContentWithoutSchemaGetsJSONLD(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Content.FAQPairs = []domain.QAPair{
		{Question: "What is AEO?", Answer: "Optimizing pages so answer engines can cite them."},
		{Question: "Why does it matter?", Answer: "Assistants answer directly instead of listing links."},
	}

	rec, ok := generateProgrammatic(testIssue("contentStructure", "faqScore", 40, 60), ev)
	if !ok {
		t.Fatal("expected a programmatic recommendation")
	}
	if !strings.Contains(rec.CodeSnippet, `"FAQPage"`) {
		t.Error("snippet should declare a FAQPage")
	}
	if !strings.Contains(rec.CodeSnippet, "What is AEO?") {
		t.Error("snippet should carry the page's own questions")
	}
}

func TestFAQNeitherContentNorSchemaFallsThrough(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	if _, ok := generateProgrammatic(testIssue("contentStructure", "faqScore", 0, 60), ev); ok {
		t.Error("expected fall-through when nothing is derivable")
	}
}

func TestSocialPreviewTagsBuiltFromExistingFacts(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Content.H1 = []string{"A Practical Guide to AEO"}
	ev.Metadata.Description = "How to make a page citable by answer engines."

	rec, ok := generateProgrammatic(testIssue("technicalSetup", "metaTagsScore", 30, 75), ev)
	if !ok {
		t.Fatal("expected a programmatic recommendation")
	}
	if !strings.Contains(rec.CodeSnippet, "A Practical Guide to AEO") {
		t.Error("og:title should fall back to the H1")
	}
	if strings.Contains(rec.CodeSnippet, "placeholder") || strings.Contains(rec.CodeSnippet, "TODO") {
		t.Errorf("snippet must never contain placeholders: %q", rec.CodeSnippet)
	}
	if strings.Contains(rec.CodeSnippet, "og:image") {
		t.Error("og:image must be omitted when no image fact exists")
	}
}

func TestQuestionHeadingRewrites(t *testing.T) {
	cases := []struct {
		heading string
		want    string
	}{
		{"How to Measure AEO Readiness", "How Do You Measure AEO Readiness?"},
		{"Pricing", "What Is Pricing?"},
		{"The Complete History of Search Engine Answer Boxes Since 2014", "What Should You Know About The Complete History of Search Engine Answer Boxes Since 2014?"},
	}
	for _, tc := range cases {
		got, ok := rewriteAsQuestion(tc.heading)
		if !ok {
			t.Errorf("rewriteAsQuestion(%q) not ok", tc.heading)
			continue
		}
		if got != tc.want {
			t.Errorf("rewriteAsQuestion(%q) = %q, want %q", tc.heading, got, tc.want)
		}
	}

	if _, ok := rewriteAsQuestion("Is This Already a Question?"); ok {
		t.Error("existing questions should be skipped")
	}
}

func TestQuestionHeadingRecommendationUsesPageHeadings(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Content.H2 = []string{"How to Start", "Benefits of Structured Data"}

	rec, ok := generateProgrammatic(testIssue("conversationalReadiness", "questionHeadings", 20, 60), ev)
	if !ok {
		t.Fatal("expected a programmatic recommendation")
	}
	joined := strings.Join(rec.ActionSteps, "\n")
	if !strings.Contains(joined, "How Do You Start?") {
		t.Errorf("steps should rewrite the page's own headings: %v", rec.ActionSteps)
	}
}

func TestQuestionHeadingNoHeadingsFallsThrough(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	if _, ok := generateProgrammatic(testIssue("conversationalReadiness", "questionHeadings", 0, 60), ev); ok {
		t.Error("expected fall-through when the page has no headings to rewrite")
	}
}

func TestProgrammaticDeterministic(t *testing.T) {
	ev := domain.NewEvidence("https://example.com/guide")
	ev.Metadata.Title = "Guide"
	issue := testIssue("technicalSetup", "structuredDataScore", 0, 70)

	first, ok := generateProgrammatic(issue, ev)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	for i := 0; i < 3; i++ {
		again, ok := generateProgrammatic(issue, ev)
		if !ok {
			t.Fatal("expected a recommendation on repeat")
		}
		if again.CodeSnippet != first.CodeSnippet {
			t.Fatal("snippet differs between identical runs")
		}
	}
}
