package scoring

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
)

// richEvidence builds a fixture for a well-optimized page.
func richEvidence() *domain.Evidence {
	ttfb := int64(150)
	body := strings.Repeat("Answer engines prefer concise pages. We explain the topic with clear words. For example, this page uses lists. According to research, structure helps. ", 60)

	ev := domain.NewEvidence("https://example.com/guide")
	ev.Timestamp = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ev.Metadata = domain.Metadata{
		Title:         "What Is Answer Engine Optimization? | Acme",
		Description:   "A complete guide to answer engine optimization.",
		OGTitle:       "What Is Answer Engine Optimization?",
		OGDescription: "A complete guide.",
		OGImage:       "https://example.com/og.png",
		OGSiteName:    "Acme",
		TwitterCard:   "summary_large_image",
		Canonical:     "https://example.com/guide",
		Language:      "en",
	}
	ev.Content = domain.Content{
		H1: []string{"What Is Answer Engine Optimization?"},
		H2: []string{"How does it work?", "Why does it matter?", "What should you do first?"},
		H3: []string{"Common mistakes", "Quick checklist"},
		Paragraphs: []string{
			"Answer engine optimization is a practice that prepares a page for citation by AI assistants. It focuses on clear answers, structured markup, and trustworthy signals so engines can quote the page directly and with confidence.",
			strings.Repeat("Clear words help. ", 20),
			strings.Repeat("Short sentences win. ", 18),
		},
		Lists:     domain.ListSummary{Ordered: 2, Unordered: 3, TotalItems: 24},
		Tables:    domain.TableSummary{Count: 1, WithHeaders: 1},
		FAQPairs:  []domain.QAPair{{Question: "What is AEO?", Answer: "It is optimization for answer engines."}, {Question: "How long does it take?", Answer: "Most fixes land within a week."}, {Question: "Does it help SEO?", Answer: "Yes, the signals overlap."}},
		WordCount: CountWords(body),
		CharCount: len(body),
		BodyText:  body + " Updated in 2026. Our certified experts wrote this with 12 years of experience. Trusted by 500 customers. Contact us. Privacy policy.",
	}
	ev.Structure = domain.Structure{
		HasHeader: true, HasNav: true, HasMain: true, HasArticle: true, HasAside: true, HasFooter: true,
		HeadingCounts: map[string]int{"h1": 1, "h2": 3, "h3": 2},
		InternalLinks: 14, ExternalLinks: 7,
		HasTOC: true, HasBreadcrumbs: true,
	}
	ev.Media = domain.Media{
		Images: []domain.ImageInfo{
			{Src: "a.png", Alt: "diagram of the scoring flow", HasAlt: true, HasCaption: true},
			{Src: "b.png", Alt: "example markup", HasAlt: true},
		},
		Videos: []domain.VideoInfo{{Src: "intro.mp4", HasCaptions: true}},
	}
	ev.Technical = domain.Technical{
		StructuredData: []domain.StructuredDataBlock{
			{Type: "Organization", Raw: "{}"},
			{Type: "WebSite", Raw: "{}"},
			{Type: "WebPage", Raw: "{}"},
			{Type: "FAQPage", Raw: "{}"},
		},
		HasCanonical: true, HasViewport: true, HasCharset: true, HasSitemapRef: true, HTTPS: true,
	}
	ev.Performance = domain.Performance{TTFBMillis: &ttfb}
	ev.Accessibility = domain.Accessibility{
		AriaAttributeCount: 8, AriaRoleCount: 4, LabelCoverage: 1.0, HasLangAttribute: true,
	}
	ev.Entities = domain.Entities{
		People:        []string{"Jane Smith"},
		Organizations: []string{"Acme"},
		Places:        []string{"Berlin"},
		Products:      []string{"Acme Analyzer"},
		Credentials:   []string{"PhD", "Certified Analyst"},
		Relationships: []domain.EntityRelation{
			{From: "Jane Smith", Relation: "worksFor", To: "Acme"},
			{From: "Acme", Relation: "makes", To: "Acme Analyzer"},
			{From: "Acme", Relation: "locatedIn", To: "Berlin"},
		},
		KnowledgeGraph: domain.KnowledgeGraph{
			Nodes: []domain.KGNode{{ID: "jane", Label: "Jane Smith", Type: "Person"}, {ID: "acme", Label: "Acme", Type: "Organization"}, {ID: "prod", Label: "Acme Analyzer", Type: "Product"}},
			Edges: []domain.KGEdge{{From: "jane", To: "acme", Relation: "worksFor"}, {From: "acme", To: "prod", Relation: "makes"}, {From: "acme", To: "berlin", Relation: "locatedIn"}},
		},
	}
	return ev
}

// sparseEvidence builds a degenerate thin page: 50 words, no images,
// no structured data.
func sparseEvidence() *domain.Evidence {
	body := strings.Repeat("word ", 50)
	ev := domain.NewEvidence("https://example.com/thin")
	ev.Timestamp = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ev.Content.BodyText = body
	ev.Content.WordCount = 50
	ev.Content.Paragraphs = []string{body}
	return ev
}

func defaultEngine() *Engine {
	return NewEngine(&config.DefaultConfig().Scoring)
}

func TestEngine_Determinism(t *testing.T) {
	engine := defaultEngine()
	ev := richEvidence()

	first, firstTotal := engine.Analyze(ev)
	for i := 0; i < 5; i++ {
		again, againTotal := engine.Analyze(ev)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Run %d produced different category scores", i)
		}
		if firstTotal != againTotal {
			t.Fatalf("Run %d produced different total: %v vs %v", i, firstTotal, againTotal)
		}
	}
}

func TestEngine_AllCategoriesPresent(t *testing.T) {
	engine := defaultEngine()
	categories, _ := engine.Analyze(richEvidence())

	if len(categories) != 8 {
		t.Fatalf("Expected 8 categories, got %d", len(categories))
	}
	for name, cs := range categories {
		if cs.Score < 0 || cs.Score > 100 {
			t.Errorf("Category %s score %v out of [0,100]", name, cs.Score)
		}
		if len(cs.Subfactors) == 0 {
			t.Errorf("Category %s has no subfactors", name)
		}
		for sf, score := range cs.Subfactors {
			if score < 0 || score > 100 {
				t.Errorf("Subfactor %s.%s score %v out of [0,100]", name, sf, score)
			}
		}
	}
}

func TestEngine_TotalClamped(t *testing.T) {
	engine := defaultEngine()

	_, richTotal := engine.Analyze(richEvidence())
	if richTotal < 0 || richTotal > 100 {
		t.Errorf("Rich total %v out of [0,100]", richTotal)
	}

	_, sparseTotal := engine.Analyze(sparseEvidence())
	if sparseTotal < 0 || sparseTotal > 100 {
		t.Errorf("Sparse total %v out of [0,100]", sparseTotal)
	}

	if sparseTotal >= richTotal {
		t.Errorf("Sparse page (%v) should score below rich page (%v)", sparseTotal, richTotal)
	}
}

func TestTotalScore_AdversarialInputs(t *testing.T) {
	allLow := map[string]domain.CategoryScore{}
	allHigh := map[string]domain.CategoryScore{}
	cfg := config.DefaultConfig()
	for _, cat := range cfg.Scoring.Categories {
		allLow[cat.Name] = domain.CategoryScore{Score: 0, Weight: cat.Weight}
		allHigh[cat.Name] = domain.CategoryScore{Score: 100, Weight: cat.Weight}
	}

	if got := TotalScore(allLow); got != 0 {
		t.Errorf("All-zero total = %v, expected 0", got)
	}
	if got := TotalScore(allHigh); got < 99.999 || got > 100 {
		t.Errorf("All-hundred total = %v, expected 100", got)
	}
}

// A page with zero images, zero structured data, and 50 words of body
// text scores near the bottom for aiReadability and technicalSetup.
func TestEngine_SparsePageScenario(t *testing.T) {
	engine := defaultEngine()
	categories, _ := engine.Analyze(sparseEvidence())

	readability := categories[config.CategoryAIReadability]
	if readability.Score > 40 {
		t.Errorf("aiReadability for sparse page = %v, expected at most 40", readability.Score)
	}

	technical := categories[config.CategoryTechnicalSetup]
	if technical.Score > 40 {
		t.Errorf("technicalSetup for sparse page = %v, expected at most 40", technical.Score)
	}
	if technical.Subfactors["structuredDataScore"] != 0 {
		t.Errorf("structuredDataScore = %v, expected 0 with no structured data", technical.Subfactors["structuredDataScore"])
	}

	// The lone 50-word paragraph is the whole page, not an answer-first
	// opener, so it earns no direct-answer length credit
	if got := readability.Subfactors["directAnswerScore"]; got != 20 {
		t.Errorf("directAnswerScore for sparse page = %v, expected 20", got)
	}
	if got := readability.Subfactors["readabilityScore"]; got > 40 {
		t.Errorf("readabilityScore for sparse page = %v, expected at most 40", got)
	}
}

// FAQPage schema plus five on-page pairs scores well above the faqScore
// threshold.
func TestEngine_FAQPresentScenario(t *testing.T) {
	ev := richEvidence()
	ev.Content.FAQPairs = []domain.QAPair{
		{Question: "Q1?", Answer: "A1"}, {Question: "Q2?", Answer: "A2"},
		{Question: "Q3?", Answer: "A3"}, {Question: "Q4?", Answer: "A4"},
		{Question: "Q5?", Answer: "A5"},
	}

	engine := defaultEngine()
	categories, _ := engine.Analyze(ev)

	faqScore := categories[config.CategoryContentStructure].Subfactors["faqScore"]
	threshold := config.DefaultConfig().Scoring.Category(config.CategoryContentStructure).Subfactor("faqScore").Threshold
	if faqScore < threshold {
		t.Errorf("faqScore = %v, expected at least the %v threshold", faqScore, threshold)
	}
}

func TestEngine_UnknownCategory(t *testing.T) {
	engine := defaultEngine()
	if _, ok := engine.AnalyzeCategory("nope", richEvidence()); ok {
		t.Error("Unknown category should return ok=false")
	}
}

func TestServerResponseScore_ReverseMode(t *testing.T) {
	fast := int64(100)
	slow := int64(3000)

	fastScore := serverResponseScore(domain.Performance{TTFBMillis: &fast})
	slowScore := serverResponseScore(domain.Performance{TTFBMillis: &slow})
	missing := serverResponseScore(domain.Performance{})

	if fastScore != 100 {
		t.Errorf("Fast TTFB scored %v, expected 100", fastScore)
	}
	if slowScore != 20 {
		t.Errorf("Slow TTFB scored %v, expected 20", slowScore)
	}
	if missing != 20 {
		t.Errorf("Missing TTFB should score as the lowest band, got %v", missing)
	}
}

func TestQuestionHeadings_MaxOfTwoScores(t *testing.T) {
	ev := domain.NewEvidence("https://example.com")
	ev.Content.H2 = []string{"How does it work?", "Pricing"}

	// 1 question of 2 headings: count score 25, coverage score
	// 1/2*100*2.0 = 100; max wins.
	got := questionHeadingsScore(ev, DefaultFAQScoring())
	if got != 100 {
		t.Errorf("questionHeadingsScore = %v, expected coverage formula to win with 100", got)
	}
}

func TestIsQuestionHeading(t *testing.T) {
	tests := []struct {
		heading  string
		expected bool
	}{
		{"How does scoring work?", true},
		{"What is AEO", true},
		{"Pricing", false},
		{"Can you trust us?", true},
		{"", false},
		{"Overview of features", false},
	}

	for _, tt := range tests {
		if got := IsQuestionHeading(tt.heading); got != tt.expected {
			t.Errorf("IsQuestionHeading(%q) = %v, expected %v", tt.heading, got, tt.expected)
		}
	}
}

func TestAltTextCoverage_NoImages(t *testing.T) {
	if got := altTextCoverageScore(nil); got != 100 {
		t.Errorf("No images should score 100, got %v", got)
	}
	images := []domain.ImageInfo{{HasAlt: true}, {HasAlt: false}}
	if got := altTextCoverageScore(images); got != 50 {
		t.Errorf("Half coverage should score 50, got %v", got)
	}
}
