package recommend

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/answerlens/aeoscan/domain"
)

// generateProgrammatic handles the subfactors whose fix is fully derivable
// from Evidence: structured-data markup, FAQ markup, social-preview tags,
// and question-style heading rewrites. It never emits a placeholder: when
// a needed fact is missing from Evidence the field is omitted instead.
func generateProgrammatic(issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool) {
	if ev == nil {
		return nil, false
	}
	switch issue.Subfactor {
	case "structuredDataScore":
		return structuredDataRecommendation(issue, ev)
	case "faqScore", "faqCoverage":
		return faqRecommendation(issue, ev)
	case "metaTagsScore":
		return socialPreviewRecommendation(issue, ev)
	case "questionHeadings":
		return questionHeadingRecommendation(issue, ev)
	default:
		return nil, false
	}
}

// structuredDataRecommendation emits the Organization/WebSite/WebPage triad
// linked by stable @id identifiers, listing only the members genuinely
// absent from the page.
func structuredDataRecommendation(issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool) {
	missing := make([]string, 0, 3)
	for _, t := range []string{"Organization", "WebSite", "WebPage"} {
		if !ev.HasSchemaType(t) {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		// The triad is covered; nothing derivable to add here.
		return nil, false
	}

	origin := siteOrigin(ev.URL)
	orgID := origin + "/#organization"
	siteID := origin + "/#website"
	pageID := ev.URL + "#webpage"

	orgName := ev.Metadata.OGSiteName
	if orgName == "" && len(ev.Entities.Organizations) > 0 {
		orgName = ev.Entities.Organizations[0]
	}

	var graph []map[string]interface{}
	for _, t := range missing {
		switch t {
		case "Organization":
			node := map[string]interface{}{
				"@type": "Organization",
				"@id":   orgID,
				"url":   origin,
			}
			if orgName != "" {
				node["name"] = orgName
			}
			if ev.Metadata.OGImage != "" {
				node["logo"] = ev.Metadata.OGImage
			}
			graph = append(graph, node)
		case "WebSite":
			node := map[string]interface{}{
				"@type":     "WebSite",
				"@id":       siteID,
				"url":       origin,
				"publisher": map[string]interface{}{"@id": orgID},
			}
			if orgName != "" {
				node["name"] = orgName
			}
			graph = append(graph, node)
		case "WebPage":
			node := map[string]interface{}{
				"@type":    "WebPage",
				"@id":      pageID,
				"url":      ev.URL,
				"isPartOf": map[string]interface{}{"@id": siteID},
			}
			if ev.Metadata.Title != "" {
				node["name"] = ev.Metadata.Title
			}
			if ev.Metadata.Description != "" {
				node["description"] = ev.Metadata.Description
			}
			graph = append(graph, node)
		}
	}

	snippet, err := jsonLDSnippet(map[string]interface{}{
		"@context": "https://schema.org",
		"@graph":   graph,
	})
	if err != nil {
		return nil, false
	}

	rec := newRecommendation(issue, domain.GeneratedByProgrammatic)
	rec.Title = fmt.Sprintf("Add %s structured data", strings.Join(missing, ", "))
	if len(ev.Technical.StructuredData) == 0 {
		rec.Finding = "The page carries no structured data at all, so answer engines must guess what it is about and who published it."
	} else {
		rec.Finding = fmt.Sprintf("The page has structured data but is missing the %s markup that identifies the publisher and page for answer engines.", strings.Join(missing, ", "))
	}
	rec.Impact = "Linked Organization, WebSite and WebPage markup lets AI engines attribute the page to a known entity, which is a precondition for being cited."
	rec.ActionSteps = []string{
		"Paste the generated JSON-LD into a script tag in the page head",
		"Replace any omitted fields (name, logo) with your real values",
		"Validate the markup with the schema.org validator",
		"Re-run the analysis to confirm the score improves",
	}
	rec.CodeSnippet = snippet
	return rec, true
}

// faqRecommendation distinguishes the two shortfall shapes: schema present
// without on-page Q&A content (incomplete) and Q&A content present without
// schema (missing markup).
func faqRecommendation(issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool) {
	hasSchema := ev.HasSchemaType("FAQPage")
	pairs := ev.Content.FAQPairs

	switch {
	case hasSchema && len(pairs) == 0:
		rec := newRecommendation(issue, domain.GeneratedByProgrammatic)
		rec.Title = "Complete the FAQ content behind the existing FAQPage markup"
		rec.Finding = "FAQPage structured data is declared, but no visible question-and-answer content was found on the page. The markup is incomplete without matching on-page text."
		rec.Impact = "Answer engines cross-check FAQ markup against visible content; markup without content is ignored or penalized."
		rec.ActionSteps = []string{
			"Add a visible FAQ section with the questions and answers the markup declares",
			"Phrase each question the way a user would ask it aloud",
			"Keep each answer between 40 and 60 words so it can be read out directly",
		}
		return rec, true

	case !hasSchema && len(pairs) > 0:
		snippet, err := faqJSONLD(pairs)
		if err != nil {
			return nil, false
		}
		rec := newRecommendation(issue, domain.GeneratedByProgrammatic)
		rec.Title = "Add FAQPage markup for the existing Q&A content"
		rec.Finding = fmt.Sprintf("The page already answers %d questions but carries no FAQPage structured data, so answer engines cannot lift them as ready-made answers.", len(pairs))
		rec.Impact = "FAQ markup is one of the most directly quoted structured-data types in AI answers and voice responses."
		rec.ActionSteps = []string{
			"Paste the generated FAQPage JSON-LD into a script tag in the page head",
			"Confirm every marked-up question matches the visible text exactly",
			"Validate the markup with the schema.org validator",
		}
		rec.CodeSnippet = snippet
		return rec, true

	default:
		// Neither schema nor content: nothing derivable, let the
		// template strategy frame it.
		return nil, false
	}
}

func faqJSONLD(pairs []domain.QAPair) (string, error) {
	const maxPairs = 10
	if len(pairs) > maxPairs {
		pairs = pairs[:maxPairs]
	}

	entities := make([]map[string]interface{}, 0, len(pairs))
	for _, p := range pairs {
		if p.Question == "" || p.Answer == "" {
			continue
		}
		entities = append(entities, map[string]interface{}{
			"@type": "Question",
			"name":  p.Question,
			"acceptedAnswer": map[string]interface{}{
				"@type": "Answer",
				"text":  p.Answer,
			},
		})
	}
	if len(entities) == 0 {
		return "", fmt.Errorf("no complete question/answer pairs")
	}

	return jsonLDSnippet(map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	})
}

// socialPreviewRecommendation emits meta tags populated only from facts
// already present in Evidence.
func socialPreviewRecommendation(issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool) {
	title := ev.Metadata.OGTitle
	if title == "" {
		title = ev.Metadata.Title
	}
	if title == "" && len(ev.Content.H1) > 0 {
		title = ev.Content.H1[0]
	}
	description := ev.Metadata.OGDescription
	if description == "" {
		description = ev.Metadata.Description
	}

	var tags []string
	if ev.Metadata.OGTitle == "" && title != "" {
		tags = append(tags, metaProperty("og:title", title))
	}
	if ev.Metadata.OGDescription == "" && description != "" {
		tags = append(tags, metaProperty("og:description", description))
	}
	if ev.Metadata.OGImage == "" {
		// No image fact exists in Evidence; do not guess a URL.
		if len(ev.Media.Images) > 0 && ev.Media.Images[0].Src != "" {
			tags = append(tags, metaProperty("og:image", ev.Media.Images[0].Src))
		}
	}
	if ev.Metadata.OGSiteName == "" && len(ev.Entities.Organizations) > 0 {
		tags = append(tags, metaProperty("og:site_name", ev.Entities.Organizations[0]))
	}
	if ev.Metadata.TwitterCard == "" {
		tags = append(tags, `<meta name="twitter:card" content="summary_large_image">`)
	}

	if len(tags) == 0 {
		return nil, false
	}

	rec := newRecommendation(issue, domain.GeneratedByProgrammatic)
	rec.Title = "Complete the social preview meta tags"
	rec.Finding = fmt.Sprintf("%d social preview tags are missing, so shares and AI previews of this page render without a proper title, description or image.", len(tags))
	rec.Impact = "Complete Open Graph and Twitter tags control how the page appears when an assistant or social platform previews it."
	rec.ActionSteps = []string{
		"Add the generated meta tags to the page head",
		"Review the values pulled from the page and adjust wording if needed",
		"Preview the page with a social card validator",
	}
	rec.CodeSnippet = strings.Join(tags, "\n")
	return rec, true
}

func metaProperty(property, content string) string {
	return fmt.Sprintf(`<meta property=%q content=%q>`, property, content)
}

// questionHeadingRecommendation rewrites the page's own headings into
// question form. Only derivable when headings exist.
func questionHeadingRecommendation(issue domain.Issue, ev *domain.Evidence) (*domain.Recommendation, bool) {
	headings := append(append([]string{}, ev.Content.H2...), ev.Content.H3...)
	if len(headings) == 0 {
		return nil, false
	}

	const maxRewrites = 5
	var rewrites []string
	for _, h := range headings {
		if len(rewrites) >= maxRewrites {
			break
		}
		if rewritten, ok := rewriteAsQuestion(h); ok {
			rewrites = append(rewrites, fmt.Sprintf("%q -> %q", h, rewritten))
		}
	}
	if len(rewrites) == 0 {
		return nil, false
	}

	rec := newRecommendation(issue, domain.GeneratedByProgrammatic)
	rec.Title = "Rephrase section headings as questions"
	rec.Finding = fmt.Sprintf("Of %d section headings, none or too few are phrased as questions, so the page does not match how users ask assistants.", len(headings))
	rec.Impact = "Question headings map directly onto spoken queries, making each section an answer candidate."
	rec.ActionSteps = make([]string, 0, len(rewrites)+1)
	for _, r := range rewrites {
		rec.ActionSteps = append(rec.ActionSteps, "Rewrite "+r)
	}
	rec.ActionSteps = append(rec.ActionSteps, "Keep the answer in the first sentence under each rewritten heading")
	return rec, true
}

// rewriteAsQuestion derives a question form from a heading. Headings that
// already read as questions are skipped.
func rewriteAsQuestion(heading string) (string, bool) {
	trimmed := strings.TrimSpace(heading)
	if trimmed == "" || strings.HasSuffix(trimmed, "?") {
		return "", false
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "how to "):
		return "How Do You " + trimmed[len("how to "):] + "?", true
	case strings.HasPrefix(lower, "benefits of "):
		return "What Are the Benefits of " + trimmed[len("benefits of "):] + "?", true
	case len(strings.Fields(trimmed)) <= 6:
		return "What Is " + trimmed + "?", true
	default:
		return "What Should You Know About " + trimmed + "?", true
	}
}

// jsonLDSnippet renders a schema.org object as an embeddable script tag.
// encoding/json sorts map keys, so output is deterministic.
func jsonLDSnippet(payload map[string]interface{}) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return "<script type=\"application/ld+json\">\n" + string(data) + "\n</script>", nil
}

func siteOrigin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimSuffix(raw, "/")
	}
	return u.Scheme + "://" + u.Host
}
