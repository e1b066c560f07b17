package recommend

import (
	"fmt"

	"github.com/answerlens/aeoscan/domain"
)

// subfactorTemplate is static advice for one subfactor. Findings and
// impacts are fixed text; the numbers come from the issue itself.
type subfactorTemplate struct {
	title   string
	finding string
	impact  string
	steps   []string
}

var subfactorTemplates = map[string]subfactorTemplate{
	"readabilityScore": {
		title:   "Simplify the writing for answer extraction",
		finding: "The page's reading level is harder than answer engines prefer when selecting passages to quote.",
		impact:  "Plain sentences are far more likely to be lifted verbatim into AI answers.",
		steps: []string{
			"Shorten sentences to under 20 words where possible",
			"Replace jargon with plain terms on first use",
			"Break dense paragraphs into two or three sentences each",
		},
	},
	"directAnswerScore": {
		title:   "Answer the page's main question in the opening paragraph",
		finding: "The page does not open with a concise, self-contained answer to its own topic.",
		impact:  "Engines favor pages whose first paragraph can stand alone as the answer.",
		steps: []string{
			"Write a 40 to 60 word summary answer as the first paragraph",
			"State the subject by name in the first sentence",
			"Move background and caveats below the opening answer",
		},
	},
	"contentLength": {
		title:   "Expand the page to substantive depth",
		finding: "The page is too thin for engines to treat it as an authoritative source on its topic.",
		impact:  "Pages with real depth are preferred as citation sources over stubs.",
		steps: []string{
			"Expand the main sections with concrete detail and examples",
			"Add a section for each question users ask about this topic",
			"Aim for comprehensive coverage rather than padding",
		},
	},
	"h1Presence": {
		title:   "Use exactly one H1 heading",
		finding: "The page does not have exactly one H1, so engines cannot reliably identify its primary topic.",
		impact:  "A single clear H1 anchors the whole page's topical identity.",
		steps: []string{
			"Set one H1 that names the page's topic",
			"Demote any additional H1 headings to H2",
		},
	},
	"headingHierarchy": {
		title:   "Fix the heading hierarchy",
		finding: "Heading levels are missing or skip steps, which obscures the page's structure.",
		impact:  "A clean H1 to H3 outline lets engines map sections to subtopics.",
		steps: []string{
			"Ensure H2 sections sit under the H1 and H3 under H2",
			"Never skip a level when nesting headings",
			"Make each heading describe its section's content",
		},
	},
	"serverResponse": {
		title:   "Reduce server response time",
		finding: "The server takes too long to start sending the page, which slows every crawl and render.",
		impact:  "Fast time to first byte keeps crawlers and answer engines willing to fetch the page often.",
		steps: []string{
			"Enable caching for the page at the server or CDN layer",
			"Profile the backend for slow queries on this route",
			"Serve the page from an edge location close to users",
		},
	},
	"altTextCoverage": {
		title:   "Add alt text to every content image",
		finding: "Some images lack alt text, so their content is invisible to engines and assistive tools.",
		impact:  "Alt text makes image content quotable and keeps the page accessible.",
		steps: []string{
			"Write a one-sentence description for each image missing alt text",
			"Describe what the image shows, not that it is an image",
			"Leave alt empty only for purely decorative images",
		},
	},
	"citationScore": {
		title:   "Cite authoritative external sources",
		finding: "The page makes claims without linking to external sources that back them up.",
		impact:  "Outbound citations to recognized sources are a strong trust signal for answer engines.",
		steps: []string{
			"Link each statistic or factual claim to its original source",
			"Prefer primary sources and recognized institutions",
		},
	},
	"freshnessSignals": {
		title:   "Update the page and show its currency",
		finding: "The page shows no recent dates, so engines cannot tell whether it is still accurate.",
		impact:  "Visible recency keeps the page eligible for time-sensitive answers.",
		steps: []string{
			"Review the content and update anything out of date",
			"Display a visible last-updated date near the top",
			"Refresh any statistics older than two years",
		},
	},
	"authorCredentials": {
		title:   "Show who wrote the page and why they are qualified",
		finding: "No author or credentials are visible, so the content has no attributable expertise.",
		impact:  "Named, credentialed authors make the page citable as an expert source.",
		steps: []string{
			"Add an author byline with name and role",
			"Link the byline to an author bio page",
			"Mention relevant credentials or experience in the bio",
		},
	},
}

// generateTemplate is the terminal strategy: it always produces a
// recommendation. Known subfactors get curated static text; everything
// else gets a generic framing built from the issue's own numbers.
func generateTemplate(issue domain.Issue) *domain.Recommendation {
	rec := newRecommendation(issue, domain.GeneratedByTemplate)

	if tpl, ok := subfactorTemplates[issue.Subfactor]; ok {
		rec.Title = tpl.title
		rec.Finding = tpl.finding
		rec.Impact = tpl.impact
		rec.ActionSteps = append([]string{}, tpl.steps...)
		return rec
	}

	rec.Title = fmt.Sprintf("Improve %s", humanizeSubfactor(issue.Subfactor))
	rec.Finding = fmt.Sprintf("This page scores %.0f out of 100 for %s, below the %.0f needed for answer-engine readiness.",
		issue.CurrentScore, humanizeSubfactor(issue.Subfactor), issue.Threshold)
	rec.Impact = fmt.Sprintf("Closing this %.0f point gap in the %s category raises the page's overall readiness.",
		issue.Gap, humanizeCategory(issue.Category))
	rec.ActionSteps = []string{
		fmt.Sprintf("Review the page's %s against the factors in the report", humanizeSubfactor(issue.Subfactor)),
		"Apply the category guidance and re-run the analysis",
	}
	return rec
}
