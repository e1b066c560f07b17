package scoring

import (
	"github.com/answerlens/aeoscan/domain"
)

// highValueSchemaTypes are the structured-data types answer engines weight
// most heavily when deciding whether a page is machine-citable.
var highValueSchemaTypes = []string{
	"Organization",
	"WebSite",
	"WebPage",
	"Article",
	"FAQPage",
	"Product",
	"BreadcrumbList",
	"HowTo",
	"LocalBusiness",
}

// AnalyzeTechnicalSetup scores machine-readability plumbing: structured
// data, meta tags, canonicalization, and the single server-timing sample.
func AnalyzeTechnicalSetup(ev *domain.Evidence) map[string]float64 {
	return map[string]float64{
		"structuredDataScore": structuredDataScore(ev),
		"metaTagsScore":       metaTagsScore(ev.Metadata),
		"canonicalScore":      boolScore(ev.Technical.HasCanonical, 100, 0),
		"sitemapScore":        boolScore(ev.Technical.HasSitemapRef, 100, 30),
		"viewportScore":       boolScore(ev.Technical.HasViewport, 100, 0),
		"charsetScore":        boolScore(ev.Technical.HasCharset, 100, 0),
		"hreflangScore":       boolScore(ev.Technical.HasHreflang, 100, 30),
		"serverResponse":      serverResponseScore(ev.Performance),
	}
}

func boolScore(present bool, yes, no float64) float64 {
	if present {
		return yes
	}
	return no
}

func structuredDataScore(ev *domain.Evidence) float64 {
	if len(ev.Technical.StructuredData) == 0 {
		return 0
	}
	score := 40.0
	for _, schemaType := range highValueSchemaTypes {
		if ev.HasSchemaType(schemaType) {
			score += 15
		}
	}
	return Clamp(score, 0, 100)
}

func metaTagsScore(m domain.Metadata) float64 {
	present := 0
	for _, field := range []string{m.Title, m.Description, m.OGTitle, m.OGDescription, m.OGImage, m.TwitterCard} {
		if field != "" {
			present++
		}
	}
	return CoverageScore(present, 6, 0)
}

// serverResponseScore uses the reverse tier mode: lower time-to-first-byte
// is better. A missing sample scores as the lowest band.
func serverResponseScore(p domain.Performance) float64 {
	if p.TTFBMillis == nil {
		return 20
	}
	return ScoreTiered(float64(*p.TTFBMillis), []Band{
		{Threshold: 200, Score: 100},
		{Threshold: 500, Score: 80},
		{Threshold: 800, Score: 60},
		{Threshold: 1500, Score: 40},
	}, true, 20)
}
