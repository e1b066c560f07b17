// Package detector compares subfactor scores against the configured
// thresholds and turns every shortfall into a prioritized Issue.
package detector

import (
	"sort"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
)

// Detector holds the threshold and weight tables. It is pure: the same
// scores always produce the same issue list.
type Detector struct {
	cfg *config.ScoringConfig
}

// New creates a detector for the given rubric.
func New(cfg *config.ScoringConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect emits one Issue per subfactor scoring strictly below its
// threshold. The result is sorted descending by priority; equal priorities
// keep the rubric's (category, subfactor) order. A fully healthy page
// yields an empty list.
func (d *Detector) Detect(categories map[string]domain.CategoryScore, ev *domain.Evidence) []domain.Issue {
	var issues []domain.Issue

	pageURL := ""
	if ev != nil {
		pageURL = ev.URL
	}

	// Iterate in configured order, not map order, so ties break
	// deterministically.
	for i := range d.cfg.Categories {
		cat := &d.cfg.Categories[i]
		cs, ok := categories[cat.Name]
		if !ok {
			continue
		}
		for j := range cat.Subfactors {
			sf := &cat.Subfactors[j]
			score, ok := cs.Subfactors[sf.Name]
			if !ok || score >= sf.Threshold {
				continue
			}
			gap := sf.Threshold - score
			issues = append(issues, domain.Issue{
				Category:      cat.Name,
				Subfactor:     sf.Name,
				CurrentScore:  score,
				Threshold:     sf.Threshold,
				Gap:           gap,
				Severity:      domain.SeverityForGap(gap),
				Priority:      cat.Weight * gap / 10,
				EvidenceSlice: evidenceSlice(sf.Name, ev),
				PageURL:       pageURL,
			})
		}
	}

	sort.SliceStable(issues, func(a, b int) bool {
		return issues[a].Priority > issues[b].Priority
	})
	return issues
}

// evidenceSlice extracts the Evidence subset relevant to one subfactor so
// downstream generators and callers never need the full object.
func evidenceSlice(subfactor string, ev *domain.Evidence) map[string]interface{} {
	if ev == nil {
		return nil
	}

	switch subfactor {
	case "structuredDataScore", "speakableSchema":
		types := make([]string, 0, len(ev.Technical.StructuredData))
		for _, b := range ev.Technical.StructuredData {
			types = append(types, b.Type)
		}
		return map[string]interface{}{
			"schemaTypes": types,
			"blockCount":  len(ev.Technical.StructuredData),
		}
	case "metaTagsScore":
		return map[string]interface{}{
			"title":         ev.Metadata.Title,
			"description":   ev.Metadata.Description,
			"ogTitle":       ev.Metadata.OGTitle,
			"ogDescription": ev.Metadata.OGDescription,
			"ogImage":       ev.Metadata.OGImage,
			"twitterCard":   ev.Metadata.TwitterCard,
		}
	case "faqScore", "faqCoverage":
		return map[string]interface{}{
			"faqPairCount":  len(ev.Content.FAQPairs),
			"hasFAQSchema":  ev.HasSchemaType("FAQPage"),
		}
	case "questionHeadings", "headingHierarchy", "h1Presence", "headingFrequency":
		return map[string]interface{}{
			"h1": ev.Content.H1,
			"h2": ev.Content.H2,
			"h3": ev.Content.H3,
		}
	case "altTextCoverage", "captionCoverage", "mediaDiversity":
		withAlt := 0
		for _, img := range ev.Media.Images {
			if img.HasAlt {
				withAlt++
			}
		}
		return map[string]interface{}{
			"imageCount": len(ev.Media.Images),
			"withAlt":    withAlt,
			"videoCount": len(ev.Media.Videos),
		}
	case "contentLength", "contentDepth":
		return map[string]interface{}{
			"wordCount":      ev.Content.WordCount,
			"paragraphCount": len(ev.Content.Paragraphs),
		}
	case "readabilityScore", "sentenceClarity", "paragraphStructure":
		return map[string]interface{}{
			"wordCount":      ev.Content.WordCount,
			"paragraphCount": len(ev.Content.Paragraphs),
		}
	case "serverResponse":
		slice := map[string]interface{}{}
		if ev.Performance.TTFBMillis != nil {
			slice["ttfbMillis"] = *ev.Performance.TTFBMillis
		}
		return slice
	case "organizationClarity", "brandClarity":
		return map[string]interface{}{
			"organizations": ev.Entities.Organizations,
			"siteName":      ev.Metadata.OGSiteName,
		}
	case "namedEntityDensity", "entityRelationships", "knowledgeGraphDensity":
		return map[string]interface{}{
			"people":        len(ev.Entities.People),
			"organizations": len(ev.Entities.Organizations),
			"places":        len(ev.Entities.Places),
			"products":      len(ev.Entities.Products),
			"relationships": len(ev.Entities.Relationships),
		}
	case "semanticLandmarks":
		return map[string]interface{}{
			"hasHeader":  ev.Structure.HasHeader,
			"hasNav":     ev.Structure.HasNav,
			"hasMain":    ev.Structure.HasMain,
			"hasArticle": ev.Structure.HasArticle,
			"hasFooter":  ev.Structure.HasFooter,
		}
	default:
		return map[string]interface{}{
			"url": ev.URL,
		}
	}
}
