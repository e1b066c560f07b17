package scoring

import (
	"strings"

	"github.com/answerlens/aeoscan/domain"
)

// AnalyzeEntityRecognition scores how clearly the page names and connects
// the entities an answer engine would anchor a citation on.
func AnalyzeEntityRecognition(ev *domain.Evidence) map[string]float64 {
	return map[string]float64{
		"namedEntityDensity":    namedEntityDensityScore(ev.Entities),
		"entityRelationships":   relationshipScore(len(ev.Entities.Relationships)),
		"knowledgeGraphDensity": knowledgeGraphScore(ev.Entities.KnowledgeGraph),
		"brandClarity":          brandClarityScore(ev),
		"productClarity":        productClarityScore(ev),
		"geoSpecificity":        geoSpecificityScore(ev),
	}
}

func namedEntityDensityScore(entities domain.Entities) float64 {
	total := len(entities.People) + len(entities.Organizations) + len(entities.Places) + len(entities.Products)
	return ScoreTiered(float64(total), []Band{
		{Threshold: 11, Score: 100},
		{Threshold: 6, Score: 80},
		{Threshold: 3, Score: 60},
		{Threshold: 1, Score: 40},
	}, false, 10)
}

func relationshipScore(count int) float64 {
	return ScoreTiered(float64(count), []Band{
		{Threshold: 6, Score: 100},
		{Threshold: 3, Score: 75},
		{Threshold: 1, Score: 50},
	}, false, 20)
}

func knowledgeGraphScore(kg domain.KnowledgeGraph) float64 {
	if len(kg.Nodes) == 0 {
		return 10
	}
	if len(kg.Edges) == 0 {
		return 30
	}
	ratio := float64(len(kg.Edges)) / float64(len(kg.Nodes))
	switch {
	case ratio >= 1:
		return 100
	case ratio >= 0.5:
		return 75
	default:
		return 55
	}
}

// brandClarityScore checks that the page names its brand consistently in
// the site name, the title, and the opening text.
func brandClarityScore(ev *domain.Evidence) float64 {
	brand := ev.Metadata.OGSiteName
	if brand == "" && len(ev.Entities.Organizations) > 0 {
		brand = ev.Entities.Organizations[0]
	}
	if brand == "" {
		return 15
	}

	score := 40.0
	lowerBrand := strings.ToLower(brand)
	if strings.Contains(strings.ToLower(ev.Metadata.Title), lowerBrand) {
		score += 30
	}
	if len(ev.Content.Paragraphs) > 0 &&
		strings.Contains(strings.ToLower(ev.Content.Paragraphs[0]), lowerBrand) {
		score += 30
	}
	return score
}

func productClarityScore(ev *domain.Evidence) float64 {
	if len(ev.Entities.Products) == 0 {
		// Not every page sells something; partial credit, low threshold
		return 30
	}
	if ev.HasSchemaType("Product") {
		return 100
	}
	return 60
}

func geoSpecificityScore(ev *domain.Evidence) float64 {
	score := 0.0
	if ev.Metadata.GeoRegion != "" || ev.Metadata.GeoPlacename != "" || ev.Metadata.GeoPosition != "" {
		score += 50
	}
	if len(ev.Entities.Places) > 0 {
		score += Clamp(float64(len(ev.Entities.Places))*25, 0, 50)
	}
	if score == 0 {
		return 20
	}
	return score
}
