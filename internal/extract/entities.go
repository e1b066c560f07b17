package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/answerlens/aeoscan/domain"
)

// Pattern-based entity detection. Deliberately conservative: a missed
// entity lowers a score slightly, a fabricated one corrupts the knowledge
// graph.
var (
	orgSuffixRe    = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&'-]+(?: [A-Z][A-Za-z0-9&'-]+){0,3}),? (?:Inc|LLC|Ltd|Corp|Corporation|Company|GmbH|AG|Co)\b\.?`)
	personTitleRe  = regexp.MustCompile(`\b(?:Dr|Prof|Mr|Mrs|Ms)\.? ([A-Z][a-z]+ [A-Z][a-z]+)\b`)
	bylineRe       = regexp.MustCompile(`[Bb]y ([A-Z][a-z]+ [A-Z][a-z]+)\b`)
	credentialRe   = regexp.MustCompile(`\b(PhD|Ph\.D\.|MD|M\.D\.|MBA|CPA|PE|RN|JD|CFA)\b`)
	capSequenceRe  = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`)
	capWordRe      = regexp.MustCompile(`^[A-Z][a-z]+`)
	worksAtRe      = regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+)(?:, [A-Za-z .]+,)? (?:at|of|from) ([A-Z][A-Za-z0-9&'-]+(?: [A-Z][A-Za-z0-9&'-]+){0,3})`)
	locatedPhrases = []string{"based in ", "located in ", "headquartered in ", "serving "}
)

func parseEntities(doc *goquery.Document, ev *domain.Evidence) {
	text := ev.Content.BodyText

	ev.Entities.Organizations = dedupeMatches(orgSuffixRe.FindAllString(text, -1), 10)
	ev.Entities.Credentials = dedupeMatches(credentialRe.FindAllString(text, -1), 10)

	people := []string{}
	for _, m := range personTitleRe.FindAllStringSubmatch(text, -1) {
		people = append(people, m[1])
	}
	for _, m := range bylineRe.FindAllStringSubmatch(text, -1) {
		people = append(people, m[1])
	}
	ev.Entities.People = dedupeMatches(people, 10)

	ev.Entities.Places = detectPlaces(text, ev)
	ev.Entities.Products = detectProducts(doc, ev)
	ev.Entities.Relationships = detectRelationships(text, ev)
	ev.Entities.KnowledgeGraph = buildKnowledgeGraph(ev)
}

func detectPlaces(text string, ev *domain.Evidence) []string {
	places := []string{}
	if ev.Metadata.GeoPlacename != "" {
		places = append(places, ev.Metadata.GeoPlacename)
	}
	for _, phrase := range locatedPhrases {
		idx := 0
		for {
			pos := strings.Index(text[idx:], phrase)
			if pos < 0 {
				break
			}
			rest := text[idx+pos+len(phrase):]
			if m := capSequenceRe.FindString(rest); m != "" && strings.HasPrefix(rest, m) {
				places = append(places, m)
			} else if m := capWordRe.FindString(rest); m != "" {
				places = append(places, m)
			}
			idx += pos + len(phrase)
		}
	}
	return dedupeMatches(places, 10)
}

// detectProducts reads Product structured data first, then falls back to
// capitalized phrases near pricing language.
func detectProducts(doc *goquery.Document, ev *domain.Evidence) []string {
	products := []string{}
	for _, block := range ev.Technical.StructuredData {
		if !strings.EqualFold(block.Type, "Product") || block.Raw == "" {
			continue
		}
		for _, name := range jsonLDNames(block.Raw) {
			products = append(products, name)
		}
	}
	if len(products) == 0 {
		doc.Find("[itemtype*='Product'] [itemprop='name']").Each(func(_ int, s *goquery.Selection) {
			if name := normalizeSpace(s.Text()); name != "" {
				products = append(products, name)
			}
		})
	}
	return dedupeMatches(products, 10)
}

func detectRelationships(text string, ev *domain.Evidence) []domain.EntityRelation {
	rels := []domain.EntityRelation{}
	seen := map[string]bool{}
	for _, m := range worksAtRe.FindAllStringSubmatch(text, -1) {
		key := m[1] + "|" + m[2]
		if seen[key] {
			continue
		}
		seen[key] = true
		rels = append(rels, domain.EntityRelation{From: m[1], Relation: "affiliatedWith", To: m[2]})
	}
	if len(rels) > 10 {
		rels = rels[:10]
	}
	return rels
}

// buildKnowledgeGraph projects the detected entities into nodes and the
// detected relationships into edges. Relationship endpoints that were not
// independently detected become nodes too, so every edge resolves.
func buildKnowledgeGraph(ev *domain.Evidence) domain.KnowledgeGraph {
	kg := domain.KnowledgeGraph{Nodes: []domain.KGNode{}, Edges: []domain.KGEdge{}}
	nodeIDs := map[string]bool{}
	addNode := func(label, typ string) {
		if label == "" || nodeIDs[label] {
			return
		}
		nodeIDs[label] = true
		kg.Nodes = append(kg.Nodes, domain.KGNode{ID: label, Label: label, Type: typ})
	}

	for _, p := range ev.Entities.People {
		addNode(p, "person")
	}
	for _, o := range ev.Entities.Organizations {
		addNode(o, "organization")
	}
	for _, p := range ev.Entities.Places {
		addNode(p, "place")
	}
	for _, p := range ev.Entities.Products {
		addNode(p, "product")
	}

	for _, rel := range ev.Entities.Relationships {
		addNode(rel.From, "person")
		addNode(rel.To, "organization")
		kg.Edges = append(kg.Edges, domain.KGEdge{From: rel.From, To: rel.To, Relation: rel.Relation})
	}
	return kg
}

// jsonLDNames pulls top-level name fields from a JSON-LD payload.
func jsonLDNames(raw string) []string {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	if name, ok := payload["name"].(string); ok && name != "" {
		return []string{name}
	}
	return nil
}

// dedupeMatches trims, dedupes preserving first occurrence, and caps the
// list. Output order is deterministic for equal input.
func dedupeMatches(matches []string, max int) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, m := range matches {
		m = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m), ","))
		if m == "" || seen[strings.ToLower(m)] {
			continue
		}
		seen[strings.ToLower(m)] = true
		out = append(out, m)
		if len(out) >= max {
			break
		}
	}
	return out
}
