package extract

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/answerlens/aeoscan/domain"
)

// ParseHTML parses a page into Evidence. Network-independent so tests and
// offline callers can feed stored HTML directly.
func ParseHTML(pageURL string, r io.Reader) (*domain.Evidence, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, domain.NewExtractionError("failed to parse html", err)
	}

	ev := domain.NewEvidence(pageURL)
	ev.Technical.HTTPS = strings.HasPrefix(pageURL, "https://")

	parseMetadata(doc, ev)
	parseContent(doc, ev)
	parseStructure(doc, ev, pageURL)
	parseMedia(doc, ev)
	parseTechnical(doc, ev)
	parseAccessibility(doc, ev)
	parseEntities(doc, ev)

	return ev, nil
}

func parseMetadata(doc *goquery.Document, ev *domain.Evidence) {
	ev.Metadata.Title = strings.TrimSpace(doc.Find("title").First().Text())
	ev.Metadata.Language = strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))
	ev.Metadata.Canonical = doc.Find(`link[rel="canonical"]`).AttrOr("href", "")

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		switch strings.ToLower(s.AttrOr("name", "")) {
		case "description":
			ev.Metadata.Description = content
		case "twitter:card":
			ev.Metadata.TwitterCard = content
		case "twitter:title":
			ev.Metadata.TwitterTitle = content
		case "twitter:description":
			ev.Metadata.TwitterDescription = content
		case "twitter:image":
			ev.Metadata.TwitterImage = content
		case "geo.region":
			ev.Metadata.GeoRegion = content
		case "geo.placename":
			ev.Metadata.GeoPlacename = content
		case "geo.position", "icbm":
			ev.Metadata.GeoPosition = content
		}
		switch strings.ToLower(s.AttrOr("property", "")) {
		case "og:title":
			ev.Metadata.OGTitle = content
		case "og:description":
			ev.Metadata.OGDescription = content
		case "og:image":
			ev.Metadata.OGImage = content
		case "og:site_name":
			ev.Metadata.OGSiteName = content
		case "og:type":
			ev.Metadata.OGType = content
		}
	})
}

func parseContent(doc *goquery.Document, ev *domain.Evidence) {
	collect := func(selector string) []string {
		out := []string{}
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if text := normalizeSpace(s.Text()); text != "" {
				out = append(out, text)
			}
		})
		return out
	}
	ev.Content.H1 = collect("h1")
	ev.Content.H2 = collect("h2")
	ev.Content.H3 = collect("h3")
	ev.Content.H4 = collect("h4")
	ev.Content.Paragraphs = collect("p")

	doc.Find("ul").Each(func(_ int, s *goquery.Selection) {
		ev.Content.Lists.Unordered++
		ev.Content.Lists.TotalItems += s.ChildrenFiltered("li").Length()
	})
	doc.Find("ol").Each(func(_ int, s *goquery.Selection) {
		ev.Content.Lists.Ordered++
		ev.Content.Lists.TotalItems += s.ChildrenFiltered("li").Length()
	})

	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		ev.Content.Tables.Count++
		if s.Find("th").Length() > 0 || s.Find("thead").Length() > 0 {
			ev.Content.Tables.WithHeaders++
		}
	})

	ev.Content.FAQPairs = extractFAQPairs(doc)

	body := doc.Find("body")
	// Script and style text would pollute the word counts.
	clone := body.Clone()
	clone.Find("script, style, noscript").Remove()
	text := normalizeSpace(clone.Text())
	ev.Content.BodyText = text
	ev.Content.CharCount = len(text)
	if text != "" {
		ev.Content.WordCount = len(strings.Fields(text))
	}
}

// extractFAQPairs recognizes the common FAQ shapes: definition lists,
// details/summary disclosures, and question headings followed by an answer
// paragraph.
func extractFAQPairs(doc *goquery.Document) []domain.QAPair {
	pairs := []domain.QAPair{}
	seen := map[string]bool{}
	add := func(q, a string) {
		q, a = normalizeSpace(q), normalizeSpace(a)
		if q == "" || a == "" || seen[q] {
			return
		}
		seen[q] = true
		pairs = append(pairs, domain.QAPair{Question: q, Answer: a})
	}

	doc.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		var question string
		dl.Children().Each(func(_ int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "dt":
				question = child.Text()
			case "dd":
				if question != "" {
					add(question, child.Text())
					question = ""
				}
			}
		})
	})

	doc.Find("details").Each(func(_ int, d *goquery.Selection) {
		summary := d.Find("summary").First()
		if summary.Length() == 0 {
			return
		}
		answer := d.Clone()
		answer.Find("summary").Remove()
		add(summary.Text(), answer.Text())
	})

	doc.Find("h2, h3, h4").Each(func(_ int, h *goquery.Selection) {
		question := normalizeSpace(h.Text())
		if !strings.HasSuffix(question, "?") {
			return
		}
		next := h.Next()
		for next.Length() > 0 {
			name := goquery.NodeName(next)
			if name == "p" {
				add(question, next.Text())
				return
			}
			if strings.HasPrefix(name, "h") {
				return
			}
			next = next.Next()
		}
	})

	return pairs
}

func parseStructure(doc *goquery.Document, ev *domain.Evidence, pageURL string) {
	ev.Structure.HasHeader = doc.Find("header").Length() > 0
	ev.Structure.HasNav = doc.Find("nav").Length() > 0
	ev.Structure.HasMain = doc.Find("main").Length() > 0
	ev.Structure.HasArticle = doc.Find("article").Length() > 0
	ev.Structure.HasAside = doc.Find("aside").Length() > 0
	ev.Structure.HasFooter = doc.Find("footer").Length() > 0

	ev.Structure.HeadingCounts = map[string]int{
		"h1": len(ev.Content.H1),
		"h2": len(ev.Content.H2),
		"h3": len(ev.Content.H3),
		"h4": len(ev.Content.H4),
	}

	host := hostOf(pageURL)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		linked, err := url.Parse(href)
		if err != nil {
			return
		}
		if linked.Host == "" || linked.Host == host {
			ev.Structure.InternalLinks++
		} else {
			ev.Structure.ExternalLinks++
		}
	})

	ev.Structure.HasTOC = detectTOC(doc)
	ev.Structure.HasBreadcrumbs = doc.Find(`nav[aria-label="breadcrumb" i], .breadcrumb, .breadcrumbs, ol.breadcrumb`).Length() > 0
}

// detectTOC looks for a nav or list that self-identifies as a table of
// contents, or a list of in-page anchors near the top.
func detectTOC(doc *goquery.Document) bool {
	if doc.Find(`nav.toc, .table-of-contents, #toc, #table-of-contents, [aria-label="table of contents" i]`).Length() > 0 {
		return true
	}
	found := false
	doc.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		anchors := 0
		list.Find(`a[href^="#"]`).Each(func(_ int, _ *goquery.Selection) { anchors++ })
		if anchors >= 3 {
			found = true
			return false
		}
		return true
	})
	return found
}

func parseMedia(doc *goquery.Document, ev *domain.Evidence) {
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		alt, hasAlt := img.Attr("alt")
		alt = strings.TrimSpace(alt)
		info := domain.ImageInfo{
			Src:    img.AttrOr("src", ""),
			Alt:    alt,
			HasAlt: hasAlt && alt != "",
		}
		if img.ParentsFiltered("figure").Find("figcaption").Length() > 0 {
			info.HasCaption = true
		}
		ev.Media.Images = append(ev.Media.Images, info)
	})

	doc.Find("video, iframe[src*='youtube'], iframe[src*='vimeo']").Each(func(_ int, v *goquery.Selection) {
		info := domain.VideoInfo{Src: v.AttrOr("src", "")}
		if v.Find(`track[kind="captions"], track[kind="subtitles"]`).Length() > 0 {
			info.HasCaptions = true
		}
		ev.Media.Videos = append(ev.Media.Videos, info)
	})

	doc.Find("audio").Each(func(_ int, a *goquery.Selection) {
		src := a.AttrOr("src", "")
		if src == "" {
			src = a.Find("source").First().AttrOr("src", "")
		}
		ev.Media.Audios = append(ev.Media.Audios, domain.AudioInfo{Src: src})
	})
}

func parseTechnical(doc *goquery.Document, ev *domain.Evidence) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		for _, t := range jsonLDTypes(raw) {
			ev.Technical.StructuredData = append(ev.Technical.StructuredData, domain.StructuredDataBlock{Type: t, Raw: raw})
		}
	})
	doc.Find("[itemtype]").Each(func(_ int, s *goquery.Selection) {
		itemtype := s.AttrOr("itemtype", "")
		if idx := strings.LastIndexByte(itemtype, '/'); idx >= 0 {
			itemtype = itemtype[idx+1:]
		}
		if itemtype != "" {
			ev.Technical.StructuredData = append(ev.Technical.StructuredData, domain.StructuredDataBlock{Type: itemtype})
		}
	})

	ev.Technical.HasCanonical = ev.Metadata.Canonical != ""
	ev.Technical.HasHreflang = doc.Find(`link[rel="alternate"][hreflang]`).Length() > 0
	ev.Technical.HasSitemapRef = doc.Find(`link[rel="sitemap"]`).Length() > 0
	ev.Technical.HasViewport = doc.Find(`meta[name="viewport"]`).Length() > 0
	ev.Technical.HasCharset = doc.Find("meta[charset]").Length() > 0 ||
		doc.Find(`meta[http-equiv="Content-Type" i]`).Length() > 0
}

// jsonLDTypes pulls every @type from a JSON-LD payload, descending into
// @graph arrays. Malformed JSON yields no types rather than an error.
func jsonLDTypes(raw string) []string {
	var payload interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	var types []string
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch node := v.(type) {
		case map[string]interface{}:
			switch t := node["@type"].(type) {
			case string:
				types = append(types, t)
			case []interface{}:
				for _, item := range t {
					if s, ok := item.(string); ok {
						types = append(types, s)
					}
				}
			}
			if graph, ok := node["@graph"].([]interface{}); ok {
				for _, item := range graph {
					walk(item)
				}
			}
		case []interface{}:
			for _, item := range node {
				walk(item)
			}
		}
	}
	walk(payload)
	return types
}

func parseAccessibility(doc *goquery.Document, ev *domain.Evidence) {
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range s.Nodes[0].Attr {
			if strings.HasPrefix(attr.Key, "aria-") {
				ev.Accessibility.AriaAttributeCount++
			}
			if attr.Key == "role" {
				ev.Accessibility.AriaRoleCount++
			}
		}
	})

	inputs := 0
	labeled := 0
	doc.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("type", "") == "hidden" {
			return
		}
		inputs++
		id := s.AttrOr("id", "")
		switch {
		case id != "" && doc.Find(`label[for="`+id+`"]`).Length() > 0:
			labeled++
		case s.ParentsFiltered("label").Length() > 0:
			labeled++
		case s.AttrOr("aria-label", "") != "" || s.AttrOr("aria-labelledby", "") != "":
			labeled++
		}
	})
	if inputs == 0 {
		// No form controls means nothing is unlabeled.
		ev.Accessibility.LabelCoverage = 1
	} else {
		ev.Accessibility.LabelCoverage = float64(labeled) / float64(inputs)
	}

	ev.Accessibility.HasLangAttribute = ev.Metadata.Language != ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
