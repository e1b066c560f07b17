package domain

import (
	"fmt"
	"time"
)

// Evidence is the complete extracted signal set for one analyzed page.
// It is produced once per run by the extraction collaborator and treated
// as immutable by everything downstream. Every field has a defined default
// (empty string, empty slice, zero) so analyzers can read any path without
// nil checks.
type Evidence struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`

	Metadata      Metadata      `json:"metadata"`
	Content       Content       `json:"content"`
	Structure     Structure     `json:"structure"`
	Media         Media         `json:"media"`
	Technical     Technical     `json:"technical"`
	Performance   Performance   `json:"performance"`
	Accessibility Accessibility `json:"accessibility"`
	Entities      Entities      `json:"entities"`
}

// Metadata holds document-level metadata and social preview fields.
type Metadata struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	OGSiteName         string `json:"ogSiteName"`
	OGType             string `json:"ogType"`
	TwitterCard        string `json:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	TwitterImage       string `json:"twitterImage"`
	Canonical          string `json:"canonical"`
	Language           string `json:"language"`
	GeoRegion          string `json:"geoRegion"`
	GeoPlacename       string `json:"geoPlacename"`
	GeoPosition        string `json:"geoPosition"`
}

// QAPair is a question/answer pair found on the page.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ListSummary summarizes ordered and unordered lists on the page.
type ListSummary struct {
	Ordered    int `json:"ordered"`
	Unordered  int `json:"unordered"`
	TotalItems int `json:"totalItems"`
}

// TableSummary summarizes data tables on the page.
type TableSummary struct {
	Count       int `json:"count"`
	WithHeaders int `json:"withHeaders"`
}

// Content holds the textual content signals.
type Content struct {
	H1         []string     `json:"h1"`
	H2         []string     `json:"h2"`
	H3         []string     `json:"h3"`
	H4         []string     `json:"h4"`
	Paragraphs []string     `json:"paragraphs"`
	Lists      ListSummary  `json:"lists"`
	Tables     TableSummary `json:"tables"`
	FAQPairs   []QAPair     `json:"faqPairs"`
	WordCount  int          `json:"wordCount"`
	CharCount  int          `json:"charCount"`
	BodyText   string       `json:"bodyText"`
}

// Structure holds structural and semantic-markup signals.
type Structure struct {
	HasHeader      bool           `json:"hasHeader"`
	HasNav         bool           `json:"hasNav"`
	HasMain        bool           `json:"hasMain"`
	HasArticle     bool           `json:"hasArticle"`
	HasAside       bool           `json:"hasAside"`
	HasFooter      bool           `json:"hasFooter"`
	HeadingCounts  map[string]int `json:"headingCounts"`
	InternalLinks  int            `json:"internalLinks"`
	ExternalLinks  int            `json:"externalLinks"`
	HasTOC         bool           `json:"hasTOC"`
	HasBreadcrumbs bool           `json:"hasBreadcrumbs"`
}

// ImageInfo describes one image on the page.
type ImageInfo struct {
	Src        string `json:"src"`
	Alt        string `json:"alt"`
	HasAlt     bool   `json:"hasAlt"`
	HasCaption bool   `json:"hasCaption"`
}

// VideoInfo describes one video element on the page.
type VideoInfo struct {
	Src         string `json:"src"`
	HasCaptions bool   `json:"hasCaptions"`
}

// AudioInfo describes one audio element on the page.
type AudioInfo struct {
	Src string `json:"src"`
}

// Media holds the media inventories.
type Media struct {
	Images []ImageInfo `json:"images"`
	Videos []VideoInfo `json:"videos"`
	Audios []AudioInfo `json:"audios"`
}

// StructuredDataBlock is one machine-readable metadata block (JSON-LD,
// microdata) with its declared type and raw payload.
type StructuredDataBlock struct {
	Type string `json:"type"`
	Raw  string `json:"raw"`
}

// Technical holds technical and SEO signals.
type Technical struct {
	StructuredData []StructuredDataBlock `json:"structuredData"`
	HasCanonical   bool                  `json:"hasCanonical"`
	HasHreflang    bool                  `json:"hasHreflang"`
	HasSitemapRef  bool                  `json:"hasSitemapRef"`
	HasViewport    bool                  `json:"hasViewport"`
	HasCharset     bool                  `json:"hasCharset"`
	HTTPS          bool                  `json:"https"`
	CacheControl   string                `json:"cacheControl"`
}

// Performance holds the single timing sample taken during extraction.
// TTFBMillis is nil when no measurement was possible.
type Performance struct {
	TTFBMillis *int64 `json:"ttfbMillis"`
}

// Accessibility holds accessibility signals.
type Accessibility struct {
	AriaAttributeCount int     `json:"ariaAttributeCount"`
	AriaRoleCount      int     `json:"ariaRoleCount"`
	LabelCoverage      float64 `json:"labelCoverage"`
	HasLangAttribute   bool    `json:"hasLangAttribute"`
}

// EntityRelation is a (subject, relation, object) triple between two
// detected entities.
type EntityRelation struct {
	From     string `json:"from"`
	Relation string `json:"relation"`
	To       string `json:"to"`
}

// KGNode is a node in the knowledge-graph projection of the page.
type KGNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// KGEdge connects two knowledge-graph nodes.
type KGEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation"`
}

// KnowledgeGraph is the node/edge projection of detected entities.
type KnowledgeGraph struct {
	Nodes []KGNode `json:"nodes"`
	Edges []KGEdge `json:"edges"`
}

// Entities holds pattern-detected entities and their relationships.
type Entities struct {
	People         []string         `json:"people"`
	Organizations  []string         `json:"organizations"`
	Places         []string         `json:"places"`
	Products       []string         `json:"products"`
	Credentials    []string         `json:"credentials"`
	Relationships  []EntityRelation `json:"relationships"`
	KnowledgeGraph KnowledgeGraph   `json:"knowledgeGraph"`
}

// NewEvidence returns a fully-defaulted Evidence skeleton for the given URL.
// All slices and maps are allocated so JSON output never contains null for
// a list field.
func NewEvidence(url string) *Evidence {
	return &Evidence{
		URL:       url,
		Timestamp: time.Now().UTC(),
		Content: Content{
			H1:         []string{},
			H2:         []string{},
			H3:         []string{},
			H4:         []string{},
			Paragraphs: []string{},
			FAQPairs:   []QAPair{},
		},
		Structure: Structure{
			HeadingCounts: map[string]int{},
		},
		Media: Media{
			Images: []ImageInfo{},
			Videos: []VideoInfo{},
			Audios: []AudioInfo{},
		},
		Technical: Technical{
			StructuredData: []StructuredDataBlock{},
		},
		Entities: Entities{
			People:        []string{},
			Organizations: []string{},
			Places:        []string{},
			Products:      []string{},
			Credentials:   []string{},
			Relationships: []EntityRelation{},
			KnowledgeGraph: KnowledgeGraph{
				Nodes: []KGNode{},
				Edges: []KGEdge{},
			},
		},
	}
}

// SchemaTypes returns the set of structured-data types present on the page,
// keyed by lowercased type name.
func (e *Evidence) SchemaTypes() map[string]bool {
	types := make(map[string]bool, len(e.Technical.StructuredData))
	for _, block := range e.Technical.StructuredData {
		if block.Type != "" {
			types[normalizeSchemaType(block.Type)] = true
		}
	}
	return types
}

// HasSchemaType reports whether a structured-data block of the given type
// is already present. Matching is case-insensitive.
func (e *Evidence) HasSchemaType(schemaType string) bool {
	return e.SchemaTypes()[normalizeSchemaType(schemaType)]
}

func normalizeSchemaType(t string) string {
	out := make([]byte, 0, len(t))
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// ValidateEvidence checks the structural soundness of an Evidence object.
// Problems are returned as warnings, never as errors: analysis proceeds on
// partial data and scoring penalizes whatever is missing.
func ValidateEvidence(e *Evidence) []string {
	var warnings []string
	if e == nil {
		return []string{"evidence is nil"}
	}
	if e.URL == "" {
		warnings = append(warnings, "evidence has no URL")
	}
	if e.Content.BodyText == "" && len(e.Content.Paragraphs) == 0 {
		warnings = append(warnings, "evidence has no textual content")
	}
	if e.Content.WordCount < 0 {
		warnings = append(warnings, fmt.Sprintf("negative word count: %d", e.Content.WordCount))
	}
	if e.Structure.HeadingCounts == nil {
		warnings = append(warnings, "structure.headingCounts is not set")
	}
	if e.Media.Images == nil {
		warnings = append(warnings, "media.images is not set")
	}
	if e.Technical.StructuredData == nil {
		warnings = append(warnings, "technical.structuredData is not set")
	}
	if e.Accessibility.LabelCoverage < 0 || e.Accessibility.LabelCoverage > 1 {
		warnings = append(warnings, fmt.Sprintf("accessibility.labelCoverage out of range: %f", e.Accessibility.LabelCoverage))
	}
	return warnings
}
