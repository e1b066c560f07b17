package config

import "github.com/answerlens/aeoscan/domain"

// Category names. Slice order in DefaultConfig is the canonical iteration
// order used for deterministic issue tie-breaking.
const (
	CategoryAIReadability           = "aiReadability"
	CategoryContentStructure        = "contentStructure"
	CategoryTechnicalSetup          = "technicalSetup"
	CategoryContentQuality          = "contentQuality"
	CategoryAuthoritySignals        = "authoritySignals"
	CategoryEntityRecognition       = "entityRecognition"
	CategoryConversationalReadiness = "conversationalReadiness"
	CategoryMediaAccessibility      = "mediaAccessibility"
)

// DefaultConfig returns the hand-tuned rubric: eight categories whose
// weights sum to 1.0, each with subfactor weights summing to 1.0 and a
// minimum-score threshold that drives issue detection.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Categories: []CategoryConfig{
				{
					Name:   CategoryAIReadability,
					Weight: 0.15,
					Subfactors: []SubfactorConfig{
						{Name: "readabilityScore", Weight: 0.25, Threshold: 70},
						{Name: "sentenceClarity", Weight: 0.15, Threshold: 65},
						{Name: "paragraphStructure", Weight: 0.15, Threshold: 65},
						{Name: "directAnswerScore", Weight: 0.20, Threshold: 70},
						{Name: "contentLength", Weight: 0.15, Threshold: 60},
						{Name: "listUsage", Weight: 0.10, Threshold: 50},
					},
				},
				{
					Name:   CategoryContentStructure,
					Weight: 0.15,
					Subfactors: []SubfactorConfig{
						{Name: "headingHierarchy", Weight: 0.20, Threshold: 70},
						{Name: "h1Presence", Weight: 0.15, Threshold: 80},
						{Name: "headingFrequency", Weight: 0.10, Threshold: 60},
						{Name: "faqScore", Weight: 0.20, Threshold: 60},
						{Name: "listTableScore", Weight: 0.10, Threshold: 50},
						{Name: "tocScore", Weight: 0.10, Threshold: 40},
						{Name: "semanticLandmarks", Weight: 0.15, Threshold: 65},
					},
				},
				{
					Name:   CategoryTechnicalSetup,
					Weight: 0.15,
					Subfactors: []SubfactorConfig{
						{Name: "structuredDataScore", Weight: 0.25, Threshold: 70},
						{Name: "metaTagsScore", Weight: 0.20, Threshold: 75},
						{Name: "canonicalScore", Weight: 0.10, Threshold: 80},
						{Name: "sitemapScore", Weight: 0.05, Threshold: 50},
						{Name: "viewportScore", Weight: 0.10, Threshold: 80},
						{Name: "charsetScore", Weight: 0.05, Threshold: 80},
						{Name: "hreflangScore", Weight: 0.05, Threshold: 40},
						{Name: "serverResponse", Weight: 0.20, Threshold: 60},
					},
				},
				{
					Name:   CategoryContentQuality,
					Weight: 0.15,
					Subfactors: []SubfactorConfig{
						{Name: "contentDepth", Weight: 0.25, Threshold: 65},
						{Name: "statisticsUsage", Weight: 0.15, Threshold: 50},
						{Name: "exampleUsage", Weight: 0.15, Threshold: 50},
						{Name: "citationScore", Weight: 0.15, Threshold: 55},
						{Name: "freshnessSignals", Weight: 0.15, Threshold: 50},
						{Name: "topicFocus", Weight: 0.15, Threshold: 60},
					},
				},
				{
					Name:   CategoryAuthoritySignals,
					Weight: 0.10,
					Subfactors: []SubfactorConfig{
						{Name: "authorCredentials", Weight: 0.20, Threshold: 60},
						{Name: "organizationClarity", Weight: 0.20, Threshold: 65},
						{Name: "externalCitations", Weight: 0.15, Threshold: 55},
						{Name: "expertiseSignals", Weight: 0.15, Threshold: 55},
						{Name: "trustMarkers", Weight: 0.15, Threshold: 65},
						{Name: "socialProof", Weight: 0.15, Threshold: 45},
					},
				},
				{
					Name:   CategoryEntityRecognition,
					Weight: 0.10,
					Subfactors: []SubfactorConfig{
						{Name: "namedEntityDensity", Weight: 0.20, Threshold: 60},
						{Name: "entityRelationships", Weight: 0.15, Threshold: 50},
						{Name: "knowledgeGraphDensity", Weight: 0.15, Threshold: 50},
						{Name: "brandClarity", Weight: 0.20, Threshold: 65},
						{Name: "productClarity", Weight: 0.15, Threshold: 45},
						{Name: "geoSpecificity", Weight: 0.15, Threshold: 40},
					},
				},
				{
					Name:   CategoryConversationalReadiness,
					Weight: 0.10,
					Subfactors: []SubfactorConfig{
						{Name: "questionHeadings", Weight: 0.20, Threshold: 60},
						{Name: "faqCoverage", Weight: 0.20, Threshold: 60},
						{Name: "conversationalTone", Weight: 0.15, Threshold: 55},
						{Name: "snippetability", Weight: 0.20, Threshold: 60},
						{Name: "voiceSearchPhrases", Weight: 0.15, Threshold: 50},
						{Name: "speakableSchema", Weight: 0.10, Threshold: 30},
					},
				},
				{
					Name:   CategoryMediaAccessibility,
					Weight: 0.10,
					Subfactors: []SubfactorConfig{
						{Name: "altTextCoverage", Weight: 0.25, Threshold: 75},
						{Name: "captionCoverage", Weight: 0.15, Threshold: 50},
						{Name: "ariaUsage", Weight: 0.15, Threshold: 55},
						{Name: "formLabelCoverage", Weight: 0.15, Threshold: 65},
						{Name: "languageDeclared", Weight: 0.15, Threshold: 80},
						{Name: "mediaDiversity", Weight: 0.15, Threshold: 40},
					},
				},
			},
		},
		Tiers: map[string]domain.TierLimits{
			string(domain.TierAnonymous): {
				MaxRecommendations: 0,
			},
			string(domain.TierFree): {
				MaxRecommendations: 3,
			},
			string(domain.TierStarter): {
				MaxRecommendations: 10,
				ShowCodeSnippets:   true,
			},
			string(domain.TierPro): {
				MaxRecommendations: 25,
				ShowCodeSnippets:   true,
				ShowEvidence:       true,
				LLMEnabled:         true,
			},
			string(domain.TierEnterprise): {
				MaxRecommendations: 50,
				ShowCodeSnippets:   true,
				ShowEvidence:       true,
				LLMEnabled:         true,
			},
		},
		Generation: GenerationConfig{
			MaxIssues: DefaultGenerationMaxIssues,
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			APIKeyEnv:      "AEOSCAN_LLM_API_KEY",
			MaxIssues:      DefaultLLMMaxIssues,
			DelayMillis:    DefaultLLMDelayMillis,
			TimeoutSeconds: DefaultLLMTimeoutSeconds,
			MaxTokens:      DefaultLLMMaxTokens,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: true,
		},
	}
}
