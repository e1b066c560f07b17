package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/answerlens/aeoscan/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	// ShowDetails prints the per-subfactor breakdown in text output
	ShowDetails bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(showDetails bool) *OutputFormatterImpl {
	return &OutputFormatterImpl{ShowDetails: showDetails}
}

// Format formats the analysis response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.AnalyzeResponse, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(response, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeJSON(response, writer)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	case domain.OutputFormatText, "":
		return f.writeText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) writeJSON(response *domain.AnalyzeResponse, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return domain.NewOutputError("failed to encode json output", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeYAML(response *domain.AnalyzeResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	if err := encoder.Encode(response); err != nil {
		return domain.NewOutputError("failed to encode yaml output", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeText(response *domain.AnalyzeResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Answer Engine Readiness ===\n\n")
	fmt.Fprintf(writer, "URL: %s\n", response.URL)
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)
	fmt.Fprintf(writer, "Total score: %.1f / 100  (grade %s)\n\n", response.TotalScore, response.Grade)

	fmt.Fprintf(writer, "Categories:\n")
	for _, name := range sortedCategoryNames(response.Categories) {
		cat := response.Categories[name]
		fmt.Fprintf(writer, "  %-26s %6.1f  (weight %.0f%%)\n", name, cat.Score, cat.Weight*100)
		if f.ShowDetails {
			for _, sub := range sortedSubfactorNames(cat.Subfactors) {
				fmt.Fprintf(writer, "    %-28s %6.1f\n", sub, cat.Subfactors[sub])
			}
		}
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	if response.Recommendations != nil {
		f.writeRecommendationsText(response.Recommendations, writer)
	}
	return nil
}

func (f *OutputFormatterImpl) writeRecommendationsText(recs *domain.FilteredRecommendations, writer io.Writer) {
	fmt.Fprintf(writer, "\nRecommendations (%s plan, showing %d of %d):\n",
		recs.Tier, len(recs.Recommendations), recs.Summary.Total)

	for i, rec := range recs.Recommendations {
		fmt.Fprintf(writer, "\n%d. [%s] %s\n", i+1, strings.ToUpper(string(rec.Priority)), rec.Title)
		fmt.Fprintf(writer, "   %s\n", rec.Finding)
		if rec.Impact != "" {
			fmt.Fprintf(writer, "   Impact: %s\n", rec.Impact)
		}
		for j, step := range rec.ActionSteps {
			fmt.Fprintf(writer, "   %d) %s\n", j+1, step)
		}
		if rec.CodeSnippet != "" {
			fmt.Fprintf(writer, "   Code:\n")
			for _, line := range strings.Split(rec.CodeSnippet, "\n") {
				fmt.Fprintf(writer, "     %s\n", line)
			}
		}
		for _, win := range rec.QuickWins {
			fmt.Fprintf(writer, "   Quick win: %s\n", win)
		}
		fmt.Fprintf(writer, "   Effort: %s (%s), potential gain %.1f points\n",
			rec.EstimatedTime, rec.Difficulty, rec.EstimatedScoreGain)
	}

	if recs.Upgrade != nil {
		fmt.Fprintf(writer, "\n%s\n", recs.Upgrade.Message)
	}
	fmt.Fprintf(writer, "\nTotal potential gain: %.1f points, estimated effort %s\n",
		recs.Summary.TotalPotentialGain, recs.Summary.EstimatedTotalTime)
}

func sortedCategoryNames(categories map[string]domain.CategoryScore) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedSubfactorNames(subfactors map[string]float64) []string {
	names := make([]string, 0, len(subfactors))
	for name := range subfactors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
