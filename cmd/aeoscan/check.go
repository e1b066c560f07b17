package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/answerlens/aeoscan/app"
	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/logging"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMinScore    float64
	checkMaxCritical int
	checkJSON        bool
	checkVerbose     bool
	checkConfigPath  string
)

type checkResult struct {
	URL         string       `json:"url"`
	Score       float64      `json:"score"`
	Grade       domain.Grade `json:"grade"`
	MinScore    float64      `json:"minScore"`
	Critical    int          `json:"critical"`
	MaxCritical int          `json:"maxCritical"`
	Passed      bool         `json:"passed"`
	Failures    []string     `json:"failures,omitempty"`
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Fast readiness gate for CI/CD pipelines",
		Long: `Score a page and fail when it falls below configurable thresholds.

Exit codes:
  0 - All checks pass
  1 - Readiness threshold(s) violated
  2 - Analysis error (fetch failure, bad configuration, etc.)

Examples:
  # Fail below the default minimum score
  aeoscan check https://example.com/guide

  # Require at least 80 and no critical findings
  aeoscan check --min-score 80 --max-critical 0 https://example.com/guide

  # JSON output for machine parsing
  aeoscan check --json https://example.com/guide`,
		Args:          cobra.ExactArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().Float64Var(&checkMinScore, "min-score", 60,
		"Minimum acceptable total score (0-100)")
	cmd.Flags().IntVar(&checkMaxCritical, "max-critical", -1,
		"Maximum allowed critical findings (-1 = unlimited)")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show per-category scores")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	pageURL := args[0]

	if checkMinScore < 0 || checkMinScore > 100 {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("min-score must be between 0 and 100, got %v", checkMinScore)}
	}

	logger, err := logging.New(false)
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to initialize logging: %v", err)}
	}
	defer func() { _ = logger.Sync() }()

	req := domain.AnalyzeRequest{
		URL:  pageURL,
		Tier: domain.TierEnterprise,
		// The critical count comes from the recommendation summary
		IncludeRecommendations: true,
		ConfigPath:             checkConfigPath,
		NoProgress:             true,
	}

	usecase := app.NewAnalyzeUseCase(logger)
	resp, err := usecase.Execute(cmd.Context(), req)
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("analysis failed: %v", err)}
	}

	result := checkResult{
		URL:         resp.URL,
		Score:       resp.TotalScore,
		Grade:       resp.Grade,
		MinScore:    checkMinScore,
		MaxCritical: checkMaxCritical,
	}
	if resp.Recommendations != nil {
		result.Critical = resp.Recommendations.Summary.BySeverity["critical"]
	}

	if result.Score < checkMinScore {
		result.Failures = append(result.Failures,
			fmt.Sprintf("total score %.1f is below minimum %.1f", result.Score, checkMinScore))
	}
	if checkMaxCritical >= 0 && result.Critical > checkMaxCritical {
		result.Failures = append(result.Failures,
			fmt.Sprintf("%d critical findings exceed maximum %d", result.Critical, checkMaxCritical))
	}
	result.Passed = len(result.Failures) == 0

	out := cmd.OutOrStdout()
	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode result: %v", err)}
		}
	} else {
		fmt.Fprintf(out, "%s: score %.1f (grade %s)\n", result.URL, result.Score, result.Grade)
		if checkVerbose {
			names := make([]string, 0, len(resp.Categories))
			for name := range resp.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %.1f\n", name, resp.Categories[name].Score)
			}
		}
		for _, failure := range result.Failures {
			fmt.Fprintf(out, "FAIL: %s\n", failure)
		}
		if result.Passed {
			fmt.Fprintln(out, "PASS")
		}
	}

	if !result.Passed {
		// Output already printed; exit 1 without a duplicate message
		return &CheckExitError{Code: 1}
	}
	return nil
}
