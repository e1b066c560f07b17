package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/answerlens/aeoscan/app"
	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/logging"
	"github.com/spf13/cobra"
)

var (
	outputFormat      string
	configPath        string
	jsonOutput        bool
	outputPath        string
	tierName          string
	noRecommendations bool
	noProgress        bool
	debugLogging      bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a page for answer engine readiness",
		Long: `Fetch a page, score it for answer engine readiness and print the
category breakdown with recommendations.

Examples:
  aeoscan analyze https://example.com/guide
  aeoscan analyze --json https://example.com/guide
  aeoscan analyze --tier pro --format yaml https://example.com/guide
  aeoscan analyze -o report.json --json https://example.com/guide`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&tierName, "tier", string(domain.TierPro),
		"Service tier for recommendation filtering: anonymous, free, starter, pro, enterprise")
	cmd.Flags().BoolVar(&noRecommendations, "no-recommendations", false,
		"Skip recommendation generation, report scores only")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"Disable progress output")
	cmd.Flags().BoolVar(&debugLogging, "debug", false,
		"Enable debug logging")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pageURL := args[0]

	format, err := resolveFormat(outputFormat, jsonOutput)
	if err != nil {
		return err
	}

	tier, err := resolveTier(tierName)
	if err != nil {
		return err
	}

	writer := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	logger, err := logging.New(debugLogging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	req := domain.AnalyzeRequest{
		URL:                    pageURL,
		Tier:                   tier,
		IncludeRecommendations: !noRecommendations,
		OutputFormat:           format,
		OutputWriter:           writer,
		ConfigPath:             configPath,
		// Progress bars would interleave with structured output
		NoProgress: noProgress || format != domain.OutputFormatText,
	}

	usecase := app.NewAnalyzeUseCase(logger)
	if _, err := usecase.Execute(cmd.Context(), req); err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
	}
	return nil
}

func resolveFormat(name string, jsonShorthand bool) (domain.OutputFormat, error) {
	if jsonShorthand {
		return domain.OutputFormatJSON, nil
	}
	switch strings.ToLower(name) {
	case "", "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml", "yml":
		return domain.OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text, json or yaml)", name)
	}
}

func resolveTier(name string) (domain.Tier, error) {
	switch domain.Tier(strings.ToLower(name)) {
	case domain.TierAnonymous:
		return domain.TierAnonymous, nil
	case domain.TierFree:
		return domain.TierFree, nil
	case domain.TierStarter:
		return domain.TierStarter, nil
	case "", domain.TierPro:
		return domain.TierPro, nil
	case domain.TierEnterprise:
		return domain.TierEnterprise, nil
	default:
		return "", fmt.Errorf("unknown tier: %s", name)
	}
}
