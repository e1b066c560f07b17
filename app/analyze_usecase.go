// Package app wires services into use cases consumable by the CLI and the
// HTTP server.
package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
	"github.com/answerlens/aeoscan/internal/extract"
	"github.com/answerlens/aeoscan/internal/llm"
	"github.com/answerlens/aeoscan/internal/recommend"
	"github.com/answerlens/aeoscan/service"
)

// AnalyzeUseCase runs a full page analysis end to end: configuration,
// extraction, scoring, recommendations, and output.
type AnalyzeUseCase struct {
	loader *service.ConfigurationLoaderImpl
	logger *zap.Logger
}

// NewAnalyzeUseCase creates a new analyze use case.
func NewAnalyzeUseCase(logger *zap.Logger) *AnalyzeUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeUseCase{
		loader: service.NewConfigurationLoader(),
		logger: logger,
	}
}

// Execute analyzes one page per the request and writes formatted output
// when a writer is configured. The response is returned either way so
// programmatic callers can consume it directly.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	cfg, err := uc.loader.LoadConfig(req.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	svc := uc.buildService(cfg, req)
	resp, err := svc.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		format := req.OutputFormat
		if format == "" {
			format = domain.OutputFormat(cfg.Output.Format)
		}
		formatter := service.NewOutputFormatter(cfg.Output.ShowDetails)
		if err := formatter.Write(resp, format, req.OutputWriter); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (uc *AnalyzeUseCase) buildService(cfg *config.Config, req domain.AnalyzeRequest) domain.AnalysisService {
	progress := service.NewProgressManager(!req.NoProgress)

	genOpts := []recommend.Option{recommend.WithLogger(uc.logger)}
	if completer := uc.buildCompleter(cfg); completer != nil {
		genOpts = append(genOpts, recommend.WithCompleter(completer))
	}

	return service.NewAnalysisService(cfg,
		service.WithExtractor(extract.NewExtractor(extract.WithLogger(uc.logger))),
		service.WithRecommendationService(recommend.NewGenerator(cfg, genOpts...)),
		service.WithProgressManager(progress),
		service.WithAnalysisLogger(uc.logger),
	)
}

// buildCompleter wires the LLM client when an API key is available. Without
// a key the LLM strategy silently stays off and generation falls back to
// the deterministic strategies.
func (uc *AnalyzeUseCase) buildCompleter(cfg *config.Config) llm.Completer {
	apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		return nil
	}
	return llm.NewClient(cfg.LLM.BaseURL, apiKey, cfg.LLM.Model, cfg.LLM.MaxTokens, cfg.LLM.Timeout())
}
