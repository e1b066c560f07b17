package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/config"
	"github.com/answerlens/aeoscan/internal/detector"
	"github.com/answerlens/aeoscan/internal/recommend"
	"github.com/answerlens/aeoscan/internal/scoring"
	"github.com/answerlens/aeoscan/internal/version"
)

// AnalysisServiceImpl implements domain.AnalysisService: it orchestrates
// extraction, parallel category scoring, issue detection, recommendation
// generation, and tier filtering for one page.
type AnalysisServiceImpl struct {
	cfg       *config.Config
	extractor domain.EvidenceExtractor
	recommend domain.RecommendationService
	engine    *scoring.Engine
	detector  *detector.Detector
	executor  *ParallelExecutor
	progress  domain.ProgressManager
	logger    *zap.Logger
}

// AnalysisOption configures the analysis service.
type AnalysisOption func(*AnalysisServiceImpl)

// WithExtractor installs the page fetcher. Without one, requests must
// carry pre-extracted evidence.
func WithExtractor(e domain.EvidenceExtractor) AnalysisOption {
	return func(s *AnalysisServiceImpl) { s.extractor = e }
}

// WithRecommendationService installs the recommendation generator.
func WithRecommendationService(r domain.RecommendationService) AnalysisOption {
	return func(s *AnalysisServiceImpl) { s.recommend = r }
}

// WithProgressManager installs progress reporting.
func WithProgressManager(pm domain.ProgressManager) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		if pm != nil {
			s.progress = pm
			s.executor = NewParallelExecutorWithProgress(pm)
		}
	}
}

// WithAnalysisLogger installs a structured logger.
func WithAnalysisLogger(l *zap.Logger) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewAnalysisService creates the analysis orchestrator.
func NewAnalysisService(cfg *config.Config, opts ...AnalysisOption) *AnalysisServiceImpl {
	s := &AnalysisServiceImpl{
		cfg:      cfg,
		engine:   scoring.NewEngine(&cfg.Scoring),
		detector: detector.New(&cfg.Scoring),
		executor: NewParallelExecutor(),
		progress: &NoOpProgressManager{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recommend == nil {
		s.recommend = recommend.NewGenerator(cfg)
	}
	return s
}

// Analyze runs the full pipeline for one page.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	ev, err := s.resolveEvidence(ctx, req)
	if err != nil {
		return nil, err
	}
	warnings := domain.ValidateEvidence(ev)

	categories, err := s.scoreCategories(ctx, ev)
	if err != nil {
		return nil, err
	}
	total := scoring.TotalScore(categories)

	resp := &domain.AnalyzeResponse{
		URL:         ev.URL,
		TotalScore:  total,
		Grade:       domain.GradeForScore(total),
		Categories:  categories,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
	}

	if req.IncludeRecommendations {
		filtered, err := s.buildRecommendations(ctx, categories, ev, req.Tier)
		if err != nil {
			return nil, err
		}
		resp.Recommendations = filtered
	}

	s.logger.Info("analysis completed",
		zap.String("url", ev.URL),
		zap.Float64("total_score", total),
		zap.String("grade", string(resp.Grade)))

	return resp, nil
}

// resolveEvidence uses the request's pre-extracted evidence when present,
// otherwise fetches the page.
func (s *AnalysisServiceImpl) resolveEvidence(ctx context.Context, req domain.AnalyzeRequest) (*domain.Evidence, error) {
	if req.Evidence != nil {
		return req.Evidence, nil
	}
	if req.URL == "" {
		return nil, domain.NewInvalidInputError("either a url or pre-extracted evidence is required", nil)
	}
	if s.extractor == nil {
		return nil, domain.NewInvalidInputError("no extractor configured and no evidence supplied", nil)
	}

	task := s.progress.StartTask("Fetching page", 1)
	ev, err := s.extractor.Extract(ctx, req.URL)
	task.Complete()
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// scoreCategories runs each configured category analyzer concurrently and
// returns the deterministic score map.
func (s *AnalysisServiceImpl) scoreCategories(ctx context.Context, ev *domain.Evidence) (map[string]domain.CategoryScore, error) {
	tasks := make([]CategoryTask, 0, len(s.cfg.Scoring.Categories))
	for i := range s.cfg.Scoring.Categories {
		name := s.cfg.Scoring.Categories[i].Name
		tasks = append(tasks, CategoryTask{
			Name: name,
			Run: func(context.Context) (domain.CategoryScore, error) {
				score, ok := s.engine.AnalyzeCategory(name, ev)
				if !ok {
					return domain.CategoryScore{}, domain.NewAnalysisError("unknown category: "+name, nil)
				}
				return score, nil
			},
		})
	}

	categories, err := s.executor.Execute(ctx, tasks)
	if err != nil {
		return nil, domain.NewAnalysisError("category analysis failed", err)
	}
	return categories, nil
}

func (s *AnalysisServiceImpl) buildRecommendations(ctx context.Context, categories map[string]domain.CategoryScore, ev *domain.Evidence, tier domain.Tier) (*domain.FilteredRecommendations, error) {
	issues := s.detector.Detect(categories, ev)

	task := s.progress.StartTask("Generating recommendations", len(issues))
	recs, err := s.recommend.Generate(ctx, issues, ev, tier)
	task.Complete()
	if err != nil {
		return nil, err
	}

	limits := s.cfg.LimitsFor(tier)
	return recommend.FilterForTier(recs, tier, limits), nil
}
