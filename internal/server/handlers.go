package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/answerlens/aeoscan/domain"
	"github.com/answerlens/aeoscan/internal/version"
)

// analyzeRequest is the API request envelope. Tier defaults to anonymous
// so unauthenticated callers get the locked-down shaping.
type analyzeRequest struct {
	URL                    string           `json:"url" binding:"required,url"`
	Tier                   string           `json:"tier"`
	IncludeRecommendations bool             `json:"includeRecommendations"`
	Evidence               *domain.Evidence `json:"evidence"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: a valid url is required"})
		return
	}

	tier := domain.Tier(req.Tier)
	if req.Tier == "" {
		tier = domain.TierAnonymous
	}

	resp, err := s.usecase.Execute(c.Request.Context(), domain.AnalyzeRequest{
		URL:                    req.URL,
		Evidence:               req.Evidence,
		Tier:                   tier,
		IncludeRecommendations: req.IncludeRecommendations,
		NoProgress:             true,
	})
	if err != nil {
		status, message := statusForError(err)
		s.logger.Warn("analysis failed",
			zap.String("url", req.URL),
			zap.Error(err),
			zap.String("request_id", c.GetString("request_id")))
		c.JSON(status, gin.H{"error": message})
		return
	}

	s.metrics.observeScore(resp.TotalScore)
	c.JSON(http.StatusOK, resp)
}

// statusForError maps domain error codes onto HTTP statuses without leaking
// internals to the caller.
func statusForError(err error) (int, string) {
	var de domain.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "Analysis failed"
	}
	switch de.Code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeUnsupportedFormat:
		return http.StatusBadRequest, de.Message
	case domain.ErrCodeExtractionError:
		return http.StatusBadGateway, "Failed to fetch the page"
	case domain.ErrCodeConfigError:
		return http.StatusInternalServerError, "Service misconfigured"
	default:
		return http.StatusInternalServerError, "Analysis failed"
	}
}
