// Package server exposes the analyzer over HTTP for the hosted product:
// an analysis endpoint, a health check, and Prometheus metrics.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/answerlens/aeoscan/app"
)

// Server wraps the gin router and its collaborators.
type Server struct {
	router  *gin.Engine
	usecase *app.AnalyzeUseCase
	logger  *zap.Logger
	metrics *metrics
}

// New builds the HTTP server around the analyze use case.
func New(usecase *app.AnalyzeUseCase, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:  gin.New(),
		usecase: usecase,
		logger:  logger,
		metrics: newMetrics(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestIDMiddleware())
	s.router.Use(recoveryMiddleware(s.logger))
	s.router.Use(requestLogMiddleware(s.logger, s.metrics))

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
	}
}

// Handler returns the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}
