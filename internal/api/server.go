// Package api exposes the HTTP surface of the aggregator.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/evidence-navigator-server/internal/config"
	"github.com/evidence-navigator-server/internal/middleware"
	"github.com/evidence-navigator-server/internal/service"
	"github.com/evidence-navigator-server/internal/setup"
	"github.com/evidence-navigator-server/pkg/external"
)

// MeSHLookup is the handler-side contract of the MeSH proxy
type MeSHLookup interface {
	Lookup(ctx context.Context, query string) []string
}

// Deps bundles everything the route handlers need. Tests construct it
// directly with fakes; production wiring happens in NewServer.
type Deps struct {
	Logger       *logrus.Logger
	Orchestrator *service.Orchestrator
	Suggester    *service.Suggester
	Mesh         MeSHLookup
	Translator   service.Translator
	AI           *external.AIClient
	RateLimiter  *middleware.RateLimiter
	CORSOrigins  []string
	Health       func() map[string]string
}

// Server is the HTTP server
type Server struct {
	configManager *config.Manager
	logger        *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// NewServer assembles the production object graph and the router on top
func NewServer(configManager *config.Manager, logger *logrus.Logger) *Server {
	cfg := configManager.GetConfig()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	components := setup.Build(cfg, logger)
	deps := Deps{
		Logger:       logger,
		Orchestrator: components.Orchestrator,
		Suggester:    components.Suggester,
		Mesh:         components.Mesh,
		Translator:   components.Translator,
		AI:           components.AI,
		RateLimiter:  middleware.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests),
		CORSOrigins:  cfg.CORSOrigins,
		Health:       components.BreakerStates,
	}

	return &Server{
		configManager: configManager,
		logger:        logger,
		router:        NewRouter(deps),
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled, then
// drains with a 30 second grace window
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
