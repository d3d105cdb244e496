// Package http provides the API HTTP server, router setup, and middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/carbonledger/internal/audit/http"
	certificateHTTP "github.com/allisson/carbonledger/internal/certificate/http"
	governanceHTTP "github.com/allisson/carbonledger/internal/governance/http"
	ledgerHTTP "github.com/allisson/carbonledger/internal/ledger/http"
	"github.com/allisson/carbonledger/internal/metrics"
	retirementHTTP "github.com/allisson/carbonledger/internal/retirement/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates an API server bound to the given host and port. The
// database handle backs the readiness probe and may be nil in tests.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware settings for SetupRouter.
type RouterConfig struct {
	GovernanceHandler  *governanceHTTP.GovernanceHandler
	CertificateHandler *certificateHTTP.CertificateHandler
	LedgerHandler      *ledgerHTTP.LedgerHandler
	RetirementHandler  *retirementHTTP.RetirementHandler
	AuditHandler       *auditHTTP.AuditHandler

	// MetricsProvider enables HTTP request metrics when non-nil.
	MetricsProvider  *metrics.Provider
	MetricsNamespace string

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// SetupRouter builds the Gin router with all middleware and v1 routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Mutations share a per-caller rate limit; reads stay unthrottled.
	mutations := v1.Group("")
	if cfg.RateLimitEnabled {
		mutations.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	mutations.POST("/governance", cfg.GovernanceHandler.InitializeHandler)
	v1.GET("/governance", cfg.GovernanceHandler.GetHandler)

	mutations.POST("/certificates/minter", cfg.CertificateHandler.IssueMinterCertHandler)
	mutations.POST("/certificates/consumer", cfg.CertificateHandler.IssueConsumerCertHandler)
	mutations.POST("/credit-tokens", cfg.CertificateHandler.InitCreditTokenHandler)

	mutations.POST("/ledgers/:cert_mint/mint", cfg.LedgerHandler.MintCreditsHandler)
	mutations.PUT("/ledgers/:cert_mint/quota", cfg.LedgerHandler.SetQuotaHandler)
	v1.GET("/ledgers/:cert_mint", cfg.LedgerHandler.GetLedgerHandler)

	mutations.POST("/retirements", cfg.RetirementHandler.RetireHandler)

	v1.GET("/audit-entries", cfg.AuditHandler.ListHandler)
	v1.GET("/audit-entries/verify", cfg.AuditHandler.VerifyHandler)

	s.router = router
}

// GetHandler returns the router as an http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, including
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness database ping failed", slog.Any("error", err))
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
