// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/allisson/carbonledger/internal/audit/http"
	auditService "github.com/allisson/carbonledger/internal/audit/service"
	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
	certificateHTTP "github.com/allisson/carbonledger/internal/certificate/http"
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
	"github.com/allisson/carbonledger/internal/config"
	"github.com/allisson/carbonledger/internal/database"
	governanceHTTP "github.com/allisson/carbonledger/internal/governance/http"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
	"github.com/allisson/carbonledger/internal/http"
	ledgerHTTP "github.com/allisson/carbonledger/internal/ledger/http"
	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
	"github.com/allisson/carbonledger/internal/metrics"
	retirementHTTP "github.com/allisson/carbonledger/internal/retirement/http"
	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Repositories
	authorityRepo authorityRepository
	mintRepo      tokenService.MintRepository
	metadataRepo  tokenService.MetadataRepository
	holdingRepo   tokenService.HoldingRepository
	fundingRepo   tokenService.FundingRepository
	auditRepo     auditUseCase.EntryRepository

	// Services
	tokenService   tokenService.TokenService
	storageFunding tokenService.StorageFunding
	auditSigner    auditService.Signer

	// Use Cases
	governanceUseCase  governanceUseCase.UseCase
	certificateUseCase certificateUseCase.UseCase
	ledgerUseCase      ledgerUseCase.UseCase
	retirementUseCase  retirementUseCase.UseCase
	auditUseCase       auditUseCase.UseCase

	// Handlers
	governanceHandler  *governanceHTTP.GovernanceHandler
	certificateHandler *certificateHTTP.CertificateHandler
	ledgerHandler      *ledgerHTTP.LedgerHandler
	retirementHandler  *retirementHTTP.RetirementHandler
	auditHandler       *auditHTTP.AuditHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	dbInit                 sync.Once
	txManagerInit          sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	authorityRepoInit      sync.Once
	mintRepoInit           sync.Once
	metadataRepoInit       sync.Once
	holdingRepoInit        sync.Once
	fundingRepoInit        sync.Once
	auditRepoInit          sync.Once
	tokenServiceInit       sync.Once
	storageFundingInit     sync.Once
	auditSignerInit        sync.Once
	governanceUseCaseInit  sync.Once
	certificateUseCaseInit sync.Once
	ledgerUseCaseInit      sync.Once
	retirementUseCaseInit  sync.Once
	auditUseCaseInit       sync.Once
	governanceHandlerInit  sync.Once
	certificateHandlerInit sync.Once
	ledgerHandlerInit      sync.Once
	retirementHandlerInit  sync.Once
	auditHandlerInit       sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled it returns a no-op implementation.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	governanceHandler, err := c.GovernanceHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get governance handler for http server: %w", err)
	}

	certificateHandler, err := c.CertificateHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate handler for http server: %w", err)
	}

	ledgerHandler, err := c.LedgerHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger handler for http server: %w", err)
	}

	retirementHandler, err := c.RetirementHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get retirement handler for http server: %w", err)
	}

	auditHandler, err := c.AuditHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit handler for http server: %w", err)
	}

	var metricsProvider *metrics.Provider
	if c.config.MetricsEnabled {
		metricsProvider, err = c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(http.RouterConfig{
		GovernanceHandler:       governanceHandler,
		CertificateHandler:      certificateHandler,
		LedgerHandler:           ledgerHandler,
		RetirementHandler:       retirementHandler,
		AuditHandler:            auditHandler,
		MetricsProvider:         metricsProvider,
		MetricsNamespace:        c.config.MetricsNamespace,
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
	})

	return server, nil
}

// initMetricsServer creates the metrics server exposing /metrics.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	logger := c.Logger()

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, logger, metricsProvider), nil
}
