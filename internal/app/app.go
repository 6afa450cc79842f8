package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradeactivity/config"
	"github.com/guttosm/tradeactivity/internal/api"
	"github.com/guttosm/tradeactivity/internal/ingestion"
	"github.com/guttosm/tradeactivity/internal/logger"
	"github.com/guttosm/tradeactivity/internal/metrics"
	"github.com/guttosm/tradeactivity/internal/registry"
	"github.com/guttosm/tradeactivity/internal/service"
	"github.com/guttosm/tradeactivity/internal/storage"
)

// App bundles the wired components.
type App struct {
	Router  *gin.Engine
	Service service.ReportService
	Metrics *metrics.Recorder
	// DB is nil when trades are read from files.
	DB *sql.DB
}

// InitializeApp wires the application from config.AppConfig and returns it
// with a cleanup function that releases its resources.
//
// Responsibilities:
//   - Loads the asset registry file.
//   - Opens the trade statistics source (PostgreSQL or a CSV directory).
//   - Builds the classifier, the report service and its metrics.
//   - Configures the Gin router and the health checks.
func InitializeApp() (*App, func(), error) {
	cfg := config.AppConfig

	reg, err := registry.LoadFile(cfg.Sources.AssetsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load asset registry: %w", err)
	}

	var (
		db      *sql.DB
		trades  service.TradeSource
		cleanup = func() {}
		ping    func(ctx context.Context) error
	)
	switch cfg.Sources.Trades {
	case config.SourceFile:
		trades = ingestion.NewFileSource(cfg.Sources.TradesDir)
	default:
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		trades = storage.NewTradeStatisticsRepository(db)
		ping = db.PingContext
		cleanup = func() { _ = db.Close() }
	}

	rec := metrics.NewRecorder()
	svc := service.NewReportService(service.NewActivityClassifier(Params(cfg)), trades, reg, rec)

	router := api.NewRouter(api.NewHandler(svc), api.RouterOptions{
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		Gatherer:           rec.Registry(),
	})
	api.NewHealthHandler(ping).Register(router)

	logger.L().Info().
		Str("trades_source", cfg.Sources.Trades).
		Str("assets_file", cfg.Sources.AssetsFile).
		Int("registered_assets", reg.Len()).
		Msg("application initialized")

	return &App{Router: router, Service: svc, Metrics: rec, DB: db}, cleanup, nil
}

// Params maps the report configuration to classifier thresholds.
func Params(cfg config.Config) service.Params {
	return service.Params{
		WindowDays:     cfg.Report.WindowDays,
		MinTradeAmount: cfg.Report.MinTradeAmount,
		MinNumOfTrades: cfg.Report.MinNumOfTrades,
		GracePeriod:    cfg.Report.GracePeriod,
		NewlyAdded:     service.CodeSet(cfg.Report.NewlyAdded...),
	}
}
