package main

//
//  @title           tradeactivity API
//  @version         1.0
//  @description     Asset trade activity check: classifies listed crypto assets by recent trade activity.
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradeactivity
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        report
//  @tag.description Trade activity report of the listed assets
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/tradeactivity/config"
	_ "github.com/guttosm/tradeactivity/docs" // swagger docs
	"github.com/guttosm/tradeactivity/internal/app"
	"github.com/guttosm/tradeactivity/internal/ingestion"
	"github.com/guttosm/tradeactivity/internal/logger"
	"github.com/guttosm/tradeactivity/internal/scheduler"
	"github.com/guttosm/tradeactivity/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, shuts the server down and
// runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runReport generates one report and writes it to w.
func runReport(ctx context.Context, svc service.ReportService, w io.Writer) error {
	text, err := svc.GenerateReport(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

// startScheduler produces the report once and, when cronSpec is set, keeps
// producing it on that schedule. The returned func stops the schedule.
func startScheduler(ctx context.Context, svc service.ReportService, cronSpec string) (func(), error) {
	s := scheduler.NewScheduler(ctx, svc)
	s.RunNow()
	if cronSpec == "" {
		return func() {}, nil
	}
	if err := s.Register(cronSpec); err != nil {
		return nil, err
	}
	s.Start()
	return s.Stop, nil
}

// main is the entry point of the tradeactivity application.
//
// Modes (selected via --mode flag):
//   - report: Prints the trade activity report to stdout.
//   - ingest: Loads the .csv trade statistics of --dir into PostgreSQL.
//   - api:    Starts the REST API serving the report, plus the optional cron schedule.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger with the settings viper resolved (.env included)
	logger.Configure(logger.Options{
		Level:  config.AppConfig.Log.Level,
		Pretty: config.AppConfig.Log.Pretty,
	})

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "report", "Mode: report, ingest or api")
	dir := flag.String("dir", config.AppConfig.Sources.TradesDir, "Directory with .csv trade statistics files")
	parallel := flag.Int("parallel", 0, "How many files to ingest concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Reingest files already ingested (deletes their trades first)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "report":
		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		err = runReport(ctx, a.Service, os.Stdout)
		cleanup()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("trade activity check failed")
		}

	case "ingest":
		logger.L().Info().Str("dir", *dir).Msg("running ingestion")

		// Direct DB connection for ingestion
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		stop, err := startScheduler(ctx, a.Service, config.AppConfig.Report.Cron)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("scheduler init error")
		}

		server := startServer(a.Router, *port)
		gracefulShutdown(ctx, server, func() {
			stop()
			cleanup()
		})

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
