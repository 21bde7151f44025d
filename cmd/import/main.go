package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pitchmap/lnp-importer/internal/app"
	"github.com/pitchmap/lnp-importer/internal/config"
	"github.com/pitchmap/lnp-importer/internal/observability"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("stop profiler", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	cmd := "run"
	if len(os.Args) > 1 {
		cmd = strings.ToLower(strings.TrimSpace(os.Args[1]))
	}

	switch cmd {
	case "run":
		report, err := application.Importer.Run(ctx)
		if err != nil {
			logger.Error("import failed", "error", err)
			os.Exit(1)
		}
		logger.Info("import finished",
			"editions", report.Editions,
			"team_histories", report.TeamHistories,
			"clubs_created", report.ClubsCreated,
			"teams_created", report.TeamsCreated,
			"clubs_merged", report.ClubsMerged,
			"skipped", report.Skipped,
		)
	case "merge-clubs":
		merged, err := application.Merger.MergeDuplicates(ctx)
		if err != nil {
			logger.Error("club merge failed", "error", err)
			os.Exit(1)
		}
		logger.Info("club merge finished", "groups_merged", merged)
	case "compose-urls":
		written, err := application.Links.ComposeAll(ctx)
		if err != nil {
			logger.Error("url composition failed", "error", err)
			os.Exit(1)
		}
		logger.Info("url composition finished", "urls_written", written)
	default:
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s <run|merge-clubs|compose-urls>\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  run           full reconciliation pass against the scraper")
	fmt.Fprintln(os.Stderr, "  merge-clubs   merge duplicate clubs only")
	fmt.Fprintln(os.Stderr, "  compose-urls  refresh upstream links on mapper entities")
}
