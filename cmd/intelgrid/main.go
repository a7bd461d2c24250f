// Package main wires together the intel sync service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/api"
	"github.com/nayeemjb/intelgrid/internal/archive"
	"github.com/nayeemjb/intelgrid/internal/clock/system"
	"github.com/nayeemjb/intelgrid/internal/config"
	"github.com/nayeemjb/intelgrid/internal/discovery"
	"github.com/nayeemjb/intelgrid/internal/engine"
	"github.com/nayeemjb/intelgrid/internal/history"
	"github.com/nayeemjb/intelgrid/internal/logging"
	"github.com/nayeemjb/intelgrid/internal/metrics"
	"github.com/nayeemjb/intelgrid/internal/oplog"
	"github.com/nayeemjb/intelgrid/internal/registry"
	"github.com/nayeemjb/intelgrid/internal/snapshot"
	"github.com/nayeemjb/intelgrid/internal/summarize"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	ops := oplog.New(oplog.DefaultCapacity, logger)
	clock := system.New()
	outlets := registry.Seeded()
	snapshots := snapshot.New()

	var hist *history.Store
	if cfg.History.Enabled {
		hist, err = history.Open(cfg.History.Path, logger)
		if err != nil {
			logger.Fatal("open history store failed", zap.Error(err))
		}
		defer hist.Close()
	}

	discoverer := discovery.New(discovery.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.DiscoverTimeout(),
	}, logger, ops)

	model := summarize.NewOllamaModel(summarize.OllamaConfig{
		BaseURL: cfg.Summarizer.BaseURL,
		Model:   cfg.Summarizer.Model,
		Timeout: time.Duration(cfg.Summarizer.TimeoutSeconds) * time.Second,
	})
	summarizer := summarize.New(summarize.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.ArticleTimeout(),
	}, model, logger, ops)

	var cycleRecorder engine.CycleRecorder
	var exportRecorder archive.ExportRecorder
	if hist != nil {
		cycleRecorder = hist
		exportRecorder = hist
	}

	eng := engine.New(outlets, discoverer, summarizer, snapshots, clock, cycleRecorder, ops, logger)
	eng.SetInterval(cfg.Sync.IntervalMinutes)

	archiver := archive.New(snapshots, clock, exportRecorder, cfg.Archive.Dir, ops, logger)
	archiver.SetInterval(cfg.Archive.IntervalMinutes)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		summarizer.Warmup(ctx)
	}()
	go func() {
		defer wg.Done()
		eng.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		archiver.Run(ctx)
	}()

	server := api.NewServer(snapshots, ops, eng, archiver, outlets, hist, clock, cfg.Archive.Dir, logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("intelgrid listening", zap.Int("port", cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
	wg.Wait()
}
