package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docbolt/docbolt/pkg/config"
	"github.com/docbolt/docbolt/pkg/logx"
	"github.com/docbolt/docbolt/pkg/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to TOML config file")
		listenAddr = flag.String("listen", "", "Listen address (overrides config)")
		dataDir    = flag.String("data-dir", "", "Data directory for storage (overrides config)")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
		showHelp   = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ndocbolt is an embedded document database with transactional persistence.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                 # Start with defaults\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config docbolt.toml            # Start from a config file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -listen :9090 -data-dir /data   # Flag overrides\n", os.Args[0])
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := logx.NewLogger().Level(logx.ParseLevel(cfg.Log.Level))

	srv := server.NewServer(logger, cfg.EngineOptions()...)
	srv.Start()

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.ListenAddr).Msg("starting docbolt server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced server shutdown")
	}

	srv.Shutdown()
	logger.Info().Msg("server exited")
}
