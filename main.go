package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/metrics"
	"github.com/danielhkuo/canvass/router"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	// Open data sources
	specs, err := db.Specs(cfg)
	if err != nil {
		slog.Error("failed to resolve data sources", "error", err)
		os.Exit(1)
	}

	openCtx, cancelOpen := context.WithTimeout(context.Background(), 10*time.Second)
	sources, err := db.Open(openCtx, specs)
	cancelOpen()
	if err != nil {
		slog.Error("failed to open data sources", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sources.Close(); err != nil {
			slog.Error("failed to close data sources", "error", err)
		}
	}()
	slog.Info("Data sources ready", "sources", sources.Keys())

	m := metrics.New()
	m.SetOpenSources(sources.Len())

	// Create server
	server := &http.Server{
		Handler:           router.NewRouter(sources, cfg, m),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "origins", cfg.AllowedOrigins)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
