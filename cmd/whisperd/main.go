package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"whisperd/internal/common/fsutil"
	"whisperd/internal/config"
	"whisperd/internal/engine"
	"whisperd/internal/runtime"
	"whisperd/internal/statusapi"
	"whisperd/internal/worker"
)

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "off":
		return zerolog.Disabled
	case "error":
		return zerolog.ErrorLevel
	case "debug":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func main() {
	// Flags with environment variable defaults
	configPath := flag.String("config", "", "Optional config file (.yaml/.yml/.json/.toml)")
	modelCache := flag.String("model-cache", os.Getenv("WHISPERD_MODEL_CACHE"), "Model storage root passed to the engine (empty = engine default)")
	statusAddr := flag.String("status-addr", os.Getenv("WHISPERD_STATUS_ADDR"), "Debug HTTP listen address, e.g. 127.0.0.1:9090 (empty = disabled)")
	logLevel := flag.String("log-level", os.Getenv("WHISPERD_LOG_LEVEL"), "Log level: off, error, info, debug")
	flag.Parse()

	cacheDir := *modelCache
	addr := *statusAddr
	level := *logLevel
	defaults := worker.BuiltinDefaults()

	// Config fills whatever the flags and env left unset.
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "whisperd: load config: %v\n", err)
			os.Exit(1)
		}
		if cacheDir == "" {
			cacheDir = cfg.ModelCacheDir
		}
		if addr == "" {
			addr = cfg.StatusAddr
		}
		if level == "" {
			level = cfg.LogLevel
		}
		if cfg.DefaultModel != "" {
			defaults.Model = cfg.DefaultModel
		}
		if cfg.DefaultDevice != "" {
			defaults.Device = cfg.DefaultDevice
		}
		if cfg.DefaultComputeType != "" {
			defaults.ComputeType = cfg.DefaultComputeType
		}
		if cfg.DefaultLanguage != "" {
			defaults.Language = cfg.DefaultLanguage
		}
		if cfg.DefaultBeamSize > 0 {
			defaults.BeamSize = cfg.DefaultBeamSize
		}
	}
	if level == "" {
		level = "info"
	}

	// stdout carries the protocol; all logging goes to stderr.
	logger := zerolog.New(os.Stderr).Level(parseLevel(level)).With().Timestamp().Logger()

	if cacheDir != "" {
		expanded, err := fsutil.ExpandHome(cacheDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("resolve model cache dir")
		}
		cacheDir = expanded
	}

	cache := runtime.New(engine.New(), cacheDir)
	defer cache.Close()

	if !engine.Built() {
		logger.Warn().Msg("whisper support not built; model loads will fail in-band")
	}
	logger.Info().Str("model_cache", cacheDir).Str("default_model", defaults.Model).Msg("whisperd ready")

	var srv *http.Server
	if addr != "" {
		statusapi.SetLogger(logger)
		srv = &http.Server{Addr: addr, Handler: statusapi.NewRouter(cache, cacheDir)}
		go func() {
			logger.Info().Str("addr", addr).Msg("status server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("status server error")
			}
		}()
	}

	// The loop runs until stdin reaches EOF; that is the only shutdown signal.
	w := worker.New(cache, os.Stdin, os.Stdout, logger, defaults)
	runErr := w.Run(context.Background())

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("status server shutdown")
		}
	}
	if runErr != nil {
		logger.Error().Err(runErr).Msg("protocol loop failed")
		os.Exit(1)
	}
}
