package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nate-ooley/HandyBoss/internal/common/fsutil"
	"github.com/nate-ooley/HandyBoss/internal/config"
	"github.com/nate-ooley/HandyBoss/internal/engine"
	"github.com/nate-ooley/HandyBoss/internal/httpapi"
	"github.com/nate-ooley/HandyBoss/internal/ports"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "llmd: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		flags   config.Config
		corsCSV string
	)
	root := &cobra.Command{
		Use:           "llmd",
		Short:         "Local LLM HTTP server for HandyBoss",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.CORSOrigins = splitCSV(corsCSV)
			cfg, err := resolveConfig(cfgPath, flags)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "Path to config file (yaml|json|toml)")
	root.Flags().StringVar(&flags.ModelPath, "model", "", "Path to the GGUF model file (or "+config.ModelPathEnvVar+")")
	root.Flags().IntVar(&flags.Port, "port", 0, fmt.Sprintf("Preferred listen port (defaults %s or %d)", config.PortEnvVar, config.DefaultPort))
	root.Flags().IntVar(&flags.CtxSize, "ctx-size", 0, fmt.Sprintf("Model context length (default %d)", config.DefaultCtxSize))
	root.Flags().IntVar(&flags.Threads, "threads", 0, fmt.Sprintf("Inference threads (default %d)", config.DefaultThreads))
	root.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level: off|error|info|debug (defaults "+config.LogLevelEnvVar+" or info)")
	root.Flags().StringVar(&corsCSV, "cors-origins", "", "Comma-separated allowed CORS origins (empty = allow all)")
	return root
}

// resolveConfig merges flags over config file over environment, then applies
// built-in defaults. Flags win.
func resolveConfig(cfgPath string, flags config.Config) (config.Config, error) {
	cfg := flags
	if cfgPath != "" {
		file, err := config.Load(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", cfgPath, err)
		}
		mergeConfig(&cfg, file)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeConfig fills unset fields of dst from src.
func mergeConfig(dst *config.Config, src config.Config) {
	if dst.Port == 0 {
		dst.Port = src.Port
	}
	if dst.ModelPath == "" {
		dst.ModelPath = src.ModelPath
	}
	if dst.CtxSize == 0 {
		dst.CtxSize = src.CtxSize
	}
	if dst.Threads == 0 {
		dst.Threads = src.Threads
	}
	if dst.LogLevel == "" {
		dst.LogLevel = src.LogLevel
	}
	if len(dst.CORSOrigins) == 0 {
		dst.CORSOrigins = src.CORSOrigins
	}
	if dst.MaxBodyBytes == 0 {
		dst.MaxBodyBytes = src.MaxBodyBytes
	}
}

// splitCSV splits a comma-separated list, trimming whitespace and dropping
// empty items. Returns nil for an empty input.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if level == "off" {
		lvl = zerolog.Disabled
	} else if parsed, err := zerolog.ParseLevel(level); err == nil && level != "" {
		lvl = parsed
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func run(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)

	if cfg.ModelPath == "" {
		return fmt.Errorf("model path is required (--model or %s)", config.ModelPathEnvVar)
	}
	if !fsutil.FileExists(cfg.ModelPath) {
		return fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	// Negotiate the listen port before loading the model: failing on ports
	// is cheap, loading weights is not.
	bound, err := ports.Negotiate(cfg.Port)
	if err != nil {
		logger.Error().Err(err).Int("preferred", cfg.Port).Msg("port negotiation failed")
		return err
	}
	if bound != cfg.Port {
		logger.Warn().Int("preferred", cfg.Port).Int("bound", bound).Msg("preferred port busy, moved")
	}
	cfg.Port = bound
	// Republish so out-of-process readers of the variable see the effective
	// port; in-process components get cfg directly.
	if err := os.Setenv(config.PortEnvVar, strconv.Itoa(bound)); err != nil {
		return fmt.Errorf("republish %s: %w", config.PortEnvVar, err)
	}

	logger.Info().Str("model", cfg.ModelPath).Int("ctx_size", cfg.CtxSize).Int("threads", cfg.Threads).Msg("loading model")
	adapter := engine.NewLlamaAdapter(cfg.CtxSize, cfg.Threads)
	eng, err := engine.New(adapter, cfg.ModelPath)
	if err != nil {
		logger.Error().Err(err).Msg("model load failed")
		return err
	}
	defer eng.Close()
	logger.Info().Str("model", eng.ModelName()).Msg("model loaded")

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(true, cfg.CORSOrigins)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: httpapi.NewMux(eng)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Msg("llmd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
