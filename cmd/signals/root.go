package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stockSignals/config"
	"stockSignals/internal/adapters/alphavantage"
	"stockSignals/internal/adapters/csvcache"
	"stockSignals/internal/adapters/logger"
	"stockSignals/internal/app"
	"stockSignals/internal/domain"
)

// runtime holds the dependencies built once per invocation.
type runtime struct {
	cfg      *config.Config
	logger   *logger.LogrusLogger
	provider *app.Provider
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "signals",
		Short: "fetch daily stock prices and compute EMA crossover signals",

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd)
		},
	}

	root.PersistentFlags().Bool("debug", false, "debug logging")
	root.PersistentFlags().String("size", "", "output size: compact or full (default from OUTPUT_SIZE)")

	root.AddCommand(newFetchCmd(rt), newSignalsCmd(rt))
	return root
}

func (rt *runtime) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = logger.LevelDebug
	}
	log := logger.New(logger.Options{Level: level, Format: cfg.LogFormat, Out: cmd.ErrOrStderr()})
	log.Debug(context.Background(), "Logger initialized", map[string]interface{}{"level": level.String()})

	client, err := alphavantage.New(alphavantage.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		MinInterval: cfg.MinInterval,
		Timeout:     cfg.HTTPTimeout,
		Logger:      log.WithPrefix("alphavantage"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Alpha Vantage client: %w", err)
	}

	cache, err := csvcache.New(csvcache.Config{Dir: cfg.CacheDir, Logger: log.WithPrefix("cache")})
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	provider, err := app.NewProvider(client, cache, log.WithPrefix("provider"))
	if err != nil {
		return err
	}

	rt.cfg, rt.logger, rt.provider = cfg, log, provider
	return nil
}

// outputSize resolves --size against the configured default.
func (rt *runtime) outputSize(cmd *cobra.Command) (domain.OutputSize, error) {
	s, err := cmd.Flags().GetString("size")
	if err != nil {
		return "", err
	}
	if s == "" {
		return rt.cfg.OutputSize, nil
	}
	return config.ParseOutputSize(s)
}
