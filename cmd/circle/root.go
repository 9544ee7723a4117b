package main

import (
	"fmt"

	"github.com/okian/circle/internal/config"
	"github.com/okian/circle/internal/domain/scoring"
	"github.com/okian/circle/pkg/logger"
	"github.com/okian/circle/pkg/metrics"
	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs once flags are parsed.
type cli struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cli{}

	cmd := &cobra.Command{
		Use:          "circle",
		Short:        "Score freehand circles",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.finish(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&rt.configPath, "config", "", "YAML config file (defaults to $"+config.EnvFile+")")
	cmd.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "log level override: debug, info, warn, error")

	cmd.AddCommand(replayCmd(rt), scoreCmd(rt), demoCmd(rt))
	return cmd
}

// setup loads configuration (defaults -> optional file -> env) and sets up
// logging on the command's stderr.
func (rt *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), rt.configPath)
	if err != nil {
		return err
	}
	rt.cfg = cfg

	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	level := cfg.LogLevel
	if rt.logLevel != "" {
		level = rt.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	rt.log = logger.Get().Named(cmd.Name())
	rt.log.Debug(cmd.Context(), "configuration loaded",
		logger.Int("min_points", cfg.MinPoints),
		logger.Int("sample_target", cfg.SampleTarget),
		logger.Float64("closure_ratio", cfg.ClosureRatio),
		logger.Float64("closure_penalty", cfg.ClosurePenalty),
	)
	return nil
}

// finish dumps metrics when a textfile is configured and flushes logs.
func (rt *cli) finish(cmd *cobra.Command) error {
	if path := rt.cfg.MetricsTextfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return err
		}
		rt.log.Debug(cmd.Context(), "metrics written", logger.String("path", path))
	}
	return logger.Sync()
}

func (rt *cli) scoringOptions() []scoring.Option {
	return []scoring.Option{
		scoring.WithMinPoints(rt.cfg.MinPoints),
		scoring.WithSampleTarget(rt.cfg.SampleTarget),
		scoring.WithClosure(rt.cfg.ClosureRatio, rt.cfg.ClosurePenalty),
	}
}
