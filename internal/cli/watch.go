package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jleen/supriya/internal/generator"
	"github.com/jleen/supriya/internal/watch"
)

func newWatchCommand(cfg *Config, configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate stubs whenever the sources change",
		RunE: func(*cobra.Command, []string) error {
			return runWatch(cfg, *configPath, *verbose)
		},
	}
}

func runWatch(cfg *Config, configPath string, verbose bool) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.resolve(configPath); err != nil {
		return err
	}

	gen := generator.New(log, os.Stdout, cfg.Exclude)
	if err := gen.Run(cfg.Dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch.New(cfg.Dir, log, func() error { return gen.Run(cfg.Dir) }).Watch(ctx)
}
