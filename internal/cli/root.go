// Package cli provides the command-line interface for the stub generator.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jleen/supriya/internal/generator"
)

// Execute creates and runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	var (
		cfg        Config
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "ugen-stubgen",
		Short: "Generate .pyi stubs for ugen classes",
		Long: `ugen-stubgen scans a directory of Python modules for classes carrying the
@ugen decorator and writes a .pyi stub describing each module's classes.
Run with no arguments it regenerates every stub in the configured
directory.`,
		RunE: func(*cobra.Command, []string) error {
			return runGenerate(&cfg, configPath, verbose)
		},
	}

	root.PersistentFlags().StringVar(&cfg.Dir, "dir", "", `Directory containing ugen sources (default "supriya/ugens")`)
	root.PersistentFlags().StringSliceVar(&cfg.Exclude, "exclude", nil, "Source stems that never get stubs")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default .stubgen.yml when present)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "generate",
			Short: "Regenerate all stub files",
			RunE: func(*cobra.Command, []string) error {
				return runGenerate(&cfg, configPath, verbose)
			},
		},
		newCheckCommand(&cfg, &configPath, &verbose),
		newWatchCommand(&cfg, &configPath, &verbose),
	)

	return root
}

// newLogger builds the diagnostics logger. Progress lines are plain stdout
// writes; zap carries warnings and debug traces on stderr.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

func runGenerate(cfg *Config, configPath string, verbose bool) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.resolve(configPath); err != nil {
		return err
	}
	return generator.New(log, os.Stdout, cfg.Exclude).Run(cfg.Dir)
}
