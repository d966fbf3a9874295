package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jleen/supriya/internal/generator"
)

func newCheckCommand(cfg *Config, configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that stubs on disk match what generation would produce",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, cfg, *configPath, *verbose)
		},
	}
}

func runCheck(cmd *cobra.Command, cfg *Config, configPath string, verbose bool) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.resolve(configPath); err != nil {
		return err
	}
	issues, err := generator.New(log, io.Discard, cfg.Exclude).Check(cfg.Dir)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "All stubs up to date")
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.Kind, issue.Path)
	}
	return errors.Newf("%d stub(s) out of date", len(issues))
}
