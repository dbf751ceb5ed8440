package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/princessjainn/Rodgers-PS1/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-audit a workspace on file changes",
	Long: `Watch a workspace (default: current directory) and re-run the audit
after each debounced burst of file changes. An in-flight scan always runs
to completion; a change arriving mid-scan triggers a fresh scan after it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		auditor, err := newAuditor(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := watch.New(root, auditor, cfg.Watch, logger, os.Stdout)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info().Msg("watch stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
