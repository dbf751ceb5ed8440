package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/princessjainn/Rodgers-PS1/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive audit console",
	Long:  `Start the interactive console: scan workspaces, browse rules, and inspect scores without re-running the CLI.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		auditor, err := newAuditor(cfg, logger)
		if err != nil {
			return err
		}

		return console.New(auditor, logger).Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
