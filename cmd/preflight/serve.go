package main

import (
	"github.com/spf13/cobra"

	"github.com/princessjainn/Rodgers-PS1/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the audit HTTP API",
	Long: `Run the HTTP API:

  POST /api/v1/audit   {"files": [{"path": ..., "content": ...}]} -> report
  GET  /api/v1/rules   rule catalog
  GET  /healthz        liveness

The server shuts down gracefully on SIGINT/SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		auditor, err := newAuditor(cfg, logger)
		if err != nil {
			return err
		}

		api := server.New(auditor, cfg.Server, logger)
		return api.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8787)")
	rootCmd.AddCommand(serveCmd)
}
