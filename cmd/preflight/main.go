// Command preflight audits JavaScript/TypeScript workspaces for
// deployment readiness: security, compliance, architecture, dependency,
// and AI-risk findings rolled up into a GO/NO-GO score.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/princessjainn/Rodgers-PS1/internal/audit"
	"github.com/princessjainn/Rodgers-PS1/internal/config"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
)

// Version is stamped by the release build.
var Version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Deployment-readiness audit for JS/TS workspaces",
	Long: `preflight scans a workspace with five concurrent category agents
(security, compliance, architecture, dependency, ai-risk), deduplicates
their findings, and scores the result as GO or NO-GO.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .preflight.yaml in the workspace)")
}

// newLogger builds the stderr logger; human-facing output goes to stdout
// separately.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig resolves configuration as file < environment, with the flag
// deciding which file. Explicit command flags are applied by each command
// after this.
func loadConfig() (config.Config, error) {
	base := config.FromEnv()

	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigFile
	}

	cfg, err := config.LoadFile(base, path, explicit)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newAuditor builds the registry (built-ins plus any custom rule file)
// and wraps it in an auditor.
func newAuditor(cfg config.Config, logger zerolog.Logger) (*audit.Auditor, error) {
	reg, err := rules.Default()
	if err != nil {
		return nil, err
	}
	if cfg.Scan.RuleFile != "" {
		if err := rules.LoadInto(reg, cfg.Scan.RuleFile); err != nil {
			return nil, fmt.Errorf("loading custom rules: %w", err)
		}
		logger.Debug().Str("file", cfg.Scan.RuleFile).Msg("custom rules loaded")
	}
	return audit.New(reg, logger), nil
}
