package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/princessjainn/Rodgers-PS1/internal/ai"
	"github.com/princessjainn/Rodgers-PS1/internal/config"
	"github.com/princessjainn/Rodgers-PS1/internal/report"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
	"github.com/princessjainn/Rodgers-PS1/internal/workspace"
)

var (
	auditFormat     string
	auditOutput     string
	auditRuleFile   string
	auditFailOnNoGo bool
	auditTriage     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit [path]",
	Short: "Scan a workspace and print the readiness report",
	Long: `Scan a workspace (default: current directory) and print the audit
report. Formats: terminal (default), json, sarif.

With --fail-on-nogo the command exits 1 on a NO-GO decision, which makes
it usable as a CI gate. With --triage an AI summary of the report is
appended (requires ANTHROPIC_API_KEY); triage failures degrade to the
plain report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if auditRuleFile != "" {
			cfg.Scan.RuleFile = auditRuleFile
		}
		if auditFailOnNoGo {
			cfg.Scan.FailOnNoGo = true
		}

		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		auditor, err := newAuditor(cfg, logger)
		if err != nil {
			return err
		}

		loader, err := workspace.NewLoader(root, logger)
		if err != nil {
			return err
		}
		loader.MaxFileSize = cfg.Scan.MaxFileSize

		gray := color.New(color.FgHiBlack).SprintFunc()
		if auditFormat == "terminal" {
			count := 0
			loader.Progress = func(path string) {
				count++
				fmt.Fprintf(os.Stderr, "\r%s", gray(fmt.Sprintf("scanning %d files...", count)))
			}
		}

		files, err := loader.Load()
		if err != nil {
			return err
		}
		if auditFormat == "terminal" {
			fmt.Fprintf(os.Stderr, "\r%s\n", gray(fmt.Sprintf("scanned %d files", len(files))))
		}

		ctx := context.Background()
		rep := auditor.Run(ctx, files)

		out := os.Stdout
		if auditOutput != "" {
			f, createErr := os.Create(auditOutput)
			if createErr != nil {
				return fmt.Errorf("creating output file: %w", createErr)
			}
			defer f.Close()
			out = f
		}

		switch auditFormat {
		case "terminal":
			report.RenderTerminal(out, &rep)
		case "json":
			if err := report.WriteJSON(out, &rep); err != nil {
				return err
			}
		case "sarif":
			if err := report.WriteSARIF(out, &rep, "preflight", Version); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (terminal, json, sarif)", auditFormat)
		}

		if auditTriage && auditFormat == "terminal" {
			runTriage(ctx, cfg, logger, &rep)
		}

		if cfg.Scan.FailOnNoGo && rep.Decision == types.DecisionNoGo {
			os.Exit(1)
		}
		return nil
	},
}

// runTriage appends the AI summary; any failure leaves the plain report
// standing.
func runTriage(ctx context.Context, cfg config.Config, logger zerolog.Logger, rep *types.AuditReport) {
	triage, err := ai.NewTriage(cfg.AI, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("triage unavailable")
		return
	}

	summary, err := triage.Summarize(ctx, rep)
	if err != nil {
		logger.Warn().Err(err).Msg("triage failed")
		return
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s\n\n  %s\n\n", cyan("=== Triage ==="), summary.Assessment)
	if len(summary.Blockers) > 0 {
		fmt.Printf("  %s\n", yellow("Blockers:"))
		for _, b := range summary.Blockers {
			fmt.Printf("    - %s\n", b)
		}
	}
	if len(summary.QuickWins) > 0 {
		fmt.Printf("  %s\n", yellow("Quick wins:"))
		for _, q := range summary.QuickWins {
			fmt.Printf("    - %s\n", q)
		}
	}
	fmt.Println()
}

func init() {
	auditCmd.Flags().StringVar(&auditFormat, "format", "terminal", "output format: terminal, json, sarif")
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "write the report to a file instead of stdout")
	auditCmd.Flags().StringVar(&auditRuleFile, "rules", "", "YAML file of custom rules")
	auditCmd.Flags().BoolVar(&auditFailOnNoGo, "fail-on-nogo", false, "exit 1 when the decision is NO-GO")
	auditCmd.Flags().BoolVar(&auditTriage, "triage", false, "append an AI triage summary (needs ANTHROPIC_API_KEY)")
	rootCmd.AddCommand(auditCmd)
}
