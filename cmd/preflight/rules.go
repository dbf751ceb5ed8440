package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the detection rule catalog",
	Long:  `List every registered rule: built-ins plus any custom rule file from configuration.`,
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
		all := auditor.Registry().All()

		switch rulesFormat {
		case "terminal":
			cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			gray := color.New(color.FgHiBlack).SprintFunc()

			fmt.Printf("\n%s\n\n", cyan(fmt.Sprintf("=== %d rules ===", len(all))))
			for _, rule := range all {
				fmt.Printf("  %s %-8s %-12s %s\n", yellow(rule.ID), rule.Severity, rule.Category, rule.Title)
				fmt.Printf("           %s\n", gray(rule.Description))
			}
			fmt.Println()

		case "json":
			type ruleOut struct {
				ID          string   `json:"id"`
				Title       string   `json:"title"`
				Severity    string   `json:"severity"`
				Category    string   `json:"category"`
				Description string   `json:"description"`
				Remediation string   `json:"remediation"`
				Extensions  []string `json:"extensions"`
			}
			out := make([]ruleOut, 0, len(all))
			for _, rule := range all {
				out = append(out, ruleOut{
					ID:          rule.ID,
					Title:       rule.Title,
					Severity:    string(rule.Severity),
					Category:    string(rule.Category),
					Description: rule.Description,
					Remediation: rule.Remediation,
					Extensions:  rule.Extensions,
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)

		default:
			return fmt.Errorf("unknown format %q (terminal, json)", rulesFormat)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "terminal", "output format: terminal, json")
	rootCmd.AddCommand(rulesCmd)
}
