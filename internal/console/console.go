// Package console is the interactive shell around the audit engine:
// scan a directory, browse the rule catalog, re-inspect the last score.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/princessjainn/Rodgers-PS1/internal/audit"
	"github.com/princessjainn/Rodgers-PS1/internal/report"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
	"github.com/princessjainn/Rodgers-PS1/internal/workspace"
)

// Console is the interactive shell.
type Console struct {
	auditor  *audit.Auditor
	logger   zerolog.Logger
	rl       *readline.Instance
	commands map[string]commandHandler

	// last holds the most recent scan's report for score/explain context.
	last *types.AuditReport
}

type commandHandler func(args []string) error

// New creates a console around an auditor.
func New(auditor *audit.Auditor, logger zerolog.Logger) *Console {
	c := &Console{
		auditor:  auditor,
		logger:   logger,
		commands: make(map[string]commandHandler),
	}
	c.registerCommands()
	return c
}

// Run starts the interactive loop and blocks until exit or EOF.
func (c *Console) Run(ctx context.Context) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("preflight> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("creating readline: %w", err)
	}
	defer rl.Close()
	c.rl = rl

	c.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println("bye")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := c.dispatch(ctx, line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	command := parts[0]
	args := parts[1:]

	if handler, ok := c.commands[command]; ok {
		return handler(args)
	}
	if command == "scan" {
		return c.cmdScan(ctx, args)
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s unknown command %q — try 'help'\n", yellow("Note:"), command)
	return nil
}

func (c *Console) registerCommands() {
	c.commands["rules"] = c.cmdRules
	c.commands["explain"] = c.cmdExplain
	c.commands["score"] = c.cmdScore
	c.commands["help"] = c.cmdHelp
	c.commands["?"] = c.cmdHelp
	c.commands["exit"] = c.cmdExit
	c.commands["quit"] = c.cmdExit
}

func (c *Console) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s\n", cyan("preflight console"))
	fmt.Println("Type 'scan <path>' to audit a workspace, 'help' for commands.")
	fmt.Println()
}

func (c *Console) cmdScan(ctx context.Context, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	loader, err := workspace.NewLoader(root, c.logger)
	if err != nil {
		return err
	}

	gray := color.New(color.FgHiBlack).SprintFunc()
	count := 0
	loader.Progress = func(path string) {
		count++
		fmt.Printf("\r%s", gray(fmt.Sprintf("loading %d: %s", count, truncate(path, 50))))
	}

	files, err := loader.Load()
	if err != nil {
		return err
	}
	fmt.Printf("\r%s\n", gray(fmt.Sprintf("loaded %d files from %s", len(files), root)))

	rep := c.auditor.Run(ctx, files)
	c.last = &rep
	report.RenderTerminal(os.Stdout, &rep)
	return nil
}

func (c *Console) cmdRules(args []string) error {
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, rule := range c.auditor.Registry().All() {
		fmt.Printf("  %s %-8s %-12s %s\n", yellow(rule.ID), rule.Severity, rule.Category, rule.Title)
	}
	return nil
}

func (c *Console) cmdExplain(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: explain <rule-id>")
	}
	id := strings.ToUpper(args[0])
	rule, ok := c.auditor.Registry().Get(id)
	if !ok {
		return fmt.Errorf("unknown rule %q", id)
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Printf("%s — %s [%s, %s]\n", cyan(rule.ID), rule.Title, rule.Severity, rule.Category)
	fmt.Printf("  %s\n", rule.Description)
	fmt.Printf("  %s\n", gray("fix: "+rule.Remediation))

	if c.last != nil {
		hits := 0
		for _, f := range c.last.Findings {
			if f.RuleID == id {
				hits++
			}
		}
		fmt.Printf("  %s\n", gray(fmt.Sprintf("last scan: %d occurrence(s)", hits)))
	}
	return nil
}

func (c *Console) cmdScore(args []string) error {
	if c.last == nil {
		return fmt.Errorf("no scan yet — run 'scan <path>' first")
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	decision := green(string(c.last.Decision))
	if c.last.Decision == types.DecisionNoGo {
		decision = red(string(c.last.Decision))
	}
	fmt.Printf("  score %d/100, decision %s (%d errors, %d warnings, %d info)\n",
		c.last.Score, decision, c.last.ErrorCount, c.last.WarningCount, c.last.InfoCount)
	return nil
}

func (c *Console) cmdHelp(args []string) error {
	fmt.Println("Commands:")
	fmt.Println("  scan [path]        audit a workspace (default: current directory)")
	fmt.Println("  rules              list the rule catalog")
	fmt.Println("  explain <rule-id>  describe one rule and its last-scan hits")
	fmt.Println("  score              show the last scan's score and decision")
	fmt.Println("  help               this help")
	fmt.Println("  exit               leave the console")
	return nil
}

func (c *Console) cmdExit(args []string) error {
	fmt.Println("bye")
	return io.EOF
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
