// Package watch re-audits a workspace on filesystem changes. Events are
// debounced, re-audits are rate limited, and each re-audit is a wholly
// new scan call — an in-flight scan is never cancelled by a newer
// trigger.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/princessjainn/Rodgers-PS1/internal/audit"
	"github.com/princessjainn/Rodgers-PS1/internal/config"
	"github.com/princessjainn/Rodgers-PS1/internal/report"
	"github.com/princessjainn/Rodgers-PS1/internal/workspace"
)

// skipDirs are never watched; they churn constantly and are excluded from
// scans anyway.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
	"coverage":     true,
	".next":        true,
	".cache":       true,
}

// Watcher drives the watch loop for one workspace root.
type Watcher struct {
	root    string
	auditor *audit.Auditor
	cfg     config.WatchConfig
	logger  zerolog.Logger
	out     io.Writer
}

// New creates a watcher over the root.
func New(root string, auditor *audit.Auditor, cfg config.WatchConfig, logger zerolog.Logger, out io.Writer) *Watcher {
	return &Watcher{
		root:    root,
		auditor: auditor,
		cfg:     cfg,
		logger:  logger,
		out:     out,
	}
}

// Run scans once immediately, then re-scans after each debounced burst of
// filesystem events until the context is cancelled. Re-audit frequency is
// additionally bounded by a rate limiter so an editor save storm cannot
// queue a backlog of scans.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}

	limiter := rate.NewLimiter(rate.Every(w.cfg.MinInterval), 1)
	if err := w.scan(ctx, limiter); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories join the watch so edits under them trigger.
			if ev.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() && !skipDirs[filepath.Base(ev.Name)] {
					_ = addRecursive(watcher, ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.cfg.Debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")

		case <-trigger:
			if err := w.scan(ctx, limiter); err != nil {
				return err
			}
		}
	}
}

// scan loads the workspace, runs one audit call, and renders the report.
// Findings are filtered against the files' post-scan state so a line that
// vanished mid-scan is not rendered.
func (w *Watcher) scan(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return err
	}

	loader, err := workspace.NewLoader(w.root, w.logger)
	if err != nil {
		return err
	}
	files, err := loader.Load()
	if err != nil {
		return err
	}

	rep := w.auditor.Run(ctx, files)

	current, err := loader.Load()
	if err == nil {
		rep.Findings = report.FilterCurrent(rep.Findings, current)
	}

	fmt.Fprintf(w.out, "\n[%s] %d files scanned\n", time.Now().Format("15:04:05"), len(files))
	report.RenderTerminal(w.out, &rep)
	return nil
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
