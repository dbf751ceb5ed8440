// Package workspace enumerates scan input: it walks a root directory,
// applies the default excludes plus any .preflightignore patterns, skips
// unreadable and oversized files, and hands back only in-scope
// SourceFiles. The audit core performs no I/O of its own and trusts that
// everything it receives from here is in scope.
package workspace

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/princessjainn/Rodgers-PS1/internal/classify"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// IgnoreFileName is the per-project ignore file, one pattern per line.
const IgnoreFileName = ".preflightignore"

// DefaultMaxFileSize caps how large a file the loader will read. Bundles
// and vendored blobs past this size drown real findings in noise.
const DefaultMaxFileSize = 2 << 20 // 2 MiB

// defaultExcludes are skipped in every workspace. Patterns follow the
// same matching scheme as .preflightignore entries: directory prefixes
// ("dist/"), suffixes (".min.js"), or any path component.
var defaultExcludes = []string{
	"node_modules/",
	".git/",
	"dist/",
	"build/",
	"out/",
	"vendor/",
	"coverage/",
	".next/",
	".cache/",
	".min.js",
	".min.mjs",
	".map",
}

// Loader walks a root and produces the SourceFile set for one scan call.
type Loader struct {
	Root        string
	MaxFileSize int64
	Progress    func(path string) // called per loaded file, may be nil

	logger zerolog.Logger
}

// NewLoader creates a loader for the given root.
func NewLoader(root string, logger zerolog.Logger) (*Loader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %q is not a directory", root)
	}
	return &Loader{
		Root:        abs,
		MaxFileSize: DefaultMaxFileSize,
		logger:      logger,
	}, nil
}

// Load walks the workspace and returns every eligible file, paths relative
// to the root and sorted, so repeated loads of an unchanged tree produce
// an identical scan input set.
func (l *Loader) Load() ([]types.SourceFile, error) {
	excludes := append([]string{}, defaultExcludes...)
	userPatterns, err := readIgnoreFile(filepath.Join(l.Root, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	excludes = append(excludes, userPatterns...)

	var files []types.SourceFile
	walkErr := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries reduce coverage, never abort discovery.
			l.logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
			return nil
		}

		rel, relErr := filepath.Rel(l.Root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if Excluded(rel+"/", excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if Excluded(rel, excludes) {
			return nil
		}

		c := classify.Classify(rel)
		if !c.Eligible {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			l.logger.Debug().Str("path", rel).Err(infoErr).Msg("skipping unstatable file")
			return nil
		}
		if l.MaxFileSize > 0 && info.Size() > l.MaxFileSize {
			l.logger.Debug().Str("path", rel).Int64("size", info.Size()).Msg("skipping oversized file")
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			l.logger.Debug().Str("path", rel).Err(readErr).Msg("skipping unreadable file")
			return nil
		}

		if l.Progress != nil {
			l.Progress(rel)
		}
		files = append(files, types.SourceFile{
			Path:     rel,
			Content:  string(content),
			Language: c.Language,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking workspace: %w", walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Excluded checks a slash-separated relative path against the patterns.
// A pattern matches as a path prefix, after any path separator, or as a
// suffix.
func Excluded(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(relPath, pattern) {
			return true
		}
		if strings.Contains(relPath, "/"+pattern) {
			return true
		}
		if strings.HasSuffix(relPath, pattern) {
			return true
		}
	}
	return false
}

// readIgnoreFile loads one pattern per line, skipping blanks and #
// comments. A missing file means no extra patterns.
func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", IgnoreFileName, err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", IgnoreFileName, err)
	}
	return patterns, nil
}
