package report

import (
	"github.com/princessjainn/Rodgers-PS1/internal/match"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// FilterCurrent drops findings whose line number exceeds the file's
// current line count: the file may have shrunk since the scan ran, and a
// finding pointing past the end would highlight nothing. Findings in files
// absent from the set are kept; absence means "not re-read", not "gone".
func FilterCurrent(findings []types.Finding, files []types.SourceFile) []types.Finding {
	counts := make(map[string]int, len(files))
	for _, f := range files {
		counts[f.Path] = match.NewLineIndex(f.Content).LineCount()
	}

	out := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		if count, ok := counts[f.FilePath]; ok && f.LineNumber > count {
			continue
		}
		out = append(out, f)
	}
	return out
}
