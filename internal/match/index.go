// Package match evaluates textual detection patterns over raw file content
// and converts match offsets into 1-based line numbers.
//
// Offset-to-line conversion is the hot path of a scan: a single large file
// can produce thousands of matches. The package therefore builds one
// LineIndex per file — the sorted byte offsets of every newline — and
// resolves each offset with a binary search instead of rescanning the file
// prefix per match.
package match

import "sort"

// LineIndex is a precomputed newline-offset table for one file's content.
// Build it once per file and share it across every rule evaluation, the
// structural analyzer, and line-count checks.
type LineIndex struct {
	newlines []int
	length   int
}

// NewLineIndex scans content once and records the offset of every newline.
func NewLineIndex(content string) *LineIndex {
	idx := &LineIndex{length: len(content)}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

// LineAt converts a byte offset into a 1-based line number. The line of an
// offset is one plus the number of newlines strictly before it; the newline
// byte itself belongs to the line it terminates. Offsets outside the
// content clamp to the first or last line.
func (idx *LineIndex) LineAt(offset int) int {
	if offset < 0 {
		return 1
	}
	if offset > idx.length {
		offset = idx.length
	}
	n := sort.Search(len(idx.newlines), func(i int) bool {
		return idx.newlines[i] >= offset
	})
	return n + 1
}

// LineStart returns the byte offset of the first character of a 1-based
// line number.
func (idx *LineIndex) LineStart(line int) int {
	if line <= 1 {
		return 0
	}
	if line > len(idx.newlines)+1 {
		line = len(idx.newlines) + 1
	}
	return idx.newlines[line-2] + 1
}

// ColumnAt converts a byte offset into a 1-based column on its line.
func (idx *LineIndex) ColumnAt(offset int) int {
	line := idx.LineAt(offset)
	return offset - idx.LineStart(line) + 1
}

// LineCount reports how many addressable lines the content has. A trailing
// newline does not open an extra empty line; empty content has zero lines.
func (idx *LineIndex) LineCount() int {
	if idx.length == 0 {
		return 0
	}
	count := len(idx.newlines)
	if idx.newlines == nil || idx.newlines[len(idx.newlines)-1] != idx.length-1 {
		count++
	}
	return count
}
