package match_test

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/princessjainn/Rodgers-PS1/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAtBasics(t *testing.T) {
	content := "first\nsecond\nthird"
	idx := match.NewLineIndex(content)

	assert.Equal(t, 1, idx.LineAt(0), "first character is on line 1")
	assert.Equal(t, 1, idx.LineAt(4), "last char of line 1")
	assert.Equal(t, 1, idx.LineAt(5), "the newline terminates line 1")
	assert.Equal(t, 2, idx.LineAt(6), "first character of line 2")
	assert.Equal(t, 3, idx.LineAt(13), "first character of line 3")
	assert.Equal(t, 3, idx.LineAt(len(content)-1))
}

func TestLineAtFirstCharacterOfEveryLine(t *testing.T) {
	lines := []string{"alpha", "bravo", "charlie", "delta"}
	content := strings.Join(lines, "\n")
	idx := match.NewLineIndex(content)

	offset := 0
	for n, line := range lines {
		assert.Equalf(t, n+1, idx.LineAt(offset), "first char of line %d", n+1)
		offset += len(line) + 1
	}
}

func TestLineAtMatchesNaiveScan(t *testing.T) {
	content := "a\n\nbb\nccc\n\n\nd\nlast line"
	idx := match.NewLineIndex(content)
	for offset := 0; offset < len(content); offset++ {
		want := 1 + strings.Count(content[:offset], "\n")
		require.Equalf(t, want, idx.LineAt(offset), "offset %d", offset)
	}
}

func TestLineAtClamps(t *testing.T) {
	idx := match.NewLineIndex("one\ntwo")
	assert.Equal(t, 1, idx.LineAt(-5))
	assert.Equal(t, 2, idx.LineAt(1000))
}

func TestLineStartAndColumn(t *testing.T) {
	content := "ab\ncdef\ng"
	idx := match.NewLineIndex(content)

	assert.Equal(t, 0, idx.LineStart(1))
	assert.Equal(t, 3, idx.LineStart(2))
	assert.Equal(t, 8, idx.LineStart(3))

	assert.Equal(t, 1, idx.ColumnAt(0))
	assert.Equal(t, 2, idx.ColumnAt(4), "second char of line 2")
	assert.Equal(t, 1, idx.ColumnAt(8))
}

func TestLineCount(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"\n", 1},
		{"abc", 1},
		{"abc\n", 1},
		{"abc\ndef", 2},
		{"abc\ndef\n", 2},
		{"a\nb\nc\nd", 4},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.content), func(t *testing.T) {
			assert.Equal(t, tc.want, match.NewLineIndex(tc.content).LineCount())
		})
	}
}

func TestEvaluateReportsLines(t *testing.T) {
	content := "var x = eval(input);\nconsole.log(x);\neval(more);"
	idx := match.NewLineIndex(content)
	re := regexp.MustCompile(`\beval\s*\(`)

	hits := match.Evaluate(re, nil, content, idx)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Line)
	assert.Equal(t, "eval(", hits[0].Text)
	assert.Equal(t, 3, hits[1].Line)
	assert.Equal(t, 1, hits[1].Column)
}

func TestEvaluateFirstCharOfFirstAndLastLine(t *testing.T) {
	content := "needle at start\nmiddle line\nneedle again"
	idx := match.NewLineIndex(content)
	re := regexp.MustCompile(`needle`)

	hits := match.Evaluate(re, nil, content, idx)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Line, "match at first character of line 1")
	assert.Equal(t, 1, hits[0].Column)
	assert.Equal(t, 3, hits[1].Line, "match at first character of the last line")
	assert.Equal(t, 1, hits[1].Column)
}

func TestEvaluateNonOverlapping(t *testing.T) {
	content := "aaaa"
	idx := match.NewLineIndex(content)
	re := regexp.MustCompile(`aa`)

	hits := match.Evaluate(re, nil, content, idx)
	assert.Len(t, hits, 2, "global search must be non-overlapping")
}

func TestEvaluateExcludeFilter(t *testing.T) {
	content := "fetch('http://localhost:3000/api')\nfetch('http://example.com/api')"
	idx := match.NewLineIndex(content)
	re := regexp.MustCompile(`http://[A-Za-z0-9.\-:/]+`)
	exclude := regexp.MustCompile(`^http://(?:localhost|127\.0\.0\.1|0\.0\.0\.0)\b`)

	hits := match.Evaluate(re, exclude, content, idx)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Line)
	assert.Contains(t, hits[0].Text, "example.com")
}

func TestEvaluateNoMatches(t *testing.T) {
	content := "nothing interesting here"
	idx := match.NewLineIndex(content)
	hits := match.Evaluate(regexp.MustCompile(`eval\(`), nil, content, idx)
	assert.Empty(t, hits)
}

// The conversion must stay logarithmic per match; this guards the index
// against regressions back to prefix rescans.
func BenchmarkLineAt(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 20000; i++ {
		fmt.Fprintf(&sb, "line %d with some content to pad it out\n", i)
	}
	content := sb.String()
	idx := match.NewLineIndex(content)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.LineAt((i * 7919) % len(content))
	}
}
