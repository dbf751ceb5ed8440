package analyzer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princessjainn/Rodgers-PS1/internal/analyzer"
	"github.com/princessjainn/Rodgers-PS1/internal/match"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
)

func analyze(content string, kinds ...rules.StructuralKind) analyzer.Result {
	want := make(map[rules.StructuralKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	return analyzer.Analyze(content, want, match.NewLineIndex(content))
}

func hitsOf(r analyzer.Result, kind rules.StructuralKind) []analyzer.Hit {
	var out []analyzer.Hit
	for _, h := range r.Hits {
		if h.Kind == kind {
			out = append(out, h)
		}
	}
	return out
}

func TestDynamicExecPredicates(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"eval call", "var a = 1;\nvar b = eval(input);\n", 2},
		{"new Function", "var f = new Function('return 1');\n", 1},
		{"Function call form", "var f = Function('return 1');\n", 1},
		{"string-arg setTimeout", "setTimeout('doWork()', 100);\n", 1},
		{"split across lines", "var r =\n  eval\n  (code);\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyze(tt.content, rules.StructuralDynamicExec)
			require.True(t, result.Parsed)
			hits := hitsOf(result, rules.StructuralDynamicExec)
			require.Len(t, hits, 1)
			assert.Equal(t, tt.wantLine, hits[0].Line)
		})
	}
}

func TestDynamicExecIgnoresSafeShapes(t *testing.T) {
	content := strings.Join([]string{
		"setTimeout(tick, 100);",        // function reference, not a string
		"var s = 'eval(x)';",            // string literal cannot spoof a call
		"obj.eval(y);",                  // method on another object
		"",
	}, "\n")

	result := analyze(content, rules.StructuralDynamicExec)
	require.True(t, result.Parsed)
	assert.Empty(t, hitsOf(result, rules.StructuralDynamicExec))
}

func TestRawHTMLPredicates(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"innerHTML assignment", "el.innerHTML = userContent;\n", 1},
		{"outerHTML assignment", "node.outerHTML = markup;\n", 1},
		{"document.write", "document.write(banner);\n", 1},
		{"document.writeln", "document.writeln(banner);\n", 1},
		{"insertAdjacentHTML", "el.insertAdjacentHTML('beforeend', html);\n", 1},
		{"dangerouslySetInnerHTML prop", "var props = {\n  dangerouslySetInnerHTML: { __html: raw }\n};\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyze(tt.content, rules.StructuralRawHTML)
			require.True(t, result.Parsed)
			hits := hitsOf(result, rules.StructuralRawHTML)
			require.Len(t, hits, 1)
			assert.Equal(t, tt.wantLine, hits[0].Line)
		})
	}
}

func TestRawHTMLIgnoresReads(t *testing.T) {
	// Reading innerHTML is not an injection sink.
	result := analyze("var copy = el.innerHTML;\n", rules.StructuralRawHTML)
	require.True(t, result.Parsed)
	assert.Empty(t, result.Hits)
}

func TestLLMLoopRequiresEnclosingLoop(t *testing.T) {
	content := strings.Join([]string{
		"var once = openai.chat.completions.create({});",
		"while (queue.length) {",
		"  anthropic.messages.create(queue.pop());",
		"}",
		"for (var i = 0; i < n; i++) {",
		"  helper.generateText(prompts[i]);",
		"}",
		"",
	}, "\n")

	result := analyze(content, rules.StructuralLLMLoop)
	require.True(t, result.Parsed)

	hits := hitsOf(result, rules.StructuralLLMLoop)
	require.Len(t, hits, 2)
	assert.Equal(t, 3, hits[0].Line)
	assert.Equal(t, 6, hits[1].Line)
}

func TestParseFailureDegradesSilently(t *testing.T) {
	// Arrow functions are post-ES5; the analyzer must not raise.
	result := analyze("const f = (x) => eval(x);\n", rules.StructuralDynamicExec)
	assert.False(t, result.Parsed)
	assert.Empty(t, result.Hits)
}

func TestEmptyWantSkipsParsing(t *testing.T) {
	result := analyzer.Analyze("eval(x);", nil, match.NewLineIndex("eval(x);"))
	assert.False(t, result.Parsed)
	assert.Empty(t, result.Hits)
}
