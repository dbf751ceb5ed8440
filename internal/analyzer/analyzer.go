// Package analyzer is the structural detector: it parses JavaScript source
// into a syntax tree and matches rule predicates against node shape instead
// of literal text, so formatting, whitespace, and string-literal variance
// can neither evade nor spoof a match.
//
// The grammar is ES5. Anything the parser rejects — syntax errors, but also
// newer language levels — degrades silently to zero structural hits, and
// detection for that file falls back entirely to the textual pass.
package analyzer

import (
	"strings"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/file"
	"github.com/robertkrimen/otto/parser"

	"github.com/princessjainn/Rodgers-PS1/internal/match"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
)

// Hit is one structural predicate match.
type Hit struct {
	Kind   rules.StructuralKind
	Offset int // byte offset of the matched node
	Line   int // 1-based line derived from the offset
}

// Result reports whether the file parsed and which predicates matched.
// Parsed false means the textual pass owns every rule for this file.
type Result struct {
	Parsed bool
	Hits   []Hit
}

// Analyze parses content and walks the tree once, matching the wanted
// structural kinds. Line numbers come from node source offsets resolved
// through the shared line index. A parse failure never raises; it returns
// the zero Result.
func Analyze(content string, want map[rules.StructuralKind]bool, idx *match.LineIndex) (result Result) {
	if len(want) == 0 {
		return Result{}
	}
	// A grammar bug on adversarial input degrades the same way a parse
	// error does: pattern-only coverage for this file.
	defer func() {
		if r := recover(); r != nil {
			result = Result{}
		}
	}()

	program, err := parser.ParseFile(nil, "", content, 0)
	if err != nil || program == nil {
		return Result{}
	}

	v := &visitor{want: want, index: idx}
	ast.Walk(v, program)
	return Result{Parsed: true, Hits: v.hits}
}

// visitor walks the tree exactly once, tracking loop nesting for the
// llm-loop predicate.
type visitor struct {
	want      map[rules.StructuralKind]bool
	index     *match.LineIndex
	loopDepth int
	hits      []Hit
}

func (v *visitor) Enter(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case *ast.ForStatement, *ast.ForInStatement, *ast.WhileStatement, *ast.DoWhileStatement:
		v.loopDepth++
	case *ast.CallExpression:
		v.checkCall(n)
	case *ast.NewExpression:
		v.checkNew(n)
	case *ast.AssignExpression:
		v.checkAssign(n)
	case *ast.ObjectLiteral:
		v.checkObject(n)
	}
	return v
}

func (v *visitor) Exit(node ast.Node) {
	switch node.(type) {
	case *ast.ForStatement, *ast.ForInStatement, *ast.WhileStatement, *ast.DoWhileStatement:
		v.loopDepth--
	}
}

func (v *visitor) checkCall(call *ast.CallExpression) {
	if v.want[rules.StructuralDynamicExec] {
		if name, ok := identifierName(call.Callee); ok {
			switch name {
			case "eval", "Function":
				v.add(rules.StructuralDynamicExec, call.Idx0())
				return
			case "setTimeout", "setInterval":
				// Only the string-argument form compiles data into code.
				if len(call.ArgumentList) > 0 {
					if _, isString := call.ArgumentList[0].(*ast.StringLiteral); isString {
						v.add(rules.StructuralDynamicExec, call.Idx0())
						return
					}
				}
			}
		}
	}

	if v.want[rules.StructuralRawHTML] {
		if dot, ok := call.Callee.(*ast.DotExpression); ok {
			method := dot.Identifier.Name
			if (method == "write" || method == "writeln") && isIdentifier(dot.Left, "document") {
				v.add(rules.StructuralRawHTML, call.Idx0())
				return
			}
			if method == "insertAdjacentHTML" {
				v.add(rules.StructuralRawHTML, call.Idx0())
				return
			}
		}
	}

	if v.want[rules.StructuralLLMLoop] && v.loopDepth > 0 && isLLMCallee(call.Callee) {
		v.add(rules.StructuralLLMLoop, call.Idx0())
	}
}

func (v *visitor) checkNew(expr *ast.NewExpression) {
	if !v.want[rules.StructuralDynamicExec] {
		return
	}
	if name, ok := identifierName(expr.Callee); ok && name == "Function" {
		v.add(rules.StructuralDynamicExec, expr.Idx0())
	}
}

func (v *visitor) checkAssign(assign *ast.AssignExpression) {
	if !v.want[rules.StructuralRawHTML] {
		return
	}
	if dot, ok := assign.Left.(*ast.DotExpression); ok {
		if name := dot.Identifier.Name; name == "innerHTML" || name == "outerHTML" {
			v.add(rules.StructuralRawHTML, assign.Idx0())
		}
	}
}

func (v *visitor) checkObject(obj *ast.ObjectLiteral) {
	if !v.want[rules.StructuralRawHTML] {
		return
	}
	for _, prop := range obj.Value {
		if prop.Key == "dangerouslySetInnerHTML" && prop.Value != nil {
			v.add(rules.StructuralRawHTML, prop.Value.Idx0())
		}
	}
}

// add records a hit, converting the parser's 1-based index to a byte
// offset and resolving it to a line.
func (v *visitor) add(kind rules.StructuralKind, idx file.Idx) {
	offset := int(idx) - 1
	if offset < 0 {
		offset = 0
	}
	v.hits = append(v.hits, Hit{
		Kind:   kind,
		Offset: offset,
		Line:   v.index.LineAt(offset),
	})
}

func identifierName(expr ast.Expression) (string, bool) {
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name, true
	}
	return "", false
}

func isIdentifier(expr ast.Expression, name string) bool {
	got, ok := identifierName(expr)
	return ok && got == name
}

// Names that mark a call chain as a model/completion API. Chain segments
// catch SDK shapes like openai.chat.completions.create; final names catch
// wrapper helpers like generateText.
var llmChainNames = map[string]bool{
	"openai":      true,
	"anthropic":   true,
	"claude":      true,
	"gemini":      true,
	"cohere":      true,
	"llm":         true,
	"completions": true,
}

var llmCallNames = map[string]bool{
	"createcompletion":     true,
	"createchatcompletion": true,
	"generatetext":         true,
	"generatecontent":      true,
	"chatcompletion":       true,
}

func isLLMCallee(expr ast.Expression) bool {
	segments := calleeChain(expr)
	if len(segments) == 0 {
		return false
	}
	if llmCallNames[strings.ToLower(segments[len(segments)-1])] {
		return true
	}
	for _, s := range segments {
		if llmChainNames[strings.ToLower(s)] {
			return true
		}
	}
	return false
}

// calleeChain flattens a callee into its dotted name segments, looking
// through intermediate calls (a.b().c → [a b c]).
func calleeChain(expr ast.Expression) []string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return []string{e.Name}
	case *ast.DotExpression:
		return append(calleeChain(e.Left), e.Identifier.Name)
	case *ast.CallExpression:
		return calleeChain(e.Callee)
	}
	return nil
}
