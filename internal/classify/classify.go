// Package classify maps file paths to scan eligibility, a language tag, a
// file role, and structural-analysis availability. Classification is
// data-driven from the tables below; rules declare what they apply to and
// never hardcode path logic.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// Language tags assigned to eligible files.
const (
	LangJavaScript      = "javascript"
	LangJavaScriptReact = "javascriptreact"
	LangTypeScript      = "typescript"
	LangTypeScriptReact = "typescriptreact"
	LangJSON            = "json"
	LangGoMod           = "gomod"
)

// Classification is everything the engine needs to know about a path.
type Classification struct {
	Eligible   bool
	Language   string
	Role       types.FileRole
	Structural bool // a grammar is available for structural analysis
}

var languageByExt = map[string]string{
	".js":  LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".jsx": LangJavaScriptReact,
	".ts":  LangTypeScript,
	".tsx": LangTypeScriptReact,
}

var manifestLanguages = map[string]string{
	"package.json": LangJSON,
	"go.mod":       LangGoMod,
}

// Generated or declaration-only artifacts that waste scan time and drown
// real findings in noise.
var ineligibleSuffixes = []string{".min.js", ".min.mjs", ".d.ts"}

// Classify inspects a path and returns its scan classification. Unknown
// extensions are ineligible; the zero Classification means "skip".
func Classify(path string) Classification {
	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(path))

	if lang, ok := manifestLanguages[base]; ok {
		return Classification{
			Eligible: true,
			Language: lang,
			Role:     types.RoleManifest,
		}
	}

	for _, suffix := range ineligibleSuffixes {
		if strings.HasSuffix(base, suffix) {
			return Classification{}
		}
	}

	lang, ok := languageByExt[ext]
	if !ok {
		return Classification{}
	}

	role := types.RoleSource
	if ext == ".jsx" || ext == ".tsx" || inComponentTree(path) {
		role = types.RoleComponent
	}

	return Classification{
		Eligible:   true,
		Language:   lang,
		Role:       role,
		Structural: lang == LangJavaScript,
	}
}

// RulesFor returns the registry subset applicable to a path: the rule must
// list the file's extension or basename, and role-gated rules require the
// matching role.
func RulesFor(path string, reg *rules.Registry) []rules.Rule {
	c := Classify(path)
	if !c.Eligible {
		return nil
	}

	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(path))

	var out []rules.Rule
	for _, rule := range reg.All() {
		if rule.AppliesTo(base, ext, c.Role) {
			out = append(out, rule)
		}
	}
	return out
}

// inComponentTree reports whether a path has a "components" segment, which
// marks plain .js/.ts files as UI components alongside the .jsx/.tsx
// extensions.
func inComponentTree(path string) bool {
	slashed := strings.ToLower(filepath.ToSlash(path))
	return strings.HasPrefix(slashed, "components/") ||
		strings.Contains(slashed, "/components/")
}
