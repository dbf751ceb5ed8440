package agents

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/princessjainn/Rodgers-PS1/internal/match"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// ManifestAgent evaluates the DEP-* rules over dependency manifests. It
// parses package.json with encoding/json and go.mod with x/mod/modfile,
// then checks every declared dependency name against the rule deny lists.
// A manifest that does not parse yields the malformed-manifest finding
// instead of an agent error: broken syntax is a finding about the project,
// not a fault in the scan.
type ManifestAgent struct{}

func (a *ManifestAgent) Name() string             { return "dependency" }
func (a *ManifestAgent) Category() types.Category { return types.CategoryDependency }

// dependency is one declared requirement resolved to its manifest line.
type dependency struct {
	Name string
	Line int
}

func (a *ManifestAgent) Analyze(ctx context.Context, files []types.SourceFile, reg *rules.Registry) ([]types.Finding, error) {
	ruleset := reg.ForCategory(a.Category())
	var findings []types.Finding

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return findings, nil
		}

		fileRules := applicable(file.Path, ruleset)
		if len(fileRules) == 0 {
			continue
		}

		deps, parseErr := parseManifest(file)

		for _, rule := range fileRules {
			if rule.Matcher.Kind != rules.KindManifest {
				continue
			}
			switch rule.Matcher.Check {
			case rules.ManifestMalformed:
				if parseErr {
					findings = append(findings, newFinding(rule, file.Path, 1))
				}
			case rules.ManifestBlacklist, rules.ManifestDeprecated:
				for _, dep := range deps {
					if denied(dep.Name, rule.Matcher.Deny) {
						findings = append(findings, newFinding(rule, file.Path, dep.Line))
					}
				}
			}
		}
	}

	return findings, nil
}

// parseManifest extracts declared dependencies from a manifest file. The
// bool result reports a parse failure; a failed parse returns no deps.
func parseManifest(file types.SourceFile) ([]dependency, bool) {
	switch strings.ToLower(filepath.Base(file.Path)) {
	case "package.json":
		return parsePackageJSON(file.Content)
	case "go.mod":
		return parseGoMod(file.Path, file.Content)
	}
	return nil, false
}

// packageManifest is the subset of package.json the dependency checks need.
type packageManifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

func parsePackageJSON(content string) ([]dependency, bool) {
	var manifest packageManifest
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, true
	}

	idx := match.NewLineIndex(content)
	var deps []dependency
	for _, section := range []map[string]string{
		manifest.Dependencies,
		manifest.DevDependencies,
		manifest.OptionalDependencies,
	} {
		for name := range section {
			deps = append(deps, dependency{Name: name, Line: jsonKeyLine(content, idx, name)})
		}
	}
	return deps, false
}

// jsonKeyLine locates a dependency name's declaration line by finding its
// quoted key in the raw text. Falls back to line 1 when the key is escaped
// beyond recognition.
func jsonKeyLine(content string, idx *match.LineIndex, name string) int {
	offset := strings.Index(content, `"`+name+`"`)
	if offset < 0 {
		return 1
	}
	return idx.LineAt(offset)
}

func parseGoMod(path, content string) ([]dependency, bool) {
	f, err := modfile.Parse(path, []byte(content), nil)
	if err != nil {
		return nil, true
	}

	deps := make([]dependency, 0, len(f.Require))
	for _, req := range f.Require {
		line := 1
		if req.Syntax != nil {
			line = req.Syntax.Start.Line
		}
		deps = append(deps, dependency{Name: req.Mod.Path, Line: line})
	}
	return deps, false
}

func denied(name string, deny []string) bool {
	for _, d := range deny {
		if strings.EqualFold(name, d) {
			return true
		}
	}
	return false
}
