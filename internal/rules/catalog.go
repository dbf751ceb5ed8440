package rules

import "github.com/princessjainn/Rodgers-PS1/internal/types"

// jsExtensions covers the JavaScript/TypeScript family the textual and
// structural detectors understand.
var jsExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// manifestFiles are the dependency manifests the manifest checks parse.
var manifestFiles = []string{"package.json", "go.mod"}

// Builtin returns a fresh copy of the built-in rule catalog. Severities are
// canonical here — every surface (terminal, JSON, SARIF, HTTP, console)
// reads this one catalog, so a rule cannot drift between renderings.
func Builtin() []Rule {
	return []Rule{
		{
			ID:          "SEC-001",
			Title:       "Hardcoded secret",
			Severity:    types.SeverityError,
			Category:    types.CategorySecurity,
			Description: "A credential-looking literal is assigned to a sensitive-sounding name. Secrets committed to source are visible to everyone with repo access and live forever in history.",
			Remediation: "Move the value to an environment variable or a secret manager and rotate the exposed credential.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `(?i)\b(?:api[_-]?key|apikey|secret|password|passwd|pwd|token|private[_-]?key|access[_-]?key|client[_-]?secret)\b\s*[:=]\s*["'\x60][^"'\x60]{6,}["'\x60]`,
			},
		},
		{
			ID:          "SEC-002",
			Title:       "Dynamic code execution",
			Severity:    types.SeverityError,
			Category:    types.CategorySecurity,
			Description: "eval, new Function, or a string-argument timer compiles data into executable code at runtime, handing any attacker-influenced string full control of the page.",
			Remediation: "Replace eval with JSON.parse, a lookup table, or explicit function references.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:       KindStructural,
				Structural: StructuralDynamicExec,
				Pattern:    `\beval\s*\(|\bnew\s+Function\s*\(|\bset(?:Timeout|Interval)\s*\(\s*["'\x60]`,
			},
		},
		{
			ID:          "SEC-003",
			Title:       "Unsafe raw HTML injection",
			Severity:    types.SeverityError,
			Category:    types.CategorySecurity,
			Description: "Writing raw markup through innerHTML, document.write, or dangerouslySetInnerHTML renders unescaped content and is the classic DOM XSS sink.",
			Remediation: "Use textContent or your framework's escaped rendering; sanitize with a vetted library if raw HTML is genuinely required.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:       KindStructural,
				Structural: StructuralRawHTML,
				Pattern:    `dangerouslySetInnerHTML|\.(?:inner|outer)HTML\s*=[^=]|document\.write(?:ln)?\s*\(|\binsertAdjacentHTML\s*\(`,
			},
		},
		{
			ID:          "SEC-004",
			Title:       "Potential SQL injection",
			Severity:    types.SeverityError,
			Category:    types.CategorySecurity,
			Description: "A SQL statement is assembled by concatenating or interpolating values into the query string, so input can rewrite the query.",
			Remediation: "Use parameterized queries or your client's placeholder binding instead of building SQL from strings.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `(?i)["'\x60][^"'\x60\n]*\b(?:select\s[^"'\x60\n]*\bfrom\b|insert\s+into\b|update\s+\w+\s+set\b|delete\s+from\b|drop\s+table\b)[^"'\x60\n]*(?:["'\x60]\s*\+|\$\{)`,
			},
		},
		{
			ID:          "SEC-005",
			Title:       "Insecure pseudo-random value",
			Severity:    types.SeverityWarning,
			Category:    types.CategorySecurity,
			Description: "Math.random is not cryptographically secure; values derived from it (tokens, ids, nonces) are predictable.",
			Remediation: "Use crypto.getRandomValues or crypto.randomUUID for anything security-relevant.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `\bMath\.random\s*\(\s*\)`,
			},
		},
		{
			ID:          "SEC-006",
			Title:       "Plaintext HTTP URL",
			Severity:    types.SeverityWarning,
			Category:    types.CategorySecurity,
			Description: "A non-loopback http:// URL sends traffic unencrypted and is subject to interception and tampering.",
			Remediation: "Use https:// for every non-local endpoint.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `\bhttp://[^\s"'\x60<>)]+`,
				Exclude: `^http://(?:localhost|127\.0\.0\.1|0\.0\.0\.0|\[::1\])(?::\d+)?(?:[/?#]|$)`,
			},
		},
		{
			ID:          "SEC-007",
			Title:       "Wildcard CORS origin",
			Severity:    types.SeverityError,
			Category:    types.CategorySecurity,
			Description: "Access-Control-Allow-Origin: * lets any site read responses, defeating the browser's same-origin protection for this API.",
			Remediation: "Echo an allowlist of trusted origins instead of the wildcard.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `(?i)(?:["']access-control-allow-origin["']\s*[,:]\s*["']\*["']|access-control-allow-origin\s*:\s*\*|\borigin\s*:\s*["']\*["'])`,
			},
		},
		{
			ID:          "CMP-001",
			Title:       "PII in debug output",
			Severity:    types.SeverityWarning,
			Category:    types.CategoryCompliance,
			Description: "A console statement prints fields that look like personal data. Logs routinely end up in third-party aggregators, which turns this into a data-handling violation.",
			Remediation: "Strip personal fields from log output or mask them before logging.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `(?i)\bconsole\.(?:log|info|debug|warn|error)\s*\([^)\n]*\b(?:email|e[_-]mail|ssn|social[_-]?security|phone|dob|date[_-]?of[_-]?birth|passport|credit[_-]?card|card[_-]?number)\b`,
			},
		},
		{
			ID:          "CMP-002",
			Title:       "Leftover debug statement",
			Severity:    types.SeverityInfo,
			Category:    types.CategoryCompliance,
			Description: "console.log/debug calls and debugger statements are development scaffolding; in production they leak internals and add noise.",
			Remediation: "Remove the statement or route it through the application logger at an appropriate level.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `\bconsole\.(?:log|debug|trace)\s*\(|\bdebugger\b`,
			},
		},
		{
			ID:          "ARC-001",
			Title:       "Database client imported in UI component",
			Severity:    types.SeverityError,
			Category:    types.CategoryArchitecture,
			Description: "A server-side database driver is imported from a UI component file. Bundlers will either fail or ship connection details to the browser.",
			Remediation: "Move data access behind an API route or server module and call it from the component.",
			Extensions:  jsExtensions,
			Role:        types.RoleComponent,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `require\s*\(\s*["'](?:pg|mysql|mysql2|mongodb|mongoose|sqlite3|better-sqlite3|knex|sequelize|typeorm|redis|ioredis)["']\s*\)|from\s+["'](?:pg|mysql|mysql2|mongodb|mongoose|sqlite3|better-sqlite3|knex|sequelize|typeorm|redis|ioredis)["']`,
			},
		},
		{
			ID:          "ARC-002",
			Title:       "Oversized source file",
			Severity:    types.SeverityWarning,
			Category:    types.CategoryArchitecture,
			Description: "The file exceeds 1000 lines. Files this large accumulate mixed responsibilities and resist review.",
			Remediation: "Split the file along its natural seams into focused modules.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:     KindFileMetric,
				MaxLines: 1000,
			},
		},
		{
			ID:          "DEP-001",
			Title:       "Blacklisted dependency",
			Severity:    types.SeverityError,
			Category:    types.CategoryDependency,
			Description: "The manifest declares a dependency with a known-malicious or known-compromised name.",
			Remediation: "Remove the dependency and audit the lockfile for anything it installed.",
			Extensions:  manifestFiles,
			Role:        types.RoleManifest,
			Matcher: Matcher{
				Kind:  KindManifest,
				Check: ManifestBlacklist,
				Deny: []string{
					"event-stream",
					"flatmap-stream",
					"getcookies",
					"crossenv",
					"babelcli",
					"mongose",
					"fallguys",
					"github.com/dgrijalva/jwt-go",
				},
			},
		},
		{
			ID:          "DEP-002",
			Title:       "Malformed dependency manifest",
			Severity:    types.SeverityInfo,
			Category:    types.CategoryDependency,
			Description: "The dependency manifest does not parse, so its dependencies cannot be audited.",
			Remediation: "Fix the manifest syntax so dependency checks can run.",
			Extensions:  manifestFiles,
			Role:        types.RoleManifest,
			Matcher: Matcher{
				Kind:  KindManifest,
				Check: ManifestMalformed,
			},
		},
		{
			ID:          "DEP-003",
			Title:       "Deprecated dependency",
			Severity:    types.SeverityWarning,
			Category:    types.CategoryDependency,
			Description: "The manifest declares a dependency that is deprecated or unmaintained; it will not receive security fixes.",
			Remediation: "Migrate to the maintained successor before it blocks an urgent upgrade.",
			Extensions:  manifestFiles,
			Role:        types.RoleManifest,
			Matcher: Matcher{
				Kind:  KindManifest,
				Check: ManifestDeprecated,
				Deny: []string{
					"request",
					"node-uuid",
					"left-pad",
					"bower",
					"gulp-util",
					"github.com/satori/go.uuid",
					"github.com/golang/protobuf",
					"github.com/pkg/errors",
				},
			},
		},
		{
			ID:          "AIR-001",
			Title:       "Potential prompt injection",
			Severity:    types.SeverityError,
			Category:    types.CategoryAIRisk,
			Description: "Request or user input is interpolated directly into an LLM prompt or message payload, letting the input rewrite the model's instructions.",
			Remediation: "Pass user content as a separate message or data field and keep instructions in a fixed template.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: `(?i)\b(?:prompt|system[_-]?prompt|messages|instructions?)\b\s*[:=][^,;\n]*(?:\$\{|\+\s*(?:req\b|request\b|user\w*\b|input\b|query\b|params?\b|body\b))`,
			},
		},
		{
			ID:          "AIR-002",
			Title:       "LLM call inside a loop",
			Severity:    types.SeverityWarning,
			Category:    types.CategoryAIRisk,
			Description: "A model or completion API is invoked inside an iteration construct with no visible bound, so one request can fan out into an unbounded, costly call storm.",
			Remediation: "Batch the inputs into one call or cap the iteration with an explicit limit.",
			Extensions:  jsExtensions,
			Matcher: Matcher{
				Kind:       KindStructural,
				Structural: StructuralLLMLoop,
				Pattern:    `(?is)\b(?:for|while)\s*\([^)]{0,160}\)\s*\{.{0,400}?\b(?:openai|anthropic|claude|completions|generateText|generateContent|chatCompletion)\b`,
			},
		},
	}
}
