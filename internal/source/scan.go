package source

import (
	"context"
	"os"
	"regexp"
	"strings"
)

// scanAnalyzer is a line-oriented extractor used as the non-CGO
// fallback. It recognizes the common declaration shapes the rules care
// about; multi-declarator lines (`const A = 1, B = 2`) and exotic
// re-export forms are beyond it, which the tree-sitter analyzer covers.
type scanAnalyzer struct{}

// NewScanAnalyzer returns the line-scanner based analyzer. It is always
// available regardless of build mode.
func NewScanAnalyzer() Analyzer {
	return &scanAnalyzer{}
}

var (
	reWildcardExport = regexp.MustCompile(`^\s*export\s*\*\s*from\s*['"]([^'"]+)['"]`)
	reNamespaceExport = regexp.MustCompile(`^\s*export\s*\*\s*as\s+([A-Za-z_$][\w$]*)\s+from\b`)
	reExportClause    = regexp.MustCompile(`^\s*export\s*(?:type\s*)?\{([^}]*)\}`)
	reExportDecl      = regexp.MustCompile(`^\s*export\s+(?:declare\s+)?(?:default\s+)?(?:abstract\s+)?(?:async\s+)?(const|let|var|function|class|interface|type|enum)\s+([A-Za-z_$][\w$]*)`)
	reExportDefault   = regexp.MustCompile(`^\s*export\s+default\b`)
	reEnumDecl        = regexp.MustCompile(`^\s*(?:export\s+)?(?:declare\s+)?(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)`)
	reConstDecl       = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$][\w$]*)`)
	reEnumMember      = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*(?:[=,}]|$)`)
)

func (a *scanAnalyzer) Analyze(ctx context.Context, path string) (*FileFacts, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSource(ctx, path, src)
}

func (a *scanAnalyzer) AnalyzeSource(_ context.Context, path string, src []byte) (*FileFacts, error) {
	facts := &FileFacts{Path: path}

	var currentEnum *EnumFacts
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "/*") {
			continue
		}

		if currentEnum != nil {
			if m := reEnumMember.FindStringSubmatch(line); m != nil {
				currentEnum.Members = append(currentEnum.Members, m[1])
			}
			if strings.Contains(line, "}") {
				facts.Enums = append(facts.Enums, *currentEnum)
				currentEnum = nil
			}
			continue
		}

		if m := reNamespaceExport.FindStringSubmatch(line); m != nil {
			facts.Exports = append(facts.Exports, m[1])
			continue
		}
		if m := reWildcardExport.FindStringSubmatch(line); m != nil {
			facts.WildcardExports = append(facts.WildcardExports, m[1])
			continue
		}
		if m := reExportClause.FindStringSubmatch(line); m != nil {
			for _, name := range parseExportClause(m[1]) {
				facts.Exports = append(facts.Exports, name)
			}
			continue
		}
		if m := reEnumDecl.FindStringSubmatch(line); m != nil {
			if strings.HasPrefix(strings.TrimSpace(line), "export") {
				facts.Exports = append(facts.Exports, m[1])
			}
			currentEnum = &EnumFacts{Name: m[1]}
			open := strings.Index(line, "{")
			if open >= 0 && strings.LastIndex(line, "}") > open {
				// Single-line enum body.
				body := line[open+1 : strings.LastIndex(line, "}")]
				for _, part := range strings.Split(body, ",") {
					if m := reEnumMember.FindStringSubmatch(part); m != nil {
						currentEnum.Members = append(currentEnum.Members, m[1])
					}
				}
				facts.Enums = append(facts.Enums, *currentEnum)
				currentEnum = nil
			}
			continue
		}
		if m := reExportDecl.FindStringSubmatch(line); m != nil {
			facts.Exports = append(facts.Exports, m[2])
			if m[1] == "const" {
				facts.Constants = append(facts.Constants, m[2])
			}
			continue
		}
		if reExportDefault.MatchString(line) {
			facts.Exports = append(facts.Exports, "default")
			continue
		}
		if m := reConstDecl.FindStringSubmatch(line); m != nil {
			facts.Constants = append(facts.Constants, m[1])
		}
	}

	if currentEnum != nil {
		facts.Enums = append(facts.Enums, *currentEnum)
	}

	return facts, nil
}

// parseExportClause splits the inside of `export { ... }`, resolving
// `X as Y` to the exported name Y.
func parseExportClause(clause string) []string {
	var names []string
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "type ")
		if part == "" {
			continue
		}
		if idx := strings.Index(part, " as "); idx >= 0 {
			part = strings.TrimSpace(part[idx+4:])
		}
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
