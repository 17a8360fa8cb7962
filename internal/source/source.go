// Package source extracts the lexical facts fslint's rules need from
// JavaScript and TypeScript files: exported symbol names, wildcard
// re-exports, top-level constant names, and enum members.
//
// When built with CGO the extraction is tree-sitter based; without CGO
// a conservative line scanner is used instead.
package source

import (
	"context"
	"path/filepath"
	"strings"
)

// Language identifies the grammar used to parse a file.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// LanguageFromExtension maps a file extension (with leading dot) to a
// supported language.
func LanguageFromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	default:
		return "", false
	}
}

// IsSourceFile reports whether the file name has a supported extension.
func IsSourceFile(name string) bool {
	_, ok := LanguageFromExtension(filepath.Ext(name))
	return ok
}

// EnumFacts describes one enum declaration.
type EnumFacts struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

// FileFacts holds the extracted facts for a single file.
type FileFacts struct {
	Path string `json:"path"`
	// Exports lists exported symbol names in declaration order.
	// A bare `export default` with no named declaration appears as
	// "default".
	Exports []string `json:"exports,omitempty"`
	// WildcardExports lists the module specifiers of `export * from`
	// statements.
	WildcardExports []string `json:"wildcardExports,omitempty"`
	// Constants lists top-level `const` declaration names, exported
	// or not.
	Constants []string `json:"constants,omitempty"`
	// Enums lists enum declarations with their member names.
	Enums []EnumFacts `json:"enums,omitempty"`
}

// Analyzer extracts FileFacts from source files.
type Analyzer interface {
	// Analyze reads and analyzes the file at path.
	Analyze(ctx context.Context, path string) (*FileFacts, error)
	// AnalyzeSource analyzes source bytes for the given path. The path
	// determines the language and is recorded in the result.
	AnalyzeSource(ctx context.Context, path string, src []byte) (*FileFacts, error)
}
