//go:build cgo

package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// treeSitterAnalyzer extracts FileFacts from a parsed syntax tree.
type treeSitterAnalyzer struct{}

// NewAnalyzer creates the default analyzer. With CGO available this is
// tree-sitter backed.
func NewAnalyzer() Analyzer {
	return &treeSitterAnalyzer{}
}

// IsAvailable returns whether tree-sitter extraction is available.
func IsAvailable() bool {
	return true
}

func grammarFor(lang Language) *sitter.Language {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage()
	case LangTypeScript:
		return typescript.GetLanguage()
	case LangTSX:
		return tsx.GetLanguage()
	default:
		return nil
	}
}

func (a *treeSitterAnalyzer) Analyze(ctx context.Context, path string) (*FileFacts, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSource(ctx, path, src)
}

func (a *treeSitterAnalyzer) AnalyzeSource(ctx context.Context, path string, src []byte) (*FileFacts, error) {
	lang, ok := LanguageFromExtension(filepath.Ext(path))
	if !ok {
		return &FileFacts{Path: path}, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(lang))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	facts := &FileFacts{Path: path}
	root := tree.RootNode()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "export_statement":
			collectExportStatement(stmt, src, facts)
		case "lexical_declaration":
			facts.Constants = append(facts.Constants, constNames(stmt, src)...)
		case "enum_declaration":
			facts.Enums = append(facts.Enums, enumFacts(stmt, src))
		case "ambient_declaration":
			// declare enum / declare const at file scope
			for j := 0; j < int(stmt.NamedChildCount()); j++ {
				child := stmt.NamedChild(j)
				switch child.Type() {
				case "enum_declaration":
					facts.Enums = append(facts.Enums, enumFacts(child, src))
				case "lexical_declaration":
					facts.Constants = append(facts.Constants, constNames(child, src)...)
				}
			}
		}
	}

	return facts, nil
}

// collectExportStatement handles every export form: wildcard and
// namespace re-exports, export clauses, and exported declarations.
func collectExportStatement(stmt *sitter.Node, src []byte, facts *FileFacts) {
	// export * as ns from "./x" re-exports under a single name.
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(i)
		if child.Type() == "namespace_export" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if name := child.NamedChild(j); name.Type() == "identifier" {
					facts.Exports = append(facts.Exports, text(name, src))
				}
			}
			return
		}
	}

	// export * from "./x"
	if hasWildcard(stmt) {
		spec := ""
		if source := stmt.ChildByFieldName("source"); source != nil {
			spec = strings.Trim(text(source, src), `'"`)
		}
		facts.WildcardExports = append(facts.WildcardExports, spec)
		return
	}

	// export { a, b as c }
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(i)
		if child.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			spec := child.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			name := spec.ChildByFieldName("name")
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				name = alias
			}
			if name != nil {
				facts.Exports = append(facts.Exports, text(name, src))
			}
		}
		return
	}

	// export [default] <declaration>
	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		switch decl.Type() {
		case "lexical_declaration", "variable_declaration":
			names := declaratorNames(decl, src)
			facts.Exports = append(facts.Exports, names...)
			if isConstDeclaration(decl) {
				facts.Constants = append(facts.Constants, names...)
			}
		case "enum_declaration":
			e := enumFacts(decl, src)
			facts.Exports = append(facts.Exports, e.Name)
			facts.Enums = append(facts.Enums, e)
		default:
			if name := decl.ChildByFieldName("name"); name != nil {
				facts.Exports = append(facts.Exports, text(name, src))
			} else {
				facts.Exports = append(facts.Exports, "default")
			}
		}
		return
	}

	// export default <expression>
	if hasKeyword(stmt, "default") {
		facts.Exports = append(facts.Exports, "default")
	}
}

// constNames returns declarator names when the declaration is const.
func constNames(decl *sitter.Node, src []byte) []string {
	if !isConstDeclaration(decl) {
		return nil
	}
	return declaratorNames(decl, src)
}

func isConstDeclaration(decl *sitter.Node) bool {
	first := decl.Child(0)
	return first != nil && first.Type() == "const"
}

func declaratorNames(decl *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		d := decl.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		if name != nil && name.Type() == "identifier" {
			names = append(names, text(name, src))
		}
	}
	return names
}

func enumFacts(decl *sitter.Node, src []byte) EnumFacts {
	e := EnumFacts{}
	if name := decl.ChildByFieldName("name"); name != nil {
		e.Name = text(name, src)
	}
	body := decl.ChildByFieldName("body")
	if body == nil {
		return e
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "enum_assignment":
			if name := member.ChildByFieldName("name"); name != nil {
				e.Members = append(e.Members, strings.Trim(text(name, src), `'"`))
			}
		case "property_identifier", "string":
			e.Members = append(e.Members, strings.Trim(text(member, src), `'"`))
		}
	}
	return e
}

func hasWildcard(stmt *sitter.Node) bool {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if child := stmt.Child(i); child != nil && child.Type() == "*" {
			return true
		}
	}
	return false
}

func hasKeyword(stmt *sitter.Node, keyword string) bool {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if child := stmt.Child(i); child != nil && child.Type() == keyword {
			return true
		}
	}
	return false
}

func text(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}
