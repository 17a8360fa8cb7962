package checker

import (
	"fmt"
	"os"
	"path/filepath"

	"fslint/internal/source"
)

// checkEntity applies the convention rules to one entity directory.
// Children have already been processed when this runs.
func (r *scanRun) checkEntity(t *task) {
	r.checkIndexPresence(t)
	r.checkIndexExports(t)
	r.checkNaming(t)
	r.checkConstantCase(t)
	r.checkSingleResponsibility(t)
}

// checkIndexPresence implements the index-presence rule: entity
// directories with child folders must expose an index file.
func (r *scanRun) checkIndexPresence(t *task) {
	hasChildFolders := false
	for _, e := range t.entries {
		if e.IsDir() && childFolders[e.Name()] {
			hasChildFolders = true
			break
		}
	}
	if hasChildFolders && !t.node.HasIndex {
		r.emit(Violation{
			Path:    t.path,
			Rule:    RuleMissingIndexFile,
			Message: "entity directory has child folders but no index file",
		})
	}
}

// checkIndexExports implements the explicit-export rule and records
// the index file's declared exports on the entity node.
func (r *scanRun) checkIndexExports(t *task) {
	if !t.node.HasIndex {
		return
	}
	idx := indexFileName(t.entries)
	path := filepath.Join(t.path, idx)

	facts := r.fileFacts(path)
	if facts == nil {
		return
	}
	for _, name := range facts.Exports {
		t.node.DeclaredExports[name] = true
	}
	for _, spec := range facts.WildcardExports {
		r.emit(Violation{
			Path:    path,
			Rule:    RuleWildcardExport,
			Message: fmt.Sprintf("index re-exports %q with a wildcard; re-export each symbol by name", spec),
		})
	}
}

// checkNaming implements the naming-case rule. Upper-camel files are
// component files and must export a symbol matching the file name;
// everything else must be lower camel case.
func (r *scanRun) checkNaming(t *task) {
	for _, e := range t.entries {
		if e.IsDir() || !source.IsSourceFile(e.Name()) {
			continue
		}
		base := fileBase(e.Name())
		if base == "index" {
			continue
		}
		path := filepath.Join(t.path, e.Name())

		if IsUpperCamelCase(base) {
			facts := r.fileFacts(path)
			if facts == nil {
				continue
			}
			if !hasExport(facts, base) {
				r.emit(Violation{
					Path:    path,
					Rule:    RuleNamingConvention,
					Message: fmt.Sprintf("component file must export a symbol named %q", base),
				})
			}
			continue
		}

		if !IsLowerCamelCase(base) {
			r.emit(Violation{
				Path:    path,
				Rule:    RuleNamingConvention,
				Message: fmt.Sprintf("file name %q must be lower camel case", e.Name()),
			})
		}
	}
}

// checkConstantCase implements the constant-case rule on constants and
// enums files, both direct role files and files inside constants/ or
// enums/ subfolders.
func (r *scanRun) checkConstantCase(t *task) {
	for _, e := range t.entries {
		name := e.Name()
		if e.IsDir() {
			if name == "constants" || name == "enums" {
				r.checkConstantDir(filepath.Join(t.path, name))
			}
			continue
		}
		base := fileBase(name)
		if base != "constants" && base != "enums" {
			continue
		}
		if !source.IsSourceFile(name) {
			continue
		}
		r.checkConstantFile(filepath.Join(t.path, name))
	}
}

func (r *scanRun) checkConstantDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.emitUnreadable(dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !source.IsSourceFile(e.Name()) {
			continue
		}
		r.checkConstantFile(filepath.Join(dir, e.Name()))
	}
}

func (r *scanRun) checkConstantFile(path string) {
	facts := r.fileFacts(path)
	if facts == nil {
		return
	}
	for _, name := range facts.Constants {
		if !IsUpperSnakeCase(name) {
			r.emit(Violation{
				Path:    path,
				Rule:    RuleConstantCase,
				Message: fmt.Sprintf("constant %q must be upper snake case", name),
			})
		}
	}
	for _, enum := range facts.Enums {
		for _, member := range enum.Members {
			if !IsUpperSnakeCase(member) {
				r.emit(Violation{
					Path:    path,
					Rule:    RuleConstantCase,
					Message: fmt.Sprintf("enum %s key %q must be upper snake case", enum.Name, member),
				})
			}
		}
	}
}

// checkSingleResponsibility implements the single-responsibility rule:
// one exported symbol per file under utils/ and hooks/.
func (r *scanRun) checkSingleResponsibility(t *task) {
	for _, e := range t.entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() != "utils" && e.Name() != "hooks" {
			continue
		}
		r.checkSingleExportDir(filepath.Join(t.path, e.Name()))
	}
}

func (r *scanRun) checkSingleExportDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.emitUnreadable(dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !source.IsSourceFile(e.Name()) {
			continue
		}
		if fileBase(e.Name()) == "index" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		facts := r.fileFacts(path)
		if facts == nil {
			continue
		}
		if len(facts.Exports) > 1 {
			r.emit(Violation{
				Path:    path,
				Rule:    RuleMultipleExports,
				Message: fmt.Sprintf("file exports %d symbols; expected exactly one", len(facts.Exports)),
			})
		}
	}
}

// fileFacts analyzes one source file, memoizing per run. Read failures
// are downgraded to UnreadablePath violations and return nil.
func (r *scanRun) fileFacts(path string) *source.FileFacts {
	if facts, ok := r.facts[path]; ok {
		return facts
	}

	facts, err := r.checker.analyzer.Analyze(r.ctx, path)
	if err != nil {
		r.facts[path] = nil
		r.emitUnreadable(path, err)
		return nil
	}

	r.stats.FilesAnalyzed++
	r.facts[path] = facts
	return facts
}

func (r *scanRun) emitUnreadable(path string, err error) {
	r.emit(Violation{
		Path:    path,
		Rule:    RuleUnreadablePath,
		Message: "path could not be read: " + err.Error(),
	})
}

func hasExport(facts *source.FileFacts, name string) bool {
	for _, e := range facts.Exports {
		if e == name {
			return true
		}
	}
	return false
}
