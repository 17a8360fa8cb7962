package checker

import (
	"io/fs"
	"path/filepath"
	"strings"

	"fslint/internal/source"
)

// AuxRole identifies a recognized supporting file or folder inside an
// entity directory.
type AuxRole string

const (
	AuxConstants AuxRole = "constants"
	AuxTypes     AuxRole = "types"
	AuxEnums     AuxRole = "enums"
	AuxStyles    AuxRole = "styles"
	AuxUtils     AuxRole = "utils"
	AuxHooks     AuxRole = "hooks"
)

var auxRoles = map[string]AuxRole{
	"constants": AuxConstants,
	"types":     AuxTypes,
	"enums":     AuxEnums,
	"styles":    AuxStyles,
	"utils":     AuxUtils,
	"hooks":     AuxHooks,
}

// childFolders are the subfolder names that make a directory a parent
// entity for index aggregation purposes.
var childFolders = map[string]bool{
	"components": true,
	"utils":      true,
	"hooks":      true,
}

// EntityNode represents one directory matching the entity pattern.
// Nodes are built fresh per scan and discarded afterwards.
type EntityNode struct {
	Path string
	// HasIndex reports whether the directory has an index source file.
	HasIndex bool
	// DeclaredExports holds the symbol names re-exported by the index
	// file, when present.
	DeclaredExports map[string]bool
	// Children are entity directories found under components/, in
	// traversal order.
	Children []*EntityNode
	// AuxFiles maps recognized roles to presence.
	AuxFiles map[AuxRole]bool
}

// fileBase returns the file name up to the first dot, so that
// Button.test.tsx and entity.styles.ts reduce to their leading name.
func fileBase(name string) string {
	if idx := strings.Index(name, "."); idx >= 0 {
		return name[:idx]
	}
	return name
}

// indexFileName returns the name of the index source file among
// entries, or "" when absent.
func indexFileName(entries []fs.DirEntry) string {
	for _, e := range entries {
		if e.IsDir() || !source.IsSourceFile(e.Name()) {
			continue
		}
		if fileBase(e.Name()) == "index" {
			return e.Name()
		}
	}
	return ""
}

// buildEntityNode inspects a directory listing and returns an
// EntityNode when the directory matches the entity heuristic: it
// contains at least one of index, constants, types, enums, or a file
// named after the directory itself. Returns nil for plain directories.
func buildEntityNode(path string, entries []fs.DirEntry) *EntityNode {
	dirName := filepath.Base(path)

	isEntity := false
	node := &EntityNode{
		Path:            path,
		DeclaredExports: map[string]bool{},
		AuxFiles:        map[AuxRole]bool{},
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if role, ok := auxRoles[name]; ok {
				node.AuxFiles[role] = true
			}
			continue
		}
		if !source.IsSourceFile(name) && !isStyleFile(name) {
			continue
		}
		base := fileBase(name)
		switch base {
		case "index":
			node.HasIndex = true
			isEntity = true
		case "constants", "types", "enums":
			isEntity = true
		}
		if role, ok := auxRoles[base]; ok {
			node.AuxFiles[role] = true
		}
		if base == dirName {
			isEntity = true
		}
	}

	if !isEntity {
		return nil
	}
	return node
}

// isStyleFile recognizes stylesheet files, which carry the styles role
// but are not parsed.
func isStyleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css", ".scss", ".sass", ".less":
		return true
	default:
		return false
	}
}
