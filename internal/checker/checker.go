// Package checker implements the convention checker: it walks a
// directory tree, matches folders against the entity shape, and
// reports violations.
package checker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fslint/internal/config"
	"fslint/internal/logging"
	"fslint/internal/source"
)

// Checker scans directory trees for convention violations.
type Checker struct {
	cfg      *config.Config
	logger   *logging.Logger
	analyzer source.Analyzer
}

// Stats summarizes one traversal run.
type Stats struct {
	// DirsScanned counts directories whose listing was read.
	DirsScanned int
	// FilesAnalyzed counts source files parsed for facts.
	FilesAnalyzed int
	// Entities holds the top-level entity nodes found, in traversal
	// order. Nested entities hang off Children.
	Entities []*EntityNode
}

// New creates a checker.
func New(cfg *config.Config, logger *logging.Logger, analyzer source.Analyzer) *Checker {
	return &Checker{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
	}
}

// Scan traverses the tree rooted at root and returns all violations in
// traversal order, together with traversal statistics.
//
// A missing or non-directory root is the only fatal condition and
// returns an *InvalidRootError. Unreadable subpaths, symlink cycles,
// and depth-bound breaches are reported as violations instead.
func (c *Checker) Scan(ctx context.Context, root string) ([]Violation, *Stats, error) {
	violations := []Violation{}
	stats, err := c.ScanFunc(ctx, root, func(v Violation) {
		violations = append(violations, v)
	})
	if err != nil {
		return nil, nil, err
	}
	return violations, stats, nil
}

// task is one work-list item. Each directory is processed twice: once
// to expand it (read the listing, push children) and once, after all
// children completed, to run its own aggregation checks.
type task struct {
	path  string
	depth int
	post  bool

	entries []fs.DirEntry
	node    *EntityNode

	// attachTo receives this directory's entity node as a child.
	attachTo *EntityNode
	// childrenAttachTo receives entity nodes of immediate
	// subdirectories; set when this directory is a components/
	// container of an entity.
	childrenAttachTo *EntityNode
}

// scanRun holds the per-run state; Checker itself stays reentrant.
type scanRun struct {
	checker *Checker
	ctx     context.Context
	emit    func(Violation)
	visited map[string]bool
	facts   map[string]*source.FileFacts
	stats   *Stats
}

// ScanFunc traverses the tree rooted at root, calling emit for each
// violation in traversal order: depth-first, children before the
// directory's own aggregation checks.
func (c *Checker) ScanFunc(ctx context.Context, root string, emit func(Violation)) (*Stats, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewInvalidRootError(root, "path does not exist", err)
		}
		return nil, NewInvalidRootError(root, "path is not readable", err)
	}
	if !info.IsDir() {
		return nil, NewInvalidRootError(root, "path is not a directory", nil)
	}

	run := &scanRun{
		checker: c,
		ctx:     ctx,
		emit:    emit,
		visited: map[string]bool{},
		facts:   map[string]*source.FileFacts{},
		stats:   &Stats{},
	}

	stack := []*task{{path: filepath.Clean(root)}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.post {
			if t.node != nil {
				run.checkEntity(t)
			}
			continue
		}

		stack = run.expand(t, stack)
	}

	c.logger.Debug("Scan completed", map[string]interface{}{
		"root":          root,
		"dirsScanned":   run.stats.DirsScanned,
		"filesAnalyzed": run.stats.FilesAnalyzed,
		"entities":      len(run.stats.Entities),
	})

	return run.stats, nil
}

// expand reads one directory, reports traversal-level violations, and
// pushes the post-order check plus child directories onto the stack.
func (r *scanRun) expand(t *task, stack []*task) []*task {
	// Symlink cycles resolve to an already visited real path.
	real := t.path
	if resolved, err := filepath.EvalSymlinks(t.path); err == nil {
		real = resolved
	}
	if r.visited[real] {
		r.emit(Violation{
			Path:    t.path,
			Rule:    RuleCycleDetected,
			Message: "directory was already visited; skipping to avoid a cycle",
		})
		return stack
	}
	r.visited[real] = true

	if t.depth > r.checker.cfg.Scan.MaxDepth {
		r.emit(Violation{
			Path:    t.path,
			Rule:    RuleCycleDetected,
			Message: "maximum traversal depth exceeded; descent stopped",
		})
		return stack
	}

	entries, err := os.ReadDir(t.path)
	if err != nil {
		r.emit(Violation{
			Path:    t.path,
			Rule:    RuleUnreadablePath,
			Message: "directory could not be read: " + err.Error(),
		})
		return stack
	}
	r.stats.DirsScanned++

	t.entries = entries
	t.node = buildEntityNode(t.path, entries)
	if t.node != nil {
		if t.attachTo != nil {
			t.attachTo.Children = append(t.attachTo.Children, t.node)
		} else {
			r.stats.Entities = append(r.stats.Entities, t.node)
		}
	}

	// The post-order check runs after every child below it on the
	// stack has been fully processed.
	t.post = true
	stack = append(stack, t)

	dirs := r.childDirs(t.path, entries)
	for i := len(dirs) - 1; i >= 0; i-- {
		d := dirs[i]
		child := &task{
			path:     filepath.Join(t.path, d.Name()),
			depth:    t.depth + 1,
			attachTo: t.childrenAttachTo,
		}
		if d.Name() == "components" && t.node != nil {
			child.childrenAttachTo = t.node
		}
		stack = append(stack, child)
	}

	return stack
}

// childDirs filters directory entries down to traversable
// subdirectories, honoring the ignore list and skipping hidden
// directories. Symlinks pointing at directories are followed; the
// visited set guards against cycles. ReadDir returns entries sorted by
// name, which keeps the traversal deterministic.
func (r *scanRun) childDirs(parent string, entries []fs.DirEntry) []fs.DirEntry {
	var dirs []fs.DirEntry
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || r.ignored(name) {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(parent, name)); err == nil && info.IsDir() {
				dirs = append(dirs, e)
			}
		}
	}
	return dirs
}

func (r *scanRun) ignored(name string) bool {
	for _, ig := range r.checker.cfg.Scan.Ignore {
		if name == ig {
			return true
		}
	}
	return false
}
