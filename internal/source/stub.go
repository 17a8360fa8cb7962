//go:build !cgo

package source

// NewAnalyzer creates the default analyzer. Without CGO the line
// scanner stands in for tree-sitter.
func NewAnalyzer() Analyzer {
	return NewScanAnalyzer()
}

// IsAvailable returns whether tree-sitter extraction is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
