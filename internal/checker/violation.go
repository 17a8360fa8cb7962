package checker

import "fmt"

// RuleID identifies one convention rule. The values are stable and
// appear verbatim in reports and baselines.
type RuleID string

const (
	// RuleMissingIndexFile flags entity directories with child folders
	// but no index aggregation file.
	RuleMissingIndexFile RuleID = "MissingIndexFile"
	// RuleNamingConvention flags files breaking the camel-case rules.
	RuleNamingConvention RuleID = "NamingConventionViolation"
	// RuleWildcardExport flags `export * from` in index files.
	RuleWildcardExport RuleID = "WildcardExportViolation"
	// RuleConstantCase flags constants and enum keys that are not
	// upper snake case.
	RuleConstantCase RuleID = "ConstantCaseViolation"
	// RuleMultipleExports flags utils/hooks files exporting more than
	// one symbol.
	RuleMultipleExports RuleID = "MultipleExportsPerFileViolation"
	// RuleUnreadablePath reports paths that could not be read.
	RuleUnreadablePath RuleID = "UnreadablePath"
	// RuleCycleDetected reports revisited paths (symlink cycles) and
	// depth-bound breaches.
	RuleCycleDetected RuleID = "CycleDetected"
)

// Violation represents one detected deviation from the convention.
type Violation struct {
	Path    string `json:"path"`
	Rule    RuleID `json:"rule"`
	Message string `json:"message"`
}

// InvalidRootError is the only fatal scan error: the root path does not
// exist or is not a directory.
type InvalidRootError struct {
	Path   string
	Reason string
	cause  error
}

// NewInvalidRootError creates an InvalidRootError wrapping cause.
func NewInvalidRootError(path, reason string, cause error) *InvalidRootError {
	return &InvalidRootError{Path: path, Reason: reason, cause: cause}
}

// Error implements the error interface
func (e *InvalidRootError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid root %q: %s: %v", e.Path, e.Reason, e.cause)
	}
	return fmt.Sprintf("invalid root %q: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error
func (e *InvalidRootError) Unwrap() error {
	return e.cause
}
