package checker

// Rule describes one convention rule for documentation and SARIF
// output.
type Rule struct {
	ID           RuleID `json:"id"`
	Name         string `json:"name"`
	Short        string `json:"short"`
	Full         string `json:"full"`
	SuggestedFix string `json:"suggestedFix,omitempty"`
}

// ruleRegistry lists every rule in reporting order.
var ruleRegistry = []Rule{
	{
		ID:           RuleMissingIndexFile,
		Name:         "index-presence",
		Short:        "Entity directories with children must have an index file",
		Full:         "An entity directory containing components/, utils/, or hooks/ subfolders must expose an index aggregation file through which its public symbols are re-exported.",
		SuggestedFix: "Add an index file that re-exports the entity's public symbols by name.",
	},
	{
		ID:           RuleNamingConvention,
		Name:         "naming-case",
		Short:        "Files must follow the camel-case naming convention",
		Full:         "Component files must be upper camel case and export a symbol matching the file name; all other files must be lower camel case.",
		SuggestedFix: "Rename the file, or align the exported symbol with the file name.",
	},
	{
		ID:           RuleWildcardExport,
		Name:         "explicit-export",
		Short:        "Index files must not use wildcard re-exports",
		Full:         "Aggregator index files must re-export each symbol individually by name; `export * from` hides the public surface of the entity.",
		SuggestedFix: "Replace `export * from \"./x\"` with named re-exports.",
	},
	{
		ID:           RuleConstantCase,
		Name:         "constant-case",
		Short:        "Constants and enum keys must be upper snake case",
		Full:         "Top-level constants in constants files and enum member names must be upper snake case (e.g. ENTITY_CONSTANT).",
		SuggestedFix: "Rename the constant or enum member to UPPER_SNAKE_CASE.",
	},
	{
		ID:           RuleMultipleExports,
		Name:         "single-responsibility",
		Short:        "utils/ and hooks/ files must export exactly one symbol",
		Full:         "Each file under a utils/ or hooks/ subfolder holds one unit of functionality and therefore one exported symbol.",
		SuggestedFix: "Split the file so each exported symbol lives in its own file.",
	},
	{
		ID:    RuleUnreadablePath,
		Name:  "unreadable-path",
		Short: "A path under the root could not be read",
		Full:  "Filesystem read failures below the root are reported as violations and do not abort the scan.",
	},
	{
		ID:    RuleCycleDetected,
		Name:  "cycle-detected",
		Short: "Traversal revisited a directory or exceeded the depth bound",
		Full:  "Symlink cycles and depth-bound breaches are reported once per offending path; traversal continues elsewhere.",
	},
}

// Rules returns all rules in reporting order.
func Rules() []Rule {
	out := make([]Rule, len(ruleRegistry))
	copy(out, ruleRegistry)
	return out
}

// LookupRule returns the rule for an ID.
func LookupRule(id RuleID) (Rule, bool) {
	for _, r := range ruleRegistry {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
