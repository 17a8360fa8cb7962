package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime"

	"fslint/internal/checker"
	"fslint/internal/config"
	"fslint/internal/report"
)

// SARIF 2.1.0 schema types
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SARIFReport is the top-level SARIF document.
type SARIFReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver describes the primary analysis component.
type SARIFDriver struct {
	Name            string      `json:"name"`
	Version         string      `json:"version,omitempty"`
	InformationURI  string      `json:"informationUri,omitempty"`
	Rules           []SARIFRule `json:"rules,omitempty"`
	SemanticVersion string      `json:"semanticVersion,omitempty"`
}

// SARIFRule describes a rule that detected an issue.
type SARIFRule struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name,omitempty"`
	ShortDescription     *SARIFMessage           `json:"shortDescription,omitempty"`
	FullDescription      *SARIFMessage           `json:"fullDescription,omitempty"`
	DefaultConfiguration *SARIFRuleConfiguration `json:"defaultConfiguration,omitempty"`
}

// SARIFRuleConfiguration describes the default configuration for a rule.
type SARIFRuleConfiguration struct {
	Level string `json:"level,omitempty"` // error, warning, note, none
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID       string            `json:"ruleId"`
	RuleIndex    int               `json:"ruleIndex,omitempty"`
	Level        string            `json:"level,omitempty"`
	Message      SARIFMessage      `json:"message"`
	Locations    []SARIFLocation   `json:"locations,omitempty"`
	Fingerprints map[string]string `json:"fingerprints,omitempty"`
}

// SARIFMessage contains text in various formats.
type SARIFMessage struct {
	Text string `json:"text,omitempty"`
}

// SARIFLocation describes where a result was found.
type SARIFLocation struct {
	PhysicalLocation *SARIFPhysicalLocation `json:"physicalLocation,omitempty"`
}

// SARIFPhysicalLocation identifies a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation *SARIFArtifactLocation `json:"artifactLocation,omitempty"`
}

// SARIFArtifactLocation identifies a file.
type SARIFArtifactLocation struct {
	URI       string `json:"uri,omitempty"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFInvocation describes a single invocation of the tool.
type SARIFInvocation struct {
	ExecutionSuccessful bool                   `json:"executionSuccessful"`
	WorkingDirectory    *SARIFArtifactLocation `json:"workingDirectory,omitempty"`
	Machine             string                 `json:"machine,omitempty"`
}

// FormatReportAsSARIF converts a scan report to SARIF format for CI
// code-scanning upload.
func FormatReportAsSARIF(rep *report.Report, cfg *config.Config) (string, error) {
	ruleIndex := map[checker.RuleID]int{}
	var rules []SARIFRule
	for _, rule := range checker.Rules() {
		ruleIndex[rule.ID] = len(rules)
		rules = append(rules, SARIFRule{
			ID:               "fslint/" + string(rule.ID),
			Name:             rule.Name,
			ShortDescription: &SARIFMessage{Text: rule.Short},
			FullDescription:  &SARIFMessage{Text: rule.Full},
			DefaultConfiguration: &SARIFRuleConfiguration{
				Level: severityToSARIFLevel(cfg.RuleSeverity(string(rule.ID))),
			},
		})
	}

	results := make([]SARIFResult, 0, len(rep.Violations))
	for _, v := range rep.Violations {
		results = append(results, SARIFResult{
			RuleID:    "fslint/" + string(v.Rule),
			RuleIndex: ruleIndex[v.Rule],
			Level:     severityToSARIFLevel(cfg.RuleSeverity(string(v.Rule))),
			Message:   SARIFMessage{Text: v.Message},
			Locations: []SARIFLocation{
				{
					PhysicalLocation: &SARIFPhysicalLocation{
						ArtifactLocation: &SARIFArtifactLocation{
							URI:       v.Path,
							URIBaseID: "%SRCROOT%",
						},
					},
				},
			},
			Fingerprints: map[string]string{
				"fslint/v1": violationFingerprint(v),
			},
		})
	}

	doc := SARIFReport{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SARIFRun{
			{
				Tool: SARIFTool{
					Driver: SARIFDriver{
						Name:            "fslint",
						Version:         rep.Version,
						SemanticVersion: rep.Version,
						Rules:           rules,
					},
				},
				Results: results,
				Invocations: []SARIFInvocation{
					{
						ExecutionSuccessful: true,
						WorkingDirectory: &SARIFArtifactLocation{
							URI: rep.Root,
						},
						Machine: runtime.GOOS + "/" + runtime.GOARCH,
					},
				},
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal SARIF: %w", err)
	}
	return string(data), nil
}

// severityToSARIFLevel maps configured severities to SARIF levels.
func severityToSARIFLevel(severity string) string {
	switch severity {
	case config.SeverityWarn:
		return "warning"
	default:
		return "error"
	}
}

// violationFingerprint creates a stable fingerprint for deduplication.
func violationFingerprint(v checker.Violation) string {
	data := fmt.Sprintf("%s:%s:%s", v.Path, v.Rule, v.Message)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:16]
}
