package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"pyrint/internal/diag"
	"pyrint/internal/driver"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool         `json:"tool"`
	AutomationDetails sarifAutomation   `json:"automationDetails"`
	Invocations       []sarifInvocation `json:"invocations"`
	Results           []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

// Sarif writes a SARIF 2.1.0 log with one run. Every known rule is listed
// in tool.driver.rules; each run gets a fresh automationDetails.guid.
func Sarif(w io.Writer, results []driver.FileResult, opts Options) error {
	name := opts.ToolName
	if name == "" {
		name = "pyrint"
	}

	codes := diag.AllCodes()
	ruleIndex := make(map[diag.Code]int, len(codes))
	rules := make([]sarifRule, 0, len(codes))
	for i, c := range codes {
		ruleIndex[c] = i
		rules = append(rules, sarifRule{
			ID:               c.ID(),
			Name:             c.Symbol(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}

	run := sarifRun{
		Tool:              sarifTool{Driver: sarifDriver{Name: name, Version: opts.ToolVersion, Rules: rules}},
		AutomationDetails: sarifAutomation{GUID: uuid.NewString()},
		Results:           []sarifResult{},
	}
	invocation := sarifInvocation{ExecutionSuccessful: true}

	for _, r := range results {
		uri := displayPath(r.Path, opts)
		if r.Failed() {
			invocation.Notifications = append(invocation.Notifications, sarifNotification{
				Level:     "error",
				Message:   sarifMessage{Text: r.Err.Error()},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{ArtifactLocation: sarifArtifact{URI: uri}}}},
			})
			continue
		}
		for i := range r.Diagnostics {
			d := &r.Diagnostics[i]
			region := &sarifRegion{StartLine: 1, StartColumn: 1}
			if r.Files != nil && r.Files.Contains(d.Primary) {
				start, end := r.Files.Resolve(d.Primary)
				region = &sarifRegion{
					StartLine:   start.Line,
					StartColumn: start.Col,
					EndLine:     end.Line,
					EndColumn:   end.Col,
				}
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:    d.Code.ID(),
				RuleIndex: ruleIndex[d.Code],
				Level:     sarifLevel(d.Severity),
				Message:   sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: uri},
					Region:           region,
				}}},
			})
		}
	}
	run.Invocations = []sarifInvocation{invocation}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	})
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
