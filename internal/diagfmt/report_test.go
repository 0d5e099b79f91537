package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"sigs.k8s.io/yaml"

	"pyrint/internal/driver"
	"pyrint/internal/testkit"
)

const (
	redefinedSrc = "def f():\n    pass\n\ndef f():\n    pass\n"
	outsideSrc   = "return 1\nyield 2\n"
)

func sampleResults() []driver.FileResult {
	d := driver.New(driver.Options{})
	return []driver.FileResult{
		d.AnalyzeSource("pkg/redef.py", []byte(redefinedSrc)),
		d.AnalyzeSource("clean.py", []byte("x = 1\n")),
		{Path: "gone.py", Err: errors.New("failed to read gone.py: no such file")},
		d.AnalyzeSource("outside.py", []byte(outsideSrc)),
	}
}

func render(t *testing.T, format Format, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, format, sampleResults(), opts); err != nil {
		t.Fatalf("%s: %v", format, err)
	}
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	for _, name := range Formats() {
		f, err := ParseFormat(strings.ToUpper(name))
		if err != nil || string(f) != name {
			t.Fatalf("ParseFormat(%q) = %q, %v", name, f, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("xml should be rejected")
	}
}

func TestTextFormat(t *testing.T) {
	want := "pkg/redef.py:4:1: E0102: function already defined line 1 (function-redefined)\n" +
		"gone.py: error: failed to read gone.py: no such file\n" +
		"outside.py:1:1: E0104: Return outside function (return-outside-function)\n" +
		"outside.py:2:1: E0105: Yield outside function (yield-outside-function)\n" +
		"3 issues in 4 files, 1 unreadable file\n"
	testkit.AssertText(t, render(t, FormatText, Options{Summary: true}), want)
}

func TestTextGolden(t *testing.T) {
	testkit.AssertGolden(t, "testdata/text.golden", []byte(render(t, FormatText, Options{})))
}

func TestShortFormat(t *testing.T) {
	got := render(t, FormatShort, Options{Notes: true})
	want := "note E0102 pkg/redef.py:1:1 first defined here\n" +
		"error E0102 pkg/redef.py:4:1 function already defined line 1\n" +
		"fatal gone.py failed to read gone.py: no such file\n" +
		"error E0104 outside.py:1:1 Return outside function\n" +
		"error E0105 outside.py:2:1 Yield outside function\n"
	testkit.AssertText(t, got, want)
}

func TestJSONFormat(t *testing.T) {
	var rep Report
	if err := json.Unmarshal([]byte(render(t, FormatJSON, Options{})), &rep); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rep.Issues) != 3 || len(rep.Errors) != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	first := rep.Issues[0]
	if first.Code != "E0102" || first.File != "pkg/redef.py" || first.Line != 4 || first.Column != 1 ||
		first.Severity != "error" || first.Symbol != "function-redefined" {
		t.Fatalf("unexpected first issue %+v", first)
	}
	if rep.Errors[0].File != "gone.py" {
		t.Fatalf("unexpected error entry %+v", rep.Errors[0])
	}
}

func TestEmptyJSONHasArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, Options{}); err != nil {
		t.Fatal(err)
	}
	testkit.AssertText(t, buf.String(), "{\n  \"issues\": [],\n  \"errors\": []\n}\n")
}

func TestYAMLMatchesJSON(t *testing.T) {
	var fromYAML, fromJSON Report
	if err := yaml.Unmarshal([]byte(render(t, FormatYAML, Options{})), &fromYAML); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if err := json.Unmarshal([]byte(render(t, FormatJSON, Options{})), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(fromYAML.Issues) != len(fromJSON.Issues) {
		t.Fatalf("yaml has %d issues, json %d", len(fromYAML.Issues), len(fromJSON.Issues))
	}
	for i := range fromJSON.Issues {
		if fromYAML.Issues[i] != fromJSON.Issues[i] {
			t.Errorf("issue %d: yaml %+v json %+v", i, fromYAML.Issues[i], fromJSON.Issues[i])
		}
	}
}

func TestMsgpackFormat(t *testing.T) {
	var rep Report
	if err := msgpack.Unmarshal([]byte(render(t, FormatMsgpack, Options{})), &rep); err != nil {
		t.Fatalf("invalid msgpack: %v", err)
	}
	if len(rep.Issues) != 3 || rep.Issues[2].Code != "E0105" || rep.Issues[2].Line != 2 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestSarifFormat(t *testing.T) {
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			AutomationDetails struct {
				GUID string `json:"guid"`
			} `json:"automationDetails"`
			Invocations []struct {
				Notifications []json.RawMessage `json:"toolExecutionNotifications"`
			} `json:"invocations"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	out := render(t, FormatSARIF, Options{ToolVersion: "0.1.0"})
	if err := json.Unmarshal([]byte(out), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %s", out)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "pyrint" {
		t.Fatalf("tool name = %q", run.Tool.Driver.Name)
	}
	if _, err := uuid.Parse(run.AutomationDetails.GUID); err != nil {
		t.Fatalf("guid %q: %v", run.AutomationDetails.GUID, err)
	}
	if len(run.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(run.Results))
	}
	r := run.Results[0]
	if r.RuleID != "E0102" || run.Tool.Driver.Rules[r.RuleIndex].ID != "E0102" {
		t.Fatalf("rule index mismatch: %+v", r)
	}
	if loc := r.Locations[0].PhysicalLocation; loc.ArtifactLocation.URI != "pkg/redef.py" || loc.Region.StartLine != 4 {
		t.Fatalf("unexpected location %+v", loc)
	}
	if len(run.Invocations) != 1 || len(run.Invocations[0].Notifications) != 1 {
		t.Fatalf("read failure should be a notification: %+v", run.Invocations)
	}
}
