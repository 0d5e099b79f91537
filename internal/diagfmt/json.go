package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"pyrint/internal/driver"
)

// JSON writes {"issues": [...], "errors": [...]}.
func JSON(w io.Writer, results []driver.FileResult, opts Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReport(results, opts))
}

// YAML writes the same document as JSON. sigs.k8s.io/yaml goes through the
// json tags, so both formats always agree on field names.
func YAML(w io.Writer, results []driver.FileResult, opts Options) error {
	data, err := yaml.Marshal(BuildReport(results, opts))
	if err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	_, err = w.Write(data)
	return err
}
