package diagfmt

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"pyrint/internal/driver"
)

// Msgpack writes the report as a single MessagePack map for machine consumers.
func Msgpack(w io.Writer, results []driver.FileResult, opts Options) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	if err := enc.Encode(BuildReport(results, opts)); err != nil {
		return fmt.Errorf("failed to encode msgpack report: %w", err)
	}
	return nil
}
