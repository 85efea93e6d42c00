package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sysprobe/sysprobe/internal/report"
)

// JSON writes the lossless machine-readable projection.
func JSON(w io.Writer, r *report.Report) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to indent report: %w", err)
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}
