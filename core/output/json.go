package output

import (
	"encoding/json"
	"io"

	"infra-estimator/internal/errors"
)

// JSONFormatter renders results as JSON. Amounts are USD decimal strings.
type JSONFormatter struct {
	indent bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the result to w
func (f *JSONFormatter) Render(w io.Writer, result *EstimationResult) error {
	enc := json.NewEncoder(w)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return errors.Export("encode json", err)
	}
	return nil
}
