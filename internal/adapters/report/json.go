package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// JSONRenderer writes the complete result as indented JSON.
type JSONRenderer struct{}

var _ ports.ReportRenderer = JSONRenderer{}

// Render writes result to w.
func (JSONRenderer) Render(w io.Writer, result *domain.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
