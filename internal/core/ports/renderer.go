package ports

import (
	"io"

	"go.trai.ch/vigil/internal/core/domain"
)

// ReportRenderer writes a scan result in a presentation format.
type ReportRenderer interface {
	Render(w io.Writer, result *domain.ScanResult) error
}
