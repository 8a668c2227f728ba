package report

import (
	"strings"

	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = zerr.New("unknown output format")

// New returns the renderer for format. all disables truncation of text listings.
func New(format string, all bool) (ports.ReportRenderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		if all {
			return NewTextRenderer(WithAll()), nil
		}
		return NewTextRenderer(), nil
	case FormatJSON:
		return JSONRenderer{}, nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnknownFormat, "expected text or json"), "format", format)
	}
}
