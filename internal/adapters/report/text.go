// Package report renders scan results for terminals and machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/ui/output"
	"go.trai.ch/vigil/internal/ui/style"
)

// DefaultLimit is the number of paths listed per class before the rest is summarized.
const DefaultLimit = 10

// TextRenderer writes a human-readable summary with one section per non-empty class.
type TextRenderer struct {
	limit int
}

var _ ports.ReportRenderer = (*TextRenderer)(nil)

// TextOption configures a TextRenderer.
type TextOption func(*TextRenderer)

// WithLimit caps each class listing at n paths. n <= 0 lists every path.
func WithLimit(n int) TextOption {
	return func(r *TextRenderer) {
		r.limit = n
	}
}

// WithAll lists every path.
func WithAll() TextOption {
	return WithLimit(0)
}

// NewTextRenderer creates a TextRenderer listing DefaultLimit paths per class.
func NewTextRenderer(opts ...TextOption) *TextRenderer {
	r := &TextRenderer{limit: DefaultLimit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes result to w.
func (r *TextRenderer) Render(w io.Writer, result *domain.ScanResult) error {
	out := output.New(w)

	var b strings.Builder
	writeSummary(&b, out, result)
	r.writeSection(&b, out, "Modified", style.ModifiedIcon, termenv.RGBColor(string(style.Yellow)), result.Modified)
	r.writeSection(&b, out, "Missing", style.MissingIcon, termenv.RGBColor(string(style.Red)), result.Missing)
	r.writeSection(&b, out, "Unknown", style.UnknownIcon, termenv.RGBColor(string(style.Iris)), result.Unknown)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummary(b *strings.Builder, out *termenv.Output, result *domain.ScanResult) {
	if result.Clean() {
		headline := style.Check + " no integrity issues in " + result.Root
		fmt.Fprintln(b, out.String(headline).Foreground(termenv.RGBColor(string(style.Green))).Bold())
	} else {
		headline := fmt.Sprintf("%s %s in %s", style.Cross, plural(result.Issues(), "integrity issue"), result.Root)
		fmt.Fprintln(b, out.String(headline).Foreground(termenv.RGBColor(string(style.Red))).Bold())
	}

	slate := termenv.RGBColor(string(style.Slate))
	fmt.Fprintln(b, "  "+out.String("session "+result.Session.String()).Foreground(slate).String())

	details := []string{
		baselineLabel(result),
		plural(result.Stats.Files, "file"),
		fmt.Sprintf("%d clean", result.Stats.Clean),
	}
	if result.Stats.Unreadable > 0 {
		details = append(details, fmt.Sprintf("%d unreadable", result.Stats.Unreadable))
	}
	if d := result.Duration(); d > 0 {
		details = append(details, d.Round(time.Millisecond).String())
	}
	fmt.Fprintln(b, "  "+out.String(strings.Join(details, ", ")).Foreground(slate).String())
}

func (r *TextRenderer) writeSection(
	b *strings.Builder,
	out *termenv.Output,
	title, icon string,
	color termenv.Color,
	paths []string,
) {
	if len(paths) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s\n", out.String(fmt.Sprintf("%s (%d)", title, len(paths))).Foreground(color).Bold())

	shown := paths
	if r.limit > 0 && len(paths) > r.limit {
		shown = paths[:r.limit]
	}
	for _, p := range shown {
		fmt.Fprintf(b, "  %s %s\n", out.String(icon).Foreground(color), p)
	}

	if rest := len(paths) - len(shown); rest > 0 {
		more := fmt.Sprintf("... and %d more", rest)
		fmt.Fprintf(b, "  %s\n", out.String(more).Foreground(termenv.RGBColor(string(style.Slate))))
	}
}

func baselineLabel(result *domain.ScanResult) string {
	label := result.Source.String() + " baseline"
	if result.Version != "" {
		label += " " + result.Version
	}
	return label + " (" + string(result.Algorithm) + ")"
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
