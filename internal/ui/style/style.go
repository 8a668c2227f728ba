// Package style provides shared colors and icons for terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check    = "✓"
	Cross    = "✗"
	Warning  = "!"
	Tilde    = "~"
	Question = "?"
	Dot      = "●"
)

// Classification markers used when listing scan results.
const (
	ModifiedIcon = Tilde
	MissingIcon  = Cross
	UnknownIcon  = Question
)
