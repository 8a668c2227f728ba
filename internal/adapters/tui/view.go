package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vigil/internal/ui/style"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	percentStyle = lipgloss.NewStyle().Foreground(style.Slate)
)

// View renders a single status line. It is empty once the scan is done so the
// report starts on a clean terminal.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	label := labelStyle.Render("scanning " + m.label)
	if !m.found {
		return fmt.Sprintf("%s %s %s\n", m.spinner.View(), label, percentStyle.Render("waiting for progress"))
	}

	return fmt.Sprintf("%s %s %s %s\n",
		m.spinner.View(),
		label,
		m.bar.ViewAs(m.percent/100),
		percentStyle.Render(fmt.Sprintf("%5.1f%%", m.percent)),
	)
}
