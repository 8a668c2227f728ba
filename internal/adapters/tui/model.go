// Package tui shows the live progress of a running scan.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vigil/internal/ui/style"
)

// DefaultPollInterval is how often the progress record is read.
const DefaultPollInterval = 200 * time.Millisecond

const barWidth = 40

// Poller reads the progress of the scan being displayed.
type Poller func(ctx context.Context) (percent float64, found bool, err error)

// MsgProgress carries one progress reading.
type MsgProgress struct {
	Percent float64
	Found   bool
	Err     error
}

// MsgScanDone is sent when the scan has returned.
type MsgScanDone struct{}

type msgPoll struct{}

// Model is the Bubble Tea model for the scan progress line.
type Model struct {
	ctx      context.Context //nolint:containedctx // Passed to every poll.
	poll     Poller
	interval time.Duration
	label    string

	percent float64
	found   bool
	done    bool

	spinner spinner.Model
	bar     progress.Model
}

// NewModel creates a progress model. label names what is being scanned. A
// non-positive interval uses DefaultPollInterval.
func NewModel(ctx context.Context, label string, poll Poller, interval time.Duration) *Model {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Iris)

	return &Model{
		ctx:      ctx,
		poll:     poll,
		interval: interval,
		label:    label,
		spinner:  s,
		bar: progress.New(
			progress.WithSolidFill(string(style.Iris)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Init starts the spinner and the first poll.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.schedulePoll())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgScanDone:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgPoll:
		return m, m.readProgress()

	case MsgProgress:
		// A failed read keeps the last value on screen.
		if msg.Err == nil {
			m.found = msg.Found
			if msg.Found && msg.Percent >= m.percent {
				m.percent = msg.Percent
			}
		}
		if m.done {
			return m, nil
		}
		return m, m.schedulePoll()
	}

	return m, nil
}

func (m *Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return msgPoll{}
	})
}

func (m *Model) readProgress() tea.Cmd {
	return func() tea.Msg {
		percent, found, err := m.poll(m.ctx)
		return MsgProgress{Percent: percent, Found: found, Err: err}
	}
}

// Percent returns the last displayed percentage.
func (m *Model) Percent() float64 {
	return m.percent
}

// Done reports whether the scan has returned.
func (m *Model) Done() bool {
	return m.done
}
