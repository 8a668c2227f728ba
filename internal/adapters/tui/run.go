package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/vigil/internal/core/domain"
)

type scanOutcome struct {
	result *domain.ScanResult
	err    error
}

// Run executes scan while model renders its progress on w, and returns the scan's
// outcome. Display failures never change the outcome.
func Run(
	ctx context.Context,
	w io.Writer,
	model *Model,
	scan func(ctx context.Context) (*domain.ScanResult, error),
	opts ...tea.ProgramOption,
) (*domain.ScanResult, error) {
	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}, opts...)
	p := tea.NewProgram(model, opts...)

	done := make(chan scanOutcome, 1)
	go func() {
		result, err := scan(ctx)
		done <- scanOutcome{result: result, err: err}
		p.Send(MsgScanDone{})
	}()

	_, _ = p.Run()

	out := <-done
	return out.result, out.err
}
