package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/adapters/report"
	"go.trai.ch/vigil/internal/adapters/tui"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"golang.org/x/term"
)

func (c *CLI) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan an installation for modified, missing and unknown files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			all, _ := cmd.Flags().GetBool("all")
			noFail, _ := cmd.Flags().GetBool("no-fail")
			showProgress, _ := cmd.Flags().GetBool("progress")

			renderer, err := report.New(format, all)
			if err != nil {
				return err
			}

			opts := ports.ScanOptions{Token: token(cmd)}
			if cmd.Flags().Changed("source") {
				source, _ := cmd.Flags().GetString("source")
				opts.Source = domain.Source(source)
			}
			opts.Version, _ = cmd.Flags().GetString("version")
			opts.Root, _ = cmd.Flags().GetString("root")

			var result *domain.ScanResult
			if showProgress {
				result, err = c.scanWithProgress(cmd, opts)
			} else {
				result, err = c.svc.Scan(cmd.Context(), opts)
			}
			if err != nil {
				return err
			}

			if err := renderer.Render(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if !result.Clean() && !noFail {
				return domain.ErrIntegrityViolations
			}
			return nil
		},
	}
	cmd.Flags().StringP("source", "s", c.cfg.Source.String(), "Checksum source (online|local)")
	cmd.Flags().String("version", "", "Release version for online checksums (detected when empty)")
	cmd.Flags().StringP("root", "r", "", "Directory to scan (defaults to the configured root)")
	cmd.Flags().StringP("format", "o", report.FormatText, "Output format (text|json)")
	cmd.Flags().BoolP("all", "a", false, "List every path instead of truncating long sections")
	cmd.Flags().Bool("no-fail", false, "Exit successfully even when integrity issues are found")
	cmd.Flags().BoolP("progress", "p", stderrIsTerminal(), "Show live progress while scanning")
	return cmd
}

// scanWithProgress runs the scan under a fixed session and polls that session's
// progress record while it runs.
func (c *CLI) scanWithProgress(cmd *cobra.Command, opts ports.ScanOptions) (*domain.ScanResult, error) {
	opts.Session = domain.NewSessionID()

	label := opts.Root
	if label == "" {
		label = c.cfg.Root
	}

	poll := func(ctx context.Context) (float64, bool, error) {
		return c.svc.Progress(ctx, opts.Session)
	}
	scan := func(ctx context.Context) (*domain.ScanResult, error) {
		return c.svc.Scan(ctx, opts)
	}

	model := tui.NewModel(cmd.Context(), label, poll, tui.DefaultPollInterval)
	return tui.Run(cmd.Context(), cmd.ErrOrStderr(), model, scan)
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // File descriptors fit in int.
}
