package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/adapters/report"
	"go.trai.ch/vigil/internal/core/domain"
)

func (c *CLI) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <session>",
		Short: "Render the stored report of a finished scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			all, _ := cmd.Flags().GetBool("all")

			renderer, err := report.New(format, all)
			if err != nil {
				return err
			}

			session, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			result, err := c.svc.Report(cmd.Context(), session)
			if err != nil {
				return err
			}

			return renderer.Render(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringP("format", "o", report.FormatText, "Output format (text|json)")
	cmd.Flags().BoolP("all", "a", false, "List every path instead of truncating long sections")
	return cmd
}
