package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/core/domain"
)

func (c *CLI) newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <session>",
		Short: "Print the progress of a scan session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			percent, ok, err := c.svc.Progress(cmd.Context(), session)
			if err != nil {
				return err
			}

			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "absent")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", percent)
			return err
		},
	}
}
