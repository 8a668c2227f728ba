package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			return c.svc.Serve(cmd.Context(), listen)
		},
	}
	cmd.Flags().StringP("listen", "l", c.cfg.Listen, "Address to listen on")
	return cmd
}
