// Package commands implements the CLI commands for vigil.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/vigil/internal/build"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// Service is the application surface driven by the CLI.
type Service interface {
	ports.ScanService
	// Serve runs the HTTP API on addr until ctx ends.
	Serve(ctx context.Context, addr string) error
}

// CLI represents the command line interface for vigil.
type CLI struct {
	svc     Service
	cfg     *domain.Config
	rootCmd *cobra.Command
}

// New creates a new CLI instance. cfg supplies flag defaults.
func New(svc Service, cfg *domain.Config) *CLI {
	rootCmd := &cobra.Command{
		Use:           "vigil",
		Short:         "Verify installed files against published release checksums",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("token", cfg.AuthToken, "Token presented to the scan authorizer")

	c := &CLI{
		svc:     svc,
		cfg:     cfg,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newProgressCmd())
	rootCmd.AddCommand(c.newReportCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func token(cmd *cobra.Command) string {
	t, _ := cmd.Flags().GetString("token")
	return t
}

// SetOutput redirects command output and errors. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
