// Package main is the entry point for the vigil integrity checker.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/cmd/vigil/commands"
	"go.trai.ch/vigil/internal/app"
	"go.trai.ch/vigil/internal/core/domain"
	_ "go.trai.ch/vigil/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The logger is not available when initialization fails.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App, components.Config)

	if err := cli.Execute(ctx); err != nil {
		// The rendered report already lists the violations.
		if errors.Is(err, domain.ErrIntegrityViolations) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
