// Package main is the entry point for the mbs module build scheduler.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/cmd/mbs/commands"
	"go.trai.ch/mbs/internal/adapters/config"
	"go.trai.ch/mbs/internal/app"
	"go.trai.ch/mbs/internal/core/domain"
	_ "go.trai.ch/mbs/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// initialize resolves the component graph for one configuration file.
func initialize(ctx context.Context, configPath string) (*app.Components, error) {
	components, _, err := graft.ExecuteFor[*app.Components](ctx,
		graft.WithCache(graft.NewMemoryCache()),
		graft.PatchValue[config.Path](config.Path(configPath)),
	)
	return components, err
}

func run(args []string, stdout, stderr io.Writer) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Interface - CLI
	cli := commands.New(initialize)
	cli.SetArgs(args)
	cli.SetOutput(stdout)
	defer func() { _ = cli.Close() }()

	// 2. Execution
	err := cli.Execute(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, domain.ErrModuleBuildFailed) {
		// The module state printed by the command already carries the reason.
		return 1
	}
	components := cli.Components()
	if components == nil {
		// Logger is not available if initialization failed
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	components.Logger.Error(err)
	return 1
}
