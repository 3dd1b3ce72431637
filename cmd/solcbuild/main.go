// Package main is the entry point for the solcbuild CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/cmd/solcbuild/commands"
	"go.trai.ch/solcbuild/internal/driver"
	_ "go.trai.ch/solcbuild/internal/wiring"
)

// driverProvider builds the Driver, triggering the Graft DI graph
// registered by internal/wiring. run takes it as a parameter so tests can
// substitute a fake without running the real graph.
type driverProvider func(context.Context) (*driver.Driver, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*driver.Driver, error) {
		d, _, err := graft.ExecuteFor[*driver.Driver](ctx)
		return d, err
	}))
}

func run(ctx context.Context, args []string, stderr io.Writer, provider driverProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d, err := provider(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}

	cli := commands.New(d)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	return 0
}
