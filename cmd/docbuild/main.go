package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docbuild/cmd/docbuild/commands"
	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docbuild/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("docbuild"),
		kong.Description("Run the documentation build inside a container and stream its progress."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docbuild: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docbuild: error: %v\n", err)
		return 1
	}

	// SIGINT and SIGTERM close the build's stdin and end the run with exit 1.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global := &commands.Global{
		Context: ctx,
		Logger:  slog.Default(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	err = kctx.Run(global, cli)
	return errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Report(err)
}
