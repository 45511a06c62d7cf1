// Command goldctl records gold trades and shows holdings from the terminal.
// It talks to a goldbook API server and, in hybrid mode, falls back to a
// local SQLite ledger when the server cannot be reached.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"goldbook/internal/logger"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	logger.Init(os.Getenv("ENV"))

	status := commander.Execute(context.Background())
	logger.Sync()
	os.Exit(int(status))
}
