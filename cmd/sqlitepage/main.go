package main

import (
	"fmt"
	"os"

	"github.com/joeandaverde/sqlitepage/cmd/sqlitepage/command"
	"github.com/mitchellh/cli"
)

func main() {
	args := os.Args[1:]

	commands := map[string]cli.CommandFactory{
		"inspect": func() (cli.Command, error) {
			return &command.InspectCommand{}, nil
		},
		"dump": func() (cli.Command, error) {
			return &command.DumpCommand{}, nil
		},
	}

	sqlitepageCLI := &cli.CLI{
		Args:     args,
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("sqlitepage"),
	}

	exitCode, err := sqlitepageCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}
