// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Command composedemo runs small function composition pipelines.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gofunctional/compose/internal/command"
	"github.com/mitchellh/cli"
)

var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      stdout,
		ErrorWriter: stderr,
	}

	c := cli.NewCLI("composedemo", version)
	c.Args = args
	c.Commands = command.Commands(ui, stderr)
	c.HelpWriter = stderr

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error executing CLI: %s\n", err)
		return 1
	}
	return exitCode
}
