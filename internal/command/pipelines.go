// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"

	"github.com/gofunctional/compose/functional"
	"github.com/gofunctional/compose/functional/instrument"
	"github.com/gofunctional/compose/internal/demos"
	"github.com/mitchellh/cli"
)

var (
	_ cli.Command = (*ComplexCommand)(nil)
	_ cli.Command = (*HelloCommand)(nil)
	_ cli.Command = (*ValuableCommand)(nil)
)

// ComplexCommand prints the result of composing a producer of "Complex"
// with a function appending "Thing".
type ComplexCommand struct {
	baseCommand
}

func (c *ComplexCommand) Synopsis() string {
	return "Compose two functions in pipe order"
}

func (c *ComplexCommand) Help() string {
	return helpText(`Usage: composedemo complex [options]

  Runs Compose(produce "Complex", append "Thing") and prints the result.`)
}

func (c *ComplexCommand) Run(args []string) int {
	return c.runString("complex", args, demos.ComplexThing())
}

// HelloCommand prints the result of appending "World" after producing
// "Hello".
type HelloCommand struct {
	baseCommand
}

func (c *HelloCommand) Synopsis() string {
	return "Compose two functions in mathematical order"
}

func (c *HelloCommand) Help() string {
	return helpText(`Usage: composedemo hello [options]

  Runs After(append "World", produce "Hello") and prints the result.`)
}

func (c *HelloCommand) Run(args []string) int {
	return c.runString("hello", args, demos.HelloWorld())
}

func (b *baseCommand) runString(name string, args []string, pipeline functional.Function[demos.Unit, string]) int {
	fs := b.flagSet(name)
	if err := fs.Parse(args); err != nil {
		return cli.RunResultHelp
	}
	if err := b.setup(name); err != nil {
		b.ui.Error(err.Error())
		return 1
	}

	if b.metrics != nil {
		pipeline = instrument.Timed(b.metrics, []string{name}, pipeline)
	}
	b.ui.Output(pipeline(demos.Unit{}))
	b.reportMetrics()
	return 0
}

// ValuableCommand counts the values stored under a key that do not exceed
// the configured threshold.
type ValuableCommand struct {
	baseCommand

	flagKey string
}

func (c *ValuableCommand) Synopsis() string {
	return "Read a source and count its valuable items"
}

func (c *ValuableCommand) Help() string {
	return helpText(`Usage: composedemo valuable [options]

  Reads the values of a configured source and counts those less than or
  equal to the configured threshold.`, `
  -key=<name>
      Source to read. Defaults to "someKey".
`)
}

func (c *ValuableCommand) Run(args []string) int {
	fs := c.flagSet("valuable")
	fs.StringVar(&c.flagKey, "key", "someKey", "")
	if err := fs.Parse(args); err != nil {
		return cli.RunResultHelp
	}
	if err := c.setup("valuable"); err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	store, err := demos.NewStore(
		demos.WithSources(c.config.SourceValues()),
		demos.WithLogger(c.logger.Named("store")),
	)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	pipeline := demos.ValuableItems(store, c.config.Threshold)
	if c.metrics != nil {
		pipeline = instrument.TimedErrorable(c.metrics, []string{"valuable"}, pipeline)
	}

	n, err := pipeline(c.flagKey)
	c.reportMetrics()
	if err != nil {
		c.logger.Error("pipeline failed", "key", c.flagKey, "error", err)
		c.ui.Error(fmt.Sprintf("Error counting valuable items: %s", err))
		return 1
	}
	c.ui.Output(fmt.Sprintf("Valuable items: %d", n))
	return 0
}
