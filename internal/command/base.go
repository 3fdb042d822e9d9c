// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package command implements the composedemo subcommands.
package command

import (
	"flag"
	"fmt"
	"io"
	"strings"

	metrics "github.com/armon/go-metrics"
	"github.com/gofunctional/compose/functional/instrument"
	"github.com/gofunctional/compose/internal/config"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Commands returns the factories for every subcommand. Logs are written to
// logOutput; results go through ui.
func Commands(ui cli.Ui, logOutput io.Writer) map[string]cli.CommandFactory {
	base := func() baseCommand {
		return baseCommand{ui: ui, logOutput: logOutput}
	}
	return map[string]cli.CommandFactory{
		"complex": func() (cli.Command, error) {
			return &ComplexCommand{baseCommand: base()}, nil
		},
		"hello": func() (cli.Command, error) {
			return &HelloCommand{baseCommand: base()}, nil
		},
		"valuable": func() (cli.Command, error) {
			return &ValuableCommand{baseCommand: base()}, nil
		},
	}
}

type baseCommand struct {
	ui        cli.Ui
	logOutput io.Writer

	flagConfig   string
	flagLogLevel string

	config  *config.Config
	logger  hclog.Logger
	metrics *metrics.Metrics
	sink    *metrics.InmemSink
}

func (b *baseCommand) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&b.flagConfig, "config", "", "")
	fs.StringVar(&b.flagLogLevel, "log-level", "", "")
	return fs
}

// setup loads the configuration, creates the logger and, when telemetry is
// enabled, the in-memory metrics.
func (b *baseCommand) setup(name string) error {
	b.config = config.Default()
	if b.flagConfig != "" {
		conf, err := config.LoadFile(b.flagConfig)
		if err != nil {
			return fmt.Errorf("error loading configuration from %s: %w", b.flagConfig, err)
		}
		b.config = conf
	}

	level := b.config.LogLevel
	if b.flagLogLevel != "" {
		level = b.flagLogLevel
	}
	logLevel := hclog.LevelFromString(level)
	if logLevel == hclog.NoLevel {
		return fmt.Errorf("invalid log level %q", level)
	}

	b.logger = hclog.New(&hclog.LoggerOptions{
		Name:       "composedemo",
		Level:      logLevel,
		Output:     b.logOutput,
		JSONFormat: b.config.JSONLogs(),
	}).Named(name)

	if b.config.Telemetry.Enabled {
		m, sink, err := instrument.NewInmem(b.config.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("error creating metrics: %w", err)
		}
		b.metrics, b.sink = m, sink
	}

	b.logger.Debug("configured", "config", b.flagConfig, "telemetry", b.metrics != nil)
	return nil
}

func (b *baseCommand) reportMetrics() {
	if b.sink == nil {
		return
	}
	for _, c := range instrument.Counters(b.sink) {
		b.logger.Debug("metric", "name", c.Name, "count", c.Count)
	}
}

const baseHelp = `
  -config=<path>
      HCL configuration file. Defaults to the built-in configuration.

  -log-level=<level>
      Overrides the configured log level (trace, debug, info, warn, error).
`

func helpText(usage string, extra ...string) string {
	return strings.TrimSpace(usage) + "\n\nOptions:\n" + baseHelp + strings.Join(extra, "")
}
