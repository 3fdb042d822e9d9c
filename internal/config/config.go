// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/errwrap"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "standard"
	DefaultThreshold = 1
	DefaultService   = "composedemo"
)

// Config holds the settings of the demo CLI.
type Config struct {
	// LogLevel is one of trace, debug, info, warn or error.
	LogLevel string `hcl:"log_level"`

	// LogFormat specifies the log format. Valid values are "standard" and
	// "json", compared case-insensitively.
	LogFormat string `hcl:"log_format"`

	// Threshold is the largest value still counted as valuable.
	Threshold    int64       `hcl:"-"`
	ThresholdRaw interface{} `hcl:"threshold"`

	Telemetry *Telemetry `hcl:"-"`
	Sources   []*Source  `hcl:"-"`
}

// Telemetry controls in-memory invocation metrics.
type Telemetry struct {
	Enabled     bool
	ServiceName string
}

// Source is a named, fixed sequence of values standing in for a database
// lookup.
type Source struct {
	Name   string
	Values []int64
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Threshold: DefaultThreshold,
		Telemetry: &Telemetry{ServiceName: DefaultService},
		Sources: []*Source{
			{Name: "someKey", Values: []int64{1, 2, 3, 0, -1, 100}},
		},
	}
}

// LoadFile loads the configuration from the given file.
func LoadFile(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(d))
}

// Parse parses an HCL document. Unset values take their defaults. Declared
// sources are added to the default ones, replacing those of the same name.
func Parse(d string) (*Config, error) {
	obj, err := hcl.Parse(d)
	if err != nil {
		return nil, err
	}

	var result Config
	if err := hcl.DecodeObject(&result, obj); err != nil {
		return nil, err
	}

	if result.LogLevel, err = parseutil.ParsePath(result.LogLevel); err != nil && !errors.Is(err, parseutil.ErrNotAUrl) {
		return nil, errwrap.Wrapf("error parsing 'log_level': {{err}}", err)
	}
	if result.LogFormat, err = parseutil.ParsePath(result.LogFormat); err != nil && !errors.Is(err, parseutil.ErrNotAUrl) {
		return nil, errwrap.Wrapf("error parsing 'log_format': {{err}}", err)
	}

	result.Threshold = DefaultThreshold
	if result.ThresholdRaw != nil {
		if result.Threshold, err = parseutil.ParseInt(result.ThresholdRaw); err != nil {
			return nil, errwrap.Wrapf("error parsing 'threshold': {{err}}", err)
		}
		result.ThresholdRaw = nil
	}

	list, ok := obj.Node.(*ast.ObjectList)
	if !ok {
		return nil, fmt.Errorf("error parsing: file doesn't contain a root object")
	}

	result.Telemetry = &Telemetry{ServiceName: DefaultService}
	if o := list.Filter("telemetry"); len(o.Items) > 0 {
		if err := parseTelemetry(result.Telemetry, o); err != nil {
			return nil, errwrap.Wrapf("error parsing 'telemetry': {{err}}", err)
		}
	}

	if o := list.Filter("source"); len(o.Items) > 0 {
		if err := parseSources(&result.Sources, o); err != nil {
			return nil, errwrap.Wrapf("error parsing 'source': {{err}}", err)
		}
	}

	if result.LogLevel == "" {
		result.LogLevel = DefaultLogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = DefaultLogFormat
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	result.Sources = mergeSources(Default().Sources, result.Sources)
	return &result, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		errs = multierror.Append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "standard", "json":
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid log_format %q", c.LogFormat))
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for _, s := range c.Sources {
		if _, ok := seen[s.Name]; ok {
			errs = multierror.Append(errs, fmt.Errorf("duplicate source %q", s.Name))
		}
		seen[s.Name] = struct{}{}
	}
	return errs.ErrorOrNil()
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}

// SourceValues returns the sources keyed by name.
func (c *Config) SourceValues() map[string][]int64 {
	out := make(map[string][]int64, len(c.Sources))
	for _, s := range c.Sources {
		out[s.Name] = s.Values
	}
	return out
}

func parseTelemetry(result *Telemetry, list *ast.ObjectList) error {
	if len(list.Items) > 1 {
		return fmt.Errorf("only one 'telemetry' block is permitted")
	}

	var m map[string]interface{}
	if err := hcl.DecodeObject(&m, list.Items[0].Val); err != nil {
		return multierror.Prefix(err, "telemetry:")
	}

	var err error
	if v, ok := m["enabled"]; ok {
		if result.Enabled, err = parseutil.ParseBool(v); err != nil {
			return multierror.Prefix(err, "telemetry:")
		}
		delete(m, "enabled")
	}
	if v, ok := m["service_name"]; ok {
		if result.ServiceName, err = parseutil.ParseString(v); err != nil {
			return multierror.Prefix(err, "telemetry:")
		}
		delete(m, "service_name")
	}
	if len(m) > 0 {
		return fmt.Errorf("telemetry: unknown keys %q", sortedKeys(m))
	}
	return nil
}

func parseSources(result *[]*Source, list *ast.ObjectList) error {
	sources := make([]*Source, 0, len(list.Items))
	for _, item := range list.Items {
		if len(item.Keys) == 0 {
			return fmt.Errorf("source block is missing a name")
		}
		name := item.Keys[0].Token.Value().(string)
		prefix := fmt.Sprintf("source.%s:", name)

		var m map[string]interface{}
		if err := hcl.DecodeObject(&m, item.Val); err != nil {
			return multierror.Prefix(err, prefix)
		}

		raw, ok := m["values"]
		if !ok {
			return multierror.Prefix(errors.New("missing 'values'"), prefix)
		}
		values, err := parseInts(raw)
		if err != nil {
			return multierror.Prefix(fmt.Errorf("unable to parse 'values': %w", err), prefix)
		}
		delete(m, "values")
		if len(m) > 0 {
			return multierror.Prefix(fmt.Errorf("unknown keys %q", sortedKeys(m)), prefix)
		}
		sources = append(sources, &Source{Name: name, Values: values})
	}

	*result = append(*result, sources...)
	return nil
}

// parseInts accepts an HCL list of numbers or a comma separated string.
func parseInts(raw interface{}) ([]int64, error) {
	var parsed []int64
	switch v := raw.(type) {
	case []interface{}:
		parsed = make([]int64, 0, len(v))
		for _, elem := range v {
			i, err := parseutil.ParseInt(elem)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, i)
		}
	default:
		var err error
		if parsed, err = parseutil.ParseIntSlice(v); err != nil {
			return nil, err
		}
	}
	return parsed, nil
}

// mergeSources returns base with every source of overrides replacing the
// one of the same name, or appended after it.
func mergeSources(base, overrides []*Source) []*Source {
	out := make([]*Source, 0, len(base)+len(overrides))
	index := make(map[string]int, len(base)+len(overrides))
	for _, sources := range [][]*Source{base, overrides} {
		for _, s := range sources {
			if i, ok := index[s.Name]; ok {
				out[i] = s
				continue
			}
			index[s.Name] = len(out)
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
