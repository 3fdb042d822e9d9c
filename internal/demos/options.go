// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package demos

import (
	"errors"

	"github.com/hashicorp/go-hclog"
)

// getOpts - iterate the inbound Options and return a struct
func getOpts(opt ...Option) (*options, error) {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o != nil {
			if err := o(&opts); err != nil {
				return nil, err
			}
		}
	}
	return &opts, nil
}

// Option - how Options are passed as arguments
type Option func(*options) error

// options = how options are represented
type options struct {
	withSources map[string][]int64
	withLogger  hclog.Logger
}

func getDefaultOptions() options {
	return options{
		withSources: make(map[string][]int64),
		withLogger:  hclog.NewNullLogger(),
	}
}

// WithSource adds a named sequence of values to the store. Names must be
// unique and non-empty.
func WithSource(name string, values ...int64) Option {
	return func(o *options) error {
		if name == "" {
			return errors.New("empty source name passed into option")
		}
		if _, ok := o.withSources[name]; ok {
			return errors.New("duplicate source name passed into option: " + name)
		}
		o.withSources[name] = append([]int64(nil), values...)
		return nil
	}
}

// WithSources adds every entry of sources, see WithSource.
func WithSources(sources map[string][]int64) Option {
	return func(o *options) error {
		for name, values := range sources {
			if err := WithSource(name, values...)(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithLogger provides a logger for lookups. The default discards output.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("nil logger passed into option")
		}
		o.withLogger = logger
		return nil
	}
}
