// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package demos builds the sample pipelines run by the composedemo command.
// Every pipeline is assembled with the functional package.
package demos

import (
	"errors"
	"fmt"

	"github.com/gofunctional/compose/functional"
	"github.com/hashicorp/go-hclog"
)

// ErrUnknownSource is returned when a key has no source in the Store.
var ErrUnknownSource = errors.New("unknown source")

// Unit is the input of pipelines that ignore their argument.
type Unit = struct{}

// Produce returns a Function that ignores its input and yields s.
func Produce(s string) functional.Function[Unit, string] {
	return functional.FromProducer[Unit](func() string {
		return s
	})
}

// Append returns a Function adding suffix to its input.
func Append(suffix string) functional.Function[string, string] {
	return func(s string) string {
		return s + suffix
	}
}

// ComplexThing produces "Complex" and then appends "Thing".
func ComplexThing() functional.Function[Unit, string] {
	return functional.Compose(Produce("Complex"), Append("Thing"))
}

// HelloWorld is built in mathematical order: appending "World" after
// producing "Hello".
func HelloWorld() functional.Function[Unit, string] {
	return functional.After(Append("World"), Produce("Hello"))
}

// CountAtMost returns a Function counting the values not greater than
// threshold.
func CountAtMost(threshold int64) functional.Function[[]int64, int] {
	return func(values []int64) int {
		n := 0
		for _, v := range values {
			if v <= threshold {
				n++
			}
		}
		return n
	}
}

// ValuableItems counts, after reading the values stored under a key, those
// not greater than threshold. Lookup failures are returned as is.
func ValuableItems(store *Store, threshold int64) functional.ErrorableFunction[string, int] {
	return functional.AfterErrorable(functional.Lift(CountAtMost(threshold)), store.Read)
}

// Store is a read-only set of named value sequences.
type Store struct {
	sources map[string][]int64
	logger  hclog.Logger
}

// NewStore creates a Store from the WithSource options.
func NewStore(opt ...Option) (*Store, error) {
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, err
	}
	return &Store{
		sources: opts.withSources,
		logger:  opts.withLogger,
	}, nil
}

// Read returns a copy of the values stored under key.
func (s *Store) Read(key string) ([]int64, error) {
	values, ok := s.sources[key]
	if !ok {
		s.logger.Debug("source lookup missed", "key", key)
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, key)
	}
	s.logger.Trace("source lookup", "key", key, "count", len(values))
	return append([]int64(nil), values...), nil
}
