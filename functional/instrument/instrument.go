// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package instrument records invocation metrics around functional.Function
// values without changing their results.
package instrument

import (
	"sort"
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/gofunctional/compose/functional"
)

// Sink is the part of *metrics.Metrics the wrappers need.
type Sink interface {
	IncrCounter(key []string, val float32)
	MeasureSince(key []string, start time.Time)
}

var _ Sink = (*metrics.Metrics)(nil)

// Timed wraps f so every call increments <name>.invocations and records its
// duration under <name>.duration.
func Timed[A, V any](sink Sink, name []string, f functional.Function[A, V]) functional.Function[A, V] {
	invocations := metricKey(name, "invocations")
	duration := metricKey(name, "duration")
	return func(a A) V {
		sink.IncrCounter(invocations, 1)
		defer sink.MeasureSince(duration, time.Now())
		return f(a)
	}
}

// TimedErrorable is Timed for ErrorableFunctions. Failed calls additionally
// increment <name>.errors. The error itself is returned untouched.
func TimedErrorable[A, V any](sink Sink, name []string, f functional.ErrorableFunction[A, V]) functional.ErrorableFunction[A, V] {
	invocations := metricKey(name, "invocations")
	duration := metricKey(name, "duration")
	failures := metricKey(name, "errors")
	return func(a A) (V, error) {
		sink.IncrCounter(invocations, 1)
		defer sink.MeasureSince(duration, time.Now())
		v, err := f(a)
		if err != nil {
			sink.IncrCounter(failures, 1)
		}
		return v, err
	}
}

// NewInmem returns a Metrics instance reporting to an in-memory sink, with
// host name and runtime metrics disabled.
func NewInmem(serviceName string) (*metrics.Metrics, *metrics.InmemSink, error) {
	sink := metrics.NewInmemSink(10*time.Second, time.Minute)
	cfg := metrics.DefaultConfig(serviceName)
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false
	m, err := metrics.New(cfg, sink)
	if err != nil {
		return nil, nil, err
	}
	return m, sink, nil
}

// Counter is a named counter total read back from an InmemSink.
type Counter struct {
	Name  string
	Count int
}

// Counters sums the counters held by sink across all retained intervals,
// sorted by name.
func Counters(sink *metrics.InmemSink) []Counter {
	totals := make(map[string]int)
	for _, interval := range sink.Data() {
		interval.RLock()
		for name, v := range interval.Counters {
			totals[name] += v.Count
		}
		interval.RUnlock()
	}

	out := make([]Counter, 0, len(totals))
	for name, count := range totals {
		out = append(out, Counter{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func metricKey(name []string, suffix string) []string {
	key := make([]string, 0, len(name)+1)
	key = append(key, name...)
	return append(key, suffix)
}
