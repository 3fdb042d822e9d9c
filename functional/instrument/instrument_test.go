// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package instrument

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofunctional/compose/functional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	counters map[string]float32
	samples  map[string]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		counters: make(map[string]float32),
		samples:  make(map[string]int),
	}
}

func (s *recordingSink) IncrCounter(key []string, val float32) {
	s.counters[strings.Join(key, ".")] += val
}

func (s *recordingSink) MeasureSince(key []string, _ time.Time) {
	s.samples[strings.Join(key, ".")]++
}

func TestTimed(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	sink := newRecordingSink()

	calls := 0
	f := Timed(sink, []string{"upper"}, func(s string) string {
		calls++
		return strings.ToUpper(s)
	})
	r.Zero(calls)
	r.Empty(sink.counters)

	r.Equal("A", f("a"))
	r.Equal("B", f("b"))
	r.Equal(2, calls)
	assert.Equal(t, float32(2), sink.counters["upper.invocations"])
	assert.Equal(t, 2, sink.samples["upper.duration"])
}

func TestTimedErrorable(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	sink := newRecordingSink()
	fail := errors.New("odd input")

	f := TimedErrorable(sink, []string{"pipeline", "even"}, func(i int) (int, error) {
		if i%2 != 0 {
			return 0, fail
		}
		return i / 2, nil
	})

	v, err := f(4)
	r.NoError(err)
	r.Equal(2, v)

	_, err = f(3)
	r.Same(fail, err)

	assert.Equal(t, float32(2), sink.counters["pipeline.even.invocations"])
	assert.Equal(t, float32(1), sink.counters["pipeline.even.errors"])
	assert.Equal(t, 2, sink.samples["pipeline.even.duration"])
}

func TestTimedPanics(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	sink := newRecordingSink()

	f := Timed(sink, []string{"explode"}, func(int) int {
		panic("boom")
	})
	r.PanicsWithValue("boom", func() { f(1) })
}

func TestTimedComposite(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	m, inmem, err := NewInmem("svc")
	r.NoError(err)

	h := Timed(m, []string{"complex"}, functional.Compose(
		func(struct{}) string { return "Complex" },
		func(s string) string { return s + "Thing" },
	))
	for i := 0; i < 3; i++ {
		r.Equal("ComplexThing", h(struct{}{}))
	}

	counters := Counters(inmem)
	r.Len(counters, 1)
	r.Equal(Counter{Name: "svc.complex.invocations", Count: 3}, counters[0])
}

func TestMetricKeyDoesNotAlias(t *testing.T) {
	t.Parallel()
	name := make([]string, 1, 4)
	name[0] = "base"
	a := metricKey(name, "invocations")
	b := metricKey(name, "errors")
	assert.Equal(t, []string{"base", "invocations"}, a)
	assert.Equal(t, []string{"base", "errors"}, b)
}
