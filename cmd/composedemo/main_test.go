// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		exitCode int
		stdout   string
	}{
		{
			name:   "complex",
			args:   []string{"complex"},
			stdout: "ComplexThing\n",
		},
		{
			name:   "hello",
			args:   []string{"hello"},
			stdout: "HelloWorld\n",
		},
		{
			name:   "valuable",
			args:   []string{"valuable", "-key=someKey"},
			stdout: "Valuable items: 3\n",
		},
		{
			name:     "unknown-key",
			args:     []string{"valuable", "-key=nope", "-log-level=off"},
			exitCode: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
			code := run(tt.args, stdout, stderr)
			assert.Equal(t, tt.exitCode, code, stderr.String())
			assert.Equal(t, tt.stdout, stdout.String())
		})
	}
}
