package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regexnfa/internal/compiler"
)

func TestCompileJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, compile([]string{"a(b|c)"}, &buf))

	var out struct {
		States []string `json:"states"`
		Start  string   `json:"start_state"`
		Finals []string `json:"final_states"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Len(t, out.States, 8)
	assert.Equal(t, "q0", out.Start)
	assert.Equal(t, []string{"q7"}, out.Finals)
}

func TestCompileFormats(t *testing.T) {
	var dot bytes.Buffer
	require.NoError(t, compile([]string{"-format", "dot", "a*"}, &dot))
	assert.Contains(t, dot.String(), "digraph NFA {")

	var src bytes.Buffer
	require.NoError(t, compile([]string{"-format", "go", "-pkg", "lexer", "-name", "Ident", "a*"}, &src))
	assert.Contains(t, src.String(), "package lexer")
	assert.Contains(t, src.String(), "IdentStart")
}

func TestCompileErrors(t *testing.T) {
	var inErr *compiler.InputError
	assert.ErrorAs(t, compile([]string{"a|"}, &bytes.Buffer{}), &inErr)
	assert.ErrorContains(t, compile([]string{"-format", "svg", "a"}, &bytes.Buffer{}), "unknown format")
	assert.ErrorContains(t, compile(nil, &bytes.Buffer{}), "expected exactly one regex")
}

func TestCompileHelp(t *testing.T) {
	err := compile([]string{"-h"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, flag.ErrHelp)

	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(err, &stderr))
	assert.Empty(t, stderr.String())
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 1, exitCode(compile([]string{"a|"}, &bytes.Buffer{}), &stderr))
	assert.Equal(t, "error: Unexpected end of expression, expecting an operand or '('\n", stderr.String())

	stderr.Reset()
	assert.Equal(t, 1, exitCode(errors.New("disk on fire"), &stderr))
	assert.Contains(t, stderr.String(), "disk on fire")
	assert.Contains(t, stderr.String(), "level=error")
}
