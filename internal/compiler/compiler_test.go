package compiler

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regexnfa/internal/nfa"
	"regexnfa/internal/syntax"
)

func TestCompileParenthesesPrecedence(t *testing.T) {
	n, err := Compile("a(b|c)")
	require.NoError(t, err)
	require.NoError(t, n.Validate())

	// 1 for a, 1 for b, 1 for c, 1 for the concatenation, 4 for the union.
	assert.Len(t, n.States(), 8)
	assert.Len(t, n.Transitions(), 8)
	assert.Equal(t, "q0", n.Start().String())
	assert.Equal(t, []nfa.State{7}, n.Finals())
}

func TestCompileAlphabet(t *testing.T) {
	n, err := Compile("a(b|c)*")
	require.NoError(t, err)
	assert.Equal(t, []rune{'a', 'b', 'c'}, n.Alphabet())
}

func TestCompileExplicitAndImplicitConcat(t *testing.T) {
	implicit, err := Compile("ab(c|d)")
	require.NoError(t, err)
	explicit, err := Compile("a.b.(c|d)")
	require.NoError(t, err)
	assert.Equal(t, implicit.Transitions(), explicit.Transitions())
	assert.Equal(t, implicit.States(), explicit.States())
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "empty"},
		{"*a", "Unexpected token '*'"},
		{"a|", "Unexpected end of expression"},
		{"(a|b", "Missing ')'"},
		{"a%b", "'%'"},
		{"a**", "cannot follow another '*'"},
		{"()", "Unexpected token ')'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Compile(tt.input)
			assert.Nil(t, n)
			var inErr *InputError
			require.ErrorAs(t, err, &inErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompileErrorKinds(t *testing.T) {
	_, err := Compile("")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Compile("a|")
	var synErr *syntax.Error
	require.ErrorAs(t, err, &synErr)
	assert.False(t, errors.Is(err, ErrEmpty))
	assert.NotEqual(t, ErrEmpty.Error(), synErr.Error())
}

func TestCompileMaximumLengthPattern(t *testing.T) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	n, err := Compile(strings.Repeat("a", 10000))
	runtime.ReadMemStats(&after)

	require.NoError(t, err)
	assert.Len(t, n.States(), 20000)
	assert.Len(t, n.Transitions(), 19999)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(128<<20))
}

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"", "a", "ab", "a|b", "a*", "a(b|c)*", "((a))", "a**", "(a|b", "a%b", "()", "*a", "a.b.c", "é(ß|1)*",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, pattern string) {
		n, err := Compile(pattern)
		if err != nil {
			var inErr *InputError
			if !errors.As(err, &inErr) {
				t.Fatalf("Compile(%q): unexpected error kind %T: %v", pattern, err, err)
			}
			return
		}
		if err := n.Validate(); err != nil {
			t.Fatalf("Compile(%q): invalid NFA: %v", pattern, err)
		}
		if len(n.Finals()) != 1 {
			t.Fatalf("Compile(%q): %d final states", pattern, len(n.Finals()))
		}
	})
}
