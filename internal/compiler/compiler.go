// Package compiler turns a regular expression into an NFA: tokenize, parse,
// then Thompson's construction.
package compiler

import (
	"errors"

	"regexnfa/internal/nfa"
	"regexnfa/internal/syntax"
)

// ErrEmpty is returned for an empty pattern. It is checked before
// tokenizing.
var ErrEmpty = errors.New("Regex string cannot be empty.")

// InputError reports a pattern that cannot be compiled. Err is ErrEmpty or
// a *syntax.Error.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// Compile compiles pattern into an NFA. Every problem with the pattern
// itself is reported as an *InputError; any other error is a defect.
func Compile(pattern string) (*nfa.NFA, error) {
	if pattern == "" {
		return nil, &InputError{Err: ErrEmpty}
	}
	tokens, err := syntax.Tokenize(pattern)
	if err != nil {
		return nil, classify(err)
	}
	root, err := syntax.Parse(tokens)
	if err != nil {
		return nil, classify(err)
	}
	return nfa.Build(root), nil
}

func classify(err error) error {
	var synErr *syntax.Error
	if errors.As(err, &synErr) {
		return &InputError{Err: synErr}
	}
	return err
}
