// Package nfa holds the nondeterministic finite automata produced by
// Thompson's construction and the primitives that build them.
package nfa

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/tidwall/btree"
)

// State identifies a state. States are numbered in creation order and are
// rendered as q<N>.
type State int

func (s State) String() string { return "q" + strconv.Itoa(int(s)) }

// Epsilon is the symbol of a transition that consumes no input.
const Epsilon rune = 0

// Transition is a move From -> To on Symbol.
type Transition struct {
	From   State
	Symbol rune
	To     State
}

// IsEpsilon reports whether t consumes no input.
func (t Transition) IsEpsilon() bool { return t.Symbol == Epsilon }

func (t Transition) String() string {
	return fmt.Sprintf("%v -%s-> %v", t.From, symbolLabel(t.Symbol), t.To)
}

// StateFactory hands out fresh states. One factory is used for a whole
// construction so that combined automata never share a state name.
// The zero value starts at q0.
type StateFactory struct {
	next State
}

// New returns the next unused state.
func (f *StateFactory) New() State {
	s := f.next
	f.next++
	return s
}

// NFA is an immutable nondeterministic finite automaton. The accessors
// return copies.
type NFA struct {
	states      []State
	alphabet    *btree.Set[rune]
	transitions []Transition
	start       State
	finals      []State
}

// States returns the states in creation order.
func (n *NFA) States() []State { return slices.Clone(n.states) }

// Alphabet returns the symbols used by the transitions, sorted and without
// duplicates.
func (n *NFA) Alphabet() []rune {
	out := make([]rune, 0, n.alphabet.Len())
	n.alphabet.Scan(func(r rune) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Transitions returns the transitions in construction order.
func (n *NFA) Transitions() []Transition { return slices.Clone(n.transitions) }

// Start returns the start state.
func (n *NFA) Start() State { return n.start }

// Finals returns the accepting states.
func (n *NFA) Finals() []State { return slices.Clone(n.finals) }

// Validate checks that every referenced state is declared exactly once, that
// there is at least one accepting state and that the alphabet is exactly the
// set of non-epsilon transition symbols.
func (n *NFA) Validate() error {
	declared := make(map[State]bool, len(n.states))
	for _, s := range n.states {
		if declared[s] {
			return fmt.Errorf("duplicate state %v", s)
		}
		declared[s] = true
	}
	if !declared[n.start] {
		return fmt.Errorf("start state %v is not declared", n.start)
	}
	if len(n.finals) == 0 {
		return fmt.Errorf("no accepting state")
	}
	for _, s := range n.finals {
		if !declared[s] {
			return fmt.Errorf("accepting state %v is not declared", s)
		}
	}
	used := make(map[rune]bool)
	for _, t := range n.transitions {
		if !declared[t.From] || !declared[t.To] {
			return fmt.Errorf("transition %v references an undeclared state", t)
		}
		if t.IsEpsilon() {
			continue
		}
		if !n.alphabet.Contains(t.Symbol) {
			return fmt.Errorf("transition %v uses a symbol outside the alphabet", t)
		}
		used[t.Symbol] = true
	}
	if len(used) != n.alphabet.Len() {
		return fmt.Errorf("alphabet has %d symbols but transitions use %d", n.alphabet.Len(), len(used))
	}
	return nil
}

func symbolLabel(r rune) string {
	if r == Epsilon {
		return "ε"
	}
	return string(r)
}

// symbolString is the external form of a symbol; epsilon is "".
func symbolString(r rune) string {
	if r == Epsilon {
		return ""
	}
	return string(r)
}
