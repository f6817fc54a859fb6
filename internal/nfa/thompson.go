package nfa

import (
	"fmt"

	"github.com/tidwall/btree"

	"regexnfa/internal/syntax"
)

// Literal returns the two-state automaton accepting the single character c.
func Literal(c rune, f *StateFactory) *NFA {
	s0, s1 := f.New(), f.New()
	var alpha btree.Set[rune]
	alpha.Insert(c)
	return &NFA{
		states:      []State{s0, s1},
		alphabet:    &alpha,
		transitions: []Transition{{From: s0, Symbol: c, To: s1}},
		start:       s0,
		finals:      []State{s1},
	}
}

// Concatenate returns the automaton accepting a followed by b. Every final
// state of a gets an epsilon move to the start of b.
func Concatenate(a, b *NFA) *NFA {
	trans := make([]Transition, 0, len(a.transitions)+len(b.transitions)+len(a.finals))
	trans = append(trans, a.transitions...)
	trans = append(trans, b.transitions...)
	for _, s := range a.finals {
		trans = append(trans, Transition{From: s, Symbol: Epsilon, To: b.start})
	}
	return &NFA{
		states:      concatStates(a.states, b.states),
		alphabet:    mergeAlphabets(a.alphabet, b.alphabet),
		transitions: trans,
		start:       a.start,
		finals:      concatStates(b.finals),
	}
}

// Union returns the automaton accepting a or b, using a new start state that
// branches into both and a new final state that both flow into.
func Union(a, b *NFA, f *StateFactory) *NFA {
	start, final := f.New(), f.New()
	trans := make([]Transition, 0, len(a.transitions)+len(b.transitions)+2+len(a.finals)+len(b.finals))
	trans = append(trans, a.transitions...)
	trans = append(trans, b.transitions...)
	trans = append(trans,
		Transition{From: start, Symbol: Epsilon, To: a.start},
		Transition{From: start, Symbol: Epsilon, To: b.start},
	)
	for _, s := range a.finals {
		trans = append(trans, Transition{From: s, Symbol: Epsilon, To: final})
	}
	for _, s := range b.finals {
		trans = append(trans, Transition{From: s, Symbol: Epsilon, To: final})
	}
	return &NFA{
		states:      concatStates(a.states, b.states, []State{start, final}),
		alphabet:    mergeAlphabets(a.alphabet, b.alphabet),
		transitions: trans,
		start:       start,
		finals:      []State{final},
	}
}

// Star returns the Kleene closure of a. The new start state may skip
// straight to the new final state, and every final state of a loops back to
// the start of a.
func Star(a *NFA, f *StateFactory) *NFA {
	start, final := f.New(), f.New()
	trans := make([]Transition, 0, len(a.transitions)+2+2*len(a.finals))
	trans = append(trans, a.transitions...)
	trans = append(trans,
		Transition{From: start, Symbol: Epsilon, To: final},
		Transition{From: start, Symbol: Epsilon, To: a.start},
	)
	for _, s := range a.finals {
		trans = append(trans,
			Transition{From: s, Symbol: Epsilon, To: final},
			Transition{From: s, Symbol: Epsilon, To: a.start},
		)
	}
	return &NFA{
		states:      concatStates(a.states, []State{start, final}),
		alphabet:    a.alphabet.Copy(),
		transitions: trans,
		start:       start,
		finals:      []State{final},
	}
}

// Build walks the syntax tree bottom-up and assembles its automaton. States
// are numbered from q0 in the order the walk creates them. A nil or unknown
// node is a programming error and panics.
//
// The result is identical to composing Literal, Concatenate, Union and Star,
// but every sub-automaton appends into one shared set of slices, so the cost
// is linear in the size of the tree.
func Build(root syntax.Node) *NFA {
	var b builder
	frag := b.build(root)
	return &NFA{
		states:      b.states,
		alphabet:    &b.alphabet,
		transitions: b.transitions,
		start:       frag.start,
		finals:      frag.finals,
	}
}

// fragment is a sub-automaton under construction. Its states and
// transitions live in the builder.
type fragment struct {
	start  State
	finals []State
}

type builder struct {
	f           StateFactory
	states      []State
	transitions []Transition
	alphabet    btree.Set[rune]
}

func (b *builder) state() State {
	s := b.f.New()
	b.states = append(b.states, s)
	return s
}

func (b *builder) epsilon(from, to State) {
	b.transitions = append(b.transitions, Transition{From: from, Symbol: Epsilon, To: to})
}

// build appends in post order: left operand, right operand, then the states
// and epsilon moves that join them. This is the order the primitives use.
func (b *builder) build(n syntax.Node) fragment {
	switch n := n.(type) {
	case *syntax.Operand:
		s0, s1 := b.state(), b.state()
		b.alphabet.Insert(n.Char)
		b.transitions = append(b.transitions, Transition{From: s0, Symbol: n.Char, To: s1})
		return fragment{start: s0, finals: []State{s1}}
	case *syntax.Concat:
		left := b.build(n.Left)
		right := b.build(n.Right)
		for _, s := range left.finals {
			b.epsilon(s, right.start)
		}
		return fragment{start: left.start, finals: right.finals}
	case *syntax.Union:
		left := b.build(n.Left)
		right := b.build(n.Right)
		start, final := b.state(), b.state()
		b.epsilon(start, left.start)
		b.epsilon(start, right.start)
		for _, s := range left.finals {
			b.epsilon(s, final)
		}
		for _, s := range right.finals {
			b.epsilon(s, final)
		}
		return fragment{start: start, finals: []State{final}}
	case *syntax.Star:
		inner := b.build(n.Operand)
		start, final := b.state(), b.state()
		b.epsilon(start, final)
		b.epsilon(start, inner.start)
		for _, s := range inner.finals {
			b.epsilon(s, final)
			b.epsilon(s, inner.start)
		}
		return fragment{start: start, finals: []State{final}}
	default:
		panic(fmt.Sprintf("nfa: unexpected syntax node %T", n))
	}
}

func concatStates(lists ...[]State) []State {
	var size int
	for _, l := range lists {
		size += len(l)
	}
	out := make([]State, 0, size)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func mergeAlphabets(a, b *btree.Set[rune]) *btree.Set[rune] {
	out := a.Copy()
	b.Scan(func(r rune) bool {
		out.Insert(r)
		return true
	})
	return out
}
