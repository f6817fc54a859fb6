package nfa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"
)

// document is the JSON form of an NFA.
type document struct {
	States      []string    `json:"states"`
	Alphabet    []string    `json:"alphabet"`
	Transitions [][3]string `json:"transitions"`
	StartState  string      `json:"start_state"`
	FinalStates []string    `json:"final_states"`
}

func (n *NFA) document() document {
	doc := document{
		States:      stateStrings(n.states),
		Alphabet:    make([]string, 0, n.alphabet.Len()),
		Transitions: make([][3]string, 0, len(n.transitions)),
		StartState:  n.start.String(),
		FinalStates: stateStrings(n.finals),
	}
	n.alphabet.Scan(func(r rune) bool {
		doc.Alphabet = append(doc.Alphabet, string(r))
		return true
	})
	for _, t := range n.transitions {
		doc.Transitions = append(doc.Transitions, [3]string{t.From.String(), symbolString(t.Symbol), t.To.String()})
	}
	return doc
}

// MarshalJSON encodes n as
//
//	{"states": [...], "alphabet": [...], "transitions": [[from, symbol, to], ...],
//	 "start_state": "...", "final_states": [...]}
//
// with epsilon transitions carrying an empty symbol.
func (n *NFA) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.document())
}

func stateStrings(states []State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}

// WriteDOT writes n as a Graphviz digraph.
func (n *NFA) WriteDOT(w io.Writer) error {
	accepting := make(map[State]bool, len(n.finals))
	for _, s := range n.finals {
		accepting[s] = true
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "digraph NFA {")
	fmt.Fprintln(&buf, "    rankdir=LR;")
	for _, s := range n.states {
		shape := "circle"
		if accepting[s] {
			shape = "doublecircle"
		}
		fmt.Fprintf(&buf, "    %v [shape=%s];\n", s, shape)
	}
	for _, t := range n.transitions {
		fmt.Fprintf(&buf, "    %v -> %v [label=%q];\n", t.From, t.To, symbolLabel(t.Symbol))
	}
	fmt.Fprintf(&buf, "    _start [shape=point]; _start -> %v;\n", n.start)
	fmt.Fprintln(&buf, "}")

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteGo writes a Go source file in package pkg declaring n as the values
// <name>States, <name>Alphabet, <name>Transitions, <name>Start and
// <name>Finals. The pattern is recorded in the doc comments.
func (n *NFA) WriteGo(w io.Writer, pkg, name, pattern string) error {
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("invalid package name %q", pkg)
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	doc := n.document()

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by regexnfa. DO NOT EDIT.")

	f.Commentf("%sStates are the states of the NFA for %q.", name, pattern)
	f.Var().Id(name + "States").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, s := range doc.States {
			g.Lit(s)
		}
	})

	f.Commentf("%sAlphabet is the sorted input alphabet.", name)
	f.Var().Id(name + "Alphabet").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, s := range doc.Alphabet {
			g.Lit(s)
		}
	})

	f.Commentf("%sTransitions are {from, symbol, to} triples; an empty symbol is an epsilon move.", name)
	f.Var().Id(name + "Transitions").Op("=").Index().Index(jen.Lit(3)).String().ValuesFunc(func(g *jen.Group) {
		for _, t := range doc.Transitions {
			g.Values(jen.Lit(t[0]), jen.Lit(t[1]), jen.Lit(t[2]))
		}
	})

	f.Commentf("%sStart is the start state.", name)
	f.Const().Id(name + "Start").Op("=").Lit(doc.StartState)

	f.Commentf("%sFinals are the accepting states.", name)
	f.Var().Id(name + "Finals").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, s := range doc.FinalStates {
			g.Lit(s)
		}
	})

	return f.Render(w)
}
