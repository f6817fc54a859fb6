package syntax

import "fmt"

// Node is a node of the syntax tree. The set of implementations is closed:
// *Operand, *Concat, *Union and *Star.
type Node interface {
	fmt.Stringer
	node()
}

// Operand is a literal character.
type Operand struct {
	Char rune
}

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Node
}

// Union matches either Left or Right.
type Union struct {
	Left, Right Node
}

// Star matches zero or more repetitions of Operand.
type Star struct {
	Operand Node
}

func (*Operand) node() {}
func (*Concat) node()  {}
func (*Union) node()   {}
func (*Star) node()    {}

func (n *Operand) String() string { return fmt.Sprintf("Operand(%c)", n.Char) }
func (n *Concat) String() string  { return fmt.Sprintf("Concat(%v, %v)", n.Left, n.Right) }
func (n *Union) String() string   { return fmt.Sprintf("Union(%v, %v)", n.Left, n.Right) }
func (n *Star) String() string    { return fmt.Sprintf("Star(%v)", n.Operand) }
