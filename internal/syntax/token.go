package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a token.
type Kind int

const (
	TokOperand    Kind = iota // literal character
	TokStar                   // *
	TokUnion                  // |
	TokConcat                 // . (explicit or inserted)
	TokOpenParen              // (
	TokCloseParen             // )
)

var kindNames = [...]string{
	TokOperand:    "OPERAND",
	TokStar:       "STAR",
	TokUnion:      "UNION",
	TokConcat:     "CONCAT",
	TokOpenParen:  "OPEN_PAREN",
	TokCloseParen: "CLOSE_PAREN",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is a classified character of a pattern. Tokens compare with ==.
type Token struct {
	Kind  Kind
	Value string
}

func (t Token) String() string { return fmt.Sprintf("%s(%s)", t.Kind, t.Value) }

// concatToken is inserted between two adjacent operands.
var concatToken = Token{Kind: TokConcat, Value: "."}

// The last rule catches everything else so that the lexer itself never
// fails and Tokenize can name the offending character.
var lexDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Operand", Pattern: `[\p{L}\p{N}]`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Union", Pattern: `\|`},
	{Name: "Concat", Pattern: `\.`},
	{Name: "OpenParen", Pattern: `\(`},
	{Name: "CloseParen", Pattern: `\)`},
	{Name: "Invalid", Pattern: `[\s\S]`},
})

var lexKinds = func() map[lexer.TokenType]Kind {
	sym := lexDef.Symbols()
	return map[lexer.TokenType]Kind{
		sym["Operand"]:    TokOperand,
		sym["Star"]:       TokStar,
		sym["Union"]:      TokUnion,
		sym["Concat"]:     TokConcat,
		sym["OpenParen"]:  TokOpenParen,
		sym["CloseParen"]: TokCloseParen,
	}
}()

// endsOperand reports whether a token of kind k can close an operand.
func endsOperand(k Kind) bool {
	return k == TokOperand || k == TokCloseParen || k == TokStar
}

// beginsOperand reports whether a token of kind k can open an operand.
func beginsOperand(k Kind) bool {
	return k == TokOperand || k == TokOpenParen
}

// Tokenize splits a pattern into tokens, inserting a CONCAT token wherever
// two operands are adjacent. An empty pattern yields no tokens.
func Tokenize(pattern string) ([]Token, error) {
	lex, err := lexDef.LexString("", pattern)
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, len(pattern))
	for {
		lt, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if lt.EOF() {
			return tokens, nil
		}
		kind, ok := lexKinds[lt.Type]
		if !ok {
			return nil, errorf("Invalid character in expression: '%s'", lt.Value)
		}
		if n := len(tokens); n > 0 && endsOperand(tokens[n-1].Kind) && beginsOperand(kind) {
			tokens = append(tokens, concatToken)
		}
		tokens = append(tokens, Token{Kind: kind, Value: lt.Value})
	}
}
