package syntax

import (
	"fmt"
	"unicode/utf8"
)

// Error is a syntax error in a pattern.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

type parser struct {
	tokens []Token
	pos    int
}

// Parse builds a syntax tree from tokens by recursive descent.
//
//	union   := concat ('|' concat)*
//	concat  := star ('.' star)*
//	star    := primary '*'*
//	primary := OPERAND | '(' union ')'
//
// Both binary operators are left-associative. A star applied directly to
// another star is rejected.
func Parse(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, errorf("Cannot parse an empty expression.")
	}
	p := &parser{tokens: tokens}
	root, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peek(); ok {
		return nil, errorf("Invalid syntax or unexpected characters at end of expression.")
	}
	return root, nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) at(k Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == k
}

func (p *parser) parseUnion() (Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.at(TokUnion) {
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Union{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseConcat() (Node, error) {
	left, err := p.parseStar()
	if err != nil {
		return nil, err
	}
	for p.at(TokConcat) {
		p.pos++
		right, err := p.parseStar()
		if err != nil {
			return nil, err
		}
		left = &Concat{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseStar() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(TokStar) {
		if _, ok := n.(*Star); ok {
			return nil, errorf("Invalid syntax: '*' cannot follow another '*'.")
		}
		p.pos++
		n = &Star{Operand: n}
	}
	return n, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, errorf("Unexpected end of expression, expecting an operand or '('")
	}
	switch tok.Kind {
	case TokOperand:
		p.pos++
		r, _ := utf8.DecodeRuneInString(tok.Value)
		return &Operand{Char: r}, nil
	case TokOpenParen:
		p.pos++
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if !p.at(TokCloseParen) {
			return nil, errorf("Mismatched parentheses: Missing ')'")
		}
		p.pos++
		return inner, nil
	default:
		return nil, errorf("Invalid syntax: Unexpected token '%s'", tok.Value)
	}
}
