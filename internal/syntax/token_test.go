package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(v string) Token { return Token{Kind: TokOperand, Value: v} }

var (
	star   = Token{Kind: TokStar, Value: "*"}
	union  = Token{Kind: TokUnion, Value: "|"}
	concat = Token{Kind: TokConcat, Value: "."}
	lparen = Token{Kind: TokOpenParen, Value: "("}
	rparen = Token{Kind: TokCloseParen, Value: ")"}
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"all kinds", "a|b*()", []Token{op("a"), union, op("b"), star, concat, lparen, rparen}},
		{"explicit concat", "a.b", []Token{op("a"), concat, op("b")}},
		{"mixed concat", "a.bc", []Token{op("a"), concat, op("b"), concat, op("c")}},
		{"operands", "ab", []Token{op("a"), concat, op("b")}},
		{"close paren then operand", "(a)b", []Token{lparen, op("a"), rparen, concat, op("b")}},
		{"operand then open paren", "a(b)", []Token{op("a"), concat, lparen, op("b"), rparen}},
		{"star then operand", "a*b", []Token{op("a"), star, concat, op("b")}},
		{"star then open paren", "a*(", []Token{op("a"), star, concat, lparen}},
		{"around union", "a|b", []Token{op("a"), union, op("b")}},
		{"before star and close paren", "a*)", []Token{op("a"), star, rparen}},
		{"after open paren and union", "(|a", []Token{lparen, union, op("a")}},
		{"digits", "0a9", []Token{op("0"), concat, op("a"), concat, op("9")}},
		{"unicode letters", "éß", []Token{op("é"), concat, op("ß")}},
		{"nested", "a(b(c))d", []Token{
			op("a"), concat, lparen, op("b"), concat, lparen, op("c"), rparen, rparen, concat, op("d"),
		}},
		{"complex", "a(b|c)*d", []Token{
			op("a"), concat, lparen, op("b"), union, op("c"), rparen, star, concat, op("d"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	got, err := Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTokenizeExplicitEqualsImplicit(t *testing.T) {
	for _, pair := range [][2]string{
		{"ab", "a.b"},
		{"a(b)", "a.(b)"},
		{"a*b", "a*.b"},
		{"(a)(b)", "(a).(b)"},
	} {
		implicit, err := Tokenize(pair[0])
		require.NoError(t, err)
		explicit, err := Tokenize(pair[1])
		require.NoError(t, err)
		assert.Equal(t, implicit, explicit, "%q vs %q", pair[0], pair[1])
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  string
	}{
		{"a%b", "Invalid character in expression: '%'"},
		{"a^b", "Invalid character in expression: '^'"},
		{"a b", "Invalid character in expression: ' '"},
		{"a+", "Invalid character in expression: '+'"},
		{"a\nb", "Invalid character in expression: '\n'"},
	} {
		_, err := Tokenize(tt.input)
		var synErr *Error
		require.ErrorAs(t, err, &synErr, tt.input)
		assert.Equal(t, tt.want, synErr.Msg)
	}
}

// No CONCAT is ever placed right after '(' or '|', or right before '|',
// ')' or '*'.
func TestTokenizeConcatPlacement(t *testing.T) {
	for _, input := range []string{
		"a(b|c)*d", "((a))", "(a|b)(c|d)", "a*b*c*", "a|(b)|c", "(ab)*(cd)*e",
	} {
		tokens, err := Tokenize(input)
		require.NoError(t, err)
		for i := 1; i < len(tokens); i++ {
			prev, cur := tokens[i-1], tokens[i]
			if cur.Kind == TokConcat {
				assert.NotContains(t, []Kind{TokOpenParen, TokUnion}, prev.Kind, "%q at %d", input, i)
			}
			if prev.Kind == TokConcat {
				assert.NotContains(t, []Kind{TokUnion, TokCloseParen, TokStar}, cur.Kind, "%q at %d", input, i)
			}
		}
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "OPERAND", TokOperand.String())
	assert.Equal(t, "CLOSE_PAREN", TokCloseParen.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
