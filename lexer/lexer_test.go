package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(toks []Token) []TokenType {
	ts := make([]TokenType, len(toks))
	for i, t := range toks {
		ts[i] = t.Type
	}
	return ts
}

func TestLexSimpleArithmetic(t *testing.T) {
	toks := New("1 + 2 * 3").Lex()
	require.Equal(t, []TokenType{IntLit, OpAdd, IntLit, OpMul, IntLit, EOF}, typesOf(toks))
}

func TestLexFloatSplitsIntoThreeTokens(t *testing.T) {
	toks := New("1.010").Lex()
	require.Equal(t, []TokenType{IntLit, Dot, IntLit, EOF}, typesOf(toks))
	assert.Equal(t, "010", toks[2].Literal)
	assert.Equal(t, 2, toks[2].LeadingZeros)
}

func TestLexMaximalMunchCompoundAssign(t *testing.T) {
	toks := New("x += 1").Lex()
	require.Equal(t, []TokenType{Ident, OpAddAssign, IntLit, EOF}, typesOf(toks))
}

func TestLexIntegerDivideVsDivide(t *testing.T) {
	toks := New("a // b / c").Lex()
	require.Equal(t, []TokenType{Ident, OpIDiv, Ident, OpDiv, Ident, EOF}, typesOf(toks))
}

func TestLexBitwiseXorVsPow(t *testing.T) {
	toks := New("a ^^ b ^ c").Lex()
	require.Equal(t, []TokenType{Ident, OpBitXor, Ident, OpPow, Ident, EOF}, typesOf(toks))
}

func TestLexLineComment(t *testing.T) {
	toks := New("x = 1 -- comment\ny = 2").Lex()
	require.Equal(t, []TokenType{Ident, OpAssign, IntLit, EndLine, Ident, OpAssign, IntLit, EOF}, typesOf(toks))
	assert.Equal(t, 2, toks[4].Line)
}

func TestLexBlockCommentPreservesLineCount(t *testing.T) {
	src := "x = 1\n--[[ this\nspans\nlines --]]\ny = 2"
	toks := New(src).Lex()
	var endlines int
	for _, tok := range toks {
		if tok.Type == EndLine {
			endlines++
		}
	}
	assert.Equal(t, 4, endlines)
	last := toks[len(toks)-2]
	assert.Equal(t, IntLit, last.Type)
	assert.Equal(t, 5, last.Line)
}

func TestLexStringEscapes(t *testing.T) {
	toks := New(`"a\nb\tc\"d"`).Lex()
	require.Equal(t, StringLit, toks[0].Type)
	assert.Equal(t, "a\nb\tc\"d", toks[0].Literal)
}

func TestLexKeywordsAndIdentsDistinct(t *testing.T) {
	toks := New("if forward then").Lex()
	require.Equal(t, []TokenType{KwIf, Ident, KwThen, EOF}, typesOf(toks))
}

func TestLexMethodCallColon(t *testing.T) {
	toks := New("obj:method()").Lex()
	require.Equal(t, []TokenType{Ident, Colon, Ident, LParen, RParen, EOF}, typesOf(toks))
}

func TestLexEllipsisVsDot(t *testing.T) {
	toks := New("a...b a..b a.b").Lex()
	require.Equal(t, []TokenType{
		Ident, Ellipsis, Ident,
		Ident, OpConcat, Ident,
		Ident, Dot, Ident,
		EOF,
	}, typesOf(toks))
}

func TestLexCompoundAssignOpLookup(t *testing.T) {
	op, ok := CompoundAssignOp(OpAddAssign)
	require.True(t, ok)
	assert.Equal(t, OpAdd, op)

	_, ok = CompoundAssignOp(OpEq)
	assert.False(t, ok)
}
