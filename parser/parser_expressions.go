package parser

import (
	"strconv"

	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/lexer"
)

// precedence gives each binary operator's climbing level. Level 0 binds
// loosest. Only Concat and Pow are right-associative (spec.md §4.2.2);
// everything else is left-associative.
var precedence = map[lexer.TokenType]int{
	lexer.KwOr: 0, lexer.KwAnd: 0, lexer.OpBitOr: 0,
	lexer.OpBitXor: 1, lexer.OpEq: 1, lexer.OpNe: 1,
	lexer.OpLt: 2, lexer.OpLe: 2, lexer.OpGt: 2, lexer.OpGe: 2, lexer.OpBitAnd: 2,
	lexer.OpAdd: 3, lexer.OpSub: 3, lexer.OpShl: 3, lexer.OpShr: 3,
	lexer.OpMul: 4, lexer.OpDiv: 4, lexer.OpIDiv: 4, lexer.OpMod: 4,
	lexer.OpConcat: 5,
	lexer.OpPow: 6,
}

func isRightAssoc(tt lexer.TokenType) bool {
	return tt == lexer.OpConcat || tt == lexer.OpPow
}

// parseExpression is the entry point: precedence climbing starting at
// level 0.
func (p *Parser) parseExpression() ast.Node {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrec int) ast.Node {
	left := p.parseUnary()

	for {
		tt := p.peek().Type
		prec, ok := precedence[tt]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()
		nextMin := prec + 1
		if isRightAssoc(tt) {
			nextMin = prec
		}
		right := p.parseBinary(nextMin)
		left = ast.NewBinaryOp(opTok.Line, string(opTok.Type), left, right)
	}
}

// parseUnary handles prefix `not`, `-`, `#`, `~`, which all bind tighter
// than any binary operator except the operand chain of `^` itself
// (`-2^2` parses as `-(2^2)` per spec.md §4.2.2).
func (p *Parser) parseUnary() ast.Node {
	switch p.peek().Type {
	case lexer.KwNot, lexer.OpSub, lexer.Hash, lexer.OpBitNot:
		opTok := p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryOp(opTok.Line, string(opTok.Type), operand)
	default:
		return p.parsePow()
	}
}

// parsePow binds `^` tighter than unary so `2^-2` and `-2^2` both parse
// with the expected grouping; it recurses on the right to honour
// right-associativity.
func (p *Parser) parsePow() ast.Node {
	base := p.parsePostfix()
	if p.check(lexer.OpPow) {
		opTok := p.advance()
		exp := p.parseUnary()
		return ast.NewBinaryOp(opTok.Line, string(opTok.Type), base, exp)
	}
	return base
}

// parsePostfix parses a primary expression followed by any run of
// `.name`, `[expr]`, `:name(args)`, and `(args)` suffixes.
func (p *Parser) parsePostfix() ast.Node {
	expr := p.parsePrimary()
	for {
		switch p.peek().Type {
		case lexer.Dot:
			dotTok := p.advance()
			name := p.expect(lexer.Ident, "after '.'")
			key := ast.NewLiteral(name.Line, ast.StringLiteral(name.Literal))
			expr = ast.NewIndex(dotTok.Line, expr, key)
		case lexer.LBracket:
			lb := p.advance()
			idx := p.parseExpression()
			p.expect(lexer.RBracket, "to close '['")
			expr = ast.NewIndex(lb.Line, expr, idx)
		case lexer.Colon:
			colonTok := p.advance()
			name := p.expect(lexer.Ident, "after ':'")
			key := ast.NewLiteral(name.Line, ast.StringLiteral(name.Literal))
			method := ast.NewIndex(colonTok.Line, expr, key)
			args := p.parseArgs()
			expr = ast.NewFunctionCall(colonTok.Line, method, args, true)
		case lexer.LParen:
			line := p.curLine()
			args := p.parseArgs()
			expr = ast.NewFunctionCall(line, expr, args, false)
		default:
			return expr
		}
	}
}

// parseArgs parses a parenthesised, comma-separated argument list. The
// opening paren must be the current token.
func (p *Parser) parseArgs() []ast.Node {
	p.expect(lexer.LParen, "to start argument list")
	var args []ast.Node
	if !p.check(lexer.RParen) {
		args = append(args, p.parseExpression())
		for p.match(lexer.Comma) {
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RParen, "to close argument list")
	return args
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	switch tok.Type {
	case lexer.KwNil:
		p.advance()
		return ast.NewLiteral(tok.Line, ast.NilLiteral())
	case lexer.KwTrue:
		p.advance()
		return ast.NewLiteral(tok.Line, ast.BoolLiteral(true))
	case lexer.KwFalse:
		p.advance()
		return ast.NewLiteral(tok.Line, ast.BoolLiteral(false))
	case lexer.IntLit:
		p.advance()
		return p.parseIntOrReassembledFloat(tok)
	case lexer.FloatLit:
		p.advance()
		f, _ := strconv.ParseFloat(tok.Literal, 64)
		return ast.NewLiteral(tok.Line, ast.FloatLiteral(f))
	case lexer.StringLit:
		p.advance()
		return ast.NewLiteral(tok.Line, ast.StringLiteral(tok.Literal))
	case lexer.Ident:
		p.advance()
		return ast.NewVariable(tok.Line, tok.Literal)
	case lexer.LParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RParen, "to close '('")
		return inner
	case lexer.LBrace:
		return p.parseTableConstructor()
	case lexer.KwFunction:
		return p.parseFunctionExpression()
	default:
		p.addError("unexpected token "+string(tok.Type)+" in expression", tok.Line)
		p.advance()
		return ast.NewLiteral(tok.Line, ast.NilLiteral())
	}
}

// parseIntOrReassembledFloat implements spec.md §4.2.2's float
// reassembly: an Int token immediately followed by `.` and another Int
// token (with no intervening space token — the lexer never emits one) is
// really one float literal, `whole.frac`, with frac's leading zeros
// preserved (so `1.010` reconstructs to 1.01 via string concatenation,
// not integer division, which would lose them).
func (p *Parser) parseIntOrReassembledFloat(whole lexer.Token) ast.Node {
	if p.check(lexer.Dot) && p.peekAt(1).Type == lexer.IntLit {
		p.advance() // '.'
		frac := p.advance()
		f, err := strconv.ParseFloat(whole.Literal+"."+frac.Literal, 64)
		if err != nil {
			p.addError("invalid numeric literal", whole.Line)
			return ast.NewLiteral(whole.Line, ast.IntLiteral(0))
		}
		return ast.NewLiteral(whole.Line, ast.FloatLiteral(f))
	}
	i, err := strconv.ParseInt(whole.Literal, 10, 64)
	if err != nil {
		p.addError("invalid integer literal", whole.Line)
		return ast.NewLiteral(whole.Line, ast.IntLiteral(0))
	}
	return ast.NewLiteral(whole.Line, ast.IntLiteral(i))
}

// parseTableConstructor parses `{ expr, expr, key = expr, [expr] = expr, ... }`.
// Entries without a key go to the array part in order; `name = expr` and
// `[expr] = expr` entries go to the map part (spec.md §3's table shape).
func (p *Parser) parseTableConstructor() ast.Node {
	lb := p.expect(lexer.LBrace, "to start table constructor")
	tc := &ast.TableConstructor{}
	p.skipEndLines()
	for !p.check(lexer.RBrace) && !p.atEnd() {
		switch {
		case p.check(lexer.LBracket):
			p.advance()
			key := p.parseExpression()
			p.expect(lexer.RBracket, "to close table key")
			p.expect(lexer.OpAssign, "after table key")
			val := p.parseExpression()
			tc.Map = append(tc.Map, ast.TableEntry{Key: key, Value: val})
		case p.check(lexer.Ident) && p.peekAt(1).Type == lexer.OpAssign:
			nameTok := p.advance()
			p.advance() // '='
			val := p.parseExpression()
			key := ast.NewLiteral(nameTok.Line, ast.StringLiteral(nameTok.Literal))
			tc.Map = append(tc.Map, ast.TableEntry{Key: key, Value: val})
		default:
			tc.Array = append(tc.Array, p.parseExpression())
		}
		p.skipEndLines()
		if !p.match(lexer.Comma) {
			break
		}
		p.skipEndLines()
	}
	p.skipEndLines()
	p.expect(lexer.RBrace, "to close table constructor")
	return ast.NewLiteral(lb.Line, ast.TableLiteral(tc))
}
