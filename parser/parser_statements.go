package parser

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/lexer"
)

// parseStatement dispatches on the current token to the right production.
// It never returns nil except when it has already recorded an error and
// skipped the offending token, keeping the caller's loop progressing.
func (p *Parser) parseStatement() ast.Node {
	switch p.peek().Type {
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwRepeat:
		return p.parseRepeat()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwFunction:
		return p.parseFunctionDeclaration()
	case lexer.KwLocal:
		return p.parseLocalAssignment()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwBreak:
		tok := p.advance()
		return ast.NewBreak(tok.Line)
	case lexer.KwContinue:
		tok := p.advance()
		return ast.NewContinue(tok.Line)
	case lexer.KwDo:
		p.advance()
		body := p.parseBlockUntil(lexer.KwEnd)
		p.expect(lexer.KwEnd, "to close do block")
		return body
	default:
		return p.parseExpressionStatement()
	}
}

// parseLocalAssignment parses `local name = expr`.
func (p *Parser) parseLocalAssignment() ast.Node {
	kw := p.advance() // 'local'
	nameTok := p.expect(lexer.Ident, "after 'local'")
	target := ast.NewVariable(nameTok.Line, nameTok.Literal)
	p.expect(lexer.OpAssign, "in local declaration")
	rhs := p.parseExpression()
	return ast.NewAssignment(kw.Line, true, target, rhs)
}

// parseReturn parses `return` or `return expr`. A bare return is
// recognised by checking whether the next token could start an
// expression at all; anything that terminates a block (EndLine, 'end',
// 'else', 'elseif', 'until', EOF) means no expression follows.
func (p *Parser) parseReturn() ast.Node {
	kw := p.advance() // 'return'
	if p.startsExpression() {
		expr := p.parseExpression()
		return ast.NewReturn(kw.Line, expr)
	}
	return ast.NewReturn(kw.Line, nil)
}

func (p *Parser) startsExpression() bool {
	switch p.peek().Type {
	case lexer.EndLine, lexer.Semicolon, lexer.EOF,
		lexer.KwEnd, lexer.KwElse, lexer.KwElseif, lexer.KwUntil:
		return false
	default:
		return true
	}
}

// parseExpressionStatement parses a standalone call expression, or an
// assignment/compound-assignment whose target is the parsed expression.
// Compound assignment desugars to `target = target op rhs` right here in
// the parser (spec.md §4.2.1); the same target subtree is used both as
// the assignment target and inside the rhs, so it is evaluated twice at
// runtime —
// a documented quirk, not a bug, per spec.md §9.
func (p *Parser) parseExpressionStatement() ast.Node {
	line := p.curLine()
	expr := p.parseExpression()

	if compoundOp, ok := lexer.CompoundAssignOp(p.peek().Type); ok {
		p.advance()
		rhs := p.parseExpression()
		combined := ast.NewBinaryOp(line, string(compoundOp), expr, rhs)
		return ast.NewAssignment(line, false, expr, combined)
	}

	if p.match(lexer.OpAssign) {
		rhs := p.parseExpression()
		return ast.NewAssignment(line, false, expr, rhs)
	}

	return expr
}
