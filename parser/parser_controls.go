package parser

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/lexer"
)

// parseIf parses `if cond then block (elseif cond then block)* (else block)? end`.
func (p *Parser) parseIf() ast.Node {
	kw := p.advance() // 'if'
	cond := p.parseExpression()
	p.expect(lexer.KwThen, "after if condition")
	then := p.parseBlockUntil(lexer.KwElseif, lexer.KwElse, lexer.KwEnd)

	var elseifs []ast.ElseIf
	for p.check(lexer.KwElseif) {
		p.advance()
		eCond := p.parseExpression()
		p.expect(lexer.KwThen, "after elseif condition")
		eBody := p.parseBlockUntil(lexer.KwElseif, lexer.KwElse, lexer.KwEnd)
		elseifs = append(elseifs, ast.ElseIf{Cond: eCond, Body: eBody})
	}

	var elseBody ast.Node
	if p.match(lexer.KwElse) {
		elseBody = p.parseBlockUntil(lexer.KwEnd)
	}
	p.expect(lexer.KwEnd, "to close if")
	return ast.NewIf(kw.Line, cond, then, elseifs, elseBody)
}

// parseWhile parses `while cond do block end`.
func (p *Parser) parseWhile() ast.Node {
	kw := p.advance() // 'while'
	cond := p.parseExpression()
	p.expect(lexer.KwDo, "after while condition")
	body := p.parseBlockUntil(lexer.KwEnd)
	p.expect(lexer.KwEnd, "to close while")
	return ast.NewWhile(kw.Line, cond, body)
}

// parseRepeat parses `repeat block until cond`. Unlike while/for, the
// body's scope stays visible while evaluating cond (spec.md §4.2.4):
// that is an evaluator-side concern, not a parsing one.
func (p *Parser) parseRepeat() ast.Node {
	kw := p.advance() // 'repeat'
	body := p.parseBlockUntil(lexer.KwUntil)
	p.expect(lexer.KwUntil, "to close repeat")
	cond := p.parseExpression()
	return ast.NewRepeatUntil(kw.Line, body, cond)
}

// parseFor parses both for-grammars, which share the `for name in ...`
// header and are told apart by what follows the first expression:
//
//	for i in start, stop [, step] do block end   (numeric range, half-open)
//	for k in iterable do block end               (generic, over table/string)
func (p *Parser) parseFor() ast.Node {
	kw := p.advance() // 'for'
	nameTok := p.expect(lexer.Ident, "after 'for'")
	p.expect(lexer.KwIn, "after for-loop variable")

	first := p.parseExpression()
	if p.match(lexer.Comma) {
		end := p.parseExpression()
		var step ast.Node
		if p.match(lexer.Comma) {
			step = p.parseExpression()
		}
		p.expect(lexer.KwDo, "after numeric-for header")
		body := p.parseBlockUntil(lexer.KwEnd)
		p.expect(lexer.KwEnd, "to close for")
		return ast.NewForRange(kw.Line, nameTok.Literal, first, end, step, body)
	}

	p.expect(lexer.KwDo, "after generic-for header")
	body := p.parseBlockUntil(lexer.KwEnd)
	p.expect(lexer.KwEnd, "to close for")
	return ast.NewForGeneric(kw.Line, nameTok.Literal, first, body)
}
