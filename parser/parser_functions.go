package parser

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/lexer"
)

// parseFunctionDeclaration parses `function name(params) body end` as a
// statement; the evaluator binds name like a non-local assignment (see
// ast.FunctionDeclaration).
func (p *Parser) parseFunctionDeclaration() ast.Node {
	kw := p.advance() // 'function'
	nameTok := p.expect(lexer.Ident, "after 'function'")
	params := p.parseParamList()
	body := p.parseBlockUntil(lexer.KwEnd)
	p.expect(lexer.KwEnd, "to close function body")
	return ast.NewFunctionDeclaration(kw.Line, nameTok.Literal, params, body)
}

// parseFunctionExpression parses an anonymous `function(params) body end`
// used as a primary expression (assigned to a variable or table field).
// It is represented as a FunctionDeclaration with an empty Name; the
// evaluator treats that as "produce a function value, don't bind it".
func (p *Parser) parseFunctionExpression() ast.Node {
	kw := p.advance() // 'function'
	params := p.parseParamList()
	body := p.parseBlockUntil(lexer.KwEnd)
	p.expect(lexer.KwEnd, "to close function body")
	return ast.NewFunctionDeclaration(kw.Line, "", params, body)
}

func (p *Parser) parseParamList() []string {
	p.expect(lexer.LParen, "to start parameter list")
	var params []string
	if !p.check(lexer.RParen) {
		params = append(params, p.expect(lexer.Ident, "parameter name").Literal)
		for p.match(lexer.Comma) {
			params = append(params, p.expect(lexer.Ident, "parameter name").Literal)
		}
	}
	p.expect(lexer.RParen, "to close parameter list")
	return params
}

// parseBlockUntil parses statements until the current token is one of the
// given terminators (without consuming the terminator) and wraps them in
// an ast.Scope.
func (p *Parser) parseBlockUntil(terminators ...lexer.TokenType) ast.Node {
	line := p.curLine()
	var stmts []ast.Node
	p.skipEndLines()
	for !p.atEnd() && !p.atAnyOf(terminators...) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipEndLines()
	}
	return ast.NewScope(line, stmts)
}

func (p *Parser) atAnyOf(tts ...lexer.TokenType) bool {
	cur := p.peek().Type
	for _, tt := range tts {
		if cur == tt {
			return true
		}
	}
	return false
}
