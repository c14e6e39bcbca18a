package ast

// This file collects one-line constructors per node kind so the parser's
// production functions stay focused on grammar, not struct literals.

func NewProgram(line int, stmts []Node) *Program { return &Program{newBase(line), stmts} }
func NewScope(line int, stmts []Node) *Scope      { return &Scope{newBase(line), stmts} }
func NewLiteral(line int, v ParsedValue) *Literal { return &Literal{newBase(line), v} }
func NewVariable(line int, name string) *Variable { return &Variable{newBase(line), name} }

func NewBinaryOp(line int, op string, lhs, rhs Node) *BinaryOp {
	return &BinaryOp{newBase(line), op, lhs, rhs}
}

func NewUnaryOp(line int, op string, v Node) *UnaryOp {
	return &UnaryOp{newBase(line), op, v}
}

func NewIndex(line int, base, index Node) *Index {
	return &Index{newBase(line), base, index}
}

func NewAssignment(line int, isLocal bool, target, rhs Node) *Assignment {
	return &Assignment{newBase(line), isLocal, target, rhs}
}

func NewFunctionCall(line int, target Node, args []Node, includeSelf bool) *FunctionCall {
	return &FunctionCall{newBase(line), target, args, includeSelf}
}

func NewFunctionDeclaration(line int, name string, args []string, body Node) *FunctionDeclaration {
	return &FunctionDeclaration{newBase(line), name, args, body}
}

func NewIf(line int, cond, then Node, elseifs []ElseIf, elseBody Node) *If {
	return &If{newBase(line), cond, then, elseifs, elseBody}
}

func NewWhile(line int, cond, body Node) *While {
	return &While{newBase(line), cond, body}
}

func NewRepeatUntil(line int, body, cond Node) *RepeatUntil {
	return &RepeatUntil{newBase(line), body, cond}
}

func NewForRange(line int, v string, start, end, step Node, body Node) *For {
	return &For{newBase(line), v, ForRange, start, end, step, nil, body}
}

func NewForGeneric(line int, v string, iterable Node, body Node) *For {
	return &For{newBase(line), v, ForGeneric, nil, nil, nil, iterable, body}
}

func NewBreak(line int) *Break       { return &Break{newBase(line)} }
func NewContinue(line int) *Continue { return &Continue{newBase(line)} }
func NewReturn(line int, expr Node) *Return {
	return &Return{newBase(line), expr}
}
