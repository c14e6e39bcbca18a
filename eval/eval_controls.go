package eval

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/value"
)

// evalIf evaluates the condition chain and runs the first branch whose
// condition is truthy, or the else branch if none match.
func (ev *Evaluator) evalIf(n *ast.If, e *env.Environment) (ControlFlow, error) {
	cond, err := ev.evalExpr(n.Cond, e)
	if err != nil {
		return ControlFlow{}, err
	}
	if cond.IsTruthy() {
		return ev.evalBranch(n.Then, e)
	}
	for _, ei := range n.ElseIfs {
		econd, err := ev.evalExpr(ei.Cond, e)
		if err != nil {
			return ControlFlow{}, err
		}
		if econd.IsTruthy() {
			return ev.evalBranch(ei.Body, e)
		}
	}
	if n.ElseBody != nil {
		return ev.evalBranch(n.ElseBody, e)
	}
	return normalFlow, nil
}

// evalBranch runs an if/elseif/else body, which the parser always builds
// as a Scope.
func (ev *Evaluator) evalBranch(body ast.Node, e *env.Environment) (ControlFlow, error) {
	if scope, ok := body.(*ast.Scope); ok {
		return ev.evalScoped(scope, e)
	}
	return ev.evalStatement(body, e)
}

func (ev *Evaluator) evalReturn(n *ast.Return, e *env.Environment) (ControlFlow, error) {
	if n.Expr == nil {
		return ControlFlow{Signal: SigReturn, Value: value.Nil}, nil
	}
	v, err := ev.evalExpr(n.Expr, e)
	if err != nil {
		return ControlFlow{}, err
	}
	return ControlFlow{Signal: SigReturn, Value: v}, nil
}
