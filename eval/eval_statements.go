package eval

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/value"
)

// evalStatement dispatches one statement node to its handler. Anything
// that isn't a recognised statement form is treated as a bare expression
// statement (a function call for its side effects, most commonly) and
// its value is discarded.
func (ev *Evaluator) evalStatement(node ast.Node, e *env.Environment) (ControlFlow, error) {
	switch n := node.(type) {
	case *ast.Scope:
		return ev.evalScoped(n, e)
	case *ast.Assignment:
		return normalFlow, ev.evalAssignment(n, e)
	case *ast.FunctionDeclaration:
		return normalFlow, ev.evalFunctionDeclarationStatement(n, e)
	case *ast.If:
		return ev.evalIf(n, e)
	case *ast.While:
		return ev.evalWhile(n, e)
	case *ast.RepeatUntil:
		return ev.evalRepeatUntil(n, e)
	case *ast.For:
		return ev.evalFor(n, e)
	case *ast.Break:
		return ControlFlow{Signal: SigBreak}, nil
	case *ast.Continue:
		return ControlFlow{Signal: SigContinue}, nil
	case *ast.Return:
		return ev.evalReturn(n, e)
	default:
		_, err := ev.evalExpr(node, e)
		return normalFlow, err
	}
}

// evalAssignment handles both `local name = rhs` and `target = rhs`
// (where target may be a Variable or an Index expression).
func (ev *Evaluator) evalAssignment(n *ast.Assignment, e *env.Environment) error {
	rhs, err := ev.evalExpr(n.RHS, e)
	if err != nil {
		return err
	}

	switch target := n.Target.(type) {
	case *ast.Variable:
		if n.IsLocal {
			e.Bind(target.Name, rhs)
		} else {
			e.Assign(target.Name, rhs)
		}
		return nil
	case *ast.Index:
		return ev.assignIndex(target, rhs, e)
	default:
		return runtimeErr(n.Line(), "invalid assignment target")
	}
}

// evalFunctionDeclarationStatement binds a named function declaration
// the same way a plain non-local assignment would: it updates the nearest
// existing binding of the name, local or global, otherwise creates a
// global (spec.md §4.2.1).
func (ev *Evaluator) evalFunctionDeclarationStatement(n *ast.FunctionDeclaration, e *env.Environment) error {
	fn := ev.makeClosure(n, e)
	ref := ev.Heap.Allocate(fn)
	e.Assign(n.Name, value.FromRef(ref))
	return nil
}
