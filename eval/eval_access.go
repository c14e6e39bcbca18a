package eval

import (
	"fmt"

	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/heap"
	"github.com/Anzlc/lua-like-script/value"
)

// evalIndexRead evaluates `base[index]` / `base.name`. A string base
// indexes by byte-rune position, returning a one-character string or nil
// out of range; a table base defers to heap.Table.Index, which never
// errors on a missing key. Indexing anything else is a type error.
func (ev *Evaluator) evalIndexRead(n *ast.Index, e *env.Environment) (value.Value, error) {
	base, err := ev.evalExpr(n.Base, e)
	if err != nil {
		return value.Nil, err
	}
	idx, err := ev.evalExpr(n.Index, e)
	if err != nil {
		return value.Nil, err
	}

	if base.Kind == value.KindString {
		if idx.Kind != value.KindInt {
			return value.Nil, nil
		}
		runes := []rune(base.S)
		if idx.I < 0 || idx.I >= int64(len(runes)) {
			return value.Nil, nil
		}
		return value.String(string(runes[idx.I])), nil
	}

	if base.IsHeapRef() {
		obj, ok := ev.Heap.Get(base.Ref)
		if !ok {
			return value.Nil, runtimeErr(n.Line(), "stale reference")
		}
		if tbl, ok := obj.(*heap.Table); ok {
			return tbl.Index(idx), nil
		}
		return value.Nil, runtimeErr(n.Line(), "attempt to index a %s value", base.TypeName())
	}

	return value.Nil, runtimeErr(n.Line(), "attempt to index a %s value", base.TypeName())
}

// assignIndex evaluates `target[index] = val` / `target.name = val`.
// Only tables are assignable indexed targets.
func (ev *Evaluator) assignIndex(target *ast.Index, val value.Value, e *env.Environment) error {
	base, err := ev.evalExpr(target.Base, e)
	if err != nil {
		return err
	}
	idx, err := ev.evalExpr(target.Index, e)
	if err != nil {
		return err
	}
	if !base.IsHeapRef() {
		return runtimeErr(target.Line(), "attempt to index a %s value", base.TypeName())
	}
	obj, ok := ev.Heap.Get(base.Ref)
	if !ok {
		return runtimeErr(target.Line(), "stale reference")
	}
	tbl, ok := obj.(*heap.Table)
	if !ok {
		return runtimeErr(target.Line(), "attempt to index a %s value", base.TypeName())
	}
	tbl.SetIndex(idx, val)
	return nil
}

func (ev *Evaluator) makeClosure(n *ast.FunctionDeclaration, e *env.Environment) *heap.Function {
	return heap.NewUserFunction(n.Name, n.Args, n.Body, e)
}

// evalFunctionCall resolves the callee and arguments and dispatches the
// call. For a method-style call (`obj:method(args)`, IncludeSelf set by
// the parser) the receiver — the base of the Index being called through
// — is evaluated once more and prepended to the argument list (spec.md
// §9's method-call resolution). Re-evaluating the Index to fetch the
// callee means the receiver expression itself runs twice; this is only
// observable if that expression has side effects, which a bare variable
// or field access never does.
func (ev *Evaluator) evalFunctionCall(n *ast.FunctionCall, e *env.Environment) (value.Value, error) {
	var args []value.Value

	if n.IncludeSelf {
		idxNode, ok := n.Target.(*ast.Index)
		if !ok {
			return value.Nil, runtimeErr(n.Line(), "method call target is not an index expression")
		}
		receiver, err := ev.evalExpr(idxNode.Base, e)
		if err != nil {
			return value.Nil, err
		}
		args = append(args, receiver)
	}

	callee, err := ev.evalExpr(n.Target, e)
	if err != nil {
		return value.Nil, err
	}

	for _, argNode := range n.Args {
		v, err := ev.evalExpr(argNode, e)
		if err != nil {
			return value.Nil, err
		}
		args = append(args, v)
	}

	return ev.callFunction(callee, args, n.Line())
}

// callFunction invokes a resolved callee. A user-defined function requires
// an exact argument count match; a mismatch is an arity error. Host
// functions receive args as given and are responsible for their own arity
// checking, since some are intentionally variadic (print, input).
func (ev *Evaluator) callFunction(callee value.Value, args []value.Value, line int) (value.Value, error) {
	if !callee.IsHeapRef() {
		return value.Nil, runtimeErr(line, "attempt to call a %s value", callee.TypeName())
	}
	obj, ok := ev.Heap.Get(callee.Ref)
	if !ok {
		return value.Nil, runtimeErr(line, "stale reference")
	}
	fn, ok := obj.(*heap.Function)
	if !ok {
		return value.Nil, runtimeErr(line, "attempt to call a %s value", callee.TypeName())
	}

	if fn.IsHost() {
		return fn.Host(args)
	}

	if len(args) != len(fn.Params) {
		return value.Nil, runtimeErr(line, "arity error: %s expects %d argument(s), got %d",
			fnLabel(fn), len(fn.Params), len(args))
	}

	frame := fn.Closure.Child()
	for i, param := range fn.Params {
		frame.Bind(param, args[i])
	}

	ev.pushFrame(frame)
	body := fn.Body.(*ast.Scope)
	flow, err := ev.evalStatements(body.Statements, frame)
	ev.popFrame()
	if err != nil {
		return value.Nil, err
	}
	if flow.Signal == SigReturn {
		return flow.Value, nil
	}
	return value.Nil, nil
}

// fnLabel names a function for an arity-error message: by name if it was
// declared with one, otherwise as an anonymous function.
func fnLabel(fn *heap.Function) string {
	if fn.Name != "" {
		return fmt.Sprintf("function %s", fn.Name)
	}
	return "anonymous function"
}
