package eval

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/heap"
	"github.com/Anzlc/lua-like-script/value"
)

// loopIterationFlow interprets a loop body's ControlFlow: Break stops the
// loop (reported to the caller as Normal — the break itself is fully
// handled here), Continue stops just this iteration, Return propagates
// out of the loop entirely, and Normal just means "go to next iteration".
// done reports whether the loop should stop.
func loopIterationFlow(flow ControlFlow) (done bool, propagate ControlFlow) {
	switch flow.Signal {
	case SigBreak:
		return true, normalFlow
	case SigReturn:
		return true, flow
	default: // Normal, Continue
		return false, ControlFlow{}
	}
}

func (ev *Evaluator) evalWhile(n *ast.While, e *env.Environment) (ControlFlow, error) {
	body := n.Body.(*ast.Scope)
	for {
		cond, err := ev.evalExpr(n.Cond, e)
		if err != nil {
			return ControlFlow{}, err
		}
		if !cond.IsTruthy() {
			return normalFlow, nil
		}
		flow, err := ev.evalScoped(body, e)
		if err != nil {
			return ControlFlow{}, err
		}
		if done, out := loopIterationFlow(flow); done {
			return out, nil
		}
	}
}

// evalRepeatUntil shares one frame between the body and the `until`
// condition (spec.md §4.2.4): a local declared in the body is still
// visible when the condition is checked, unlike while/numeric-for whose
// loop variable/body frame is separate from the condition evaluation.
func (ev *Evaluator) evalRepeatUntil(n *ast.RepeatUntil, e *env.Environment) (ControlFlow, error) {
	body := n.Body.(*ast.Scope)
	for {
		frame := e.Child()
		ev.pushFrame(frame)
		flow, err := ev.evalStatements(body.Statements, frame)
		if err != nil {
			ev.popFrame()
			return ControlFlow{}, err
		}
		if done, out := loopIterationFlow(flow); done {
			ev.popFrame()
			return out, nil
		}
		cond, err := ev.evalExpr(n.Cond, frame)
		ev.popFrame()
		if err != nil {
			return ControlFlow{}, err
		}
		if cond.IsTruthy() {
			return normalFlow, nil
		}
	}
}

func (ev *Evaluator) evalFor(n *ast.For, e *env.Environment) (ControlFlow, error) {
	if n.Kind == ast.ForRange {
		return ev.evalForRange(n, e)
	}
	return ev.evalForGeneric(n, e)
}

// evalForRange implements numeric `for i in start, end [, step] do`. The
// range is half-open: `end` is never reached, matching the
// "numeric-for half-open range" behavior spec.md §8 tests for.
func (ev *Evaluator) evalForRange(n *ast.For, e *env.Environment) (ControlFlow, error) {
	start, err := ev.evalExpr(n.Start, e)
	if err != nil {
		return ControlFlow{}, err
	}
	end, err := ev.evalExpr(n.End, e)
	if err != nil {
		return ControlFlow{}, err
	}
	step := value.Int(1)
	if n.Step != nil {
		step, err = ev.evalExpr(n.Step, e)
		if err != nil {
			return ControlFlow{}, err
		}
	}
	if !start.IsNumber() || !end.IsNumber() || !step.IsNumber() {
		return ControlFlow{}, runtimeErr(n.Line(), "numeric for requires numeric start/end/step")
	}

	useFloat := start.Kind == value.KindFloat || end.Kind == value.KindFloat || step.Kind == value.KindFloat
	body := n.Body.(*ast.Scope)

	if useFloat {
		cur, stop, by := start.AsFloat(), end.AsFloat(), step.AsFloat()
		for (by > 0 && cur < stop) || (by < 0 && cur > stop) {
			frame := e.Child()
			frame.Bind(n.Var, value.Float(cur))
			ev.pushFrame(frame)
			flow, err := ev.evalStatements(body.Statements, frame)
			ev.popFrame()
			if err != nil {
				return ControlFlow{}, err
			}
			if done, out := loopIterationFlow(flow); done {
				return out, nil
			}
			cur += by
		}
		return normalFlow, nil
	}

	cur, stop, by := start.I, end.I, step.I
	for (by > 0 && cur < stop) || (by < 0 && cur > stop) {
		frame := e.Child()
		frame.Bind(n.Var, value.Int(cur))
		ev.pushFrame(frame)
		flow, err := ev.evalStatements(body.Statements, frame)
		ev.popFrame()
		if err != nil {
			return ControlFlow{}, err
		}
		if done, out := loopIterationFlow(flow); done {
			return out, nil
		}
		cur += by
	}
	return normalFlow, nil
}

// evalForGeneric implements `for v in iterable do` over a table's values
// or a string's characters (spec.md §4.2.4). The snapshot Iterable is
// heap-allocated and kept rooted via a hidden binding on the loop's own
// frame for the loop's whole duration, so a per-iteration GC pass (which
// runs on every frame pop, spec.md §4.5) never collects items still
// waiting to be yielded.
func (ev *Evaluator) evalForGeneric(n *ast.For, e *env.Environment) (ControlFlow, error) {
	iterVal, err := ev.evalExpr(n.Iterable, e)
	if err != nil {
		return ControlFlow{}, err
	}
	items, err := ev.iterItems(iterVal, n.Line())
	if err != nil {
		return ControlFlow{}, err
	}

	itRef := ev.Heap.Allocate(heap.NewIterable(items))
	loopFrame := e.Child()
	loopFrame.Bind("@iter", value.FromRef(itRef))
	ev.pushFrame(loopFrame)

	body := n.Body.(*ast.Scope)
	for {
		obj, _ := ev.Heap.Get(itRef)
		cursor := obj.(*heap.Iterable)
		v, ok := cursor.Next()
		if !ok {
			ev.popFrame()
			return normalFlow, nil
		}

		iterFrame := loopFrame.Child()
		iterFrame.Bind(n.Var, v)
		ev.pushFrame(iterFrame)
		flow, err := ev.evalStatements(body.Statements, iterFrame)
		ev.popFrame()
		if err != nil {
			ev.popFrame()
			return ControlFlow{}, err
		}
		if done, out := loopIterationFlow(flow); done {
			ev.popFrame()
			return out, nil
		}
	}
}

// iterItems snapshots the values a generic `for` will yield: one
// substring per character for a string, or the value half of every
// (key, value) pair for a table.
func (ev *Evaluator) iterItems(v value.Value, line int) ([]value.Value, error) {
	switch {
	case v.Kind == value.KindString:
		items := make([]value.Value, 0, len(v.S))
		for _, r := range v.S {
			items = append(items, value.String(string(r)))
		}
		return items, nil
	case v.IsHeapRef():
		obj, ok := ev.Heap.Get(v.Ref)
		if !ok {
			return nil, runtimeErr(line, "stale table reference")
		}
		tbl, ok := obj.(*heap.Table)
		if !ok {
			return nil, runtimeErr(line, "value of type %s is not iterable", v.TypeName())
		}
		entries := tbl.Entries()
		items := make([]value.Value, len(entries))
		for i, ent := range entries {
			items[i] = ent.Val
		}
		return items, nil
	default:
		return nil, runtimeErr(line, "value of type %s is not iterable", v.TypeName())
	}
}
