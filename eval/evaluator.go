// Package eval tree-walks an ast.Program against a lexical environment
// and a garbage-collected heap (spec.md §4.3); any I/O happens inside
// host functions registered through RegisterHostFn.
package eval

import (
	"fmt"

	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/heap"
	"github.com/Anzlc/lua-like-script/value"
)

// RuntimeError is a recoverable evaluation failure with the source line
// it occurred on, surfaced to an embedder as host.RuntimeError.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func runtimeErr(line int, format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}

// Signal tags what kind of non-local control transfer a statement
// produced, replacing the exception-based control flow spec.md's
// Non-goals rule out.
type Signal uint8

const (
	SigNormal Signal = iota
	SigReturn
	SigBreak
	SigContinue
)

// ControlFlow is the result every statement-evaluating method returns
// alongside an error: Normal means "keep executing the enclosing block",
// anything else means "unwind to the nearest construct that handles it"
// (spec.md §4.3).
type ControlFlow struct {
	Signal Signal
	Value  value.Value
}

var normalFlow = ControlFlow{Signal: SigNormal}

// Evaluator walks an ast.Program. Global holds top-level bindings; Heap
// owns every table/iterable/function allocation; Builtins holds the host
// functions registered through the embedding API (spec.md §6).
type Evaluator struct {
	Global   *env.Environment
	Heap     *heap.Heap
	Builtins map[string]*heap.Function

	frames []*env.Environment // active frame stack, for GC root enumeration
}

// New creates an Evaluator with a fresh global frame and heap.
func New() *Evaluator {
	return &Evaluator{
		Global:   env.New(),
		Heap:     heap.New(),
		Builtins: make(map[string]*heap.Function),
	}
}

// RegisterHostFn installs a Go-implemented builtin, callable from script
// as a normal function value, per spec.md §6's embedding contract.
func (ev *Evaluator) RegisterHostFn(name string, fn heap.HostFn) {
	hf := heap.NewHostFunction(name, fn)
	ref := ev.Heap.Allocate(hf)
	ev.Builtins[name] = hf
	ev.Global.Bind(name, value.FromRef(ref))
}

// Run evaluates a full program against the global frame. A top-level
// `return` simply stops execution early; break/continue escaping to the
// top level is a programmer error reported as a RuntimeError.
func (ev *Evaluator) Run(prog *ast.Program) error {
	flow, err := ev.evalStatements(prog.Statements, ev.Global)
	if err != nil {
		return err
	}
	switch flow.Signal {
	case SigBreak:
		return runtimeErr(prog.Line(), "break used outside a loop")
	case SigContinue:
		return runtimeErr(prog.Line(), "continue used outside a loop")
	default:
		return nil
	}
}

// pushFrame/popFrame bracket execution of any new scope (block, function
// call, loop iteration). popFrame triggers a GC pass rooted at every
// still-active frame plus the global frame, per spec.md §4.5 ("runs after
// every scope pop").
func (ev *Evaluator) pushFrame(f *env.Environment) {
	ev.frames = append(ev.frames, f)
}

func (ev *Evaluator) popFrame() {
	ev.frames = ev.frames[:len(ev.frames)-1]
	ev.Heap.Collect(ev.liveRoots())
}

// refString renders a heap-resident value for `..` concatenation and
// print display, since only this package can dereference a
// HeapRef against the live heap.
func (ev *Evaluator) refString(ref value.HeapRef) string {
	obj, ok := ev.Heap.Get(ref)
	if !ok {
		return fmt.Sprintf("<stale ref %d>", ref)
	}
	switch o := obj.(type) {
	case *heap.Table:
		return fmt.Sprintf("<table: %d entries>", len(o.Entries()))
	case *heap.Function:
		if o.Name != "" {
			return fmt.Sprintf("<function: %s>", o.Name)
		}
		return "<function>"
	default:
		return fmt.Sprintf("<ref %d>", ref)
	}
}

// Stringify exposes refString-aware stringification for the host package
// (print, input's prompt) without re-implementing heap dereferencing there.
func (ev *Evaluator) Stringify(v value.Value) string {
	return value.Stringify(v, ev.refString)
}

func (ev *Evaluator) liveRoots() []value.HeapRef {
	roots := ev.Global.Roots()
	for _, f := range ev.frames {
		roots = append(roots, f.Roots()...)
	}
	return roots
}

// evalStatements runs a statement list in env, short-circuiting on the
// first non-Normal control flow or error.
func (ev *Evaluator) evalStatements(stmts []ast.Node, e *env.Environment) (ControlFlow, error) {
	for _, stmt := range stmts {
		flow, err := ev.evalStatement(stmt, e)
		if err != nil {
			return ControlFlow{}, err
		}
		if flow.Signal != SigNormal {
			return flow, nil
		}
	}
	return normalFlow, nil
}

// evalScoped runs a Scope node's statements in a fresh child frame,
// popping (and GC-triggering) when done.
func (ev *Evaluator) evalScoped(scope *ast.Scope, parent *env.Environment) (ControlFlow, error) {
	child := parent.Child()
	ev.pushFrame(child)
	flow, err := ev.evalStatements(scope.Statements, child)
	ev.popFrame()
	return flow, err
}
