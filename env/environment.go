// Package env implements the lexical environment (frame) chain the
// evaluator walks for variable lookup, assignment, and declaration
// (spec.md §3's "Environment" data model entry).
package env

import "github.com/Anzlc/lua-like-script/value"

// Environment is one lexical scope frame: its own variable bindings plus
// a link to the enclosing frame. The global frame has a nil Parent.
//
// Closures capture the *Environment pointer of their defining frame
// directly rather than a deep copy, so a function sees later mutations
// to variables in its enclosing scopes (spec.md §9's closure-capture
// Open Question, resolved in favor of real lexical scoping over the
// distilled spec's global-only resolution).
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
}

// New creates a root environment with no parent (the global frame).
func New() *Environment {
	return &Environment{vars: make(map[string]value.Value)}
}

// Child creates a new frame nested under e, used for function calls,
// block scopes, and loop bodies.
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]value.Value), parent: e}
}

// Parent returns the enclosing frame, or nil for the global frame.
func (e *Environment) Parent() *Environment { return e.parent }

// Bind declares name in this frame, shadowing any outer binding of the
// same name. Used for `local` declarations and function parameters.
func (e *Environment) Bind(name string, v value.Value) {
	e.vars[name] = v
}

// LookUp resolves name by walking outward from this frame to the global
// frame. ok is false if no frame binds name.
func (e *Environment) LookUp(name string) (value.Value, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return value.Nil, false
}

// Assign updates the nearest existing binding of name, walking outward
// from this frame. If no frame already binds name, it is created as a
// new global binding (spec.md §4.2.1: a bare `name = expr` with no prior
// `local` declares a global).
func (e *Environment) Assign(name string, v value.Value) {
	for frame := e; frame != nil; frame = frame.parent {
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = v
			return
		}
	}
	e.global().vars[name] = v
}

// All returns a snapshot of this frame's own bindings (not its parents'),
// used by the embedding API to enumerate globals.
func (e *Environment) All() map[string]value.Value {
	out := make(map[string]value.Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

func (e *Environment) global() *Environment {
	frame := e
	for frame.parent != nil {
		frame = frame.parent
	}
	return frame
}

// Roots collects every HeapRef reachable from this frame chain, used by
// the garbage collector to seed its mark phase (spec.md §4.5). It walks
// outward once per call site the evaluator makes, so the caller is
// expected to call it from the innermost live frame of each call stack
// entry it wants to contribute roots from.
func (e *Environment) Roots() []value.HeapRef {
	var roots []value.HeapRef
	for frame := e; frame != nil; frame = frame.parent {
		for _, v := range frame.vars {
			if v.IsHeapRef() {
				roots = append(roots, v.Ref)
			}
		}
	}
	return roots
}
