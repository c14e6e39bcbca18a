package heap

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/value"
)

// HostFn is a function implemented in Go and exposed into the language,
// the shape spec.md §6's `register_host_fn` embedding hook installs.
type HostFn func(args []value.Value) (value.Value, error)

// Function is a callable heap object. Exactly one of Body or Host is
// set: a user-defined function carries its parameter names, its body,
// and — critically — the *env.Environment active where it was declared,
// captured by reference so later mutations to that scope are visible
// inside the closure (spec.md §9 closure-capture resolution); a host
// function wraps a Go closure instead and has no Lua body at all.
type Function struct {
	Name    string
	Params  []string
	Body    ast.Node
	Closure *env.Environment
	Host    HostFn
}

// NewUserFunction builds a closure over the environment active at its
// declaration site.
func NewUserFunction(name string, params []string, body ast.Node, closure *env.Environment) *Function {
	return &Function{Name: name, Params: params, Body: body, Closure: closure}
}

// NewHostFunction wraps a Go function as a callable value.
func NewHostFunction(name string, fn HostFn) *Function {
	return &Function{Name: name, Host: fn}
}

func (f *Function) typeName() string { return "function" }

// IsHost reports whether this Function dispatches to Go rather than
// evaluating a body.
func (f *Function) IsHost() bool { return f.Host != nil }

// Children reports every HeapRef reachable through the function's
// captured environment, so a closure keeps the tables/functions it
// references alive, and a cycle through a closure's own captured scope
// is still collectible once nothing external points to the function
// (spec.md §8 scenario: closures participating in cycle collection).
func (f *Function) Children() []value.HeapRef {
	if f.Closure == nil {
		return nil
	}
	return f.Closure.Roots()
}
