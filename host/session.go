// Package host is the embedding shim spec.md §6 names as an external
// collaborator: it wires a lexer/parser/eval pipeline behind a small
// Session API so a CLI, REPL, or another Go program can run scripts and
// register its own builtins without touching the evaluator directly.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/eval"
	"github.com/Anzlc/lua-like-script/lexer"
	"github.com/Anzlc/lua-like-script/parser"
	"github.com/Anzlc/lua-like-script/value"
)

// RuntimeError is the host-facing wrapper around an evaluator failure.
type RuntimeError struct{ inner error }

func (e *RuntimeError) Error() string { return e.inner.Error() }
func (e *RuntimeError) Unwrap() error { return e.inner }

// SyntaxError is the host-facing wrapper around every accumulated parse
// failure in a source file.
type SyntaxError struct{ Errors []error }

func (e *SyntaxError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d syntax errors, first: %s", len(e.Errors), e.Errors[0])
}

// Session is the embedding API: construct one with NewInterpreter,
// register any host functions beyond print/input, then Run source text
// against it repeatedly (each Run shares the same global frame and heap,
// which is what makes a REPL's variables persist across lines).
type Session struct {
	ev     *eval.Evaluator
	writer io.Writer
	reader *bufio.Reader
}

// NewInterpreter builds a Session with print/input already registered
// against stdout/stdin.
func NewInterpreter() *Session {
	s := &Session{
		ev:     eval.New(),
		writer: os.Stdout,
		reader: bufio.NewReader(os.Stdin),
	}
	registerStdlib(s)
	return s
}

// SetWriter redirects print's output (and anything else writing through
// the session), used by tests and embedders that want to capture output.
func (s *Session) SetWriter(w io.Writer) { s.writer = w }

// SetReader redirects input's source.
func (s *Session) SetReader(r io.Reader) { s.reader = bufio.NewReader(r) }

// RegisterHostFn installs a Go-implemented function, callable from script
// under name, per spec.md §6's embedding contract.
func (s *Session) RegisterHostFn(name string, fn func(args []value.Value) (value.Value, error)) {
	s.ev.RegisterHostFn(name, fn)
}

// Parse lexes and parses src, returning the AST or a SyntaxError
// aggregating every recoverable parse failure.
func (s *Session) Parse(src string) (*ast.Program, error) {
	toks := lexer.New(src).Lex()
	p := parser.New(toks)
	prog := p.Parse()
	if p.HasErrors() {
		return nil, &SyntaxError{Errors: p.Errors()}
	}
	return prog, nil
}

// Run parses and evaluates src against this session's persistent global
// frame and heap.
func (s *Session) Run(src string) error {
	prog, err := s.Parse(src)
	if err != nil {
		return err
	}
	if err := s.ev.Run(prog); err != nil {
		return &RuntimeError{inner: err}
	}
	return nil
}

// Get looks up a global binding by name, for embedders that want a
// script's result without round-tripping through print.
func (s *Session) Get(name string) (value.Value, bool) {
	return s.ev.Global.LookUp(name)
}

// PrintGlobals writes every top-level binding's name and stringified
// value to the session's writer, one per line — useful for REPL
// introspection and debugging embedded scripts.
func (s *Session) PrintGlobals() {
	for name, v := range s.ev.Global.All() {
		fmt.Fprintf(s.writer, "%s = %s\n", name, s.ev.Stringify(v))
	}
}
