// Package repl implements an interactive line-editing shell over a
// host.Session, using readline for history/editing and color for
// diagnostics — the same combination the teacher's own REPL used.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/Anzlc/lua-like-script/host"
)

var (
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
)

const banner = "luma — a small Lua-like scripting language\ntype .exit to quit, .globals to list bindings\n"

// REPL drives one interactive session: a persistent host.Session (so
// variables survive across lines) plus a readline.Instance for input.
type REPL struct {
	session *host.Session
	rl      *readline.Instance
	Writer  io.Writer
}

// New builds a REPL that prompts with "luma> " and writes results to w.
func New(w io.Writer) (*REPL, error) {
	rl, err := readline.New("luma> ")
	if err != nil {
		return nil, err
	}
	s := host.NewInterpreter()
	s.SetWriter(w)
	return &REPL{session: s, rl: rl, Writer: w}, nil
}

// Run reads lines until EOF or `.exit`, evaluating each against the
// shared session and printing errors in red.
func (r *REPL) Run() error {
	greenColor.Fprint(r.Writer, banner)
	defer r.rl.Close()

	for {
		line, err := r.rl.Readline()
		if err != nil {
			// EOF (Ctrl+D) or interrupt: leave the loop like the teacher's
			// REPL does, rather than treating it as a hard failure.
			io.WriteString(r.Writer, "Good bye!\n")
			return nil
		}

		line = strings.Trim(line, " \t\r\n")
		if line == "" {
			continue
		}
		if line == ".exit" || line == ".quit" {
			io.WriteString(r.Writer, "Good bye!\n")
			return nil
		}
		if line == ".globals" {
			r.session.PrintGlobals()
			continue
		}

		r.rl.SaveHistory(line)

		if err := r.session.Run(line); err != nil {
			redColor.Fprintf(r.Writer, "error: %s\n", err.Error())
		}
	}
}
