package host

import (
	"fmt"
	"strings"

	"github.com/Anzlc/lua-like-script/value"
)

// registerStdlib installs the only two host functions spec.md's core
// keeps in scope — everything else (string/math/IO/JSON/...) belongs to
// an embedder's own richer standard library, deliberately out of scope
// here (spec.md §1).
func registerStdlib(s *Session) {
	s.ev.RegisterHostFn("print", func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = s.ev.Stringify(a)
		}
		fmt.Fprintln(s.writer, strings.Join(parts, " "))
		return value.Nil, nil
	})

	s.ev.RegisterHostFn("input", func(args []value.Value) (value.Value, error) {
		if len(args) > 0 {
			fmt.Fprint(s.writer, s.ev.Stringify(args[0]))
		}
		line, err := s.reader.ReadString('\n')
		if err != nil && line == "" {
			return value.Nil, nil
		}
		return value.String(strings.TrimRight(line, "\r\n")), nil
	})
}
