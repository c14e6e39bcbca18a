package value

import "fmt"

// TypeError reports an operator applied to operand types it does not
// support (spec.md §7, category 3: Type error).
type TypeError struct {
	Op    string
	Types []string
}

func (e *TypeError) Error() string {
	switch len(e.Types) {
	case 1:
		return fmt.Sprintf("type error: %s does not support operand of type %s", e.Op, e.Types[0])
	case 2:
		return fmt.Sprintf("type error: %s does not support operands of type %s and %s", e.Op, e.Types[0], e.Types[1])
	default:
		return fmt.Sprintf("type error: %s: incompatible operand types", e.Op)
	}
}

func typeErr1(op string, a Value) error {
	return &TypeError{Op: op, Types: []string{a.TypeName()}}
}

func typeErr2(op string, a, b Value) error {
	return &TypeError{Op: op, Types: []string{a.TypeName(), b.TypeName()}}
}
