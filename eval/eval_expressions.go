package eval

import (
	"github.com/Anzlc/lua-like-script/ast"
	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/heap"
	"github.com/Anzlc/lua-like-script/value"
)

// evalExpr evaluates an expression node to a runtime value.
func (ev *Evaluator) evalExpr(node ast.Node, e *env.Environment) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return ev.evalLiteral(n, e)
	case *ast.Variable:
		v, ok := e.LookUp(n.Name)
		if !ok {
			return value.Nil, nil
		}
		return v, nil
	case *ast.BinaryOp:
		return ev.evalBinaryOp(n, e)
	case *ast.UnaryOp:
		return ev.evalUnaryOp(n, e)
	case *ast.Index:
		return ev.evalIndexRead(n, e)
	case *ast.FunctionCall:
		return ev.evalFunctionCall(n, e)
	case *ast.FunctionDeclaration:
		fn := ev.makeClosure(n, e)
		ref := ev.Heap.Allocate(fn)
		return value.FromRef(ref), nil
	default:
		return value.Nil, runtimeErr(node.Line(), "node is not a valid expression")
	}
}

func (ev *Evaluator) evalLiteral(n *ast.Literal, e *env.Environment) (value.Value, error) {
	switch n.Value.Kind {
	case ast.LitNil:
		return value.Nil, nil
	case ast.LitBool:
		return value.Bool(n.Value.Bool), nil
	case ast.LitInt:
		return value.Int(n.Value.Int), nil
	case ast.LitFloat:
		return value.Float(n.Value.Float), nil
	case ast.LitString:
		return value.String(n.Value.Str), nil
	case ast.LitTable:
		return ev.evalTableConstructor(n.Value.Table, e)
	default:
		return value.Nil, runtimeErr(n.Line(), "unknown literal kind")
	}
}

// evalTableConstructor evaluates a `{ ... }` expression: the array part
// in position order, then the map part, setting each into a freshly
// allocated heap.Table.
func (ev *Evaluator) evalTableConstructor(tc *ast.TableConstructor, e *env.Environment) (value.Value, error) {
	tbl := heap.NewTable()
	for i, elemNode := range tc.Array {
		v, err := ev.evalExpr(elemNode, e)
		if err != nil {
			return value.Nil, err
		}
		tbl.SetIndex(value.Int(int64(i)), v)
	}
	for _, entry := range tc.Map {
		k, err := ev.evalExpr(entry.Key, e)
		if err != nil {
			return value.Nil, err
		}
		v, err := ev.evalExpr(entry.Value, e)
		if err != nil {
			return value.Nil, err
		}
		tbl.SetIndex(k, v)
	}
	ref := ev.Heap.Allocate(tbl)
	return value.FromRef(ref), nil
}

// evalBinaryOp evaluates a binary expression. `and`/`or` short-circuit
// and return whichever operand value decided the result (Lua-style
// truthy-value logic, not a coerced bool), everything else evaluates
// both sides and dispatches to value's operator functions.
func (ev *Evaluator) evalBinaryOp(n *ast.BinaryOp, e *env.Environment) (value.Value, error) {
	if n.Op == "and" || n.Op == "or" {
		return ev.evalShortCircuit(n, e)
	}

	lhs, err := ev.evalExpr(n.LHS, e)
	if err != nil {
		return value.Nil, err
	}
	rhs, err := ev.evalExpr(n.RHS, e)
	if err != nil {
		return value.Nil, err
	}

	var v value.Value
	switch n.Op {
	case "+":
		v, err = value.Add(lhs, rhs)
	case "-":
		v, err = value.Sub(lhs, rhs)
	case "*":
		v, err = value.Mul(lhs, rhs)
	case "/":
		v, err = value.Div(lhs, rhs)
	case "//":
		v, err = value.IDiv(lhs, rhs)
	case "%":
		v, err = value.Mod(lhs, rhs)
	case "^":
		v, err = value.Pow(lhs, rhs)
	case "..":
		v = value.Concat(lhs, rhs, ev.refString)
	case "==":
		v = value.Bool(value.Eq(lhs, rhs))
	case "~=":
		v = value.Bool(!value.Eq(lhs, rhs))
	case "<", "<=", ">", ">=":
		v, err = ev.evalRelational(n.Op, lhs, rhs)
	case "&":
		v, err = value.BitAnd(lhs, rhs)
	case "|":
		v, err = value.BitOr(lhs, rhs)
	case "^^":
		v, err = value.BitXor(lhs, rhs)
	case "<<":
		v, err = value.Shl(lhs, rhs)
	case ">>":
		v, err = value.Shr(lhs, rhs)
	default:
		return value.Nil, runtimeErr(n.Line(), "unknown binary operator %q", n.Op)
	}
	if err != nil {
		return value.Nil, runtimeErr(n.Line(), "%s", err.Error())
	}
	return v, nil
}

func (ev *Evaluator) evalRelational(op string, lhs, rhs value.Value) (value.Value, error) {
	cmp, err := value.Compare(lhs, rhs)
	if err != nil {
		return value.Nil, err
	}
	switch op {
	case "<":
		return value.Bool(cmp < 0), nil
	case "<=":
		return value.Bool(cmp <= 0), nil
	case ">":
		return value.Bool(cmp > 0), nil
	default: // ">="
		return value.Bool(cmp >= 0), nil
	}
}

func (ev *Evaluator) evalShortCircuit(n *ast.BinaryOp, e *env.Environment) (value.Value, error) {
	lhs, err := ev.evalExpr(n.LHS, e)
	if err != nil {
		return value.Nil, err
	}
	if n.Op == "and" && !lhs.IsTruthy() {
		return lhs, nil
	}
	if n.Op == "or" && lhs.IsTruthy() {
		return lhs, nil
	}
	return ev.evalExpr(n.RHS, e)
}

func (ev *Evaluator) evalUnaryOp(n *ast.UnaryOp, e *env.Environment) (value.Value, error) {
	v, err := ev.evalExpr(n.Value, e)
	if err != nil {
		return value.Nil, err
	}
	switch n.Op {
	case "not":
		return value.Not(v), nil
	case "-":
		out, err := value.Neg(v)
		if err != nil {
			return value.Nil, runtimeErr(n.Line(), "%s", err.Error())
		}
		return out, nil
	case "~":
		out, err := value.BitNot(v)
		if err != nil {
			return value.Nil, runtimeErr(n.Line(), "%s", err.Error())
		}
		return out, nil
	case "#":
		return ev.evalLength(v, n.Line())
	default:
		return value.Nil, runtimeErr(n.Line(), "unknown unary operator %q", n.Op)
	}
}

// evalLength implements `#v`: string byte length, or a table's array
// length (spec.md §4.4).
func (ev *Evaluator) evalLength(v value.Value, line int) (value.Value, error) {
	if v.Kind == value.KindString {
		return value.StringLen(v)
	}
	if v.IsHeapRef() {
		obj, ok := ev.Heap.Get(v.Ref)
		if ok {
			if tbl, ok := obj.(*heap.Table); ok {
				return value.Int(tbl.Len()), nil
			}
		}
	}
	return value.Nil, runtimeErr(line, "attempt to get length of a %s value", v.TypeName())
}
