package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stringify renders v for `..` concatenation and for `print`/`tostring`
// style display. refStr is consulted for heap-ref values (a table,
// iterable, or function, whose textual form requires heap access); pass
// nil to render refs as "<ref(N)>" instead of panicking.
func Stringify(v Value, refStr func(HeapRef) string) string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindFloat:
		return formatFloat(v.F)
	case KindString:
		return v.S
	case KindHeapRef:
		if refStr != nil {
			return refStr(v.Ref)
		}
		return fmt.Sprintf("<ref(%d)>", v.Ref)
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// numericOperand reports whether v participates in arithmetic as a number,
// treating Bool as 0/1 per spec.md §4.4, and returns its int/float form.
func numericOperand(v Value) (ok, isInt bool, i int64, f float64) {
	switch v.Kind {
	case KindInt:
		return true, true, v.I, 0
	case KindFloat:
		return true, false, 0, v.F
	case KindBool:
		if v.B {
			return true, true, 1, 0
		}
		return true, true, 0, 0
	default:
		return false, false, 0, 0
	}
}

func asFloat(isInt bool, i int64, f float64) float64 {
	if isInt {
		return float64(i)
	}
	return f
}

// Add implements `+`: numeric addition (int if both int, else float), bool
// coerced to 0/1, Nil annihilates to Nil, and String+String concatenates
// (spec.md §4.4's documented "bug-compatible" overload of +).
func Add(a, b Value) (Value, error) {
	if a.Kind == KindNil || b.Kind == KindNil {
		return Nil, nil
	}
	if a.Kind == KindString && b.Kind == KindString {
		return String(a.S + b.S), nil
	}
	aok, aInt, ai, af := numericOperand(a)
	bok, bInt, bi, bf := numericOperand(b)
	if aok && bok {
		if aInt && bInt {
			return Int(ai + bi), nil
		}
		return Float(asFloat(aInt, ai, af) + asFloat(bInt, bi, bf)), nil
	}
	return Value{}, typeErr2("+", a, b)
}

// Sub implements `-`.
func Sub(a, b Value) (Value, error) {
	if a.Kind == KindNil || b.Kind == KindNil {
		return Nil, nil
	}
	aok, aInt, ai, af := numericOperand(a)
	bok, bInt, bi, bf := numericOperand(b)
	if aok && bok {
		if aInt && bInt {
			return Int(ai - bi), nil
		}
		return Float(asFloat(aInt, ai, af) - asFloat(bInt, bi, bf)), nil
	}
	return Value{}, typeErr2("-", a, b)
}

// Mul implements `*`: numeric multiplication, plus Number*String and
// String*Number string-repetition (spec.md §4.4).
func Mul(a, b Value) (Value, error) {
	if a.Kind == KindNil || b.Kind == KindNil {
		return Nil, nil
	}
	if a.Kind == KindString {
		if ok, isInt, i, f := numericOperand(b); ok {
			return repeatString(a.S, repeatCount(isInt, i, f))
		}
	}
	if b.Kind == KindString {
		if ok, isInt, i, f := numericOperand(a); ok {
			return repeatString(b.S, repeatCount(isInt, i, f))
		}
	}
	aok, aInt, ai, af := numericOperand(a)
	bok, bInt, bi, bf := numericOperand(b)
	if aok && bok {
		if aInt && bInt {
			return Int(ai * bi), nil
		}
		return Float(asFloat(aInt, ai, af) * asFloat(bInt, bi, bf)), nil
	}
	return Value{}, typeErr2("*", a, b)
}

func repeatCount(isInt bool, i int64, f float64) int64 {
	if isInt {
		return i
	}
	return int64(f)
}

func repeatString(s string, n int64) (Value, error) {
	if n <= 0 {
		return String(""), nil
	}
	return String(strings.Repeat(s, int(n))), nil
}

// Div implements `/`: always produces a float.
func Div(a, b Value) (Value, error) {
	aok, aInt, ai, af := numericOperand(a)
	bok, bInt, bi, bf := numericOperand(b)
	if !aok || !bok {
		return Value{}, typeErr2("/", a, b)
	}
	return Float(asFloat(aInt, ai, af) / asFloat(bInt, bi, bf)), nil
}

// IDiv implements `//`: strict int-by-int truncated division.
func IDiv(a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Value{}, typeErr2("//", a, b)
	}
	if b.I == 0 {
		return Value{}, fmt.Errorf("runtime error: integer division by zero")
	}
	return Int(a.I / b.I), nil
}

// Mod implements `%`: strict int-by-int remainder.
func Mod(a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Value{}, typeErr2("%", a, b)
	}
	if b.I == 0 {
		return Value{}, fmt.Errorf("runtime error: modulo by zero")
	}
	return Int(a.I % b.I), nil
}

// Pow implements `^`: int^int (exponent >= 0) stays int, everything else
// (negative integer exponent or any float operand) promotes to float.
func Pow(a, b Value) (Value, error) {
	aok, aInt, ai, af := numericOperand(a)
	bok, bInt, bi, bf := numericOperand(b)
	if !aok || !bok {
		return Value{}, typeErr2("^", a, b)
	}
	if aInt && bInt && bi >= 0 {
		return Int(intPow(ai, bi)), nil
	}
	return Float(math.Pow(asFloat(aInt, ai, af), asFloat(bInt, bi, bf))), nil
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// Concat implements `..`: stringify both operands and join them.
func Concat(a, b Value, refStr func(HeapRef) string) Value {
	return String(Stringify(a, refStr) + Stringify(b, refStr))
}

// Eq implements `==`/`~=`. Operands compare equal only within the same
// tag-group (numeric, bool, string, nil, heap-ref); numeric comparison
// promotes int/float like the relational operators. Cross-group operands
// are never equal.
func Eq(a, b Value) bool {
	an, _, ai, af := numericOperand(a)
	bn, _, bi, bf := numericOperand(b)
	if an && bn && a.Kind != KindBool && b.Kind != KindBool {
		return numEqual(a, ai, af) == numEqual(b, bi, bf)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.B == b.B
	case KindString:
		return a.S == b.S
	case KindHeapRef:
		return a.Ref == b.Ref
	default:
		return false
	}
}

func numEqual(v Value, i int64, f float64) float64 {
	if v.Kind == KindInt {
		return float64(i)
	}
	return f
}

// Compare implements `<`, `<=`, `>`, `>=`: numeric-only, promoting to
// float whenever either operand is a float.
func Compare(a, b Value) (int, error) {
	aok, aInt, ai, af := numericOperand(a)
	bok, bInt, bi, bf := numericOperand(b)
	if !aok || !bok || a.Kind == KindBool || b.Kind == KindBool {
		return 0, typeErr2("compare", a, b)
	}
	if aInt && bInt {
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		default:
			return 0, nil
		}
	}
	af2, bf2 := asFloat(aInt, ai, af), asFloat(bInt, bi, bf)
	switch {
	case af2 < bf2:
		return -1, nil
	case af2 > bf2:
		return 1, nil
	default:
		return 0, nil
	}
}

func asInt(v Value, op string) (int64, error) {
	if v.Kind != KindInt {
		return 0, typeErr1(op, v)
	}
	return v.I, nil
}

// BitAnd implements `&`.
func BitAnd(a, b Value) (Value, error) {
	x, err := asInt(a, "&")
	if err != nil {
		return Value{}, err
	}
	y, err := asInt(b, "&")
	if err != nil {
		return Value{}, err
	}
	return Int(x & y), nil
}

// BitOr implements `|`.
func BitOr(a, b Value) (Value, error) {
	x, err := asInt(a, "|")
	if err != nil {
		return Value{}, err
	}
	y, err := asInt(b, "|")
	if err != nil {
		return Value{}, err
	}
	return Int(x | y), nil
}

// BitXor implements `^^`.
func BitXor(a, b Value) (Value, error) {
	x, err := asInt(a, "^^")
	if err != nil {
		return Value{}, err
	}
	y, err := asInt(b, "^^")
	if err != nil {
		return Value{}, err
	}
	return Int(x ^ y), nil
}

// Shl implements `<<`.
func Shl(a, b Value) (Value, error) {
	x, err := asInt(a, "<<")
	if err != nil {
		return Value{}, err
	}
	y, err := asInt(b, "<<")
	if err != nil {
		return Value{}, err
	}
	return Int(x << uint(y)), nil
}

// Shr implements `>>`.
func Shr(a, b Value) (Value, error) {
	x, err := asInt(a, ">>")
	if err != nil {
		return Value{}, err
	}
	y, err := asInt(b, ">>")
	if err != nil {
		return Value{}, err
	}
	return Int(x >> uint(y)), nil
}

// Neg implements unary `-`.
func Neg(a Value) (Value, error) {
	ok, isInt, i, f := numericOperand(a)
	if !ok || a.Kind == KindBool {
		return Value{}, typeErr1("-", a)
	}
	if isInt {
		return Int(-i), nil
	}
	return Float(-f), nil
}

// BitNot implements unary `~`.
func BitNot(a Value) (Value, error) {
	x, err := asInt(a, "~")
	if err != nil {
		return Value{}, err
	}
	return Int(^x), nil
}

// Not implements unary `not`: negates truthiness, always succeeds.
func Not(a Value) Value {
	return Bool(!a.IsTruthy())
}

// StringLen implements unary `#` on a string operand (byte length). Table
// length is computed by the heap package, which owns the array part.
func StringLen(a Value) (Value, error) {
	if a.Kind != KindString {
		return Value{}, typeErr1("#", a)
	}
	return Int(int64(len(a.S))), nil
}
