// Package value defines the runtime value representation shared by the
// environment, heap, and evaluator packages.
//
// A Value is a small tagged union: scalars (nil, bool, int, float, string)
// are stored inline, and every heap-allocated datum (table, iterable,
// function) is represented by an opaque HeapRef handle into the heap
// package's object table. Scalars never box.
package value

import "fmt"

// Kind identifies which arm of the Value union is populated.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindHeapRef
)

// String returns the type-tag name used in error messages (spec.md §6:
// "textual message naming the operation and operand type tags").
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindHeapRef:
		return "ref"
	default:
		return "invalid"
	}
}

// HeapRef is an opaque handle into the GC heap. It is minted by the heap
// package and never interpreted by this package.
type HeapRef uint32

// Value is the runtime datum produced by evaluating an expression.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	S    string
	Ref  HeapRef
}

// Nil is the singleton nil value.
var Nil = Value{Kind: KindNil}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Int constructs an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, I: i} }

// Float constructs a floating-point value.
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }

// String constructs a string value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// FromRef constructs a value wrapping a heap handle.
func FromRef(r HeapRef) Value { return Value{Kind: KindHeapRef, Ref: r} }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.Kind == KindNil }

// IsHeapRef reports whether v refers to a heap object.
func (v Value) IsHeapRef() bool { return v.Kind == KindHeapRef }

// IsNumber reports whether v is an int or a float.
func (v Value) IsNumber() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// TypeName returns the operand type tag used in diagnostics.
func (v Value) TypeName() string { return v.Kind.String() }

// IsTruthy implements the language's truthiness rule: nil and false are
// falsy, everything else (including 0, 0.0, and "") is truthy.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.B
	default:
		return true
	}
}

// AsFloat returns v's numeric value widened to float64. It does not check
// the kind: for a non-number it returns the F field (0 unless v is a
// float), so callers must check IsNumber first.
func (v Value) AsFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.I)
	}
	return v.F
}

// GoString renders a debug form used by %#v style diagnostics and internal
// error construction; it never stringifies a heap object's contents
// (that requires heap access, so callers use eval.Evaluator.Stringify for refs).
func (v Value) GoString() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("%t", v.B)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return fmt.Sprintf("%g", v.F)
	case KindString:
		return fmt.Sprintf("%q", v.S)
	case KindHeapRef:
		return fmt.Sprintf("ref(%d)", v.Ref)
	default:
		return "<invalid>"
	}
}
