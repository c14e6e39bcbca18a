package value

import "math"

// Hashable reports whether v may be used as a table key. Heap-ref values
// are rejected per spec.md §3 ("A HeapRef never appears as a Table key");
// callers that build table constructors skip such entries silently.
func (v Value) Hashable() bool {
	return v.Kind != KindHeapRef
}

// HashKey is a comparable Go value suitable for use as a Go map key,
// standing in for Value when building a Table's map part. Floats hash by
// raw bit pattern (spec.md §3 invariant: 0.0 and -0.0 are distinct keys,
// and only a bit-identical NaN matches another NaN) rather than by IEEE
// equality, which is the documented quirk spec.md §9 calls out.
type HashKey struct {
	Kind Kind
	Bits uint64
	Str  string
}

// Key computes the HashKey for v. The caller must have already confirmed
// v.Hashable().
func (v Value) Key() HashKey {
	switch v.Kind {
	case KindNil:
		return HashKey{Kind: KindNil}
	case KindBool:
		if v.B {
			return HashKey{Kind: KindBool, Bits: 1}
		}
		return HashKey{Kind: KindBool, Bits: 0}
	case KindInt:
		return HashKey{Kind: KindInt, Bits: uint64(v.I)}
	case KindFloat:
		return HashKey{Kind: KindFloat, Bits: math.Float64bits(v.F)}
	case KindString:
		return HashKey{Kind: KindString, Str: v.S}
	default:
		return HashKey{Kind: v.Kind, Str: v.GoString()}
	}
}
