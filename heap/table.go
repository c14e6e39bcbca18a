package heap

import "github.com/Anzlc/lua-like-script/value"

type mapSlot struct {
	key value.Value
	val value.Value
}

// Table fuses an array part and a map part into one value, mirroring
// spec.md §3's table shape. Integer keys that sit in (or immediately
// extend) the contiguous array part take the array fast path; every
// other key — non-sequential ints, strings, bools, floats — falls back
// to the hash part. A HeapRef key is not Hashable and is silently
// dropped at construction time (spec.md §3), since tables must not need
// to consult the GC to compare their own keys.
type Table struct {
	array []value.Value
	hash  map[value.HashKey]mapSlot
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{hash: make(map[value.HashKey]mapSlot)}
}

func (t *Table) typeName() string { return "table" }

// Children reports every HeapRef this table currently stores, across
// both the array and map parts, for the GC mark phase.
func (t *Table) Children() []value.HeapRef {
	var refs []value.HeapRef
	for _, v := range t.array {
		if v.IsHeapRef() {
			refs = append(refs, v.Ref)
		}
	}
	for _, slot := range t.hash {
		if slot.key.IsHeapRef() {
			refs = append(refs, slot.key.Ref)
		}
		if slot.val.IsHeapRef() {
			refs = append(refs, slot.val.Ref)
		}
	}
	return refs
}

// Index returns the value at key, or value.Nil if the key has never been
// set — indexing never errors (spec.md §4.3's table-index-fallback
// behavior).
func (t *Table) Index(key value.Value) value.Value {
	if key.Kind == value.KindInt {
		i := key.I
		if i >= 0 && i < int64(len(t.array)) {
			return t.array[i]
		}
	}
	if !key.Hashable() {
		return value.Nil
	}
	slot, ok := t.hash[key.Key()]
	if !ok {
		return value.Nil
	}
	return slot.val
}

// SetIndex stores val at key. An integer key equal to len(array) appends
// to the array part (keeping it contiguous); any other integer key, or a
// non-integer key, goes to the hash part. Setting a HeapRef key is a
// silent no-op (unhashable keys never get stored, spec.md §3).
func (t *Table) SetIndex(key, val value.Value) {
	if key.Kind == value.KindInt {
		i := key.I
		switch {
		case i >= 0 && i < int64(len(t.array)):
			t.array[i] = val
			return
		case i == int64(len(t.array)):
			t.array = append(t.array, val)
			return
		}
	}
	if !key.Hashable() {
		return
	}
	t.hash[key.Key()] = mapSlot{key: key, val: val}
}

// Len reports the array part's length, matching the `#` length operator
// (spec.md §4.4) over the contiguous portion of the table.
func (t *Table) Len() int64 { return int64(len(t.array)) }

// Entries returns every (key, value) pair currently stored, array part
// first (with synthesized integer keys) then hash part, for use by the
// generic `for` loop and table-to-string conversion.
func (t *Table) Entries() []struct {
	Key value.Value
	Val value.Value
} {
	out := make([]struct {
		Key value.Value
		Val value.Value
	}, 0, len(t.array)+len(t.hash))
	for i, v := range t.array {
		out = append(out, struct {
			Key value.Value
			Val value.Value
		}{Key: value.Int(int64(i)), Val: v})
	}
	for _, slot := range t.hash {
		out = append(out, struct {
			Key value.Value
			Val value.Value
		}{Key: slot.key, Val: slot.val})
	}
	return out
}
