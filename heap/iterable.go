package heap

import "github.com/Anzlc/lua-like-script/value"

// Iterable is the hidden cursor object a generic `for` loop drives: it
// holds a reversed snapshot of the values to yield (so Next can pop off
// the end in O(1)) and is consumed exactly once. It is not indexable —
// unlike Table, nothing can look a value up in it by key (spec.md §4.2.4:
// generic `for` iterates tables and strings via a purpose-built cursor,
// not by exposing a general index operator).
type Iterable struct {
	remaining []value.Value // stored reversed; Next pops from the end
}

// NewIterable snapshots items into a fresh Iterable, reversing them up
// front so Next is a plain slice-pop.
func NewIterable(items []value.Value) *Iterable {
	reversed := make([]value.Value, len(items))
	for i, v := range items {
		reversed[len(items)-1-i] = v
	}
	return &Iterable{remaining: reversed}
}

func (it *Iterable) typeName() string { return "iterable" }

// Children reports the HeapRefs among the values not yet yielded.
func (it *Iterable) Children() []value.HeapRef {
	var refs []value.HeapRef
	for _, v := range it.remaining {
		if v.IsHeapRef() {
			refs = append(refs, v.Ref)
		}
	}
	return refs
}

// Next pops and returns the next value, or ok=false once exhausted.
func (it *Iterable) Next() (value.Value, bool) {
	if len(it.remaining) == 0 {
		return value.Nil, false
	}
	last := len(it.remaining) - 1
	v := it.remaining[last]
	it.remaining = it.remaining[:last]
	return v, true
}
