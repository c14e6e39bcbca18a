// Package heap implements the garbage-collected object store: tables,
// iterables, and function closures live here behind opaque Handle
// references rather than native Go pointers, so the evaluator never holds
// a live pointer into a collectable generation across a GC pass
// (spec.md §3, §4.5).
package heap

import "github.com/Anzlc/lua-like-script/value"

// Object is implemented by every heap-resident type. Children reports the
// HeapRefs this object directly holds, which is all the mark phase needs
// — it never introspects a payload's full value shape, only its
// declared child list (spec.md §4.5: "children lists, not deep payload
// introspection", chosen for cycle safety).
type Object interface {
	Children() []value.HeapRef
	typeName() string
}

type entry struct {
	obj    Object
	marked bool
}

// Heap is the mark-sweep store. Handles are uint32s minted by an
// incrementing counter, not derived from memory addresses or randomness;
// Allocate skips any handle still in use, so two live handles can never
// collide, even after the counter wraps (spec.md §9's heap handle Open
// Question, resolved against the collision-prone random-id alternative).
type Heap struct {
	objects map[value.HeapRef]*entry
	next    uint32
}

// New creates an empty heap.
func New() *Heap {
	return &Heap{objects: make(map[value.HeapRef]*entry)}
}

// Allocate stores obj and returns its new handle.
func (h *Heap) Allocate(obj Object) value.HeapRef {
	for {
		h.next++
		ref := value.HeapRef(h.next)
		if _, taken := h.objects[ref]; !taken {
			h.objects[ref] = &entry{obj: obj}
			return ref
		}
	}
}

// Get dereferences a handle. ok is false for a stale or invalid handle
// (should not happen in a correctly rooted program, but callers should
// still check rather than assume).
func (h *Heap) Get(ref value.HeapRef) (Object, bool) {
	e, ok := h.objects[ref]
	if !ok {
		return nil, false
	}
	return e.obj, true
}

// Len reports the number of live objects currently on the heap.
func (h *Heap) Len() int { return len(h.objects) }

// Collect runs one full mark-sweep pass: mark reachable from roots
// (depth-first over each object's own Children(), per spec.md §4.5),
// then sweep every unmarked object and clear marks on survivors so the
// next pass starts clean. It returns the number of objects freed.
func (h *Heap) Collect(roots []value.HeapRef) int {
	for _, r := range roots {
		h.mark(r)
	}
	freed := 0
	for ref, e := range h.objects {
		if !e.marked {
			delete(h.objects, ref)
			freed++
		} else {
			e.marked = false
		}
	}
	return freed
}

func (h *Heap) mark(ref value.HeapRef) {
	e, ok := h.objects[ref]
	if !ok || e.marked {
		return
	}
	e.marked = true
	for _, child := range e.obj.Children() {
		h.mark(child)
	}
}
