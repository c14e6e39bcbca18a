package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anzlc/lua-like-script/env"
	"github.com/Anzlc/lua-like-script/value"
)

func TestTableArrayFastPathAndAppend(t *testing.T) {
	tbl := NewTable()
	tbl.SetIndex(value.Int(0), value.String("a"))
	tbl.SetIndex(value.Int(1), value.String("b"))
	assert.Equal(t, int64(2), tbl.Len())
	assert.Equal(t, "a", tbl.Index(value.Int(0)).S)
	assert.Equal(t, "b", tbl.Index(value.Int(1)).S)
}

func TestTableMissingKeyReturnsNil(t *testing.T) {
	tbl := NewTable()
	v := tbl.Index(value.String("missing"))
	assert.True(t, v.IsNil())
}

func TestTableSparseIntFallsBackToMap(t *testing.T) {
	tbl := NewTable()
	tbl.SetIndex(value.Int(100), value.String("far"))
	assert.Equal(t, int64(0), tbl.Len())
	assert.Equal(t, "far", tbl.Index(value.Int(100)).S)
}

func TestTableHeapRefKeySilentlyDropped(t *testing.T) {
	tbl := NewTable()
	tbl.SetIndex(value.FromRef(value.HeapRef(1)), value.String("x"))
	assert.Equal(t, int64(0), tbl.Len())
}

func TestIterableYieldsInOrder(t *testing.T) {
	it := NewIterable([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	var got []int64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v.I)
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestHeapAllocateAndGet(t *testing.T) {
	h := New()
	ref := h.Allocate(NewTable())
	obj, ok := h.Get(ref)
	require.True(t, ok)
	_, isTable := obj.(*Table)
	assert.True(t, isTable)
}

func TestHeapCollectSweepsUnreachable(t *testing.T) {
	h := New()
	root := h.Allocate(NewTable())
	garbage := h.Allocate(NewTable())
	_ = garbage

	freed := h.Collect([]value.HeapRef{root})
	assert.Equal(t, 1, freed)
	assert.Equal(t, 1, h.Len())
}

func TestHeapCollectsCycleWithNoExternalRoot(t *testing.T) {
	h := New()
	aRef := h.Allocate(NewTable())
	bRef := h.Allocate(NewTable())

	a, _ := h.Get(aRef)
	b, _ := h.Get(bRef)
	a.(*Table).SetIndex(value.String("next"), value.FromRef(bRef))
	b.(*Table).SetIndex(value.String("next"), value.FromRef(aRef))

	freed := h.Collect(nil)
	assert.Equal(t, 2, freed)
	assert.Equal(t, 0, h.Len())
}

func TestHeapKeepsCycleReachableFromRoot(t *testing.T) {
	h := New()
	aRef := h.Allocate(NewTable())
	bRef := h.Allocate(NewTable())

	a, _ := h.Get(aRef)
	b, _ := h.Get(bRef)
	a.(*Table).SetIndex(value.String("next"), value.FromRef(bRef))
	b.(*Table).SetIndex(value.String("next"), value.FromRef(aRef))

	freed := h.Collect([]value.HeapRef{aRef})
	assert.Equal(t, 0, freed)
	assert.Equal(t, 2, h.Len())
}

func TestHeapHandlesAreMonotonicNotRandom(t *testing.T) {
	h := New()
	r1 := h.Allocate(NewTable())
	r2 := h.Allocate(NewTable())
	assert.Less(t, uint32(r1), uint32(r2))
}

func TestFunctionChildrenFromClosure(t *testing.T) {
	h := New()
	tblRef := h.Allocate(NewTable())
	fn := &Function{Params: nil}
	assert.Empty(t, fn.Children())

	closure := env.New()
	closure.Bind("t", value.FromRef(tblRef))
	fn.Closure = closure
	assert.Equal(t, []value.HeapRef{tblRef}, fn.Children())
}
