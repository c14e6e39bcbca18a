package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anzlc/lua-like-script/value"
)

func TestBindAndLookUpSameFrame(t *testing.T) {
	e := New()
	e.Bind("x", value.Int(5))
	v, ok := e.LookUp("x")
	assert.True(t, ok)
	assert.Equal(t, int64(5), v.I)
}

func TestLookUpWalksToParent(t *testing.T) {
	parent := New()
	parent.Bind("x", value.Int(1))
	child := parent.Child()
	v, ok := child.LookUp("x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.I)
}

func TestBindShadowsParent(t *testing.T) {
	parent := New()
	parent.Bind("x", value.Int(1))
	child := parent.Child()
	child.Bind("x", value.Int(2))

	childVal, _ := child.LookUp("x")
	parentVal, _ := parent.LookUp("x")
	assert.Equal(t, int64(2), childVal.I)
	assert.Equal(t, int64(1), parentVal.I)
}

func TestAssignUpdatesExistingOuterBinding(t *testing.T) {
	parent := New()
	parent.Bind("x", value.Int(1))
	child := parent.Child()
	child.Assign("x", value.Int(9))

	v, _ := parent.LookUp("x")
	assert.Equal(t, int64(9), v.I)
	_, foundInChild := child.vars["x"]
	assert.False(t, foundInChild)
}

func TestAssignWithNoExistingBindingCreatesGlobal(t *testing.T) {
	parent := New()
	child := parent.Child()
	child.Assign("y", value.Int(7))

	_, foundInChild := child.vars["y"]
	assert.False(t, foundInChild)
	v, ok := parent.LookUp("y")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v.I)
}

func TestLookUpMissingReturnsFalse(t *testing.T) {
	e := New()
	_, ok := e.LookUp("nope")
	assert.False(t, ok)
}

func TestRootsCollectsHeapRefsAcrossChain(t *testing.T) {
	parent := New()
	parent.Bind("a", value.FromRef(value.HeapRef(1)))
	child := parent.Child()
	child.Bind("b", value.FromRef(value.HeapRef(2)))
	child.Bind("c", value.Int(3))

	roots := child.Roots()
	assert.ElementsMatch(t, []value.HeapRef{1, 2}, roots)
}
