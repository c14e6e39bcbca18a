package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anzlc/lua-like-script/heap"
	"github.com/Anzlc/lua-like-script/lexer"
	"github.com/Anzlc/lua-like-script/parser"
	"github.com/Anzlc/lua-like-script/value"
)

func run(t *testing.T, src string) *Evaluator {
	t.Helper()
	toks := lexer.New(src).Lex()
	p := parser.New(toks)
	prog := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())
	ev := New()
	err := ev.Run(prog)
	require.NoError(t, err)
	return ev
}

func global(t *testing.T, ev *Evaluator, name string) value.Value {
	t.Helper()
	v, ok := ev.Global.LookUp(name)
	require.True(t, ok, "global %q was never bound", name)
	return v
}

func TestArithmeticPrecedenceEndToEnd(t *testing.T) {
	ev := run(t, "x = 1 + 2 * 3")
	assert.Equal(t, int64(7), global(t, ev, "x").I)
}

func TestAddAssociativityLaw(t *testing.T) {
	ev := run(t, "a = (1 + 2) + 3\nb = 1 + (2 + 3)")
	assert.Equal(t, global(t, ev, "a").I, global(t, ev, "b").I)
}

func TestPowRightAssociativeEndToEnd(t *testing.T) {
	ev := run(t, "x = 2 ^ 3 ^ 2")
	assert.Equal(t, int64(512), global(t, ev, "x").I)
}

func TestNotNotIsTruthinessLaw(t *testing.T) {
	ev := run(t, "a = not not 5\nb = not not nil")
	assert.Equal(t, true, global(t, ev, "a").B)
	assert.Equal(t, false, global(t, ev, "b").B)
}

func TestTableArrayAndMapConstructor(t *testing.T) {
	ev := run(t, `t = {10, 20, name = "x"}
a0 = t[0]
a1 = t[1]
n = t.name
len = #t`)
	assert.Equal(t, int64(10), global(t, ev, "a0").I)
	assert.Equal(t, int64(20), global(t, ev, "a1").I)
	assert.Equal(t, "x", global(t, ev, "n").S)
	assert.Equal(t, int64(2), global(t, ev, "len").I)
}

func TestGenericForOverString(t *testing.T) {
	ev := run(t, `
count = 0
for c in "abc" do
  count = count + 1
end`)
	assert.Equal(t, int64(3), global(t, ev, "count").I)
}

func TestNumericForHalfOpenRange(t *testing.T) {
	ev := run(t, `
sum = 0
for i in 1, 5 do
  sum = sum + i
end`)
	assert.Equal(t, int64(10), global(t, ev, "sum").I) // 1+2+3+4, 5 excluded
}

func TestFunctionDeclarationAndReturn(t *testing.T) {
	ev := run(t, `
function add(a, b)
  return a + b
end
result = add(3, 4)`)
	assert.Equal(t, int64(7), global(t, ev, "result").I)
}

func TestBreakStopsLoop(t *testing.T) {
	ev := run(t, `
sum = 0
for i in 1, 100 do
  if i == 5 then
    break
  end
  sum = sum + i
end`)
	assert.Equal(t, int64(10), global(t, ev, "sum").I) // 1+2+3+4
}

func TestContinueSkipsIteration(t *testing.T) {
	ev := run(t, `
sum = 0
for i in 1, 6 do
  if i == 3 then
    continue
  end
  sum = sum + i
end`)
	assert.Equal(t, int64(12), global(t, ev, "sum").I) // 1+2+4+5 = 12
}

func TestClosureCapturesDefiningFrame(t *testing.T) {
	ev := run(t, `
function makeCounter()
  local n = 0
  function increment()
    n = n + 1
    return n
  end
  return increment
end
counter = makeCounter()
a = counter()
b = counter()`)
	assert.Equal(t, int64(1), global(t, ev, "a").I)
	assert.Equal(t, int64(2), global(t, ev, "b").I)
}

func TestMethodCallSelfPrepend(t *testing.T) {
	ev := run(t, `
obj = {value = 10}
obj.get = function(self)
  return self.value
end
x = obj:get()`)
	assert.Equal(t, int64(10), global(t, ev, "x").I)
}

func TestWhileLoop(t *testing.T) {
	ev := run(t, `
i = 0
while i < 5 do
  i = i + 1
end`)
	assert.Equal(t, int64(5), global(t, ev, "i").I)
}

func TestRepeatUntilSeesBodyLocal(t *testing.T) {
	ev := run(t, `
count = 0
repeat
  local done = count >= 3
  count = count + 1
until done`)
	assert.Equal(t, int64(4), global(t, ev, "count").I)
}

func TestCompoundAssignmentReevaluatesTarget(t *testing.T) {
	ev := run(t, `
t = {0}
calls = 0
function bump()
  calls = calls + 1
  return t
end
bump()[0] += 5`)
	// Compound assignment re-evaluates the indexed target once to read the
	// current value and a second time to write it back, so bump() runs twice.
	assert.Equal(t, int64(2), global(t, ev, "calls").I)
}

func TestCycleCollectionAfterScopePop(t *testing.T) {
	ev := run(t, `
do
  local a = {}
  local b = {}
  a.next = b
  b.next = a
end
x = 1`)
	assert.Equal(t, int64(1), global(t, ev, "x").I)
	assert.Equal(t, 0, ev.Heap.Len())
}

func TestUndefinedVariableIsNil(t *testing.T) {
	ev := run(t, "x = undefined")
	assert.True(t, global(t, ev, "x").IsNil())
}

func TestConcatenationStringifiesNumbers(t *testing.T) {
	ev := run(t, `s = "n=" .. 5`)
	assert.Equal(t, "n=5", global(t, ev, "s").S)
}

func TestCallingUserFunctionWithWrongArityIsRuntimeError(t *testing.T) {
	toks := lexer.New(`
function add(a, b)
  return a + b
end
add(1)`).Lex()
	p := parser.New(toks)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	ev := New()
	err := ev.Run(prog)
	require.Error(t, err)
	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "arity")
}

func TestHostFunctionRegistration(t *testing.T) {
	ev := New()
	var seen []value.Value
	ev.RegisterHostFn("record", func(args []value.Value) (value.Value, error) {
		seen = append(seen, args...)
		return value.Nil, nil
	})
	toks := lexer.New(`record(1, "x")`).Lex()
	prog := parser.New(toks).Parse()
	require.NoError(t, ev.Run(prog))
	require.Len(t, seen, 2)
	assert.Equal(t, int64(1), seen[0].I)
	assert.Equal(t, "x", seen[1].S)
}

func TestTableHeapAllocation(t *testing.T) {
	ev := run(t, `t = {}`)
	tv := global(t, ev, "t")
	require.True(t, tv.IsHeapRef())
	obj, ok := ev.Heap.Get(tv.Ref)
	require.True(t, ok)
	_, isTable := obj.(*heap.Table)
	assert.True(t, isTable)
}
