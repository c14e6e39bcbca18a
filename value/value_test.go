package value_test

import (
	"math"
	"testing"

	"github.com/Anzlc/lua-like-script/value"
	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	require.False(t, value.Nil.IsTruthy())
	require.False(t, value.Bool(false).IsTruthy())
	require.True(t, value.Bool(true).IsTruthy())
	require.True(t, value.Int(0).IsTruthy())
	require.True(t, value.String("").IsTruthy())
}

func TestAddAssociativity(t *testing.T) {
	a, b, c := value.Int(7), value.Int(-3), value.Int(19)
	left, err := value.Add(mustAdd(t, a, b), c)
	require.NoError(t, err)
	right, err := value.Add(a, mustAdd(t, b, c))
	require.NoError(t, err)
	require.Equal(t, left, right)
}

func mustAdd(t *testing.T, a, b value.Value) value.Value {
	t.Helper()
	v, err := value.Add(a, b)
	require.NoError(t, err)
	return v
}

func TestAddNilAnnihilates(t *testing.T) {
	v, err := value.Add(value.Nil, value.Int(5))
	require.NoError(t, err)
	require.True(t, v.IsNil())
}

func TestAddStringConcatBugCompatible(t *testing.T) {
	v, err := value.Add(value.String("foo"), value.String("bar"))
	require.NoError(t, err)
	require.Equal(t, value.String("foobar"), v)
}

func TestMulStringRepeat(t *testing.T) {
	v, err := value.Mul(value.String("ab"), value.Int(3))
	require.NoError(t, err)
	require.Equal(t, "ababab", v.S)

	v, err = value.Mul(value.Int(2), value.String("x"))
	require.NoError(t, err)
	require.Equal(t, "xx", v.S)
}

func TestDivAlwaysFloat(t *testing.T) {
	v, err := value.Div(value.Int(4), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, value.KindFloat, v.Kind)
	require.Equal(t, 2.0, v.F)
}

func TestPowRightAssociativeShape(t *testing.T) {
	// 2^3^2 should be evaluated by the parser as 2^(3^2) == 2^9 == 512;
	// this only checks the int^int fast path Pow itself provides.
	inner, err := value.Pow(value.Int(3), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, value.Int(9), inner)

	outer, err := value.Pow(value.Int(2), inner)
	require.NoError(t, err)
	require.Equal(t, value.Int(512), outer)
}

func TestPowNegativeExponentPromotesFloat(t *testing.T) {
	v, err := value.Pow(value.Int(2), value.Int(-1))
	require.NoError(t, err)
	require.Equal(t, value.KindFloat, v.Kind)
	require.InDelta(t, 0.5, v.F, 1e-9)
}

func TestIDivAndModRequireInts(t *testing.T) {
	_, err := value.IDiv(value.Float(4), value.Int(2))
	require.Error(t, err)

	v, err := value.IDiv(value.Int(7), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, value.Int(3), v)

	_, err = value.Mod(value.Int(1), value.Int(0))
	require.Error(t, err)
}

func TestCompareIntFloatPromotion(t *testing.T) {
	c, err := value.Compare(value.Int(1), value.Float(1.5))
	require.NoError(t, err)
	require.Equal(t, -1, c)
}

func TestEqCrossGroupIsFalse(t *testing.T) {
	require.False(t, value.Eq(value.String("1"), value.Int(1)))
	require.True(t, value.Eq(value.Int(1), value.Float(1.0)))
	require.False(t, value.Eq(value.Bool(true), value.Int(1)))
}

func TestNotNotIsTruthiness(t *testing.T) {
	for _, v := range []value.Value{value.Nil, value.Bool(false), value.Bool(true), value.Int(0), value.String("")} {
		got := value.Not(value.Not(v))
		require.Equal(t, value.Bool(v.IsTruthy()), got)
	}
}

func TestFloatHashDistinguishesZeroSign(t *testing.T) {
	posZero := value.Float(0.0).Key()
	negZero := value.Float(math.Copysign(0, -1)).Key()
	require.NotEqual(t, posZero, negZero)
}

func TestHeapRefNotHashable(t *testing.T) {
	require.False(t, value.FromRef(3).Hashable())
}

func TestStringifyConcat(t *testing.T) {
	v := value.Concat(value.Int(10), value.String("!"), nil)
	require.Equal(t, "10!", v.S)
}

func TestBitwiseOps(t *testing.T) {
	v, err := value.BitAnd(value.Int(0b1100), value.Int(0b1010))
	require.NoError(t, err)
	require.Equal(t, value.Int(0b1000), v)

	v, err = value.Shl(value.Int(1), value.Int(4))
	require.NoError(t, err)
	require.Equal(t, value.Int(16), v)
}
