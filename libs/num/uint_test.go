package num_test

import (
	"testing"

	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint(t *testing.T) {
	t.Run("arithmetic", testArithmetic)
	t.Run("comparisons", testComparisons)
	t.Run("clone is independent of the original", testClone)
	t.Run("delta", testDelta)
	t.Run("from string", testFromString)
}

func testArithmetic(t *testing.T) {
	a := num.NewUint(100)
	b := num.NewUint(42)

	assert.True(t, num.UintZero().Add(a, b).EQUint64(142))
	assert.True(t, num.UintZero().Sub(a, b).EQUint64(58))
	assert.True(t, num.UintZero().Mul(a, b).EQUint64(4200))
	assert.True(t, num.UintZero().Div(a, b).EQUint64(2))
	assert.True(t, num.Sum(a, b, num.NewUint(8)).EQUint64(150))

	// operands are left untouched
	assert.True(t, a.EQUint64(100))
	assert.True(t, b.EQUint64(42))
}

func testComparisons(t *testing.T) {
	a := num.NewUint(100)
	b := num.NewUint(42)

	assert.True(t, b.LT(a))
	assert.True(t, b.LTE(b.Clone()))
	assert.True(t, a.GT(b))
	assert.True(t, a.GTE(a.Clone()))
	assert.True(t, a.NEQ(b))
	assert.True(t, a.EQ(num.NewUint(100)))
	assert.True(t, num.UintZero().IsZero())
	assert.Equal(t, a, num.Max(a, b))
	assert.Equal(t, b, num.Min(a, b))
}

func testClone(t *testing.T) {
	a := num.NewUint(100)
	b := a.Clone()
	b.AddSum(num.NewUint(1))

	assert.True(t, a.EQUint64(100))
	assert.True(t, b.EQUint64(101))
}

func testDelta(t *testing.T) {
	a := num.NewUint(100)
	b := num.NewUint(42)

	d, neg := num.UintZero().Delta(a, b)
	assert.False(t, neg)
	assert.True(t, d.EQUint64(58))

	d, neg = num.UintZero().Delta(b, a)
	assert.True(t, neg)
	assert.True(t, d.EQUint64(58))
}

func testFromString(t *testing.T) {
	u, overflow := num.UintFromString("340282366920938463463374607431768211456", 10) // 2^128
	require.False(t, overflow)
	assert.Equal(t, "340282366920938463463374607431768211456", u.String())

	_, overflow = num.UintFromString("not a number", 10)
	assert.True(t, overflow)
}
