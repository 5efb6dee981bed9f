package hostio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

func TestRandom_Float(t *testing.T) {
	g := NewSeededRandom(1)
	for i := 0; i < 1000; i++ {
		f := g.Float()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestRandom_IntBetween(t *testing.T) {
	g := NewSeededRandom(42)
	seen := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		n, err := g.IntBetween(-2, 2)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(-2))
		assert.LessOrEqual(t, n, int64(2))
		seen[n] = true
	}
	assert.Len(t, seen, 5)

	n, err := g.IntBetween(7, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = g.IntBetween(math.MinInt64, math.MaxInt64)
	require.NoError(t, err)

	_, err = g.IntBetween(3, 1)
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestRandom_Deterministic(t *testing.T) {
	a := NewSeededRandom(9)
	b := NewSeededRandom(9)
	assert.Equal(t, a.Float(), b.Float())
}
