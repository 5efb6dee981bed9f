package hostio

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// Random is the generator behind the rand module.
type Random struct {
	r *rand.Rand
}

// NewRandom creates a generator seeded from the clock.
func NewRandom() *Random {
	now := uint64(time.Now().UnixNano())
	return NewSeededRandom(now)
}

// NewSeededRandom creates a deterministic generator.
func NewSeededRandom(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float returns a float in [0, 1).
func (g *Random) Float() float64 {
	return g.r.Float64()
}

// IntBetween returns an integer in [a, b], both ends inclusive.
func (g *Random) IntBetween(a, b int64) (int64, error) {
	if a > b {
		return 0, &errors.ArgumentTypeError{
			Builtin:  "RandInt",
			Position: 2,
			Expected: fmt.Sprintf("value >= %d", a),
			Got:      fmt.Sprintf("%d", b),
		}
	}
	span := uint64(b-a) + 1
	if span == 0 {
		// a..b covers the whole int64 range
		return int64(g.r.Uint64()), nil
	}
	return a + int64(g.r.Uint64N(span)), nil
}
