package provider

import (
	"context"
	"math/rand"

	"github.com/mlefebvre/SpinGo/internal/debug"
)

// Random draws a uniform index from [0, sliceCount). A non-zero seed
// gives a reproducible sequence; seed 0 draws the seed from the global
// generator, giving a different sequence each run.
type Random struct {
	rng        *rand.Rand
	sliceCount int
}

// NewRandom creates a random provider over sliceCount slices.
func NewRandom(sliceCount int, seed int64) *Random {
	var src rand.Source
	if seed != 0 {
		src = rand.NewSource(seed)
	} else {
		src = rand.NewSource(rand.Int63())
	}
	return &Random{
		rng:        rand.New(src),
		sliceCount: sliceCount,
	}
}

func (r *Random) Result(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	index := r.rng.Intn(r.sliceCount)
	debug.Verbose("Provider: random result %d", index)
	return index, nil
}
