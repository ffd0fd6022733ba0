package sampler

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/qlab-algos/oraclelab/oracle"
	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

// A Corrupter wraps a Source and flips each outcome bit independently with a
// fixed probability. It exists to exercise the Contradiction paths of the
// solver the way a noisy or faulty backend would.
type Corrupter struct {
	src      oracle.Source
	flipProb float64
	rand     *rand.Rand
}

// NewCorrupter wraps src so that each outcome bit is flipped with
// probability flipProb.
func NewCorrupter(src oracle.Source, flipProb float64, rng *rand.Rand) (*Corrupter, error) {
	if src == nil {
		return nil, errors.New("must provide Source")
	}
	if rng == nil {
		return nil, errors.New("must provide rng")
	}
	if flipProb < 0 || flipProb > 1 {
		return nil, fmt.Errorf("flip probability %v outside [0, 1]", flipProb)
	}
	return &Corrupter{src: src, flipProb: flipProb, rand: rng}, nil
}

// Sample implements oracle.Source.
func (c *Corrupter) Sample(shots int) (oracle.Histogram, error) {
	clean, err := c.src.Sample(shots)
	if err != nil {
		return nil, err
	}
	h := make(oracle.Histogram)
	for outcome, count := range clean {
		z, err := bitvec.FromString(outcome)
		if err != nil {
			return nil, fmt.Errorf("malformed outcome %q: %v", outcome, err)
		}
		for i := 0; i < count; i++ {
			noisy := z.Clone()
			for b := 0; b < noisy.Len(); b++ {
				if c.rand.Float64() < c.flipProb {
					noisy.Flip(b)
				}
			}
			h[noisy.String()]++
		}
	}
	return h, nil
}
