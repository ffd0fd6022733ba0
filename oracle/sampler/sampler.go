// Package sampler provides noiseless simulated execution collaborators for
// the oracle circuits. Each sampler draws outcomes from the exact
// distribution the corresponding algorithm's circuit produces on an ideal
// backend, which makes them deterministic test doubles for a real simulator
// behind the same oracle.Source interface.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/qlab-algos/oraclelab/oracle"
	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

// A BV samples the Bernstein-Vazirani circuit for its oracle. On a
// noiseless backend every shot yields the hidden string.
type BV struct {
	secret bitvec.Vector
}

// NewBV returns a sampler for a Bernstein-Vazirani oracle.
func NewBV(spec oracle.Spec) (*BV, error) {
	if spec.Family != oracle.BernsteinVazirani {
		return nil, fmt.Errorf("sampling %v oracle as bernstein-vazirani", spec.Family)
	}
	return &BV{secret: spec.Secret}, nil
}

// Sample implements oracle.Source.
func (s *BV) Sample(shots int) (oracle.Histogram, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("sampling %d shots", shots)
	}
	return oracle.Histogram{s.secret.String(): shots}, nil
}

// A Simon samples the Simon circuit for its oracle. Outcomes are uniform
// over the dual subspace {z : z·s = 0}, which has dimension n-1 for a
// nonzero hidden string and n otherwise.
type Simon struct {
	basis []bitvec.Vector
	n     int
	rand  *rand.Rand
}

// NewSimon returns a sampler for a Simon oracle. rng drives the outcome
// draws and must be non-nil; seed it for reproducible runs.
func NewSimon(spec oracle.Spec, rng *rand.Rand) (*Simon, error) {
	if spec.Family != oracle.Simon {
		return nil, fmt.Errorf("sampling %v oracle as simon", spec.Family)
	}
	if rng == nil {
		return nil, errors.New("must provide rng")
	}
	return &Simon{
		basis: dualBasis(spec.Secret),
		n:     spec.In,
		rand:  rng,
	}, nil
}

// Sample implements oracle.Source.
func (s *Simon) Sample(shots int) (oracle.Histogram, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("sampling %d shots", shots)
	}
	h := make(oracle.Histogram)
	for i := 0; i < shots; i++ {
		z := bitvec.New(s.n)
		for _, b := range s.basis {
			if s.rand.Intn(2) == 1 {
				z = z.Xor(b)
			}
		}
		h[z.String()]++
	}
	return h, nil
}

// dualBasis returns a basis of {z : z·s = 0}. For s = 0 that is the whole
// space; otherwise, with j the lowest set index of s, the standard vectors
// e_i for unset positions i != j together with e_i + e_j for set positions
// i != j span it.
func dualBasis(s bitvec.Vector) []bitvec.Vector {
	n := s.Len()
	j := s.LowestSet()
	var basis []bitvec.Vector
	for i := 0; i < n; i++ {
		if i == j {
			continue
		}
		v := bitvec.New(n)
		v.Set(i, true)
		if s.Get(i) {
			v.Set(j, true)
		}
		basis = append(basis, v)
	}
	return basis
}

// A DeutschJozsa samples the Deutsch-Jozsa circuit for its oracle. The
// outcome is deterministic: all-zero for a constant oracle, and for the
// balanced wrap construction the all-ones string (its function is a parity,
// i.e. a Bernstein-Vazirani mask of all ones).
type DeutschJozsa struct {
	outcome bitvec.Vector
}

// NewDeutschJozsa returns a sampler for a Deutsch-Jozsa oracle.
func NewDeutschJozsa(spec oracle.Spec) (*DeutschJozsa, error) {
	if spec.Family != oracle.DeutschJozsa {
		return nil, fmt.Errorf("sampling %v oracle as deutsch-jozsa", spec.Family)
	}
	out := bitvec.New(spec.In)
	if len(spec.CXors) > 0 {
		for i := 0; i < spec.In; i++ {
			out.Set(i, true)
		}
	}
	return &DeutschJozsa{outcome: out}, nil
}

// Sample implements oracle.Source.
func (s *DeutschJozsa) Sample(shots int) (oracle.Histogram, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("sampling %d shots", shots)
	}
	return oracle.Histogram{s.outcome.String(): shots}, nil
}

// Constant reports the Deutsch-Jozsa verdict for an outcome: true iff the
// oracle is constant, signalled by the all-zero string.
func Constant(outcome bitvec.Vector) bool {
	return outcome.IsZero()
}
