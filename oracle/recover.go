package oracle

import (
	"errors"
	"fmt"

	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

// Default shot scheduling for Recover.
var (
	DefaultShotsPerRound = 32
	DefaultMaxRounds     = 16
)

var (
	// ErrContradiction is returned when the accumulated outcomes rule out
	// every nonzero hidden string. It indicates a corrupted sample source or
	// a faulty oracle construction, never a need for more data.
	ErrContradiction = errors.New("outcomes contradict every hidden string")

	// ErrUnderdetermined is returned when the shot budget is exhausted
	// before the equations pin down a unique hidden string. More sampling
	// would resolve it.
	ErrUnderdetermined = errors.New("outcomes underdetermine the hidden string")
)

// A Histogram maps observed outcome bit strings to occurrence counts, as
// returned by an execution collaborator after running a circuit for some
// number of shots.
type Histogram map[string]int

// Shots returns the total number of observations in h.
func (h Histogram) Shots() int {
	var n int
	for _, c := range h {
		n += c
	}
	return n
}

// A Source produces measurement histograms from repeated executions of a
// fixed oracle circuit. The sampler package provides noiseless simulated
// sources; an adapter over a real simulator backend satisfies the same
// interface.
type Source interface {
	Sample(shots int) (Histogram, error)
}

// Stats packages together a collection of potentially interesting metrics
// pertaining to one recovery attempt.
type Stats struct {
	// Shots is the total number of circuit executions consumed.
	Shots int

	// Rounds is the number of sample batches requested.
	Rounds int

	// Distinct is the number of distinct outcome strings observed.
	Distinct int

	// Rank is the final rank of the accumulated equation system.
	Rank int
}

// A RecoverOpts packages together the arguments necessary to run Recover.
// Source and N have no defaults and must be set.
type RecoverOpts struct {
	// Source supplies measurement histograms. Must be non-nil.
	Source Source

	// N is the hidden string's length in bits. Must be positive.
	N int

	// ShotsPerRound is the batch size requested from Source per round.
	// Defaults to DefaultShotsPerRound.
	ShotsPerRound int

	// MaxRounds bounds the number of batches before giving up with
	// ErrUnderdetermined. Defaults to DefaultMaxRounds.
	MaxRounds int
}

// Recover drives the sample-accumulate-solve loop for a Simon-style oracle:
// each round it draws a histogram from the source, folds every distinct
// outcome into the equation system, and re-solves. It returns the hidden
// string on success, ErrContradiction as soon as the equations become
// unsatisfiable, and ErrUnderdetermined once the round budget runs out.
func Recover(opts RecoverOpts) (bitvec.Vector, Stats, error) {
	var stats Stats
	if opts.Source == nil {
		return bitvec.Vector{}, stats, errors.New("must provide Source")
	}
	if opts.N <= 0 {
		return bitvec.Vector{}, stats, fmt.Errorf("non-positive hidden string length %d", opts.N)
	}
	shotsPer := opts.ShotsPerRound
	if shotsPer == 0 {
		shotsPer = DefaultShotsPerRound
	}
	maxRounds := opts.MaxRounds
	if maxRounds == 0 {
		maxRounds = DefaultMaxRounds
	}

	ls := NewLinearSystem(opts.N)
	seen := make(map[string]bool)
	for r := 0; r < maxRounds; r++ {
		h, err := opts.Source.Sample(shotsPer)
		if err != nil {
			return bitvec.Vector{}, stats, fmt.Errorf("sampling round %d: %w", r, err)
		}
		stats.Rounds++
		stats.Shots += h.Shots()
		for outcome := range h {
			if !seen[outcome] {
				seen[outcome] = true
				stats.Distinct++
			}
			z, err := bitvec.FromString(outcome)
			if err != nil {
				return bitvec.Vector{}, stats, fmt.Errorf("malformed outcome %q: %v", outcome, err)
			}
			if err := ls.Add(z); err != nil {
				return bitvec.Vector{}, stats, err
			}
		}
		stats.Rank = ls.Rank()
		switch sol := ls.Solve(); sol.Status {
		case Solved:
			return sol.Secret, stats, nil
		case Contradiction:
			return bitvec.Vector{}, stats, ErrContradiction
		}
	}
	return bitvec.Vector{}, stats, ErrUnderdetermined
}

// RecoverBV recovers a Bernstein-Vazirani hidden string. Under the
// noiseless contract a single shot suffices: the outcome is the string.
func RecoverBV(src Source) (bitvec.Vector, Stats, error) {
	var stats Stats
	if src == nil {
		return bitvec.Vector{}, stats, errors.New("must provide Source")
	}
	h, err := src.Sample(1)
	if err != nil {
		return bitvec.Vector{}, stats, fmt.Errorf("sampling: %w", err)
	}
	stats.Rounds = 1
	stats.Shots = h.Shots()
	stats.Distinct = len(h)
	if len(h) != 1 {
		return bitvec.Vector{}, stats, fmt.Errorf("noiseless single-shot sample returned %d outcomes", len(h))
	}
	for outcome := range h {
		z, err := bitvec.FromString(outcome)
		if err != nil {
			return bitvec.Vector{}, stats, fmt.Errorf("malformed outcome %q: %v", outcome, err)
		}
		return z, stats, nil
	}
	panic("unreachable")
}
