package oracle

import (
	"fmt"

	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

// A Status classifies the result of solving for a hidden string.
type Status int

const (
	// Underdetermined means the accumulated equations do not yet pin down a
	// unique nonzero solution. It is a normal intermediate result: collect
	// more outcomes and solve again.
	Underdetermined Status = iota

	// Solved means exactly one nonzero string satisfies every equation.
	Solved

	// Contradiction means no nonzero string satisfies every equation. A
	// correctly-built oracle cannot produce this; it signals a corrupted
	// sample source or a faulty construction upstream.
	Contradiction
)

func (s Status) String() string {
	switch s {
	case Underdetermined:
		return "underdetermined"
	case Solved:
		return "solved"
	case Contradiction:
		return "contradiction"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// A Solution is the tagged outcome of LinearSystem.Solve. Secret is only
// meaningful when Status is Solved. Candidate holds one nonzero vector from
// the solution space when Status is Underdetermined and at least one
// independent equation has been seen, for callers that want a provisional
// guess; it is never a substitute for a Solved result, and stays zero while
// the system holds no information.
type Solution struct {
	Status    Status
	Secret    bitvec.Vector
	Candidate bitvec.Vector
}

// A LinearSystem accumulates the homogeneous GF(2) equations {z·s = 0}
// implied by observed outcomes z, for an unknown n-bit hidden string s. Rows
// are kept in reduced row-echelon form as they arrive, so solving after each
// addition is cheap. The zero vector carries no information and is dropped
// on Add, as are outcomes linearly dependent on earlier ones.
type LinearSystem struct {
	n      int
	rows   []bitvec.Vector
	pivots []int
}

// NewLinearSystem returns an empty system over n unknowns. n must be
// positive.
func NewLinearSystem(n int) *LinearSystem {
	if n <= 0 {
		panic(fmt.Sprintf("linear system over %d unknowns", n))
	}
	return &LinearSystem{n: n}
}

// N returns the number of unknowns.
func (ls *LinearSystem) N() int { return ls.n }

// Rank returns the number of linearly independent equations seen so far.
func (ls *LinearSystem) Rank() int { return len(ls.rows) }

// Add incorporates the equation z·s = 0. Outcomes that are all-zero or
// linearly dependent on earlier ones are silently dropped; only a length
// mismatch is an error.
func (ls *LinearSystem) Add(z bitvec.Vector) error {
	if z.Len() != ls.n {
		return fmt.Errorf("adding %d-bit outcome to system over %d unknowns", z.Len(), ls.n)
	}
	row := z.Clone()
	for i, p := range ls.pivots {
		if row.Get(p) {
			row = row.Xor(ls.rows[i])
		}
	}
	if row.IsZero() {
		return nil
	}
	p := row.LowestSet()

	// Back-substitute into earlier rows so the matrix stays fully reduced.
	for i := range ls.rows {
		if ls.rows[i].Get(p) {
			ls.rows[i] = ls.rows[i].Xor(row)
		}
	}

	// Insert in pivot order.
	at := len(ls.rows)
	for i, q := range ls.pivots {
		if p < q {
			at = i
			break
		}
	}
	ls.rows = append(ls.rows, bitvec.Vector{})
	copy(ls.rows[at+1:], ls.rows[at:])
	ls.rows[at] = row
	ls.pivots = append(ls.pivots, 0)
	copy(ls.pivots[at+1:], ls.pivots[at:])
	ls.pivots[at] = p
	return nil
}

// Solve inspects the accumulated equations and reports whether they
// determine the hidden string. With rank n-1 the solution space holds
// exactly one nonzero vector, which is returned as Solved. With lower rank
// the system is Underdetermined. With full rank n only the zero vector
// remains, which the problem promises never to be the answer once equations
// exist, so the system is Contradiction.
func (ls *LinearSystem) Solve() Solution {
	rank := len(ls.rows)
	switch {
	case rank == ls.n:
		return Solution{Status: Contradiction}
	case rank == ls.n-1:
		free := ls.freeColumns()
		return Solution{Status: Solved, Secret: ls.kernelVector(free[0])}
	default:
		sol := Solution{Status: Underdetermined}
		if len(ls.rows) > 0 {
			free := ls.freeColumns()
			sol.Candidate = ls.kernelVector(free[0])
		}
		return sol
	}
}

// SolveOutcomes builds a system over n unknowns from a batch of outcome
// strings and solves it in one shot. Callers accumulating outcomes
// incrementally should hold a LinearSystem instead.
func SolveOutcomes(outcomes []string, n int) (Solution, error) {
	ls := NewLinearSystem(n)
	for _, outcome := range outcomes {
		z, err := bitvec.FromString(outcome)
		if err != nil {
			return Solution{}, fmt.Errorf("malformed outcome %q: %v", outcome, err)
		}
		if err := ls.Add(z); err != nil {
			return Solution{}, err
		}
	}
	return ls.Solve(), nil
}

// freeColumns returns the column indices with no pivot, in increasing order.
func (ls *LinearSystem) freeColumns() []int {
	isPivot := make([]bool, ls.n)
	for _, p := range ls.pivots {
		isPivot[p] = true
	}
	var free []int
	for c := 0; c < ls.n; c++ {
		if !isPivot[c] {
			free = append(free, c)
		}
	}
	return free
}

// kernelVector returns the solution-space basis vector associated with free
// column c: it has a 1 at c, and at each pivot column the coefficient the
// reduced row forces there.
func (ls *LinearSystem) kernelVector(c int) bitvec.Vector {
	v := bitvec.New(ls.n)
	v.Set(c, true)
	for i, p := range ls.pivots {
		v.Set(p, ls.rows[i].Get(c))
	}
	return v
}
