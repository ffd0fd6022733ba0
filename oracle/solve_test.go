package oracle

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

func addAll(t *testing.T, ls *LinearSystem, outcomes []string) {
	t.Helper()
	for _, z := range outcomes {
		if err := ls.Add(mustVec(t, z)); err != nil {
			t.Fatalf("unexpected error adding %q: %v", z, err)
		}
	}
}

func TestSolveFullDualSpace(t *testing.T) {
	// The complete set {z : z·110 = 0} minus the trivial all-zero outcome.
	ls := NewLinearSystem(3)
	addAll(t, ls, []string{"001", "110", "111"})
	sol := ls.Solve()
	if sol.Status != Solved {
		t.Fatalf("Solve status == %v, want solved", sol.Status)
	}
	if sol.Secret.String() != "110" {
		t.Errorf("Solve secret == %s, want 110", sol.Secret)
	}
}

func TestSolveTrivialOutcomeOnly(t *testing.T) {
	ls := NewLinearSystem(3)
	addAll(t, ls, []string{"000"})
	if ls.Rank() != 0 {
		t.Errorf("all-zero outcome contributed rank: %d", ls.Rank())
	}
	sol := ls.Solve()
	if sol.Status != Underdetermined {
		t.Errorf("Solve status == %v, want underdetermined", sol.Status)
	}
	if !sol.Candidate.IsZero() {
		t.Errorf("candidate %s surfaced from a system holding no information", sol.Candidate)
	}
}

func TestSolveEmptySystemHasNoCandidate(t *testing.T) {
	sol := NewLinearSystem(4).Solve()
	if sol.Status != Underdetermined {
		t.Fatalf("Solve status == %v, want underdetermined", sol.Status)
	}
	if !sol.Candidate.IsZero() {
		t.Errorf("candidate %s surfaced before any equations", sol.Candidate)
	}
}

func TestSolveContradiction(t *testing.T) {
	// Three independent equations over three unknowns leave only s = 0,
	// which the problem promises never to be the hidden string: some
	// outcome must have been corrupted.
	ls := NewLinearSystem(3)
	addAll(t, ls, []string{"100", "010", "001"})
	if sol := ls.Solve(); sol.Status != Contradiction {
		t.Errorf("Solve status == %v, want contradiction", sol.Status)
	}
}

func TestSolveStateProgression(t *testing.T) {
	// Equations for s = 0110, fed one at a time.
	ls := NewLinearSystem(4)
	steps := []struct {
		outcome string
		estatus Status
	}{
		{"0000", Underdetermined},
		{"1000", Underdetermined},
		{"0110", Underdetermined},
		{"1110", Underdetermined}, // dependent on the prior two
		{"0001", Solved},
	}
	for i, step := range steps {
		if err := ls.Add(mustVec(t, step.outcome)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sol := ls.Solve()
		if sol.Status != step.estatus {
			t.Fatalf("after %d outcomes: status == %v, want %v", i+1, sol.Status, step.estatus)
		}
	}
	if got := ls.Solve().Secret.String(); got != "0110" {
		t.Errorf("recovered %s, want 0110", got)
	}
}

func TestSolveCandidateIsConsistent(t *testing.T) {
	ls := NewLinearSystem(4)
	addAll(t, ls, []string{"1000"})
	sol := ls.Solve()
	if sol.Status != Underdetermined {
		t.Fatalf("Solve status == %v, want underdetermined", sol.Status)
	}
	if sol.Candidate.IsZero() {
		t.Fatalf("candidate is the zero vector")
	}
	if !VerifyConsistency(sol.Candidate, mustVec(t, "1000")) {
		t.Errorf("candidate %s violates the accumulated equation", sol.Candidate)
	}
}

func TestAddRejectsLengthMismatch(t *testing.T) {
	ls := NewLinearSystem(3)
	if err := ls.Add(mustVec(t, "1010")); err == nil {
		t.Errorf("expected error: got nil")
	}
}

func TestSolveOutcomes(t *testing.T) {
	tcs := []struct {
		name     string
		outcomes []string
		n        int
		estatus  Status
		esecret  string
		eErr     bool
	}{
		{
			name:     "solved",
			outcomes: []string{"001", "110", "111"},
			n:        3,
			estatus:  Solved,
			esecret:  "110",
		}, {
			name:     "underdetermined",
			outcomes: []string{"000"},
			n:        3,
			estatus:  Underdetermined,
		}, {
			name:     "contradiction",
			outcomes: []string{"100", "010", "001"},
			n:        3,
			estatus:  Contradiction,
		}, {
			name:     "malformed outcome",
			outcomes: []string{"1x0"},
			n:        3,
			eErr:     true,
		}, {
			name:     "length mismatch",
			outcomes: []string{"10"},
			n:        3,
			eErr:     true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := SolveOutcomes(tc.outcomes, tc.n)
			if tc.eErr {
				if err == nil {
					t.Fatalf("expected error: got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sol.Status != tc.estatus {
				t.Fatalf("status == %v, want %v", sol.Status, tc.estatus)
			}
			if tc.esecret != "" && sol.Secret.String() != tc.esecret {
				t.Errorf("secret == %s, want %s", sol.Secret, tc.esecret)
			}
		})
	}
}

func TestSolveRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(7)
		s := bitvec.FromUint(uint(1+rng.Intn(1<<n-1)), n)
		t.Run(fmt.Sprintf("trial %d s=%s", trial, s), func(t *testing.T) {
			// Brute-force the full nontrivial equation set for s, exactly
			// what an exhaustive run of the oracle circuit would produce.
			ls := NewLinearSystem(n)
			for z := uint(1); z < 1<<n; z++ {
				zv := bitvec.FromUint(z, n)
				if !VerifyConsistency(s, zv) {
					continue
				}
				if err := ls.Add(zv); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			sol := ls.Solve()
			if sol.Status != Solved {
				t.Fatalf("Solve status == %v, want solved", sol.Status)
			}
			if !sol.Secret.Equal(s) {
				t.Errorf("recovered %s, want %s", sol.Secret, s)
			}
		})
	}
}
