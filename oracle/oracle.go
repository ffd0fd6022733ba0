// Package oracle implements the classical side of the black-box oracle
// problems from the Bernstein-Vazirani, Deutsch-Jozsa and Simon families:
// encoding a hidden bit string into a reversible black-box wiring
// description, and recovering the hidden string from sampled measurement
// outcomes by linear algebra over GF(2).
//
// All quantum execution is delegated to collaborators behind two narrow
// interfaces: a Builder turns a wiring description into elementary gates,
// and a Source returns measurement histograms. Neither is implemented here
// beyond deterministic test doubles (see the sampler package).
package oracle

import (
	"errors"
	"fmt"

	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

// ErrInvalidSecret is returned by ParseSecret and the Encode functions for
// secrets that are empty or contain characters other than '0' and '1'.
var ErrInvalidSecret = errors.New("invalid secret")

// A Family identifies which oracle problem a Spec describes.
type Family int

const (
	BernsteinVazirani Family = iota
	DeutschJozsa
	Simon
)

func (f Family) String() string {
	switch f {
	case BernsteinVazirani:
		return "bernstein-vazirani"
	case DeutschJozsa:
		return "deutsch-jozsa"
	case Simon:
		return "simon"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// A Rule wires input bit In into output bit Out. A copy rule initializes the
// output from a zeroed register; a conditional-XOR rule folds the input into
// whatever the output already holds. Both compile to a controlled-NOT.
type Rule struct {
	In  int
	Out int
}

// A Spec is a pure-data description of a black-box boolean function derived
// from a hidden bit string: which input positions participate, and what copy
// and conditional-XOR wiring must be realized. Specs are constructed by the
// Encode functions and never mutated.
type Spec struct {
	Family Family

	// In and Out are the function's input and output widths in bits.
	In  int
	Out int

	// Copies and CXors are applied in order to a zeroed output register.
	Copies []Rule
	CXors  []Rule

	// Const is XORed into the output unconditionally. Only Deutsch-Jozsa
	// oracles use it.
	Const bitvec.Vector

	// Wrap marks input positions that the canonical Deutsch-Jozsa balanced
	// construction conjugates with X gates. Classically only its parity
	// matters, and that parity is already folded into Const; Wrap is kept so
	// compiled circuits match the textbook construction gate for gate.
	Wrap bitvec.Vector

	// Secret is the hidden string this spec was derived from. Empty for
	// Deutsch-Jozsa oracles, which hide a one-bit verdict rather than a
	// string.
	Secret bitvec.Vector
}

// ParseSecret parses a hidden bit string. The string form is positional:
// index i of the resulting vector is the i-th character. Unlike
// bitvec.FromString, no separator characters are tolerated: a secret is
// exactly a nonempty string over {'0', '1'}.
func ParseSecret(s string) (bitvec.Vector, error) {
	if s == "" {
		return bitvec.Vector{}, fmt.Errorf("%w: empty", ErrInvalidSecret)
	}
	var v bitvec.Vector
	for _, c := range s {
		switch c {
		case '0':
			v.AppendBit(false)
		case '1':
			v.AppendBit(true)
		default:
			return bitvec.Vector{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidSecret, c, s)
		}
	}
	return v, nil
}

// EncodeBV derives the Bernstein-Vazirani oracle for a hidden string s: a
// single output bit receiving a conditional XOR from every input position
// where s is 1, so that f(x) = s·x over GF(2).
func EncodeBV(secret string) (Spec, error) {
	s, err := ParseSecret(secret)
	if err != nil {
		return Spec{}, err
	}
	spec := Spec{
		Family: BernsteinVazirani,
		In:     s.Len(),
		Out:    1,
		Const:  bitvec.New(1),
		Secret: s,
	}
	for i := 0; i < s.Len(); i++ {
		if s.Get(i) {
			spec.CXors = append(spec.CXors, Rule{In: i, Out: 0})
		}
	}
	return spec, nil
}

// EncodeSimon derives the Simon oracle for a hidden string s: every input
// bit is copied to the matching output bit, and, unless s is all-zero, input
// bit j (the lowest set index of s) conditionally XORs every output position
// where s is 1. The resulting f satisfies f(x) = f(x XOR s) for all x, and
// is exactly two-to-one for nonzero s and the identity otherwise.
func EncodeSimon(secret string) (Spec, error) {
	s, err := ParseSecret(secret)
	if err != nil {
		return Spec{}, err
	}
	n := s.Len()
	spec := Spec{
		Family: Simon,
		In:     n,
		Out:    n,
		Const:  bitvec.New(n),
		Secret: s,
	}
	for i := 0; i < n; i++ {
		spec.Copies = append(spec.Copies, Rule{In: i, Out: i})
	}
	if j := s.LowestSet(); j >= 0 {
		for k := 0; k < n; k++ {
			if s.Get(k) {
				spec.CXors = append(spec.CXors, Rule{In: j, Out: k})
			}
		}
	}
	return spec, nil
}

// EncodeDJConstant derives an n-input Deutsch-Jozsa oracle for the constant
// function returning bit.
func EncodeDJConstant(n int, bit bool) (Spec, error) {
	if n <= 0 {
		return Spec{}, fmt.Errorf("non-positive input width %d", n)
	}
	c := bitvec.New(1)
	c.Set(0, bit)
	return Spec{
		Family: DeutschJozsa,
		In:     n,
		Out:    1,
		Const:  c,
	}, nil
}

// EncodeDJBalanced derives a balanced Deutsch-Jozsa oracle from a wrap
// string, per the textbook construction: X gates on the wrapped inputs, a
// controlled-NOT from every input to the output, X gates again. Classically
// f(x) = parity(x) XOR parity(wrap), which takes each value on exactly half
// of all inputs.
func EncodeDJBalanced(wrap string) (Spec, error) {
	w, err := ParseSecret(wrap)
	if err != nil {
		return Spec{}, err
	}
	c := bitvec.New(1)
	c.Set(0, w.Parity())
	spec := Spec{
		Family: DeutschJozsa,
		In:     w.Len(),
		Out:    1,
		Const:  c,
		Wrap:   w,
	}
	for i := 0; i < w.Len(); i++ {
		spec.CXors = append(spec.CXors, Rule{In: i, Out: 0})
	}
	return spec, nil
}

// Eval applies the spec's wiring to a classical input, returning the
// function's output register. This is the brute-force evaluation the quantum
// circuit black-boxes.
func (s Spec) Eval(x bitvec.Vector) (bitvec.Vector, error) {
	if x.Len() != s.In {
		return bitvec.Vector{}, fmt.Errorf("evaluating %d-input oracle on %d-bit input", s.In, x.Len())
	}
	out := s.Const.Clone()
	for _, r := range s.Copies {
		if x.Get(r.In) {
			out.Flip(r.Out)
		}
	}
	for _, r := range s.CXors {
		if x.Get(r.In) {
			out.Flip(r.Out)
		}
	}
	return out, nil
}

// VerifyConsistency reports whether an observed outcome is consistent with a
// hidden string under the Simon promise, i.e. whether secret·outcome = 0
// over GF(2). Every outcome sampled from a correct Simon circuit satisfies
// this.
func VerifyConsistency(secret, outcome bitvec.Vector) bool {
	return !secret.Dot(outcome)
}

// VerifyBV reports whether a single noiseless Bernstein-Vazirani outcome
// matches the hidden string. The noiseless contract makes the outcome the
// secret itself, so plain equality suffices.
func VerifyBV(secret, outcome bitvec.Vector) bool {
	return secret.Equal(outcome)
}
