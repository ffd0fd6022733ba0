package oracle

import "fmt"

// A Builder is the circuit-construction collaborator a Spec compiles onto.
// The circuit package provides a gate-list implementation; an adapter over a
// real quantum SDK satisfies the same interface.
type Builder interface {
	X(q int)
	H(q int)
	CX(control, target int)
	Measure(q, c int)
}

// Compile realizes the spec's wiring as elementary gates on b, under the
// standard register layout: input bit i lives on qubit i, output bit k on
// qubit s.In + k. Copy and conditional-XOR rules become controlled-NOTs;
// Deutsch-Jozsa wrap bits are conjugated with X, and constant output bits
// set with X.
func (s Spec) Compile(b Builder) error {
	if s.In <= 0 || s.Out <= 0 {
		return fmt.Errorf("compiling oracle with widths %dx%d", s.In, s.Out)
	}
	for i := 0; i < s.Wrap.Len(); i++ {
		if s.Wrap.Get(i) {
			b.X(i)
		}
	}
	for _, r := range s.Copies {
		b.CX(r.In, s.In+r.Out)
	}
	for _, r := range s.CXors {
		b.CX(r.In, s.In+r.Out)
	}
	for i := 0; i < s.Wrap.Len(); i++ {
		if s.Wrap.Get(i) {
			b.X(i)
		}
	}
	// The wrap X gates already realize the balanced oracle's constant
	// offset, so only wrapless constants are emitted explicitly.
	if s.Wrap.Len() == 0 {
		for k := 0; k < s.Const.Len(); k++ {
			if s.Const.Get(k) {
				b.X(s.In + k)
			}
		}
	}
	return nil
}
