package circuit

import (
	"fmt"

	"github.com/qlab-algos/oraclelab/oracle"
)

// BernsteinVazirani builds the canonical single-query circuit for a
// Bernstein-Vazirani oracle: the output qubit prepared in the |-> state, a
// Hadamard layer, the oracle, a closing Hadamard layer and readout of the
// input register.
func BernsteinVazirani(spec oracle.Spec) (*Circuit, error) {
	if spec.Family != oracle.BernsteinVazirani {
		return nil, fmt.Errorf("building bernstein-vazirani circuit from %v oracle", spec.Family)
	}
	return phaseKickback(spec)
}

// DeutschJozsa builds the canonical single-query circuit for a
// Deutsch-Jozsa oracle. It has the same phase-kickback shape as
// Bernstein-Vazirani; only the verdict rule differs (an all-zero outcome
// means the function is constant).
func DeutschJozsa(spec oracle.Spec) (*Circuit, error) {
	if spec.Family != oracle.DeutschJozsa {
		return nil, fmt.Errorf("building deutsch-jozsa circuit from %v oracle", spec.Family)
	}
	return phaseKickback(spec)
}

// Simon builds the canonical circuit for one Simon query: a Hadamard layer
// on the input register, the two-register oracle, a closing Hadamard layer
// and readout of the input register. Each execution yields one equation
// z·s = 0 on the hidden string.
func Simon(spec oracle.Spec) (*Circuit, error) {
	if spec.Family != oracle.Simon {
		return nil, fmt.Errorf("building simon circuit from %v oracle", spec.Family)
	}
	n := spec.In
	c := New(2*n, n)
	for q := 0; q < n; q++ {
		c.H(q)
	}
	if err := spec.Compile(c); err != nil {
		return nil, err
	}
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for q := 0; q < n; q++ {
		c.Measure(q, q)
	}
	return c, nil
}

func phaseKickback(spec oracle.Spec) (*Circuit, error) {
	n := spec.In
	c := New(n+1, n)
	c.X(n)
	for q := 0; q <= n; q++ {
		c.H(q)
	}
	if err := spec.Compile(c); err != nil {
		return nil, err
	}
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for q := 0; q < n; q++ {
		c.Measure(q, q)
	}
	return c, nil
}
