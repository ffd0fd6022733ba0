// Package circuit provides a plain gate-list representation of the small
// fixed circuits the oracle problems use, and renders them as OpenQASM 2.0.
// It is deliberately not a simulator: a Circuit is data for an external
// backend, and doubles as the oracle package's Builder during tests.
package circuit

import (
	"fmt"
	"strings"
)

// A Gate is one elementary operation. Control is -1 for single-qubit gates.
type Gate struct {
	Name    string
	Control int
	Target  int
}

// A Measure records qubit Qubit being read out into classical bit Clbit.
type Measure struct {
	Qubit int
	Clbit int
}

// A Circuit is an ordered gate list over fixed-size quantum and classical
// registers.
type Circuit struct {
	QBits    int
	CBits    int
	Gates    []Gate
	Measures []Measure
}

// New returns an empty circuit over qbits qubits and cbits classical bits.
func New(qbits, cbits int) *Circuit {
	return &Circuit{QBits: qbits, CBits: cbits}
}

// X appends a Pauli-X gate on qubit q.
func (c *Circuit) X(q int) {
	c.Gates = append(c.Gates, Gate{Name: "x", Control: -1, Target: q})
}

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) {
	c.Gates = append(c.Gates, Gate{Name: "h", Control: -1, Target: q})
}

// CX appends a controlled-NOT from control to target.
func (c *Circuit) CX(control, target int) {
	c.Gates = append(c.Gates, Gate{Name: "cx", Control: control, Target: target})
}

// Measure appends a readout of qubit q into classical bit cl.
func (c *Circuit) Measure(q, cl int) {
	c.Measures = append(c.Measures, Measure{Qubit: q, Clbit: cl})
}

// QASM renders the circuit as OpenQASM 2.0 text.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.QBits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", c.CBits)
	for _, g := range c.Gates {
		if g.Control >= 0 {
			fmt.Fprintf(&sb, "%s q[%d],q[%d];\n", g.Name, g.Control, g.Target)
		} else {
			fmt.Fprintf(&sb, "%s q[%d];\n", g.Name, g.Target)
		}
	}
	if len(c.Measures) > 0 {
		sb.WriteString("\n")
	}
	for _, m := range c.Measures {
		fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", m.Qubit, m.Clbit)
	}
	return sb.String()
}
