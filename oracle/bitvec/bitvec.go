// Package bitvec provides densely-packed vectors over GF(2), the two-element
// field where addition is XOR and multiplication is AND.
package bitvec

import (
	"fmt"
	"math/bits"
	"strings"
)

const blockSize = 8

// A Vector is a fixed-length vector of GF(2) scalars. Index 0 corresponds to
// the first character of the string form, so vectors compare directly against
// the bit-string literals used throughout the oracle problems.
type Vector struct {
	blocks []byte
	n      int
}

// New returns the zero vector of length n.
func New(n int) Vector {
	return Vector{
		blocks: make([]byte, blocksFor(n)),
		n:      n,
	}
}

// FromString parses a string of '0' and '1' runes into a Vector. Spaces are
// skipped, as a visual aid for long strings. Any other rune is an error.
func FromString(s string) (Vector, error) {
	var v Vector
	for _, c := range s {
		switch c {
		case '0':
			v.AppendBit(false)
		case '1':
			v.AppendBit(true)
		case ' ':
			continue
		default:
			return Vector{}, fmt.Errorf("invalid bit string %q: unexpected %q", s, c)
		}
	}
	return v, nil
}

// MustFromString is FromString for statically-known inputs. It panics on
// malformed strings.
func MustFromString(s string) Vector {
	v, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromUint unpacks the low n bits of x into a Vector, with bit 0 of x landing
// at index 0. Useful for enumerating all vectors of a small dimension.
func FromUint(x uint, n int) Vector {
	v := New(n)
	for i := 0; i < n; i++ {
		if x&(1<<i) != 0 {
			v.Set(i, true)
		}
	}
	return v
}

// Uint packs v into an unsigned integer, index 0 at bit 0. Panics if v does
// not fit.
func (v Vector) Uint() uint {
	if v.n > bits.UintSize {
		panic(fmt.Sprintf("packing %d-bit vector into uint", v.n))
	}
	var x uint
	for i := 0; i < v.n; i++ {
		if v.Get(i) {
			x |= 1 << i
		}
	}
	return x
}

// Len returns the number of scalars in v.
func (v Vector) Len() int {
	return v.n
}

// Get returns the scalar at index i as a bool, with true for 1.
func (v Vector) Get(i int) bool {
	if i < 0 || i >= v.n {
		return false
	}
	return v.blocks[i/blockSize]&(1<<(i%blockSize)) != 0
}

// Set assigns the scalar at index i.
func (v *Vector) Set(i int, bit bool) {
	if bit {
		v.blocks[i/blockSize] |= 1 << (i % blockSize)
	} else {
		v.blocks[i/blockSize] &^= 1 << (i % blockSize)
	}
}

// Flip toggles the scalar at index i.
func (v *Vector) Flip(i int) {
	v.blocks[i/blockSize] ^= 1 << (i % blockSize)
}

// AppendBit extends v by a single scalar.
func (v *Vector) AppendBit(bit bool) {
	if v.n%blockSize == 0 {
		v.blocks = append(v.blocks, 0)
	}
	if bit {
		v.blocks[v.n/blockSize] |= 1 << (v.n % blockSize)
	}
	v.n++
}

// Clone returns a copy of v with its own backing storage.
func (v Vector) Clone() Vector {
	blocks := make([]byte, len(v.blocks))
	copy(blocks, v.blocks)
	return Vector{blocks: blocks, n: v.n}
}

// Xor returns the elementwise sum v + o over GF(2). Lengths must agree.
func (v Vector) Xor(o Vector) Vector {
	mustMatch(v, o)
	r := New(v.n)
	for i := range v.blocks {
		r.blocks[i] = v.blocks[i] ^ o.blocks[i]
	}
	return r
}

// And returns the elementwise product of v and o. Lengths must agree.
func (v Vector) And(o Vector) Vector {
	mustMatch(v, o)
	r := New(v.n)
	for i := range v.blocks {
		r.blocks[i] = v.blocks[i] & o.blocks[i]
	}
	return r
}

// Dot returns the inner product v·o over GF(2), i.e. the parity of the
// elementwise AND. Lengths must agree.
func (v Vector) Dot(o Vector) bool {
	mustMatch(v, o)
	var sum byte
	for i := range v.blocks {
		sum ^= v.blocks[i] & o.blocks[i]
	}
	return bits.OnesCount8(sum)%2 == 1
}

// Parity returns the sum of all scalars in v, i.e. true iff v has odd weight.
func (v Vector) Parity() bool {
	var sum byte
	for _, b := range v.blocks {
		sum ^= b
	}
	return bits.OnesCount8(sum)%2 == 1
}

// Weight returns the number of nonzero scalars in v.
func (v Vector) Weight() int {
	var w int
	for _, b := range v.blocks {
		w += bits.OnesCount8(b)
	}
	return w
}

// IsZero reports whether every scalar in v is zero.
func (v Vector) IsZero() bool {
	for _, b := range v.blocks {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether v and o have the same length and contents.
func (v Vector) Equal(o Vector) bool {
	if v.n != o.n {
		return false
	}
	for i := range v.blocks {
		if v.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}

// LowestSet returns the smallest index holding a 1, or -1 for the zero
// vector.
func (v Vector) LowestSet() int {
	for i, b := range v.blocks {
		if b == 0 {
			continue
		}
		idx := i*blockSize + bits.TrailingZeros8(b)
		if idx >= v.n {
			return -1
		}
		return idx
	}
	return -1
}

// String renders v as a string of '0' and '1' runes, index 0 first.
func (v Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.n)
	for i := 0; i < v.n; i++ {
		if v.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func mustMatch(a, b Vector) {
	if a.n != b.n {
		panic(fmt.Sprintf("mixing GF(2) vectors of lengths %d and %d", a.n, b.n))
	}
}

func blocksFor(n int) int {
	return (n + blockSize - 1) / blockSize
}
