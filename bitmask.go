package ecc

import (
	"math/bits"
)

// Bitmask is a 256-bit bitmask tracking component key presence, one bit per
// KeyID.
type Bitmask [4]uint64

// Set sets the bit at the given index.
func (m *Bitmask) Set(id KeyID) {
	m[id/64] |= 1 << (id % 64)
}

// Has returns true if the bit at the given index is set.
func (m *Bitmask) Has(id KeyID) bool {
	return m[id/64]&(1<<(id%64)) != 0
}

// And returns a new bitmask with only bits set in both m and other.
// This is used to find the keys shared by two containers.
func (m Bitmask) And(other Bitmask) Bitmask {
	return Bitmask{
		m[0] & other[0],
		m[1] & other[1],
		m[2] & other[2],
		m[3] & other[3],
	}
}

// IsZero returns true if no bits are set.
func (m *Bitmask) IsZero() bool {
	return m[0] == 0 && m[1] == 0 && m[2] == 0 && m[3] == 0
}

// Count returns the number of bits set.
func (m *Bitmask) Count() int {
	return bits.OnesCount64(m[0]) +
		bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) +
		bits.OnesCount64(m[3])
}
