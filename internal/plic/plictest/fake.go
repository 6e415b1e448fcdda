// Package plictest provides a map-backed RegisterIO fake for testing
// the plic driver without real device memory.
package plictest

// Registers is a sparse, offset-indexed fake register file. Reads of an
// offset never written return 0, matching a freshly reset PLIC.
type Registers struct {
	words map[uintptr]uint32
}

// NewRegisters constructs an empty fake register file.
func NewRegisters() *Registers {
	return &Registers{words: make(map[uintptr]uint32)}
}

func (r *Registers) Load32(offset uintptr) uint32 {
	return r.words[offset]
}

func (r *Registers) Store32(offset uintptr, value uint32) {
	r.words[offset] = value
}

// Raw exposes the offset->word map directly, for tests that want to seed
// or assert on specific registers (e.g. driving Claim by writing the
// claim/complete register before calling Driver.Claim).
func (r *Registers) Raw() map[uintptr]uint32 { return r.words }
