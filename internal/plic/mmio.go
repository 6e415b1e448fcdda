package plic

import "unsafe"

// MMIO is the real RegisterIO backing: a base address translated from
// physical (as given in the device tree's reg property) to virtual via the
// kernel's HHDM, read and written as raw 32-bit words.
type MMIO struct {
	base uintptr
}

// NewMMIO wraps the virtual base address of the PLIC's register window.
func NewMMIO(virtBase uintptr) *MMIO {
	return &MMIO{base: virtBase}
}

func (m *MMIO) Load32(offset uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(m.base + offset))
}

func (m *MMIO) Store32(offset uintptr, value uint32) {
	*(*uint32)(unsafe.Pointer(m.base + offset)) = value
}

var _ RegisterIO = (*MMIO)(nil)
