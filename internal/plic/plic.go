// Package plic implements the Platform-Level Interrupt Controller driver:
// the concrete intr.Controller bound in at boot for the "virt" machine's
// external interrupt router, plus the claim/dispatch/complete contract the
// trap dispatcher drives on a supervisor_external trap.
package plic

import (
	"errors"

	"rvkernel/internal/intr"
)

// Register offsets, single-context (one hart, supervisor mode) layout.
// The enable bitfield base is 0x2000 with a 0x80 stride, distinct from
// the pending bitfield at 0x1000.
const (
	priorityBase = 0x0
	pendingBase  = 0x1000
	enableBase   = 0x2000
	enableStride = 0x80

	contextBase      = 0x200000
	contextStride    = 0x1000
	thresholdOffset  = 0x0
	claimComplOffset = 0x4

	maxPriority = 7
)

var (
	ErrInvalidID        = errors.New("plic: source id out of range")
	ErrInvalidPriority  = errors.New("plic: priority exceeds maxPriority")
	ErrInvalidThreshold = errors.New("plic: threshold exceeds maxPriority")
)

// RegisterIO abstracts 32-bit MMIO word access so the driver can run over
// real device memory or, in tests, a map-backed fake.
type RegisterIO interface {
	Load32(offset uintptr) uint32
	Store32(offset uintptr, value uint32)
}

// Driver is the PLIC driver bound as the kernel's single intr.Controller
// and intr.ExternalSource. It supports exactly one (hart, supervisor)
// context; multi-hart PLIC routing is out of scope.
type Driver struct {
	io   RegisterIO
	ndev uint32

	handlers map[uint32]func()
	claimed  uint32
}

// New constructs a driver over io for a device tree that advertises ndev
// interrupt sources (source 0 is reserved and never valid).
func New(io RegisterIO, ndev uint32) *Driver {
	return &Driver{io: io, ndev: ndev, handlers: make(map[uint32]func())}
}

func (d *Driver) validID(id uint32) bool {
	return id > 0 && id <= d.ndev
}

// Enable sets the source's bit in the context's enable bitfield.
func (d *Driver) Enable(id uint32) error {
	if !d.validID(id) {
		return ErrInvalidID
	}
	off := enableBase + uintptr(id/32)*4
	word := d.io.Load32(off)
	d.io.Store32(off, word|(1<<(id%32)))
	return nil
}

// Disable clears the source's bit in the context's enable bitfield.
func (d *Driver) Disable(id uint32) error {
	if !d.validID(id) {
		return ErrInvalidID
	}
	off := enableBase + uintptr(id/32)*4
	word := d.io.Load32(off)
	d.io.Store32(off, word&^(1<<(id%32)))
	return nil
}

// SetPriority writes the source's priority register. Priority must be
// nonzero for the source to ever fire.
func (d *Driver) SetPriority(id uint32, priority uint32) error {
	if !d.validID(id) {
		return ErrInvalidID
	}
	if priority > maxPriority {
		return ErrInvalidPriority
	}
	d.io.Store32(priorityBase+uintptr(id)*4, priority)
	return nil
}

// GetPriority reads the source's priority register back.
func (d *Driver) GetPriority(id uint32) (uint32, error) {
	if !d.validID(id) {
		return 0, ErrInvalidID
	}
	return d.io.Load32(priorityBase + uintptr(id)*4), nil
}

// SetHandler records the callback Dispatch invokes for id.
func (d *Driver) SetHandler(id uint32, handler func()) error {
	if !d.validID(id) {
		return ErrInvalidID
	}
	d.handlers[id] = handler
	return nil
}

// Claim reads the context's claim register, returning 0 if nothing above
// threshold is pending.
func (d *Driver) Claim() uint32 {
	id := d.io.Load32(contextBase + claimComplOffset)
	d.claimed = id
	return id
}

// Dispatch invokes the handler registered for id, if any.
func (d *Driver) Dispatch(id uint32) {
	if h, ok := d.handlers[id]; ok && h != nil {
		h()
	}
}

// Complete writes id back to the claim/complete register, which must be
// the value most recently returned by Claim.
func (d *Driver) Complete(id uint32) {
	d.io.Store32(contextBase+claimComplOffset, id)
}

// SetThreshold sets the context's interrupt priority threshold; sources at
// or below threshold never claim.
func (d *Driver) SetThreshold(level uint32) error {
	if level > maxPriority {
		return ErrInvalidThreshold
	}
	d.io.Store32(contextBase+thresholdOffset, level)
	return nil
}

var _ intr.Controller = (*Driver)(nil)
var _ intr.ExternalSource = (*Driver)(nil)
