// Package riscv64 is the riscv64 implementation of internal/arch.Port.
// The atomic primitives, the context switch, and the trap vector entry
// are all assembly, bound in by symbol name via go:linkname since Go
// cannot express them portably.
package riscv64

import (
	"unsafe"

	"rvkernel/internal/arch"
	"rvkernel/internal/sched"
)

//go:linkname sync_test_and_set sync_test_and_set
func sync_test_and_set(addr *uint32) uint32

//go:linkname sync_barrier sync_barrier
func sync_barrier()

//go:linkname sync_release sync_release
func sync_release(addr *uint32)

//go:linkname swtch swtch
func swtch(old, new *context)

//go:linkname trapinithart trapinithart
func trapinithart()

// context is the callee-saved register set swtch swaps, laid directly
// over a sched.RegisterFrame's leading 16 words.
type context struct {
	ra, sp uintptr

	// callee-saved
	s0, s1, s2, s3, s4, s5 uintptr
	s6, s7, s8, s9         uintptr
	s10, s11               uintptr

	gp, tp uintptr
}

func frameContext(f *sched.RegisterFrame) *context {
	return (*context)(unsafe.Pointer(&f[0]))
}

// Port is the riscv64 architecture port. cpuContext is the scheduler
// loop's own saved context, swapped out whenever SwitchTo runs.
type Port struct {
	cpuContext sched.RegisterFrame
}

// New constructs a riscv64 Port.
func New() *Port { return &Port{} }

func (p *Port) EnableInterrupts()  { intr_on() }
func (p *Port) DisableInterrupts() { intr_off() }

func (p *Port) InstallTrapVector() { trapinithart() }

func (p *Port) SetupThread(t *sched.Thread, entry, sp uintptr) {
	*frameContext(&t.Registers) = context{ra: entry, sp: sp}
}

func (p *Port) SwitchTo(t *sched.Thread) {
	swtch(frameContext(&p.cpuContext), frameContext(&t.Registers))
}

func (p *Port) Lock(l *arch.Spinlock) {
	intr_off()
	for sync_test_and_set(&l.Locked) == 1 {
	}
	sync_barrier()
}

func (p *Port) Unlock(l *arch.Spinlock) {
	sync_release(&l.Locked)
	intr_on()
}

func (p *Port) TrapCause() (scause, sepc, stval uint64) {
	return uint64(r_scause()), uint64(r_sepc()), uint64(r_stval())
}

var _ arch.Port = (*Port)(nil)
