// Package arch names the architecture port: the set of operations every
// other kernel package depends on instead of touching CSRs, trap
// vectors, or context-switch assembly directly. Keeping that surface
// small and behind an interface is what lets the scheduler, interrupt
// dispatch, and locking logic run and be tested on a host architecture.
// The concrete riscv64 implementation lives in internal/arch/riscv64.
package arch

import "rvkernel/internal/sched"

// Spinlock is a raw test-and-set lock; its zero value is unlocked. The
// port, not the lock itself, holds the atomic primitives, so Spinlock is
// just the memory the primitives operate on.
type Spinlock struct {
	Locked uint32
}

// Port is the architecture-specific surface the rest of the kernel is
// written against.
type Port interface {
	EnableInterrupts()
	DisableInterrupts()
	InstallTrapVector()
	SetupThread(t *sched.Thread, entry, sp uintptr)
	SwitchTo(t *sched.Thread)
	Lock(l *Spinlock)
	Unlock(l *Spinlock)
	// TrapCause reads the CSRs a trap handler needs to hand off to
	// intr.Dispatcher: scause, sepc, stval.
	TrapCause() (scause, sepc, stval uint64)
}
