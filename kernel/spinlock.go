package main

import "rvkernel/internal/arch"

// spinlock is a raw test-and-set lock: a single word, zero value unlocked.
// The atomic primitives that operate on it live in internal/arch/riscv64,
// reached through theKernel.Port, so there is exactly one go:linkname
// declaration per symbol in the whole tree.
type spinlock = arch.Spinlock

func initlock(lk *spinlock) { *lk = arch.Spinlock{} }

func acquire(lk *spinlock) { theKernel.Port.Lock(lk) }

func release(lk *spinlock) { theKernel.Port.Unlock(lk) }
