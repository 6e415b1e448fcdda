package main

import (
	"rvkernel/internal/arch/riscv64"
	"rvkernel/internal/console"
	"rvkernel/internal/fdt"
	"rvkernel/internal/intr"
	"rvkernel/internal/pmm"
	"rvkernel/internal/sched"
	"rvkernel/internal/slab"
)

const (
	stackOrder = 2 // 4 pages per kernel thread stack
	slabOrder  = 0 // one page per slab, for every cache this kernel spawns
)

// Kernel encapsulates every subsystem's global state behind one value,
// so trap handlers and //export'd entry points — which cannot take
// parameters — have a single process-wide accessor instead of a scatter
// of package-level globals. theKernel below is that accessor.
type Kernel struct {
	Port *riscv64.Port

	Pages      *pmm.Allocator
	CacheCache *slab.Cache
	Threads    *slab.Cache

	Scheduler *sched.Scheduler
	Intr      intr.Facade
	Dispatch  intr.Dispatcher
	Console   console.Registry

	tree *fdt.DeviceTree
}

// theKernel is the single kernel instance. Kerneltrap and every
// //export'd entry point reach state through it instead of taking
// parameters or touching package-level allocator globals directly.
var theKernel Kernel
