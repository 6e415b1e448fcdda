package main

import (
	"unsafe"

	"rvkernel/internal/arch/riscv64"
	"rvkernel/internal/fdt"
	"rvkernel/internal/pmm"
	"rvkernel/internal/sched"
	"rvkernel/internal/slab"
)

// maxFDTBlobSize bounds the slice built over the raw pointer boot hands
// in; the parser bounds its own reads by the header's structure- and
// strings-block offsets and sizes, so this just needs to be large enough
// to cover any blob qemu -machine virt produces.
const maxFDTBlobSize = 4 << 20

// func main is required by the toolchain for a package main but is never
// called: the real entry point is KMain, invoked via the assembly boot
// stub through the //export directive below.
func main() {}

//export KMain
func KMain(fdtPtr uintptr) {
	theKernel.Port = riscv64.New()
	theKernel.Port.InstallTrapVector()

	printf("kvminit...  ")
	kvminit()
	printf("OK\n")

	printf("kvminithart...  ")
	kvminithart(kernel_pagetable)
	printf("OK\n")

	initConsole()
	printf("console up\n")

	blob := unsafe.Slice((*byte)(unsafe.Pointer(fdtPtr)), maxFDTBlobSize)
	tree, err := fdt.Parse(blob)
	if err != nil {
		printf("fdt parse failed\n")
		for {
		}
	}
	theKernel.tree = tree
	printf("fdt: %d nodes\n", tree.NodeCount())

	initMemory(tree)
	initScheduler()
	spawnKernelThreads()

	walkModules(tree)

	wireTrapDispatch()
	theKernel.Port.EnableInterrupts()

	scheduler()
}

// initMemory ingests every memory@... node's reg entries into the buddy
// allocator, then bootstraps the cache-cache slab allocator over it.
func initMemory(tree *fdt.DeviceTree) {
	root := tree.Root()
	for _, child := range tree.Node(root).Children() {
		name := tree.Node(child).Name
		if len(name) < 6 || name[:6] != "memory" {
			continue
		}
		regions, err := tree.Reg(child)
		if err != nil {
			continue
		}
		for _, r := range regions {
			mapHHDM(uintptr(r.Addr), uintptr(r.Size))
			if theKernel.Pages == nil {
				theKernel.Pages = pmm.NewAllocator(PGSIZE, identityToVirt)
			}

			regionStart := uintptr(r.Addr)
			regionEnd := regionStart + uintptr(r.Size)
			// The kernel image and its boot-time page-table pages were
			// carved out of this region by bootPageAlloc before the buddy
			// allocator existed; never hand those pages out twice.
			if bootPageCursor > regionStart && bootPageCursor < regionEnd {
				regionStart = PGGROUNDDOWN(bootPageCursor + PGSIZE - 1)
			}
			if regionStart >= regionEnd {
				continue
			}

			startPage := uint64(regionStart) / uint64(PGSIZE)
			pageCount := (uint64(regionEnd) - uint64(regionStart)) / uint64(PGSIZE)
			theKernel.Pages.Ingest(startPage, pageCount)
		}
	}
	if theKernel.Pages == nil {
		panic("initMemory: no usable memory node")
	}

	theKernel.CacheCache = slab.NewCacheCache(slabOrder, theKernel.Pages, identityToVirt)
	threadCache, err := theKernel.CacheCache.Spawn("thread", unsafe.Sizeof(sched.Thread{}), 3, slabOrder, theKernel.Pages, identityToVirt)
	if err != nil {
		panic("initMemory: cannot spawn thread cache")
	}
	theKernel.Threads = threadCache
}

func initScheduler() {
	sentinelStack := bootPageAlloc()
	theKernel.Scheduler = sched.New(theKernel.Port, theKernel.Threads, theKernel.Pages, identityToVirt, stackOrder, sentinelEntryAddr(), identityToVirt(sentinelStack)+PGSIZE)
}

// spawnKernelThreads brings up the kernel's fixed set of always-on
// worker threads: background bring-up work that runs cooperatively
// alongside the sentinel, scheduled the same as any other thread.
func spawnKernelThreads() {
	for _, entry := range []uintptr{counterWorkerEntryAddr()} {
		if _, err := theKernel.Scheduler.Spawn(entry); err != nil {
			printf("spawnKernelThreads: spawn failed\n")
		}
	}
}

// scheduler is the idle loop the boot hart falls into once bring-up is
// done: every subsequent transfer of control happens via a trap.
func scheduler() {
	for {
	}
}

//go:linkname sentinelEntryAddr sentinelEntryAddr
func sentinelEntryAddr() uintptr

//go:linkname counterWorkerEntryAddr counterWorkerEntryAddr
func counterWorkerEntryAddr() uintptr
