package main

import "unsafe"

//go:external kernel_pagetable
var kernel_pagetable pagetable_t

//go:linkname get_etext get_etext
func get_etext() uintptr

// hhdmBase is the virtual offset at which all ingested RAM is mapped a
// second time, direct-mapped, once kvminit has run. internal/pmm and
// internal/slab dereference through this offset (identityToVirt below)
// rather than working with physical addresses directly.
const hhdmBase = uintptr(0xffffffc000000000)

func identityToVirt(phys uintptr) uintptr { return hhdmBase + phys }

// bootPageAlloc is the bootstrap allocator page tables themselves are
// built from, before the buddy allocator exists. It hands
// out pages one at a time from the range [get_etext(), PHYSTOP), bumping
// a cursor forward; pages are never freed, since page tables are never
// torn down at runtime.
var bootPageCursor uintptr

func bootPageAlloc() uintptr {
	if bootPageCursor == 0 {
		bootPageCursor = get_etext()
	}
	if bootPageCursor+PGSIZE > PHYSTOP {
		panic("kvminit: out of boot pages")
	}
	pa := bootPageCursor
	bootPageCursor += PGSIZE
	memset(pa, 0, uint(PGSIZE))
	return pa
}

func kvminit() {
	kernel_pagetable = pagetable_t(bootPageAlloc())
	printf("kernel_pagetable at %x\n", int(kernel_pagetable))

	kvmmap(fallbackUART0, fallbackUART0, PGSIZE, PTE_R|PTE_W)
	kvmmap(fallbackPLIC, fallbackPLIC, 0x400000, PTE_R|PTE_W)
	kvmmap(KERNBASE, KERNBASE, get_etext()-KERNBASE, PTE_R|PTE_X)
	kvmmap(get_etext(), get_etext(), PHYSTOP-get_etext(), PTE_R|PTE_W)
}

// mapHHDM maps [phys, phys+size) a second time at hhdmBase+phys, giving
// the buddy and slab allocators a stable virtual address for every
// physical page they ever hand out, independent of identity mappings that
// may later be torn down.
func mapHHDM(phys, size uintptr) {
	kvmmap(hhdmBase+phys, phys, size, PTE_R|PTE_W)
}

//go:linkname kvminithart kvminithart
func kvminithart(pt pagetable_t)

func walk(pagetable pagetable_t, va uintptr, alloc bool) *pte_t {
	// Sv39 canonical addresses are either below MAXVA or sign-extended
	// into the top half at hhdmBase and above; anything in between has
	// no valid encoding in a three-level page table.
	if va >= MAXVA && va < hhdmBase {
		panic("walk")
	}

	for level := 2; level > 0; level-- {
		idx := PX(level, va)
		pte_ptr := (*pte_t)(unsafe.Pointer(uintptr(pagetable) + idx*8))

		if *pte_ptr&PTE_V != 0 {
			pagetable = pagetable_t(PTE2PA(*pte_ptr))
		} else {
			if !alloc {
				return nil
			}
			new_page := bootPageAlloc()
			*pte_ptr = PA2PTE(new_page) | PTE_V
			pagetable = pagetable_t(new_page)
		}
	}

	idx0 := PX(0, va)
	return (*pte_t)(unsafe.Pointer(uintptr(pagetable) + idx0*8))
}

func kvmmap(va uintptr, pa uintptr, sz uintptr, perm int) {
	if mappages(kernel_pagetable, va, sz, pa, perm) != 0 {
		panic("kvmmap")
	}
}

func mappages(pagetable pagetable_t, va uintptr, size uintptr, pa uintptr, perm int) int {
	a := PGGROUNDDOWN(va)
	last := PGGROUNDDOWN(va + size - 1)
	for {
		pte := walk(pagetable, a, true)
		if pte == nil {
			return -1
		}
		if *pte&PTE_V != 0 {
			panic("remap")
		}
		*pte = PA2PTE(pa) | pte_t(perm|PTE_V)
		if a == last {
			break
		}
		a += PGSIZE
		pa += PGSIZE
	}
	return 0
}
