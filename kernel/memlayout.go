package main

// Compiled-in fallback addresses for the qemu "virt" machine, based on
// qemu's hw/riscv/virt.c. kvminit identity-maps the UART and PLIC windows
// at these addresses before the device tree is parsed; afterwards initPLIC
// maps the PLIC at the address its own reg property gives, and RAM comes
// from the memory nodes. No driver rebinds the UART or the CLINT.
//
// 00001000 -- boot ROM, provided by qemu
// 02000000 -- CLINT
// 0C000000 -- PLIC
// 10000000 -- uart0
// 10001000 -- virtio disk
// 80000000 -- boot ROM jumps here in machine mode; -kernel loads here

const (
	fallbackUART0 = uintptr(0x10000000)
	fallbackUART0IRQ = 10
)

const (
	fallbackCLINT     = uintptr(0x2000000)
	fallbackCLINTBase = fallbackCLINT + 0xBFF8
)

const fallbackPLIC = uintptr(0x0c000000)

// the kernel expects RAM for kernel and user pages from KERNBASE to
// PHYSTOP; the real extent comes from the device tree's memory node once
// parsed, this is only the pre-FDT fallback that bounds bootPageAlloc's
// bump allocation before the buddy allocator has any real regions ingested.
const (
	KERNBASE = uintptr(0x80000000)
	PHYSTOP  = KERNBASE + 128*1024*1024
)
