package riscv64

import _ "unsafe"

// CSR accessors are implemented in assembly and bound in by symbol name
// via go:linkname; there is no portable way to read a control-and-status
// register from Go.

//go:linkname r_scause r_scause
func r_scause() uintptr

//go:linkname r_sepc r_sepc
func r_sepc() uintptr

//go:linkname r_stval r_stval
func r_stval() uintptr

//go:linkname intr_on intr_on
func intr_on()

//go:linkname intr_off intr_off
func intr_off()
