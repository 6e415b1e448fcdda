package main

import (
	"encoding/binary"

	"rvkernel/internal/fdt"
	"rvkernel/internal/plic"
)

const defaultNdev = 1024

// initPLIC binds the PLIC driver as theKernel's interrupt controller,
// mapping its MMIO window into the direct map and reading the source
// count from riscv,ndev if the node advertises one.
func initPLIC(dt *fdt.DeviceTree, id fdt.NodeId) {
	regions, err := dt.Reg(id)
	if err != nil || len(regions) == 0 {
		printf("initPLIC: no reg property\n")
		return
	}
	phys := uintptr(regions[0].Addr)
	size := uintptr(regions[0].Size)
	mapHHDM(phys, size)

	ndev := uint32(defaultNdev)
	if p, ok := dt.Node(id).Property("riscv,ndev"); ok {
		if raw, ok := p.(fdt.RawProperty); ok && len(raw.Value) >= 4 {
			ndev = binary.BigEndian.Uint32(raw.Value)
		}
	}

	io := plic.NewMMIO(identityToVirt(phys))
	driver := plic.New(io, ndev)

	if err := theKernel.Intr.Register(driver); err != nil {
		printf("initPLIC: register failed\n")
		return
	}
	theKernel.Dispatch.External = driver
}
