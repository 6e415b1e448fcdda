package main

import "unsafe"

// kernelPanic logs the message and the faulting register state, walks
// the stack via the frame-pointer chain, then halts the hart forever.
// It never returns.
func kernelPanic(reason string, sepc, scause, stval uint64) {
	printf("KERNEL PANIC: %s\n", reason)
	printf("  sepc=%x scause=%x stval=%x\n", int(sepc), int(scause), int(stval))
	walkStack(currentFramePointer())
	for {
	}
}

// stackFrame mirrors the standard riscv64 frame-pointer layout: the saved
// frame pointer and return address sit immediately below the frame's own
// base, at fp-16 and fp-8.
type stackFrame struct {
	savedFP uintptr
	retAddr uintptr
}

func walkStack(fp uintptr) {
	printf("stack trace:\n")
	for i := 0; i < 32 && fp != 0; i++ {
		frame := (*stackFrame)(unsafe.Pointer(fp - 16))
		printf("  #%d %x\n", i, int(frame.retAddr))
		if frame.savedFP <= fp {
			break
		}
		fp = frame.savedFP
	}
}

//go:linkname currentFramePointer currentFramePointer
func currentFramePointer() uintptr
