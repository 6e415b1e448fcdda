package main

//go:nosplit
//export Kerneltrap
func Kerneltrap() {
	scause, sepc, stval := theKernel.Port.TrapCause()
	theKernel.Dispatch.Dispatch(scause, sepc, stval)
}

// wireTrapDispatch connects the portable dispatcher's callbacks to this
// kernel's scheduler and panic path. Called once from KMain before
// interrupts are enabled.
func wireTrapDispatch() {
	theKernel.Dispatch.OnTimerTick = theKernel.Scheduler.Tick
	theKernel.Dispatch.OnPanic = kernelPanic
}
