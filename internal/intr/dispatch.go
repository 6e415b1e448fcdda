package intr

// ExternalSource is the claim/dispatch/complete contract a PLIC-shaped
// driver exposes to the trap dispatcher for routing external interrupts.
// It is deliberately separate from Controller: claim/complete are not part
// of the generic five-op façade record, only of the concrete external
// interrupt source currently wired to hardware.
type ExternalSource interface {
	// Claim returns the highest-priority pending source id above
	// threshold, or 0 if none is pending.
	Claim() uint32
	// Dispatch invokes whatever handler was registered for id via
	// Controller.SetHandler.
	Dispatch(id uint32)
	// Complete acknowledges id, which must be the value most recently
	// returned by Claim.
	Complete(id uint32)
}

// Async interrupt cause codes (scause with the top bit cleared).
const (
	CauseSupervisorSoftware = 1
	CauseSupervisorTimer    = 5
	CauseSupervisorExternal = 9
)

// Synchronous exception cause codes relevant to dispatch.
const (
	CauseEcallFromU        = 8
	CauseInstructionPageFault = 12
	CauseLoadPageFault        = 13
	CauseStoreAMOPageFault    = 15
)

const asyncBit = uint64(1) << 63

// PanicFunc is invoked for any trap dispatch has no recovery path for. It
// never returns on real hardware (the caller halts the hart); tests supply
// one that records the call instead.
type PanicFunc func(reason string, sepc, scause, stval uint64)

// Dispatcher is the portable half of trap dispatch: it decides, from
// scause alone, whether to tick the scheduler, route to the external
// interrupt source, or panic — the riscv64 trap vector (internal/arch)
// owns saving/restoring registers and calls this once per trap.
type Dispatcher struct {
	OnTimerTick func()
	External    ExternalSource
	OnPanic     PanicFunc
}

// Dispatch routes one trap by its scause value.
func (d *Dispatcher) Dispatch(scause, sepc, stval uint64) {
	if scause&asyncBit != 0 {
		d.dispatchAsync(scause&^asyncBit, sepc, stval)
		return
	}
	d.dispatchSync(scause, sepc, stval)
}

func (d *Dispatcher) dispatchAsync(code, sepc, stval uint64) {
	switch code {
	case CauseSupervisorTimer:
		if d.OnTimerTick != nil {
			d.OnTimerTick()
		}
	case CauseSupervisorExternal:
		d.dispatchExternal()
	default:
		d.panic("unhandled asynchronous interrupt", sepc, code|asyncBit, stval)
	}
}

func (d *Dispatcher) dispatchExternal() {
	if d.External == nil {
		d.panic("external interrupt with no source bound", 0, asyncBit|CauseSupervisorExternal, 0)
		return
	}
	id := d.External.Claim()
	if id == 0 {
		return
	}
	d.External.Dispatch(id)
	d.External.Complete(id)
}

func (d *Dispatcher) dispatchSync(code, sepc, stval uint64) {
	switch code {
	case CauseInstructionPageFault, CauseLoadPageFault, CauseStoreAMOPageFault:
		d.panic("page fault", sepc, code, stval)
	case CauseEcallFromU:
		d.panic("ecall from user mode: syscall path not implemented", sepc, code, stval)
	default:
		d.panic("unhandled exception", sepc, code, stval)
	}
}

func (d *Dispatcher) panic(reason string, sepc, scause, stval uint64) {
	if d.OnPanic != nil {
		d.OnPanic(reason, sepc, scause, stval)
		return
	}
	panic(reason)
}
