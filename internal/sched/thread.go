package sched

// ThreadId indexes the id bitset. 8192 possible values; 0 is reserved for
// the statically-allocated sentinel thread.
type ThreadId uint16

// SentinelID is the sentinel thread's fixed id.
const SentinelID ThreadId = 0

// ThreadLevel distinguishes kernel from user threads. Only kernel threads
// are spawned by this scheduler, per its non-goals, but the field is kept
// so a future user-mode path has somewhere to record it.
type ThreadLevel int

const (
	LevelKernel ThreadLevel = iota
	LevelUser
)

// RegisterFrame is an architecture-opaque save area big enough for
// riscv64's 32 GPRs. Ports for narrower architectures use a prefix of it;
// the scheduler never interprets the contents itself.
type RegisterFrame [32]uint64

// Thread is one schedulable unit: an id, a register frame an ArchPort
// reads and writes, a stack, and the run-queue link.
type Thread struct {
	ID        ThreadId
	Level     ThreadLevel
	Registers RegisterFrame
	StackTop  uintptr

	next *Thread
}
