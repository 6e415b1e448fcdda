// Package sched implements cooperative round-robin scheduling over a
// singly-linked run-queue, decoupled from real CSR access behind ArchPort
// so the ordering property can be exercised on a host.
package sched

import "unsafe"

// ArchPort is the subset of the architecture port the scheduler drives:
// preparing a fresh thread's register frame and switching to a thread that
// is about to become current. Defined locally, structurally satisfied by
// internal/arch/riscv64.Port, so this package never imports internal/arch.
type ArchPort interface {
	SetupThread(t *Thread, entry uintptr, sp uintptr)
	SwitchTo(t *Thread)
}

// ThreadAllocator is the subset of slab.Cache the scheduler needs to
// provision Thread values.
type ThreadAllocator interface {
	Alloc() (uintptr, error)
}

// PageAllocator is the subset of pmm.Allocator the scheduler needs to
// provision thread stacks.
type PageAllocator interface {
	Alloc(order int) (uintptr, error)
}

// PhysToVirt translates a stack's physical block address into the address
// the scheduler should record as StackTop.
type PhysToVirt func(phys uintptr) uintptr

// Scheduler owns the run-queue and the sentinel thread. The sentinel is
// statically allocated (not drawn from the thread cache) and is always
// live: id 0 is permanently marked allocated in the id bitset.
type Scheduler struct {
	port       ArchPort
	threads    ThreadAllocator
	pages      PageAllocator
	toVirt     PhysToVirt
	stackOrder int

	ids      idBitset
	sentinel Thread
	current  *Thread // head of the circular run-queue: the running thread
}

// New constructs a scheduler with the sentinel thread as the sole
// run-queue member. sentinelEntry is the address of the architecture's
// wfi-loop stub; sentinelStack is a statically-reserved stack, not drawn
// from the buddy allocator.
func New(port ArchPort, threads ThreadAllocator, pages PageAllocator, toVirt PhysToVirt, stackOrder int, sentinelEntry, sentinelStack uintptr) *Scheduler {
	s := &Scheduler{
		port:       port,
		threads:    threads,
		pages:      pages,
		toVirt:     toVirt,
		stackOrder: stackOrder,
	}
	s.ids.set(SentinelID)
	s.sentinel.ID = SentinelID
	s.sentinel.Level = LevelKernel
	s.sentinel.StackTop = sentinelStack
	s.sentinel.next = &s.sentinel
	port.SetupThread(&s.sentinel, sentinelEntry, sentinelStack)
	s.current = &s.sentinel
	return s
}

// Spawn allocates a fresh id, a Thread from the thread cache, and a stack
// of stackOrder buddy pages, then appends it to the run-queue.
func (s *Scheduler) Spawn(entry uintptr) (ThreadId, error) {
	id, ok := s.ids.alloc()
	if !ok {
		return 0, ErrNoAvailableThreads
	}

	addr, err := s.threads.Alloc()
	if err != nil {
		s.ids.clear(id)
		return 0, err
	}

	phys, err := s.pages.Alloc(s.stackOrder)
	if err != nil {
		s.ids.clear(id)
		return 0, err
	}
	stackTop := s.toVirt(phys) + (uintptr(1)<<uint(s.stackOrder))*pageSize

	t := (*Thread)(unsafe.Pointer(addr))
	*t = Thread{ID: id, Level: LevelKernel, StackTop: stackTop}
	s.port.SetupThread(t, entry, stackTop)

	s.appendToQueue(t)
	return id, nil
}

func (s *Scheduler) appendToQueue(t *Thread) {
	tail := s.current
	for tail.next != s.current {
		tail = tail.next
	}
	t.next = s.current
	tail.next = t
}

// Current returns the id of the currently-running thread.
func (s *Scheduler) Current() ThreadId { return s.current.ID }

// Tick rotates the run-queue head to the next thread and dispatches it.
// It is the only method that changes the current thread; it is called
// from the supervisor_timer trap path.
func (s *Scheduler) Tick() {
	s.current = s.current.next
	s.port.SwitchTo(s.current)
}

const pageSize = uintptr(4096)
