package pmm

import "errors"

var (
	// ErrOutOfMemory is returned when no free block of a suitable order exists.
	ErrOutOfMemory = errors.New("pmm: out of memory")
	// ErrInvalidOrder is returned when a requested order exceeds MaxOrder.
	ErrInvalidOrder = errors.New("pmm: invalid order")
)
