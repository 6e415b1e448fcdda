package sched

import "errors"

var (
	// ErrNoAvailableThreads is returned by Spawn when the id bitset is full.
	ErrNoAvailableThreads = errors.New("sched: no available thread ids")
)
