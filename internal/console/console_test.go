package console_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rvkernel/internal/console"
)

func TestWriteDrainsToHighestPriorityBackend(t *testing.T) {
	var r console.Registry
	var low, high []byte

	r.AddBackend(console.Backend{Name: "early-log", Priority: 1, WriteBytes: func(p []byte) {
		low = append(low, p...)
	}})
	r.AddBackend(console.Backend{Name: "uart", Priority: 10, WriteBytes: func(p []byte) {
		high = append(high, p...)
	}})

	r.Write([]byte("hello"))

	require.Equal(t, "hello", string(high))
	require.Empty(t, low)
}

func TestWriteBeforeAnyBackendIsANoop(t *testing.T) {
	var r console.Registry
	require.NotPanics(t, func() { r.Write([]byte("x")) })
}

func TestBackendsOrderedByDescendingPriority(t *testing.T) {
	var r console.Registry
	r.AddBackend(console.Backend{Name: "a", Priority: 5})
	r.AddBackend(console.Backend{Name: "c", Priority: 20})
	r.AddBackend(console.Backend{Name: "b", Priority: 10})

	names := make([]string, 0, 3)
	for _, b := range r.Backends() {
		names = append(names, b.Name)
	}
	require.Equal(t, []string{"c", "b", "a"}, names)
}
