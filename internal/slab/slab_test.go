package slab_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"rvkernel/internal/pmm"
	"rvkernel/internal/slab"
)

func TestObjectsPerSlabWorkedExamples(t *testing.T) {
	require.Equal(t, 406, slab.ObjectsPerSlab(0, 8, 3))
	require.Equal(t, 119, slab.ObjectsPerSlab(0, 32, 4))
	require.Equal(t, 31, slab.ObjectsPerSlab(0, 128, 6))
}

// newBackedAllocator wires a real buddy allocator over a host byte arena,
// exactly as the kernel wires slab caches over pmm at boot.
func newBackedAllocator(t *testing.T, pages uint64) (*pmm.Allocator, slab.PhysToVirt) {
	t.Helper()
	const pageSize = uintptr(4096)
	arena := make([]byte, pages*uint64(pageSize)+uint64(pageSize))
	base := uintptr(unsafe.Pointer(&arena[0]))
	t.Cleanup(func() { _ = arena })
	toVirt := func(phys uintptr) uintptr { return base + phys }
	a := pmm.NewAllocator(pageSize, toVirt)
	a.Ingest(0, pages)
	return a, toVirt
}

func TestCacheAllocFreeRoundtripIsLIFO(t *testing.T) {
	buddy, toVirt := newBackedAllocator(t, 16)
	c := slab.NewCache("u128", 16, 4, 0, buddy, toVirt)

	const n = 20
	var addrs [n]uintptr
	for i := 0; i < n; i++ {
		addr, err := c.Alloc()
		require.NoError(t, err)
		addrs[i] = addr
	}

	c.Free(addrs[2]) // free the 3rd allocated object

	again, err := c.Alloc()
	require.NoError(t, err)
	require.Equal(t, addrs[2], again)
}

func TestCacheGrowsAcrossMultipleSlabs(t *testing.T) {
	buddy, toVirt := newBackedAllocator(t, 16)
	c := slab.NewCache("small", 8, 3, 0, buddy, toVirt)

	perSlab := c.ObjectsPerSlab()
	require.Greater(t, perSlab, 0)

	seen := make(map[uintptr]bool)
	for i := 0; i < perSlab+1; i++ {
		addr, err := c.Alloc()
		require.NoError(t, err)
		require.False(t, seen[addr], "object address reused while still live")
		seen[addr] = true
	}
	require.Equal(t, 2*perSlab, c.TotalCount())
}

func TestCacheFreeCountTracksAllocations(t *testing.T) {
	buddy, toVirt := newBackedAllocator(t, 16)
	c := slab.NewCache("tracked", 16, 4, 0, buddy, toVirt)

	perSlab := c.ObjectsPerSlab()
	addr, err := c.Alloc()
	require.NoError(t, err)
	require.Equal(t, perSlab-1, c.FreeCount())

	c.Free(addr)
	require.Equal(t, perSlab, c.FreeCount())
}

func TestCacheCacheBootstrapsCacheAllocation(t *testing.T) {
	buddy, toVirt := newBackedAllocator(t, 64)
	cc := slab.NewCacheCache(1, buddy, toVirt)

	child, err := cc.Spawn("threads", 32, 3, 0, buddy, toVirt)
	require.NoError(t, err)
	require.Equal(t, "threads", child.Name)

	addr, err := child.Alloc()
	require.NoError(t, err)
	require.NotZero(t, addr)
}
