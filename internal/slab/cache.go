// Package slab implements the object-cache allocator layered on top of the
// buddy allocator: typed, O(1) alloc/free of fixed-size objects backed by
// whole buddy blocks ("slabs"), each subdivided by an in-band descriptor and
// index-based next-list.
package slab

// PageAllocator is the subset of pmm.Allocator a Cache depends on. Defined
// locally so this package never imports internal/pmm directly, keeping the
// slab layer testable against a fake buddy.
type PageAllocator interface {
	Alloc(order int) (uintptr, error)
	Free(addr uintptr, order int)
}

// PhysToVirt translates a physical block address into the address the
// cache should dereference — the same HHDM contract as pmm.PhysToVirt.
type PhysToVirt func(phys uintptr) uintptr

// Cache is an object cache: a named pool of fixed-size, fixed-alignment
// objects allocated from buddy blocks of a fixed order.
type Cache struct {
	Name           string
	slabOrder      int
	objectSize     uintptr
	alignLog       uint
	objectsPerSlab int

	freeCount  int
	totalCount int

	unused  *slabDescriptor
	partial *slabDescriptor
	full    *slabDescriptor

	pages  PageAllocator
	toVirt PhysToVirt
}

// NewCache constructs an empty cache. objectSize must be >= the alignment
// implied by alignLog: the padding inserted to align each object never
// exceeds a single object's worth of wasted space.
func NewCache(name string, objectSize uintptr, alignLog uint, slabOrder int, pages PageAllocator, toVirt PhysToVirt) *Cache {
	return &Cache{
		Name:           name,
		slabOrder:      slabOrder,
		objectSize:     objectSize,
		alignLog:       alignLog,
		objectsPerSlab: ObjectsPerSlab(slabOrder, objectSize, alignLog),
		pages:          pages,
		toVirt:         toVirt,
	}
}

// ObjectsPerSlab returns the cache's precomputed per-slab object count.
func (c *Cache) ObjectsPerSlab() int { return c.objectsPerSlab }

// FreeCount returns the number of currently-unallocated objects across all
// of the cache's slabs.
func (c *Cache) FreeCount() int { return c.freeCount }

// TotalCount returns the number of objects the cache has ever provisioned
// (i.e. objectsPerSlab times the number of slabs it has grown to).
func (c *Cache) TotalCount() int { return c.totalCount }

// Alloc returns a fresh object's address, preferring a partially-used slab,
// then an entirely unused one, then growing the cache by one slab.
func (c *Cache) Alloc() (uintptr, error) {
	if c.partial == nil && c.unused == nil {
		if _, err := c.grow(); err != nil {
			return 0, err
		}
	}

	var sd *slabDescriptor
	if c.partial != nil {
		sd = c.partial
		unlink(&c.partial, sd)
	} else {
		sd = c.unused
		unlink(&c.unused, sd)
	}

	virtBase := c.toVirt(sd.phys)
	nextList := nextListAt(virtBase, c.objectsPerSlab)

	idx := sd.firstFree
	sd.firstFree = nextList[idx]
	sd.freeCount--
	c.freeCount--

	objAddr := virtBase + objectsBaseOffset(c.objectsPerSlab, c.alignLog) + uintptr(idx)*c.objectSize

	if sd.freeCount == 0 {
		prepend(&c.full, sd)
	} else {
		prepend(&c.partial, sd)
	}
	return objAddr, nil
}

// Free returns an object to its owning slab, pushing its index onto the
// head of that slab's next-list (LIFO, for cache-line reuse).
func (c *Cache) Free(addr uintptr) {
	slabSize := uintptr(1) << uint(c.slabOrder) * pageSize

	sd, list := findOwner(c.full, addr, c, slabSize)
	if sd == nil {
		sd, list = findOwner(c.partial, addr, c, slabSize)
	}
	if sd == nil {
		panic("slab: free of address not owned by any slab in this cache")
	}

	virtBase := c.toVirt(sd.phys)
	nextList := nextListAt(virtBase, c.objectsPerSlab)
	objectsBase := virtBase + objectsBaseOffset(c.objectsPerSlab, c.alignLog)
	idx := uint16((addr - objectsBase) / c.objectSize)

	nextList[idx] = sd.firstFree
	sd.firstFree = idx
	sd.freeCount++
	c.freeCount++

	switch list {
	case listFull:
		unlink(&c.full, sd)
	case listPartial:
		unlink(&c.partial, sd)
	}

	if int(sd.freeCount) == c.objectsPerSlab {
		prepend(&c.unused, sd)
	} else {
		prepend(&c.partial, sd)
	}
}

type slabList int

const (
	listFull slabList = iota
	listPartial
)

func findOwner(head *slabDescriptor, addr uintptr, c *Cache, slabSize uintptr) (*slabDescriptor, slabList) {
	for sd := head; sd != nil; sd = sd.next {
		base := c.toVirt(sd.phys)
		if addr >= base && addr < base+slabSize {
			if sd.freeCount == 0 {
				return sd, listFull
			}
			return sd, listPartial
		}
	}
	return nil, 0
}

// grow allocates a fresh buddy block, initializes its descriptor and
// next-list, and places it on the unused list.
func (c *Cache) grow() (*slabDescriptor, error) {
	phys, err := c.pages.Alloc(c.slabOrder)
	if err != nil {
		return nil, err
	}
	virtBase := c.toVirt(phys)

	sd := descriptorAt(virtBase)
	*sd = slabDescriptor{phys: phys, freeCount: uint32(c.objectsPerSlab), firstFree: 0}

	nextList := nextListAt(virtBase, c.objectsPerSlab)
	for i := 0; i < c.objectsPerSlab-1; i++ {
		nextList[i] = uint16(i + 1)
	}
	if c.objectsPerSlab > 0 {
		nextList[c.objectsPerSlab-1] = endOfList
	}

	c.totalCount += c.objectsPerSlab
	c.freeCount += c.objectsPerSlab

	prepend(&c.unused, sd)
	return sd, nil
}

func unlink(head **slabDescriptor, sd *slabDescriptor) {
	if sd.prev != nil {
		sd.prev.next = sd.next
	} else {
		*head = sd.next
	}
	if sd.next != nil {
		sd.next.prev = sd.prev
	}
	sd.prev, sd.next = nil, nil
}

func prepend(head **slabDescriptor, sd *slabDescriptor) {
	sd.prev = nil
	sd.next = *head
	if *head != nil {
		(*head).prev = sd
	}
	*head = sd
}
