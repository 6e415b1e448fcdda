package slab

import "unsafe"

// cacheObjectSize and cacheAlignLog describe how a Cache value itself is
// laid out when the cache-cache allocates one — Cache's own widest field is
// a pointer, so 8-byte (2^3) alignment is sufficient.
const (
	cacheObjectSize = unsafe.Sizeof(Cache{})
	cacheAlignLog   = 3
)

// NewCacheCache bootstraps the "cache-cache": a statically-constructed
// Cache whose objects are Cache values, used to allocate every other
// Cache in the system. It is the first allocator brought up, before any
// other object cache exists.
func NewCacheCache(slabOrder int, pages PageAllocator, toVirt PhysToVirt) *Cache {
	return NewCache("cache-cache", cacheObjectSize, cacheAlignLog, slabOrder, pages, toVirt)
}

// Spawn allocates a new Cache from the receiver (which must be the
// cache-cache, or another cache-cache-like cache of Cache-sized objects)
// and initializes it in place.
func (cc *Cache) Spawn(name string, objectSize uintptr, alignLog uint, slabOrder int, pages PageAllocator, toVirt PhysToVirt) (*Cache, error) {
	addr, err := cc.Alloc()
	if err != nil {
		return nil, err
	}
	nc := (*Cache)(unsafe.Pointer(addr))
	*nc = Cache{
		Name:           name,
		slabOrder:      slabOrder,
		objectSize:     objectSize,
		alignLog:       alignLog,
		objectsPerSlab: ObjectsPerSlab(slabOrder, objectSize, alignLog),
		pages:          pages,
		toVirt:         toVirt,
	}
	return nc, nil
}
