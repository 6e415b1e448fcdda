package slab

// Cache.Alloc propagates whatever error the underlying page allocator
// returns (an out-of-memory condition when no buddy block is available)
// without wrapping it, so no sentinel is declared here for that case.

// endOfList is the next-list sentinel marking the tail of the free-object
// index chain.
const endOfList = 0xFFFF
