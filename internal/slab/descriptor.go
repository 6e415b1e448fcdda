package slab

import "unsafe"

// slabDescriptor is placed in-band at the base of every slab block,
// immediately followed by the next-list array of object indices. Field
// order is chosen so unsafe.Sizeof(slabDescriptor{}) is exactly 32 bytes
// on every 64-bit target this kernel builds for, matching the D=32 used
// throughout the objects-per-slab worked examples.
type slabDescriptor struct {
	prev, next *slabDescriptor
	phys       uintptr
	freeCount  uint32
	firstFree  uint16
	_          uint16
}

const descriptorSize = unsafe.Sizeof(slabDescriptor{})
const indexSize = 2 // sizeof(u16) in the in-band next-list

// ObjectsPerSlab computes how many fixed-size objects of the given size and
// alignment fit in a slab of order slabOrder, after the descriptor and
// next-list. It estimates a count ignoring alignment padding, then backs
// off by one object if the padding needed to align the object region
// would not otherwise fit in the leftover space.
func ObjectsPerSlab(slabOrder int, objectSize uintptr, alignLog uint) int {
	slabSize := slabSizeFor(slabOrder)
	align := uintptr(1) << alignLog

	avail := slabSize - descriptorSize
	n := avail / (indexSize + objectSize)
	wastage := avail - n*(indexSize+objectSize)

	listEnd := descriptorSize + n*indexSize
	gap := (align - listEnd%align) % align
	if gap > wastage {
		n--
	}
	return int(n)
}

func slabSizeFor(slabOrder int) uintptr {
	return uintptr(1) << uint(slabOrder) * pageSize
}

// pageSize is fixed at 4096 across every worked example in the spec; it is
// declared here rather than imported from kernel/ so this package stays
// free of any dependency on the boot-time kernel singleton.
const pageSize = 4096

func descriptorAt(virtBase uintptr) *slabDescriptor {
	return (*slabDescriptor)(unsafe.Pointer(virtBase))
}

func nextListAt(virtBase uintptr, n int) []uint16 {
	base := virtBase + descriptorSize
	return unsafe.Slice((*uint16)(unsafe.Pointer(base)), n)
}

// objectsBaseOffset returns the byte offset from the slab's virtual base to
// its first object, aligned to 2^alignLog past the next-list.
func objectsBaseOffset(n int, alignLog uint) uintptr {
	align := uintptr(1) << alignLog
	listEnd := descriptorSize + uintptr(n)*indexSize
	return alignUp(listEnd, align)
}

func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}
