// Package fdttest builds synthetic FDT blobs for exercising internal/fdt
// and cmd/dtbtool without a real firmware-supplied blob. The token/string
// table layout follows the same encoding/binary big-endian idiom used by
// other_examples/tinyrange-cc__fdt.go, run here as a writer instead of a
// reader.
package fdttest

import (
	"bytes"
	"encoding/binary"
)

const (
	fdtMagic     = 0xD00DFEED
	fdtVersion   = 17
	fdtCompatVer = 16

	tokenBeginNode = 1
	tokenEndNode   = 2
	tokenProp      = 3
	tokenEnd       = 9
)

// Builder incrementally assembles a structure block and string table, then
// emits a complete FDT blob via Build.
type Builder struct {
	structure bytes.Buffer
	strings   bytes.Buffer
	stringOff map[string]uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{stringOff: make(map[string]uint32)}
}

func (b *Builder) putU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.structure.Write(buf[:])
}

func (b *Builder) pad4() {
	for b.structure.Len()%4 != 0 {
		b.structure.WriteByte(0)
	}
}

func (b *Builder) internString(s string) uint32 {
	if off, ok := b.stringOff[s]; ok {
		return off
	}
	off := uint32(b.strings.Len())
	b.strings.WriteString(s)
	b.strings.WriteByte(0)
	b.stringOff[s] = off
	return off
}

// BeginNode opens a node with the given name ("" for the root).
func (b *Builder) BeginNode(name string) {
	b.putU32(tokenBeginNode)
	b.structure.WriteString(name)
	b.structure.WriteByte(0)
	b.pad4()
}

// EndNode closes the most recently opened node.
func (b *Builder) EndNode() {
	b.putU32(tokenEndNode)
}

// Prop writes a raw property with the given name and payload.
func (b *Builder) Prop(name string, value []byte) {
	b.putU32(tokenProp)
	b.putU32(uint32(len(value)))
	b.putU32(b.internString(name))
	b.structure.Write(value)
	b.pad4()
}

// PropU32 writes a single big-endian u32 scalar property.
func (b *Builder) PropU32(name string, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.Prop(name, buf[:])
}

// PropU32Array writes a sequence of big-endian u32 cells (used for reg,
// interrupts-extended, etc).
func (b *Builder) PropU32Array(name string, vs []uint32) {
	buf := make([]byte, len(vs)*4)
	for i, v := range vs {
		binary.BigEndian.PutUint32(buf[i*4:], v)
	}
	b.Prop(name, buf)
}

// PropString writes a single NUL-terminated string property.
func (b *Builder) PropString(name, value string) {
	b.Prop(name, append([]byte(value), 0))
}

// PropStrings writes a NUL-separated string-list property (e.g. compatible).
func (b *Builder) PropStrings(name string, values []string) {
	var buf bytes.Buffer
	for _, v := range values {
		buf.WriteString(v)
		buf.WriteByte(0)
	}
	b.Prop(name, buf.Bytes())
}

// PropEmpty writes a zero-length marker property (e.g. interrupt-controller).
func (b *Builder) PropEmpty(name string) {
	b.Prop(name, nil)
}

// Build finalizes the structure/strings blocks into a full FDT header +
// blob, ready to hand to fdt.Parse.
func (b *Builder) Build() []byte {
	b.putU32(tokenEnd)
	for b.strings.Len()%4 != 0 {
		b.strings.WriteByte(0)
	}

	const headerSize = 40
	const memRsvmapSize = 16 // one terminating zero entry

	memRsvmapOff := uint32(headerSize)
	structOff := memRsvmapOff + memRsvmapSize
	structSize := uint32(b.structure.Len())
	stringsOff := structOff + structSize
	stringsSize := uint32(b.strings.Len())
	totalSize := stringsOff + stringsSize

	var hdr bytes.Buffer
	put := func(v uint32) {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], v)
		hdr.Write(buf[:])
	}
	put(fdtMagic)
	put(totalSize)
	put(structOff)
	put(stringsOff)
	put(memRsvmapOff)
	put(fdtVersion)
	put(fdtCompatVer)
	put(0) // boot_cpuid_phys
	put(stringsSize)
	put(structSize)

	out := make([]byte, totalSize)
	copy(out, hdr.Bytes())
	copy(out[structOff:], b.structure.Bytes())
	copy(out[stringsOff:], b.strings.Bytes())
	return out
}
