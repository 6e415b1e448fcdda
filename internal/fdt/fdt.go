// Package fdt parses a Flattened Device Tree blob (the binary hardware
// description handed to the kernel by firmware) into an immutable,
// node-id-indexed tree that drivers query by typed property.
package fdt

import "encoding/binary"

const magic = 0xD00DFEED

const (
	tokenBeginNode = 1
	tokenEndNode   = 2
	tokenProp      = 3
	tokenNop       = 4
	tokenEnd       = 9
)

// header mirrors the fixed-index FDT header fields used by this parser.
// Fields not needed for parsing (last_comp_version, boot_cpuid_phys,
// mem_rsvmap) are read but otherwise unused.
type header struct {
	magic         uint32
	totalSize     uint32
	offStruct     uint32
	offStrings    uint32
	offMemRsvmap  uint32
	version       uint32
	lastCompVer   uint32
	bootCpuidPhys uint32
	sizeStrings   uint32
	sizeStruct    uint32
}

const headerWords = 10

func parseHeader(blob []byte) (header, error) {
	if len(blob) < headerWords*4 {
		return header{}, ErrInvalidDeviceTree
	}
	u32 := func(i int) uint32 { return binary.BigEndian.Uint32(blob[i*4 : i*4+4]) }
	h := header{
		magic:         u32(0),
		totalSize:     u32(1),
		offStruct:     u32(2),
		offStrings:    u32(3),
		offMemRsvmap:  u32(4),
		version:       u32(5),
		lastCompVer:   u32(6),
		bootCpuidPhys: u32(7),
		sizeStrings:   u32(8),
		sizeStruct:    u32(9),
	}
	if h.magic != magic {
		return header{}, ErrMagicMismatch
	}
	return h, nil
}

// cursor walks the big-endian 32-bit-word structure block.
type cursor struct {
	blob []byte
	pos  int // byte offset, always a multiple of 4
}

func (c *cursor) done() bool { return c.pos >= len(c.blob) }

func (c *cursor) u32() (uint32, error) {
	if c.pos+4 > len(c.blob) {
		return 0, ErrInvalidDeviceTree
	}
	v := binary.BigEndian.Uint32(c.blob[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// cstring reads a NUL-terminated string starting at c.pos and advances past
// it, rounding up to the next 4-byte boundary as the format requires.
func (c *cursor) cstring() (string, error) {
	start := c.pos
	i := start
	for {
		if i >= len(c.blob) {
			return "", ErrInvalidDeviceTree
		}
		if c.blob[i] == 0 {
			break
		}
		i++
	}
	s := string(c.blob[start:i])
	n := i + 1 - start
	c.pos = start + roundUp4(n)
	return s, nil
}

// bytes reads n raw bytes, advancing past the 4-byte-rounded length.
func (c *cursor) bytes(n uint32) ([]byte, error) {
	if c.pos+int(n) > len(c.blob) {
		return nil, ErrInvalidDeviceTree
	}
	b := c.blob[c.pos : c.pos+int(n)]
	c.pos += roundUp4(int(n))
	return b, nil
}

func roundUp4(n int) int { return (n + 3) &^ 3 }

func lookupString(strings []byte, off uint32) (string, error) {
	if int(off) > len(strings) {
		return "", ErrInvalidDeviceTree
	}
	end := int(off)
	for end < len(strings) && strings[end] != 0 {
		end++
	}
	return string(strings[off:end]), nil
}

// parser holds the state threaded through the recursive-descent walk.
type parser struct {
	c        cursor
	strings  []byte
	dt       DeviceTree
}

// Parse validates and decodes an FDT blob into a DeviceTree. The returned
// tree's Property values with raw byte payloads alias into blob, which must
// outlive the DeviceTree.
func Parse(blob []byte) (*DeviceTree, error) {
	h, err := parseHeader(blob)
	if err != nil {
		return nil, err
	}
	if int(h.offStruct)+int(h.sizeStruct) > len(blob) {
		return nil, ErrInvalidDeviceTree
	}
	if int(h.offStrings)+int(h.sizeStrings) > len(blob) {
		return nil, ErrInvalidDeviceTree
	}

	structBlock := blob[h.offStruct : h.offStruct+h.sizeStruct]
	stringsBlock := blob[h.offStrings : h.offStrings+h.sizeStrings]

	p := &parser{
		c:       cursor{blob: structBlock},
		strings: stringsBlock,
		dt:      DeviceTree{phandles: make(map[uint32]NodeId)},
	}

	tok, err := p.c.u32()
	if err != nil {
		return nil, err
	}
	if tok != tokenBeginNode {
		return nil, ErrInvalidDeviceTree
	}
	name, err := p.c.cstring()
	if err != nil {
		return nil, err
	}
	if name != "" {
		return nil, ErrInvalidDeviceTree
	}

	rootID := p.newNode("", RootSentinel)
	if err := p.walkNode(rootID); err != nil {
		return nil, err
	}

	// The stream must close with END after the root's END_NODE.
	for {
		if p.c.done() {
			return nil, ErrInvalidDeviceTree
		}
		tok, err := p.c.u32()
		if err != nil {
			return nil, err
		}
		switch tok {
		case tokenNop:
			continue
		case tokenEnd:
			return &p.dt, nil
		default:
			return nil, ErrInvalidDeviceTree
		}
	}
}

func (p *parser) newNode(name string, parent NodeId) NodeId {
	id := NodeId(len(p.dt.nodes))
	p.dt.nodes = append(p.dt.nodes, Node{Name: name, Parent: parent})
	if parent != RootSentinel {
		pn := &p.dt.nodes[parent]
		pn.children = append(pn.children, child{name: name, id: id})
	}
	return id
}

// walkNode consumes tokens belonging to the node at id until its matching
// END_NODE (which it also consumes), recursing into any BEGIN_NODE it sees.
func (p *parser) walkNode(id NodeId) error {
	for {
		tok, err := p.c.u32()
		if err != nil {
			return err
		}
		switch tok {
		case tokenNop:
			continue
		case tokenProp:
			if err := p.readProp(id); err != nil {
				return err
			}
		case tokenBeginNode:
			name, err := p.c.cstring()
			if err != nil {
				return err
			}
			childID := p.newNode(name, id)
			if err := p.walkNode(childID); err != nil {
				return err
			}
		case tokenEndNode:
			return nil
		default:
			return ErrInvalidDeviceTree
		}
	}
}

func (p *parser) readProp(owner NodeId) error {
	length, err := p.c.u32()
	if err != nil {
		return err
	}
	nameOff, err := p.c.u32()
	if err != nil {
		return err
	}
	value, err := p.c.bytes(length)
	if err != nil {
		return err
	}
	name, err := lookupString(p.strings, nameOff)
	if err != nil {
		return err
	}
	prop, err := newProperty(name, value)
	if err != nil {
		return err
	}
	n := &p.dt.nodes[owner]
	n.Properties = append(n.Properties, prop)
	if ph, ok := prop.(PhandleProperty); ok {
		p.dt.phandles[ph.Value] = owner
	}
	return nil
}
