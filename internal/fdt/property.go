package fdt

import (
	"encoding/binary"
	"strings"
)

// Property is the tagged-variant interface implemented by every known
// property type plus the RawProperty catch-all. Concrete types expose
// typed accessors (Strings, Value, Entries, ...) beyond the common Name.
type Property interface {
	Name() string
}

// CompatibleProperty is a NUL-separated list of compatible strings.
type CompatibleProperty struct{ Raw []byte }

func (CompatibleProperty) Name() string { return "compatible" }

// Strings iterates the NUL-terminated compatible strings in document order.
func (p CompatibleProperty) Strings() []string {
	return splitNulStrings(p.Raw)
}

// Contains reports whether any of the property's strings equals s.
func (p CompatibleProperty) Contains(s string) bool {
	for _, v := range p.Strings() {
		if v == s {
			return true
		}
	}
	return false
}

func splitNulStrings(raw []byte) []string {
	var out []string
	start := 0
	for i, b := range raw {
		if b == 0 {
			if i > start {
				out = append(out, string(raw[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		out = append(out, string(raw[start:]))
	}
	return out
}

// ModelProperty is the free-form board/model string.
type ModelProperty struct{ Value string }

func (ModelProperty) Name() string { return "model" }

// PhandleProperty is the node's own numeric handle.
type PhandleProperty struct{ Value uint32 }

func (PhandleProperty) Name() string { return "phandle" }

// StatusProperty is one of "okay", "disabled", "fail", "fail-sss".
type StatusProperty struct{ Value string }

func (StatusProperty) Name() string { return "status" }

// AddressCellsProperty is #address-cells.
type AddressCellsProperty struct{ Value uint32 }

func (AddressCellsProperty) Name() string { return "#address-cells" }

// SizeCellsProperty is #size-cells.
type SizeCellsProperty struct{ Value uint32 }

func (SizeCellsProperty) Name() string { return "#size-cells" }

// RegEntry is one (address, size) pair decoded from a reg property.
type RegEntry struct {
	Addr uint64
	Size uint64
}

// RegProperty is a sequence of (address-cells, size-cells) tuples whose
// cell widths are resolved from the owning node's parent.
type RegProperty struct{ Raw []byte }

func (RegProperty) Name() string { return "reg" }

// Entries decodes the raw bytes into (addr, size) pairs given the resolved
// address- and size-cell counts (each 1 or 2).
func (p RegProperty) Entries(addrCells, sizeCells int) ([]RegEntry, error) {
	if addrCells != 1 && addrCells != 2 {
		return nil, ErrUnsupportedCellSize
	}
	if sizeCells != 1 && sizeCells != 2 {
		return nil, ErrUnsupportedCellSize
	}
	stride := (addrCells + sizeCells) * 4
	if stride == 0 || len(p.Raw)%stride != 0 {
		return nil, ErrInvalidCellCounts
	}
	n := len(p.Raw) / stride
	out := make([]RegEntry, 0, n)
	off := 0
	for i := 0; i < n; i++ {
		addr, off2 := readCells(p.Raw, off, addrCells)
		size, off3 := readCells(p.Raw, off2, sizeCells)
		out = append(out, RegEntry{Addr: addr, Size: size})
		off = off3
	}
	return out, nil
}

func readCells(raw []byte, off int, cells int) (uint64, int) {
	if cells == 1 {
		return uint64(binary.BigEndian.Uint32(raw[off : off+4])), off + 4
	}
	return binary.BigEndian.Uint64(raw[off : off+8]), off + 8
}

// RangesProperty describes child-bus-to-parent-bus address translations.
type RangesProperty struct{ Raw []byte }

func (RangesProperty) Name() string { return "ranges" }

// DMARangesProperty is the dma-ranges analogue of RangesProperty.
type DMARangesProperty struct{ Raw []byte }

func (DMARangesProperty) Name() string { return "dma-ranges" }

// DMACoherentProperty is the empty dma-coherent marker.
type DMACoherentProperty struct{}

func (DMACoherentProperty) Name() string { return "dma-coherent" }

// DMANoncoherentProperty is the empty dma-noncoherent marker.
type DMANoncoherentProperty struct{}

func (DMANoncoherentProperty) Name() string { return "dma-noncoherent" }

// InterruptsProperty is the legacy interrupts specifier list, interpreted
// relative to a single inherited interrupt-parent.
type InterruptsProperty struct{ Raw []byte }

func (InterruptsProperty) Name() string { return "interrupts" }

// InterruptParentProperty is a phandle to the node's interrupt parent.
type InterruptParentProperty struct{ Value uint32 }

func (InterruptParentProperty) Name() string { return "interrupt-parent" }

// InterruptEntry is one decoded interrupts-extended entry: the resolved
// parent node and its raw specifier cells, already reassembled into a
// single u64.
type InterruptEntry struct {
	Parent    NodeId
	Specifier uint64
}

// InterruptsExtendedProperty encodes, per entry, a phandle followed by that
// phandle's own #interrupt-cells worth of specifier cells.
type InterruptsExtendedProperty struct{ Raw []byte }

func (InterruptsExtendedProperty) Name() string { return "interrupts-extended" }

// Entries decodes the property, resolving each entry's phandle against dt
// and reading the specifier width from the resolved parent's own
// #interrupt-cells property.
func (p InterruptsExtendedProperty) Entries(dt *DeviceTree) ([]InterruptEntry, error) {
	var out []InterruptEntry
	off := 0
	for off < len(p.Raw) {
		if off+4 > len(p.Raw) {
			return nil, ErrInvalidDeviceTree
		}
		ph := binary.BigEndian.Uint32(p.Raw[off : off+4])
		off += 4
		parent, ok := dt.LookupPhandle(ph)
		if !ok {
			return nil, ErrInvalidDeviceTree
		}
		cells := interruptCellsOf(dt, parent)
		if cells != 1 && cells != 2 {
			return nil, ErrUnsupportedCellSize
		}
		if off+cells*4 > len(p.Raw) {
			return nil, ErrInvalidDeviceTree
		}
		spec, off2 := readCells(p.Raw, off, cells)
		off = off2
		out = append(out, InterruptEntry{Parent: parent, Specifier: spec})
	}
	return out, nil
}

func interruptCellsOf(dt *DeviceTree, id NodeId) int {
	n := dt.Node(id)
	if prop, ok := n.Property("#interrupt-cells"); ok {
		if ic, ok := prop.(InterruptCellsProperty); ok {
			return int(ic.Value)
		}
	}
	return 1
}

// InterruptCellsProperty is #interrupt-cells.
type InterruptCellsProperty struct{ Value uint32 }

func (InterruptCellsProperty) Name() string { return "#interrupt-cells" }

// InterruptControllerProperty is the empty interrupt-controller marker.
type InterruptControllerProperty struct{}

func (InterruptControllerProperty) Name() string { return "interrupt-controller" }

// InterruptMapProperty is the raw interrupt-map translation table.
type InterruptMapProperty struct{ Raw []byte }

func (InterruptMapProperty) Name() string { return "interrupt-map" }

// InterruptMapMaskProperty is the raw interrupt-map-mask.
type InterruptMapMaskProperty struct{ Raw []byte }

func (InterruptMapMaskProperty) Name() string { return "interrupt-map-mask" }

// ClockFrequencyProperty is a scalar clock rate in Hz, u32 or u64 depending
// on payload length.
type ClockFrequencyProperty struct{ Value uint64 }

func (ClockFrequencyProperty) Name() string { return "clock-frequency" }

// TimebaseFrequencyProperty is the RISC-V timer tick rate in Hz.
type TimebaseFrequencyProperty struct{ Value uint64 }

func (TimebaseFrequencyProperty) Name() string { return "timebase-frequency" }

// RawProperty is the catch-all for any property name outside the known set.
type RawProperty struct {
	PropName string
	Value    []byte
}

func (p RawProperty) Name() string { return p.PropName }

// newProperty applies the typing rules from the FDT parser's property
// section: known names get their typed variant, everything else falls back
// to RawProperty.
func newProperty(name string, raw []byte) (Property, error) {
	switch name {
	case "compatible":
		return CompatibleProperty{Raw: raw}, nil
	case "model":
		return ModelProperty{Value: trimNul(raw)}, nil
	case "phandle":
		v, err := scalarU32(raw)
		if err != nil {
			return nil, err
		}
		return PhandleProperty{Value: v}, nil
	case "status":
		return StatusProperty{Value: trimNul(raw)}, nil
	case "#address-cells":
		v, err := scalarU32(raw)
		if err != nil {
			return nil, err
		}
		return AddressCellsProperty{Value: v}, nil
	case "#size-cells":
		v, err := scalarU32(raw)
		if err != nil {
			return nil, err
		}
		return SizeCellsProperty{Value: v}, nil
	case "reg":
		return RegProperty{Raw: raw}, nil
	case "ranges":
		return RangesProperty{Raw: raw}, nil
	case "dma-ranges":
		return DMARangesProperty{Raw: raw}, nil
	case "dma-coherent":
		return DMACoherentProperty{}, nil
	case "dma-noncoherent":
		return DMANoncoherentProperty{}, nil
	case "interrupts":
		return InterruptsProperty{Raw: raw}, nil
	case "interrupt-parent":
		v, err := scalarU32(raw)
		if err != nil {
			return nil, err
		}
		return InterruptParentProperty{Value: v}, nil
	case "interrupts-extended":
		return InterruptsExtendedProperty{Raw: raw}, nil
	case "#interrupt-cells":
		v, err := scalarU32(raw)
		if err != nil {
			return nil, err
		}
		return InterruptCellsProperty{Value: v}, nil
	case "interrupt-controller":
		return InterruptControllerProperty{}, nil
	case "interrupt-map":
		return InterruptMapProperty{Raw: raw}, nil
	case "interrupt-map-mask":
		return InterruptMapMaskProperty{Raw: raw}, nil
	case "clock-frequency":
		v, err := scalarU32Or64(raw)
		if err != nil {
			return nil, err
		}
		return ClockFrequencyProperty{Value: v}, nil
	case "timebase-frequency":
		v, err := scalarU32Or64(raw)
		if err != nil {
			return nil, err
		}
		return TimebaseFrequencyProperty{Value: v}, nil
	default:
		return RawProperty{PropName: name, Value: raw}, nil
	}
}

func scalarU32(raw []byte) (uint32, error) {
	if len(raw) != 4 {
		return 0, ErrInvalidDeviceTree
	}
	return binary.BigEndian.Uint32(raw), nil
}

func scalarU32Or64(raw []byte) (uint64, error) {
	switch len(raw) {
	case 4:
		return uint64(binary.BigEndian.Uint32(raw)), nil
	case 8:
		return binary.BigEndian.Uint64(raw), nil
	default:
		return 0, ErrInvalidDeviceTree
	}
}

func trimNul(raw []byte) string {
	return strings.TrimRight(string(raw), "\x00")
}
