package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rvkernel/internal/fdt"
	"rvkernel/internal/fdt/fdttest"
)

// buildMinimalTree constructs the smallest tree exercising reg decoding:
//
//	/ { #address-cells=<1>; #size-cells=<1>; memory@0 { reg=<0 0x1000>; }; }
func buildMinimalTree(t *testing.T) []byte {
	t.Helper()
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.PropU32("#address-cells", 1)
	b.PropU32("#size-cells", 1)
	b.BeginNode("memory@0")
	b.PropU32Array("reg", []uint32{0, 0x1000})
	b.EndNode()
	b.EndNode()
	return b.Build()
}

func TestParseMinimalTree(t *testing.T) {
	blob := buildMinimalTree(t)

	dt, err := fdt.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, 2, dt.NodeCount())

	root := dt.Node(dt.Root())
	require.Equal(t, "", root.Name)

	memID, ok := root.ChildNamed("memory@0")
	require.True(t, ok)

	entries, err := dt.Reg(memID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, fdt.RegEntry{Addr: 0, Size: 0x1000}, entries[0])
}

func TestParseRejectsBadMagic(t *testing.T) {
	blob := buildMinimalTree(t)
	blob[0] ^= 0xFF

	_, err := fdt.Parse(blob)
	require.ErrorIs(t, err, fdt.ErrMagicMismatch)
}

func TestParseTruncatedBlobIsInvalid(t *testing.T) {
	blob := buildMinimalTree(t)

	_, err := fdt.Parse(blob[:len(blob)-8])
	require.Error(t, err)
}

func TestCompatibleIterator(t *testing.T) {
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.BeginNode("serial@10000000")
	b.PropStrings("compatible", []string{"ns16550a", "ns16550"})
	b.EndNode()
	b.EndNode()

	dt, err := fdt.Parse(b.Build())
	require.NoError(t, err)

	root := dt.Node(dt.Root())
	uartID, ok := root.ChildNamed("serial@10000000")
	require.True(t, ok)

	compat := dt.Compatible(uartID)
	require.Equal(t, []string{"ns16550a", "ns16550"}, compat)
}

func TestRegRejectsBadCellCounts(t *testing.T) {
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.PropU32("#address-cells", 2)
	b.PropU32("#size-cells", 2)
	b.BeginNode("dev@0")
	// Only 3 cells present, but 4 (2+2) are required per entry.
	b.PropU32Array("reg", []uint32{0, 0, 0})
	b.EndNode()
	b.EndNode()

	dt, err := fdt.Parse(b.Build())
	require.NoError(t, err)

	root := dt.Node(dt.Root())
	devID, _ := root.ChildNamed("dev@0")
	_, err = dt.Reg(devID)
	require.ErrorIs(t, err, fdt.ErrInvalidCellCounts)
}

func TestSizeCellsInheritedFromParentNotAddressCells(t *testing.T) {
	// Size-cell inheritance must read the parent's #size-cells, not its
	// #address-cells, even when the two differ.
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.BeginNode("soc")
	b.PropU32("#address-cells", 2)
	b.PropU32("#size-cells", 1)
	b.BeginNode("uart@0")
	b.PropU32Array("reg", []uint32{0, 0, 0x1000})
	b.EndNode()
	b.EndNode()
	b.EndNode()

	dt, err := fdt.Parse(b.Build())
	require.NoError(t, err)

	root := dt.Node(dt.Root())
	socID, _ := root.ChildNamed("soc")
	uartID, _ := dt.Node(socID).ChildNamed("uart@0")

	require.Equal(t, 2, dt.EffectiveAddressCells(uartID))
	require.Equal(t, 1, dt.EffectiveSizeCells(uartID))

	entries, err := dt.Reg(uartID)
	require.NoError(t, err)
	require.Equal(t, []fdt.RegEntry{{Addr: 0, Size: 0x1000}}, entries)
}

func TestInterruptsExtendedResolvesPhandle(t *testing.T) {
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.BeginNode("plic")
	b.PropU32("#interrupt-cells", 1)
	b.PropEmpty("interrupt-controller")
	b.PropU32("phandle", 2)
	b.EndNode()
	b.BeginNode("uart@10000000")
	b.PropU32Array("interrupts-extended", []uint32{2, 10})
	b.EndNode()
	b.EndNode()

	dt, err := fdt.Parse(b.Build())
	require.NoError(t, err)

	root := dt.Node(dt.Root())
	plicID, _ := root.ChildNamed("plic")
	uartID, _ := root.ChildNamed("uart@10000000")

	require.True(t, dt.IsInterruptController(plicID))

	entries, err := dt.InterruptsExtended(uartID)
	require.NoError(t, err)
	require.Equal(t, []fdt.InterruptEntry{{Parent: plicID, Specifier: 10}}, entries)
}

func TestPhandleLookupMissingIsInvalid(t *testing.T) {
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.BeginNode("uart@10000000")
	b.PropU32Array("interrupts-extended", []uint32{99, 10})
	b.EndNode()
	b.EndNode()

	dt, err := fdt.Parse(b.Build())
	require.NoError(t, err)

	root := dt.Node(dt.Root())
	uartID, _ := root.ChildNamed("uart@10000000")

	_, err = dt.InterruptsExtended(uartID)
	require.ErrorIs(t, err, fdt.ErrInvalidDeviceTree)
}

func TestClockFrequencyAcceptsU32AndU64(t *testing.T) {
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.BeginNode("uart@10000000")
	b.PropU32("clock-frequency", 3686400)
	b.EndNode()
	b.BeginNode("timer")
	b.Prop("timebase-frequency", []byte{0, 0, 0, 0, 0, 0x98, 0x96, 0x80}) // 10000000
	b.EndNode()
	b.EndNode()

	dt, err := fdt.Parse(b.Build())
	require.NoError(t, err)

	root := dt.Node(dt.Root())
	uartID, _ := root.ChildNamed("uart@10000000")
	timerID, _ := root.ChildNamed("timer")

	prop, ok := dt.Node(uartID).Property("clock-frequency")
	require.True(t, ok)
	require.Equal(t, fdt.ClockFrequencyProperty{Value: 3686400}, prop)

	prop, ok = dt.Node(timerID).Property("timebase-frequency")
	require.True(t, ok)
	require.Equal(t, fdt.TimebaseFrequencyProperty{Value: 10000000}, prop)
}
