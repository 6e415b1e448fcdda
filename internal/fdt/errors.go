package fdt

import "errors"

// Sentinel errors returned by Parse and by the typed property/iterator
// accessors. Parsing a malformed blob is always fatal — there is no
// partial-tree recovery, so callers propagate these directly.
var (
	ErrMagicMismatch       = errors.New("fdt: magic mismatch")
	ErrInvalidDeviceTree   = errors.New("fdt: invalid device tree")
	ErrInvalidCellCounts   = errors.New("fdt: invalid cell counts")
	ErrUnsupportedCellSize = errors.New("fdt: unsupported cell size")
)
