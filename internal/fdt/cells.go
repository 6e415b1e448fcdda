package fdt

// defaultAddressCells and defaultSizeCells are the Devicetree Specification
// defaults used when no ancestor declares the property (root only, in
// practice — every real bus node declares its own).
const (
	defaultAddressCells = 2
	defaultSizeCells    = 1
)

// EffectiveAddressCells walks up from n's parent looking for the nearest
// ancestor's #address-cells: a node's own address-cell width is
// inherited from its parent bus, not declared on itself.
func (dt *DeviceTree) EffectiveAddressCells(n NodeId) int {
	for cur := dt.Node(n).Parent; cur != RootSentinel; cur = dt.Node(cur).Parent {
		if prop, ok := dt.Node(cur).Property("#address-cells"); ok {
			return int(prop.(AddressCellsProperty).Value)
		}
	}
	return defaultAddressCells
}

// EffectiveSizeCells walks up from n's parent looking for the nearest
// ancestor's #size-cells. Size-cell width is inherited independently of
// address-cell width — reading the wrong property here silently corrupts
// every reg entry decoded under that ancestor.
func (dt *DeviceTree) EffectiveSizeCells(n NodeId) int {
	for cur := dt.Node(n).Parent; cur != RootSentinel; cur = dt.Node(cur).Parent {
		if prop, ok := dt.Node(cur).Property("#size-cells"); ok {
			return int(prop.(SizeCellsProperty).Value)
		}
	}
	return defaultSizeCells
}

// Reg resolves and decodes the node's reg property, if any, using cell
// counts inherited from its parent chain.
func (dt *DeviceTree) Reg(id NodeId) ([]RegEntry, error) {
	n := dt.Node(id)
	prop, ok := n.Property("reg")
	if !ok {
		return nil, nil
	}
	rp := prop.(RegProperty)
	return rp.Entries(dt.EffectiveAddressCells(id), dt.EffectiveSizeCells(id))
}

// Compatible returns the node's compatible strings, or nil if it has none.
func (dt *DeviceTree) Compatible(id NodeId) []string {
	n := dt.Node(id)
	if prop, ok := n.Property("compatible"); ok {
		return prop.(CompatibleProperty).Strings()
	}
	return nil
}

// IsInterruptController reports whether the node carries the empty
// interrupt-controller marker property.
func (dt *DeviceTree) IsInterruptController(id NodeId) bool {
	_, ok := dt.Node(id).Property("interrupt-controller")
	return ok
}

// InterruptsExtended resolves and decodes the node's interrupts-extended
// property, if any.
func (dt *DeviceTree) InterruptsExtended(id NodeId) ([]InterruptEntry, error) {
	n := dt.Node(id)
	prop, ok := n.Property("interrupts-extended")
	if !ok {
		return nil, nil
	}
	return prop.(InterruptsExtendedProperty).Entries(dt)
}
