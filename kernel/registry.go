package main

import "rvkernel/internal/fdt"

// initKind distinguishes a driver bound to a set of compatible strings
// from a module that always runs once regardless of what the device tree
// contains.
type initKind int

const (
	alwaysRun initKind = iota
	driverInit
)

// moduleEntry is one compile-time row of the module registry: a name for
// diagnostics, whether it participates at all, and either an always-run
// init function or a set of compatible strings plus a per-node init
// function.
type moduleEntry struct {
	name    string
	enabled bool
	kind    initKind

	alwaysRunInit func(dt *fdt.DeviceTree)

	compatible []string
	driverInit func(dt *fdt.DeviceTree, id fdt.NodeId)
}

// moduleRegistry is the compile-time driver table. Interrupt controllers
// are bound in an early pass (see walkInterruptControllers) before this
// table's driverInit entries run against the rest of the tree.
var moduleRegistry = []moduleEntry{
	{name: "plic", enabled: true, kind: driverInit, compatible: []string{"riscv,plic0", "sifive,plic-1.0.0"}, driverInit: initPLIC},
}

// matchDriver returns the first enabled driver entry whose compatible list
// contains any of the node's compatible strings.
func matchDriver(compat []string) (moduleEntry, bool) {
	for _, e := range moduleRegistry {
		if !e.enabled || e.kind != driverInit {
			continue
		}
		for _, want := range e.compatible {
			for _, have := range compat {
				if want == have {
					return e, true
				}
			}
		}
	}
	return moduleEntry{}, false
}

// walkModules runs every enabled always-run module once, then walks the
// device tree in two passes: interrupt controllers are bound first, so
// that by the time the second pass reaches an ordinary driver node, any
// handler it needs to register with is already live.
func walkModules(dt *fdt.DeviceTree) {
	for _, e := range moduleRegistry {
		if e.enabled && e.kind == alwaysRun && e.alwaysRunInit != nil {
			e.alwaysRunInit(dt)
		}
	}
	walkInterruptControllers(dt, dt.Root())
	walkDrivers(dt, dt.Root())
}

func walkInterruptControllers(dt *fdt.DeviceTree, id fdt.NodeId) {
	if dt.IsInterruptController(id) {
		compat := dt.Compatible(id)
		if e, ok := matchDriver(compat); ok {
			e.driverInit(dt, id)
		}
	}
	for _, child := range dt.Node(id).Children() {
		walkInterruptControllers(dt, child)
	}
}

func walkDrivers(dt *fdt.DeviceTree, id fdt.NodeId) {
	if !dt.IsInterruptController(id) {
		compat := dt.Compatible(id)
		if len(compat) > 0 {
			if e, ok := matchDriver(compat); ok {
				e.driverInit(dt, id)
			}
		}
	}
	for _, child := range dt.Node(id).Children() {
		walkDrivers(dt, child)
	}
}
