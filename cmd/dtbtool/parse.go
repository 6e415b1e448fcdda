package main

import (
	"fmt"
	"os"
	"strings"

	"rvkernel/internal/fdt"
)

func parseFile(path string) (*fdt.DeviceTree, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	dt, err := fdt.Parse(blob)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return dt, nil
}

// findNode resolves a slash-separated node path like "/soc/plic@c000000"
// by walking ChildNamed from the root, matching each segment by name.
func findNode(dt *fdt.DeviceTree, path string) (fdt.NodeId, error) {
	id := dt.Root()
	if path == "" || path == "/" {
		return id, nil
	}

	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		child, ok := dt.Node(id).ChildNamed(seg)
		if !ok {
			return 0, fmt.Errorf("no such node: %s", path)
		}
		id = child
	}
	return id, nil
}
