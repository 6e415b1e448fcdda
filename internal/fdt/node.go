package fdt

// NodeId is a dense index into DeviceTree.nodes. The root node is always id 0.
type NodeId int

// RootSentinel is the parent id of the root node; no real node uses it.
const RootSentinel NodeId = -1

// child is an ordered (name, id) pair, matching the FDT's ordering of
// BEGIN_NODE tokens under a parent.
type child struct {
	name string
	id   NodeId
}

// Node is one parsed FDT node. RawBytes fields on its Properties alias into
// the original blob, so the blob must outlive the DeviceTree.
type Node struct {
	Name       string
	Parent     NodeId
	children   []child
	Properties []Property
}

// Children returns the node's direct children in document order.
func (n *Node) Children() []NodeId {
	ids := make([]NodeId, len(n.children))
	for i, c := range n.children {
		ids[i] = c.id
	}
	return ids
}

// ChildNamed returns the id of the direct child with the given name, if any.
func (n *Node) ChildNamed(name string) (NodeId, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c.id, true
		}
	}
	return 0, false
}

// Property looks up a named property on the node.
func (n *Node) Property(name string) (Property, bool) {
	for _, p := range n.Properties {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// DeviceTree is the fully parsed, immutable tree built once at boot.
type DeviceTree struct {
	nodes    []Node
	phandles map[uint32]NodeId
}

// Root returns the id of the tree root (always 0).
func (dt *DeviceTree) Root() NodeId { return 0 }

// Node returns a pointer to the node with the given id.
func (dt *DeviceTree) Node(id NodeId) *Node { return &dt.nodes[id] }

// NodeCount returns the number of parsed nodes.
func (dt *DeviceTree) NodeCount() int { return len(dt.nodes) }

// LookupPhandle resolves a phandle value to a node id.
func (dt *DeviceTree) LookupPhandle(ph uint32) (NodeId, bool) {
	id, ok := dt.phandles[ph]
	return id, ok
}
