package tree

import (
	"slices"

	"github.com/vss-go/vss-go/pkg/catalog"
)

// NodeID addresses a node within its Forest.
type NodeID int

// NoNode is the parent of a root.
const NoNode NodeID = -1

// Node is a compiled catalog entry. Nodes are created by Compile and are
// read-only.
type Node struct {
	id         NodeID
	record     catalog.Record
	identifier string
	parent     NodeID
	children   []NodeID
}

// ID returns the node's arena index.
func (n *Node) ID() NodeID {
	return n.id
}

// Path returns the full dotted path.
func (n *Node) Path() string {
	return n.record.Path
}

// Name returns the last path segment.
func (n *Node) Name() string {
	return LastSegment(n.record.Path)
}

// Identifier returns the derived program identifier.
func (n *Node) Identifier() string {
	return n.identifier
}

// Kind returns the node kind.
func (n *Node) Kind() catalog.Kind {
	return n.record.Kind
}

// UUID returns the catalog-assigned identifier.
func (n *Node) UUID() string {
	return n.record.UUID
}

// Description returns the description, if any.
func (n *Node) Description() string {
	return n.record.Description
}

// Comment returns the comment, if any.
func (n *Node) Comment() string {
	return n.record.Comment
}

// Datatype returns the declared datatype (empty for most branches).
func (n *Node) Datatype() catalog.Datatype {
	return n.record.Datatype
}

// Unit returns the unit, if any.
func (n *Node) Unit() string {
	return n.record.Unit
}

// Min returns the lower bound or nil.
func (n *Node) Min() any {
	return n.record.Min
}

// Max returns the upper bound or nil.
func (n *Node) Max() any {
	return n.record.Max
}

// Depth returns the number of path segments minus one.
func (n *Node) Depth() int {
	return Depth(n.record.Path)
}

// ValueCapable reports whether the node is a non-branch carrying a datatype.
func (n *Node) ValueCapable() bool {
	return n.record.ValueCapable()
}

// ParentID returns the parent's ID, or NoNode for roots.
func (n *Node) ParentID() NodeID {
	return n.parent
}

// ChildIDs returns the children's IDs in declaration order.
func (n *Node) ChildIDs() []NodeID {
	return slices.Clone(n.children)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Record returns a copy of the record the node was compiled from.
func (n *Node) Record() catalog.Record {
	return n.record
}
