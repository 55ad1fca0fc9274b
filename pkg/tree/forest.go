package tree

import "fmt"

// Forest is an immutable set of compiled node trees.
type Forest struct {
	nodes    []Node
	index    map[string]NodeID
	roots    []NodeID
	detached []NodeID
	warnings []error
}

// Len returns the number of nodes.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Node returns the node with the given ID, or nil.
func (f *Forest) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(f.nodes) {
		return nil
	}
	return &f.nodes[id]
}

// Lookup returns the node at path.
func (f *Forest) Lookup(path string) (*Node, bool) {
	id, ok := f.index[path]
	if !ok {
		return nil, false
	}
	return &f.nodes[id], true
}

// Get returns the node at path or an error wrapping ErrNodeNotFound.
func (f *Forest) Get(path string) (*Node, error) {
	n, ok := f.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, path)
	}
	return n, nil
}

// Nodes returns all nodes in declaration order.
func (f *Forest) Nodes() []*Node {
	out := make([]*Node, len(f.nodes))
	for i := range f.nodes {
		out[i] = &f.nodes[i]
	}
	return out
}

// Roots returns the root nodes in declaration order, detached roots
// included.
func (f *Forest) Roots() []*Node {
	return f.list(f.roots)
}

// Detached returns the roots whose implied parent was missing.
func (f *Forest) Detached() []*Node {
	return f.list(f.detached)
}

// DetachedPaths returns the paths of the detached roots.
func (f *Forest) DetachedPaths() []string {
	if len(f.detached) == 0 {
		return nil
	}
	paths := make([]string, len(f.detached))
	for i, id := range f.detached {
		paths[i] = f.nodes[id].Path()
	}
	return paths
}

// Warnings returns one *CompileError wrapping ErrUnresolvedParent per
// detached root.
func (f *Forest) Warnings() []error {
	return append([]error(nil), f.warnings...)
}

// Children returns the direct children of id in declaration order.
func (f *Forest) Children(id NodeID) []*Node {
	n := f.Node(id)
	if n == nil {
		return nil
	}
	return f.list(n.children)
}

// Parent returns the parent of id.
func (f *Forest) Parent(id NodeID) (*Node, bool) {
	n := f.Node(id)
	if n == nil || n.parent == NoNode {
		return nil, false
	}
	return &f.nodes[n.parent], true
}

// Ancestors returns the chain of parents of id, root first, excluding id.
func (f *Forest) Ancestors(id NodeID) []*Node {
	var chain []*Node
	for p, ok := f.Parent(id); ok; p, ok = f.Parent(p.id) {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Descendants returns the subtree below id in grouped pre-order: the direct
// children, followed by each child's own descendant listing in child order.
func (f *Forest) Descendants(id NodeID) []*Node {
	if f.Node(id) == nil {
		return nil
	}
	return f.appendDescendants(nil, id)
}

func (f *Forest) appendDescendants(out []*Node, id NodeID) []*Node {
	children := f.nodes[id].children
	for _, c := range children {
		out = append(out, &f.nodes[c])
	}
	for _, c := range children {
		out = f.appendDescendants(out, c)
	}
	return out
}

// AncestryLine returns the nodes of Descendants(from) whose paths lie on
// the ancestry chain of to, in listing order. The result ends with to when
// to is a descendant of from and is empty otherwise.
func (f *Forest) AncestryLine(from, to NodeID) []*Node {
	target := f.Node(to)
	if target == nil {
		return nil
	}
	onChain := make(map[string]struct{})
	for _, p := range AncestryChain(target.Path()) {
		onChain[p] = struct{}{}
	}

	var line []*Node
	for _, n := range f.Descendants(from) {
		if _, ok := onChain[n.Path()]; ok {
			line = append(line, n)
		}
	}
	return line
}

// Walk visits every node depth-first, roots in declaration order. Returning
// false from fn skips the node's subtree.
func (f *Forest) Walk(fn func(n *Node) bool) {
	for _, r := range f.roots {
		f.walk(r, fn)
	}
}

func (f *Forest) walk(id NodeID, fn func(n *Node) bool) {
	n := &f.nodes[id]
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		f.walk(c, fn)
	}
}

// ValueNodes returns every value-capable node in declaration order.
func (f *Forest) ValueNodes() []*Node {
	var out []*Node
	for i := range f.nodes {
		if f.nodes[i].ValueCapable() {
			out = append(out, &f.nodes[i])
		}
	}
	return out
}

func (f *Forest) list(ids []NodeID) []*Node {
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = &f.nodes[id]
	}
	return out
}
