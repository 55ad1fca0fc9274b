package tree

import (
	"fmt"
	"strings"
)

// Formatter renders nodes and values for display.
type Formatter struct {
	// ShowMetadata includes kind, datatype, unit and bounds.
	ShowMetadata bool

	// ShowIdentifiers includes the derived identifier.
	ShowIdentifiers bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata:    true,
		ShowIdentifiers: false,
		IndentWidth:     2,
	}
}

// Indent returns content indented to depth.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatNode renders a single node on one line.
func (f *Formatter) FormatNode(n *Node) string {
	var b strings.Builder
	b.WriteString(n.Name())

	if f.ShowIdentifiers {
		fmt.Fprintf(&b, " <%s>", n.Identifier())
	}
	if !f.ShowMetadata {
		return b.String()
	}

	fmt.Fprintf(&b, " [%s", n.Kind())
	if n.Datatype() != "" {
		fmt.Fprintf(&b, " %s", n.Datatype())
	}
	if n.Unit() != "" {
		fmt.Fprintf(&b, " %s", n.Unit())
	}
	b.WriteString("]")

	if n.Min() != nil || n.Max() != nil {
		fmt.Fprintf(&b, " range=%s..%s", formatBound(n.Min()), formatBound(n.Max()))
	}
	return b.String()
}

// FormatTree renders id and its subtree, one node per line, depth-first.
func (f *Formatter) FormatTree(forest *Forest, id NodeID) string {
	root := forest.Node(id)
	if root == nil {
		return ""
	}

	var b strings.Builder
	base := root.Depth()
	var render func(n *Node)
	render = func(n *Node) {
		b.WriteString(f.Indent(n.Depth()-base, f.FormatNode(n)))
		b.WriteByte('\n')
		for _, c := range forest.Children(n.ID()) {
			render(c)
		}
	}
	render(root)
	return b.String()
}

// FormatForest renders every root and its subtree.
func (f *Formatter) FormatForest(forest *Forest) string {
	var b strings.Builder
	for _, r := range forest.Roots() {
		b.WriteString(f.FormatTree(forest, r.ID()))
	}
	return b.String()
}

// FormatValue formats a datapoint value with an optional unit.
func (f *Formatter) FormatValue(value any, unit string) string {
	var s string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		s = fmt.Sprintf("%q", v)
	case float32:
		s = fmt.Sprintf("%.2f", v)
	case float64:
		s = fmt.Sprintf("%.2f", v)
	case []byte:
		s = fmt.Sprintf("0x%x", v)
	default:
		s = fmt.Sprintf("%v", v)
	}
	if unit != "" {
		return s + " " + unit
	}
	return s
}

func formatBound(v any) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprintf("%v", v)
}
