package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a structured catalog: a mapping from path to an object
// carrying the record fields. JSON documents are accepted as well.
func ParseYAML(data []byte, opts Options) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}

	c := newCollector(opts, FormatYAML)
	if len(doc.Content) == 0 {
		return c.result(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of paths", ErrMalformedCatalog)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		path := keyNode.Value
		if err := ValidatePath(path); err != nil {
			return nil, &RecordError{Line: keyNode.Line, Err: fmt.Errorf("%w: %w", ErrMalformedCatalog, err)}
		}
		if valueNode.Kind != yaml.MappingNode {
			return nil, &RecordError{
				Path: path,
				Line: keyNode.Line,
				Err:  fmt.Errorf("%w: entry must be a mapping", ErrMalformedCatalog),
			}
		}

		fields := scalarFields(valueNode)
		get := func(key string) (string, bool) {
			v, ok := fields[key]
			return v, ok
		}
		rec, err := buildRecord(path, keyNode.Line, get)
		if err := c.add(rec, err, fields["type"]); err != nil {
			return nil, err
		}
	}

	return c.result(), nil
}

// scalarFields collects the scalar-valued entries of a mapping node.
// Non-scalar values (lists, nested objects) are ignored. The first
// occurrence of a key wins.
func scalarFields(m *yaml.Node) map[string]string {
	fields := make(map[string]string, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		if v.Kind != yaml.ScalarNode {
			continue
		}
		if _, seen := fields[k.Value]; seen {
			continue
		}
		fields[k.Value] = v.Value
	}
	return fields
}
