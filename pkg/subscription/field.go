package subscription

import (
	"fmt"
	"strings"
)

// FieldMask selects the datapoint fields a subscription or update covers.
type FieldMask uint8

// Field bits.
const (
	// FieldValue is the current signal value.
	FieldValue FieldMask = 1 << iota

	// FieldActuatorTarget is the requested actuator target.
	FieldActuatorTarget

	// FieldMetadata is the static node metadata.
	FieldMetadata
)

// FieldAll covers every field.
const FieldAll = FieldValue | FieldActuatorTarget | FieldMetadata

var fieldNames = []struct {
	field FieldMask
	name  string
}{
	{FieldValue, "VALUE"},
	{FieldActuatorTarget, "ACTUATOR_TARGET"},
	{FieldMetadata, "METADATA"},
}

// Has reports whether every bit of f is set in m.
func (m FieldMask) Has(f FieldMask) bool {
	return f != 0 && m&f == f
}

// Intersects reports whether m and o share at least one field.
func (m FieldMask) Intersects(o FieldMask) bool {
	return m&o != 0
}

// Valid reports whether m is non-empty and only uses known bits.
func (m FieldMask) Valid() bool {
	return m != 0 && m&^FieldAll == 0
}

// Fields splits m into its single-bit fields in canonical order.
func (m FieldMask) Fields() []FieldMask {
	var out []FieldMask
	for _, fn := range fieldNames {
		if m&fn.field != 0 {
			out = append(out, fn.field)
		}
	}
	return out
}

// String renders the mask as VALUE|ACTUATOR_TARGET|METADATA.
func (m FieldMask) String() string {
	if m == 0 {
		return "NONE"
	}
	var parts []string
	for _, fn := range fieldNames {
		if m&fn.field != 0 {
			parts = append(parts, fn.name)
		}
	}
	if rest := m &^ FieldAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFieldMask parses a mask written as names joined by '|' or ','.
// Names are case-insensitive; "ALL" selects every field.
func ParseFieldMask(s string) (FieldMask, error) {
	var m FieldMask
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if name == "ALL" {
			m |= FieldAll
			continue
		}
		found := false
		for _, fn := range fieldNames {
			if fn.name == name {
				m |= fn.field
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidFieldMask, part)
		}
	}
	if m == 0 {
		return 0, ErrEmptyFieldMask
	}
	return m, nil
}
