package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the kind of a catalog node.
type Kind uint8

const (
	KindBranch Kind = iota
	KindSensor
	KindActuator
	KindAttribute
)

// String returns the lower-case catalog spelling.
func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindSensor:
		return "sensor"
	case KindActuator:
		return "actuator"
	case KindAttribute:
		return "attribute"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "branch":
		return KindBranch, nil
	case "sensor":
		return KindSensor, nil
	case "actuator":
		return KindActuator, nil
	case "attribute":
		return KindAttribute, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Datatype is a declared value type such as "uint8", "float" or "string[]".
type Datatype string

// Known datatypes.
const (
	Boolean Datatype = "boolean"
	String  Datatype = "string"
	Uint8   Datatype = "uint8"
	Uint16  Datatype = "uint16"
	Uint32  Datatype = "uint32"
	Uint64  Datatype = "uint64"
	Int8    Datatype = "int8"
	Int16   Datatype = "int16"
	Int32   Datatype = "int32"
	Int64   Datatype = "int64"
	Float   Datatype = "float"
	Double  Datatype = "double"
)

// IsArray reports whether the datatype is an array ("[]" suffix).
func (d Datatype) IsArray() bool {
	return strings.HasSuffix(string(d), "[]")
}

// Elem returns the element type of an array datatype, or d itself.
func (d Datatype) Elem() Datatype {
	return Datatype(strings.TrimSuffix(string(d), "[]"))
}

// bitSize returns the width of a numeric scalar type and its family:
// 'i' signed, 'u' unsigned, 'f' floating point. ok is false for anything
// that cannot carry numeric bounds.
func (d Datatype) bitSize() (family byte, bits int, ok bool) {
	switch d {
	case Int8:
		return 'i', 8, true
	case Int16:
		return 'i', 16, true
	case Int32:
		return 'i', 32, true
	case Int64:
		return 'i', 64, true
	case Uint8:
		return 'u', 8, true
	case Uint16:
		return 'u', 16, true
	case Uint32:
		return 'u', 32, true
	case Uint64:
		return 'u', 64, true
	case Float:
		return 'f', 32, true
	case Double:
		return 'f', 64, true
	default:
		return 0, 0, false
	}
}

// IsNumeric reports whether the datatype is a numeric scalar.
func (d Datatype) IsNumeric() bool {
	_, _, ok := d.bitSize()
	return ok
}

// ParseBound parses a min/max bound for the datatype. Signed types yield
// int64, unsigned types uint64, float and double float64. ok is false when
// raw does not parse or the datatype has no numeric bounds.
func (d Datatype) ParseBound(raw string) (v any, ok bool) {
	family, bits, numeric := d.bitSize()
	raw = strings.TrimSpace(raw)
	if !numeric || raw == "" {
		return nil, false
	}

	switch family {
	case 'i':
		n, err := strconv.ParseInt(raw, 10, bits)
		if err != nil {
			return nil, false
		}
		return n, true
	case 'u':
		n, err := strconv.ParseUint(raw, 10, bits)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		f, err := strconv.ParseFloat(raw, bits)
		if err != nil {
			return nil, false
		}
		return f, true
	}
}

// coerceBound converts a decoded numeric value to the bound representation
// for the datatype. Values that cannot be represented are dropped.
func (d Datatype) coerceBound(v any) any {
	if v == nil {
		return nil
	}
	var raw string
	switch n := v.(type) {
	case int64:
		raw = strconv.FormatInt(n, 10)
	case uint64:
		raw = strconv.FormatUint(n, 10)
	case float64:
		raw = strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		raw = strconv.FormatFloat(float64(n), 'g', -1, 32)
	default:
		return nil
	}
	b, _ := d.ParseBound(raw)
	return b
}

// Record is one flat catalog entry.
type Record struct {
	Path        string
	Kind        Kind
	UUID        string
	Description string
	Comment     string
	Datatype    Datatype
	Unit        string

	// Min and Max are int64, uint64 or float64 depending on Datatype, or
	// nil when absent.
	Min any
	Max any

	// Line is the 1-based source line of the record header, or the entry
	// position for sources without lines.
	Line int
}

// ValueCapable reports whether the record describes a node that carries a
// value.
func (r Record) ValueCapable() bool {
	return r.Kind != KindBranch && r.Datatype != ""
}

// ValidatePath checks that path is non-empty and every dot-separated segment
// is non-empty and free of whitespace.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
		if strings.ContainsAny(seg, " \t\r\n") {
			return fmt.Errorf("%w: whitespace in %q", ErrInvalidPath, path)
		}
	}
	return nil
}

// fieldSource looks up a raw attribute value by key.
type fieldSource func(key string) (string, bool)

// buildRecord assembles and validates a record from raw attribute values.
// The returned error is always a *RecordError.
func buildRecord(path string, line int, get fieldSource) (Record, error) {
	rec := Record{Path: path, Line: line}
	fail := func(field string, err error) (Record, error) {
		return Record{}, &RecordError{Path: path, Line: line, Field: field, Err: err}
	}

	uuid, ok := get("uuid")
	if !ok || uuid == "" {
		return fail("uuid", ErrMissingField)
	}
	rec.UUID = uuid

	kindText, ok := get("type")
	if !ok || kindText == "" {
		return fail("type", ErrMissingField)
	}
	kind, err := ParseKind(kindText)
	if err != nil {
		return fail("type", err)
	}
	rec.Kind = kind

	rec.Description, _ = get("description")
	rec.Comment, _ = get("comment")
	rec.Unit, _ = get("unit")

	if dt, ok := get("datatype"); ok {
		rec.Datatype = Datatype(dt)
	}
	if rec.Kind != KindBranch && rec.Datatype == "" {
		return fail("datatype", ErrMissingField)
	}

	if raw, ok := get("min"); ok {
		rec.Min, _ = rec.Datatype.ParseBound(raw)
	}
	if raw, ok := get("max"); ok {
		rec.Max, _ = rec.Datatype.ParseBound(raw)
	}

	return rec, nil
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
