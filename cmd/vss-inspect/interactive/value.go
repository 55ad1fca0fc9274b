package interactive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vss-go/vss-go/pkg/catalog"
)

// ErrInvalidValue is returned when a value does not parse as its datatype.
var ErrInvalidValue = errors.New("invalid value")

// ParseValue converts raw to the Go representation of datatype. Numeric
// types yield int64, uint64 or float64; arrays are comma-separated and
// yield []any. An empty datatype keeps raw as a string.
func ParseValue(datatype catalog.Datatype, raw string) (any, error) {
	if datatype.IsArray() {
		elem := datatype.Elem()
		raw = strings.Trim(raw, "[]")
		if raw == "" {
			return []any{}, nil
		}
		parts := strings.Split(raw, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			v, err := ParseValue(elem, strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	switch datatype {
	case "", catalog.String:
		return raw, nil
	case catalog.Boolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
		}
		return b, nil
	}

	if v, ok := datatype.ParseBound(raw); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q is not a %s", ErrInvalidValue, raw, datatype)
}
