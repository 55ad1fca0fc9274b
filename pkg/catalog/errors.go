package catalog

import (
	"errors"
	"fmt"
)

// Catalog errors.
var (
	ErrMalformedCatalog = errors.New("malformed catalog")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidKind      = errors.New("invalid node kind")
	ErrInvalidPath      = errors.New("invalid path")
	ErrUnknownFormat    = errors.New("unknown catalog format")
)

// RecordError describes a problem with a single record.
type RecordError struct {
	// Path of the offending record, if known.
	Path string

	// Line is the 1-based line of the record header.
	Line int

	// Field names the attribute at fault, if any.
	Field string

	Err error
}

func (e *RecordError) Error() string {
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %v: %s", msg, e.Err, e.Field)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
