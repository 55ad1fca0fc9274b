package tree

import (
	"errors"
	"fmt"
)

// Tree errors.
var (
	ErrDuplicatePath    = errors.New("duplicate path")
	ErrUnresolvedParent = errors.New("unresolved parent")
	ErrNodeNotFound     = errors.New("node not found")
)

// CompileError describes a problem with one record during compilation.
type CompileError struct {
	Path string

	// Line is the source line of the offending record.
	Line int

	// FirstLine is the line of the earlier record, for ErrDuplicatePath.
	FirstLine int

	Err error
}

func (e *CompileError) Error() string {
	if e.FirstLine > 0 {
		return fmt.Sprintf("line %d: %v %q (first declared at line %d)", e.Line, e.Err, e.Path, e.FirstLine)
	}
	return fmt.Sprintf("line %d: %v %q", e.Line, e.Err, e.Path)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
