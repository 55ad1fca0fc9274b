package broker

import (
	"context"
	"errors"
	"time"

	"github.com/vss-go/vss-go/pkg/subscription"
)

// Broker errors.
var (
	ErrUnknownPath      = errors.New("unknown path")
	ErrNotValueCapable  = errors.New("path does not carry a value")
	ErrNotActuator      = errors.New("actuator target on non-actuator")
	ErrNoValue          = errors.New("no value available")
	ErrReadOnlyField    = errors.New("field is read-only")
	ErrInvalidFieldMask = errors.New("invalid field mask")
)

// Client is the broker interface consumed by sessions.
type Client interface {
	// Fetch returns the requested fields of path, or of every value-capable
	// node below it when path is a branch.
	Fetch(ctx context.Context, path string, fields subscription.FieldMask) (*Response, error)

	// Update writes dp to the given fields of path.
	Update(ctx context.Context, path string, dp Datapoint, fields subscription.FieldMask) (*Response, error)

	// Subscribe registers listener for changes of fields on path and its
	// descendants.
	Subscribe(ctx context.Context, path string, fields subscription.FieldMask, listener subscription.Listener) error

	// Unsubscribe removes a registration made with Subscribe.
	Unsubscribe(ctx context.Context, path string, fields subscription.FieldMask, listener subscription.Listener) error
}

// Datapoint is a timestamped value.
type Datapoint struct {
	Value     any
	Timestamp time.Time
}

// Metadata is the static description of a node.
type Metadata struct {
	Kind        string
	Datatype    string
	Unit        string
	Description string
	Comment     string
	UUID        string
	Min         any
	Max         any
}

// Entry holds the fields of one path. Fields that were not requested or
// have no data are nil.
type Entry struct {
	Path           string
	Value          *Datapoint
	ActuatorTarget *Datapoint
	Metadata       *Metadata
}

// Response is the result of Fetch or Update.
type Response struct {
	// RequestID correlates the response with broker-side logs.
	RequestID string

	// Entries are in tree listing order.
	Entries []Entry
}

// Entry returns the entry for path.
func (r *Response) Entry(path string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}
