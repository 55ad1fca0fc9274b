package log

import "time"

// Event represents a captured event at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the owning session (UUID), if any.
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Path is the catalog path the event refers to, if any.
	Path string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Record      *RecordEvent      `cbor:"10,keyasint,omitempty"` // Catalog layer
	Compile     *CompileEvent     `cbor:"11,keyasint,omitempty"` // Tree layer
	Delivery    *DeliveryEvent    `cbor:"12,keyasint,omitempty"` // Dispatch layer
	StateChange *StateChangeEvent `cbor:"13,keyasint,omitempty"` // Session/subscription state
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerCatalog is the definition parser.
	LayerCatalog Layer = 0
	// LayerTree is the tree compiler.
	LayerTree Layer = 1
	// LayerDispatch is the subscription registry.
	LayerDispatch Layer = 2
	// LayerBroker is the broker client.
	LayerBroker Layer = 3
	// LayerSession is the owning session.
	LayerSession Layer = 4
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerCatalog:
		return "CATALOG"
	case LayerTree:
		return "TREE"
	case LayerDispatch:
		return "DISPATCH"
	case LayerBroker:
		return "BROKER"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRecord indicates a parsed catalog record.
	CategoryRecord Category = 0
	// CategoryCompile indicates a compile summary.
	CategoryCompile Category = 1
	// CategoryDelivery indicates an update fan-out.
	CategoryDelivery Category = 2
	// CategoryState indicates a state change.
	CategoryState Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRecord:
		return "RECORD"
	case CategoryCompile:
		return "COMPILE"
	case CategoryDelivery:
		return "DELIVERY"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RecordEvent captures the outcome of parsing one catalog record.
type RecordEvent struct {
	// Line is the 1-based source line (text) or entry index (documents).
	Line int `cbor:"1,keyasint"`

	// Kind is the declared node kind, as written.
	Kind string `cbor:"2,keyasint,omitempty"`

	// Accepted is false when the record was skipped.
	Accepted bool `cbor:"3,keyasint"`

	// Reason explains a skipped record.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// CompileEvent summarises a compiled forest.
type CompileEvent struct {
	// Nodes is the number of nodes in the forest.
	Nodes int `cbor:"1,keyasint"`

	// Roots is the number of root nodes, including detached ones.
	Roots int `cbor:"2,keyasint"`

	// Detached lists roots whose implied parent was not in the catalog.
	Detached []string `cbor:"3,keyasint,omitempty"`
}

// DeliveryEvent captures one dispatched update.
type DeliveryEvent struct {
	// Fields is the updated field mask, rendered.
	Fields string `cbor:"1,keyasint"`

	// Matched is the number of subscriptions the update matched.
	Matched int `cbor:"2,keyasint"`

	// Failed is the number of listeners that reported a failure.
	Failed int `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures session and subscription lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntitySession indicates a session state change.
	StateEntitySession StateEntity = 0
	// StateEntitySubscription indicates a broker subscription was attached
	// or detached.
	StateEntitySubscription StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntitySession:
		return "SESSION"
	case StateEntitySubscription:
		return "SUBSCRIPTION"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// NewErrorEvent builds an error event for err at the given layer.
func NewErrorEvent(layer Layer, path string, err error, context string) Event {
	return Event{
		Timestamp: time.Now(),
		Layer:     layer,
		Category:  CategoryError,
		Path:      path,
		Error: &ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	}
}
