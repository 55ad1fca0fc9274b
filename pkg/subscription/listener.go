package subscription

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/vss-go/vss-go/pkg/tree"
)

// Listener receives updates for the subscriptions it is registered with.
//
// Listeners are compared by identity, so implementations are usually
// pointers. OnChange may be called concurrently by independent dispatches.
type Listener interface {
	// OnChange handles an update. A returned error is routed to OnError.
	OnChange(u Update) error

	// OnError receives failures of this listener's own deliveries.
	OnError(err error)
}

// FuncListener adapts a pair of functions to Listener.
type FuncListener struct {
	onChange func(Update) error
	onError  func(error)
}

// NewListener returns a Listener calling onChange and onError.
// Either may be nil. Each call returns a distinct listener.
func NewListener(onChange func(Update) error, onError func(error)) *FuncListener {
	return &FuncListener{onChange: onChange, onError: onError}
}

// OnChange calls the change function.
func (l *FuncListener) OnChange(u Update) error {
	if l.onChange == nil {
		return nil
	}
	return l.onChange(u)
}

// OnError calls the error function.
func (l *FuncListener) OnError(err error) {
	if l.onError != nil {
		l.onError(err)
	}
}

// ChannelListener delivers updates and errors over buffered channels.
// When a buffer is full the item is dropped and counted.
type ChannelListener struct {
	updates chan Update
	errs    chan error
	dropped atomic.Int64
}

// NewChannelListener creates a ChannelListener with the given buffer size.
func NewChannelListener(buffer int) *ChannelListener {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelListener{
		updates: make(chan Update, buffer),
		errs:    make(chan error, buffer),
	}
}

// OnChange queues u, or returns ErrListenerBufferFull.
func (l *ChannelListener) OnChange(u Update) error {
	select {
	case l.updates <- u:
		return nil
	default:
		l.dropped.Add(1)
		return ErrListenerBufferFull
	}
}

// OnError queues err, dropping it when the error buffer is full.
func (l *ChannelListener) OnError(err error) {
	select {
	case l.errs <- err:
	default:
		l.dropped.Add(1)
	}
}

// Updates returns the update channel.
func (l *ChannelListener) Updates() <-chan Update {
	return l.updates
}

// Errors returns the error channel.
func (l *ChannelListener) Errors() <-chan error {
	return l.errs
}

// Dropped returns the number of updates and errors dropped so far.
func (l *ChannelListener) Dropped() int64 {
	return l.dropped.Load()
}

// NodeListener resolves updates against a compiled forest and only passes on
// those for value-capable nodes. Updates for unknown paths or branches are
// ignored.
type NodeListener struct {
	forest   *tree.Forest
	onChange func(*tree.Node, Update) error
	onError  func(error)
}

// NewNodeListener creates a NodeListener over forest.
func NewNodeListener(forest *tree.Forest, onChange func(*tree.Node, Update) error, onError func(error)) *NodeListener {
	return &NodeListener{forest: forest, onChange: onChange, onError: onError}
}

// OnChange looks up the updated node and calls the change function.
func (l *NodeListener) OnChange(u Update) error {
	n, ok := l.forest.Lookup(u.Path)
	if !ok || !n.ValueCapable() || l.onChange == nil {
		return nil
	}
	return l.onChange(n, u)
}

// OnError calls the error function.
func (l *NodeListener) OnError(err error) {
	if l.onError != nil {
		l.onError(err)
	}
}

// checkListener rejects nil listeners and dynamic types that cannot be used
// as map keys.
func checkListener(l Listener) error {
	if l == nil {
		return ErrNilListener
	}
	if t := reflect.TypeOf(l); !t.Comparable() {
		return fmt.Errorf("%w: %s", ErrListenerNotComparable, t)
	}
	return nil
}

var (
	_ Listener = (*FuncListener)(nil)
	_ Listener = (*ChannelListener)(nil)
	_ Listener = (*NodeListener)(nil)
)
