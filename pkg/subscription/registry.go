package subscription

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vss-go/vss-go/pkg/collection"
	"github.com/vss-go/vss-go/pkg/log"
	"github.com/vss-go/vss-go/pkg/tree"
)

// Subscription is a registered (path, fields, listener) triple.
type Subscription struct {
	Path     string
	Fields   FieldMask
	Listener Listener
}

// Matches reports whether u should be delivered to s.
func (s Subscription) Matches(u Update) bool {
	return s.Fields.Intersects(u.Fields) && tree.IsAncestorOrSelf(s.Path, u.Path)
}

// Group identifies the subscriptions sharing a path and field mask.
type Group struct {
	Path   string
	Fields FieldMask
}

// Group returns the group s belongs to.
func (s Subscription) Group() Group {
	return Group{Path: s.Path, Fields: s.Fields}
}

// Config holds registry configuration.
type Config struct {
	// OnFirstSubscriber is called when a group gains its first subscription.
	OnFirstSubscriber func(path string, fields FieldMask)

	// OnLastUnsubscribed is called when a group loses its last subscription.
	OnLastUnsubscribed func(path string, fields FieldMask)

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives delivery and error events. Optional.
	EventLogger log.Logger
}

// DefaultConfig returns a configuration without hooks or logging.
func DefaultConfig() Config {
	return Config{}
}

// DispatchResult summarises one dispatch.
type DispatchResult struct {
	// Matched is the number of subscriptions the update matched.
	Matched int

	// Delivered is the number of successful OnChange calls.
	Delivered int

	// Failed is the number of OnChange calls that returned an error or
	// panicked.
	Failed int
}

// Registry holds subscriptions and dispatches updates to them.
// It is safe for concurrent use.
type Registry struct {
	config Config
	events log.Logger
	subs   *collection.Listeners[Subscription]

	mu     sync.Mutex
	groups map[Group]int
}

// NewRegistry creates a registry with default configuration.
func NewRegistry() *Registry {
	return NewRegistryWithConfig(DefaultConfig())
}

// NewRegistryWithConfig creates a registry with custom configuration.
func NewRegistryWithConfig(config Config) *Registry {
	r := &Registry{
		config: config,
		events: log.OrNoop(config.EventLogger),
		subs:   collection.NewListeners[Subscription](),
		groups: make(map[Group]int),
	}
	r.subs.OnRegistered(r.registered)
	r.subs.OnUnregistered(r.unregistered)
	return r
}

// Subscribe registers listener for fields of path and its descendants.
// It returns false without error if the same triple is already registered.
func (r *Registry) Subscribe(path string, fields FieldMask, listener Listener) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}
	if fields == 0 {
		return false, ErrEmptyFieldMask
	}
	if !fields.Valid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidFieldMask, fields)
	}
	if err := checkListener(listener); err != nil {
		return false, err
	}

	added := r.subs.Register(Subscription{Path: path, Fields: fields, Listener: listener})
	r.debugLog("subscribe", "path", path, "fields", fields, "added", added)
	return added, nil
}

// Unsubscribe removes every subscription of listener on exactly path,
// whatever its field mask. It reports whether anything was removed.
func (r *Registry) Unsubscribe(path string, listener Listener) bool {
	if checkListener(listener) != nil {
		return false
	}
	removed := r.subs.UnregisterFunc(func(s Subscription) bool {
		return s.Path == path && s.Listener == listener
	})
	r.debugLog("unsubscribe", "path", path, "removed", len(removed))
	return len(removed) > 0
}

// UnsubscribeFields removes the single subscription (path, fields, listener).
func (r *Registry) UnsubscribeFields(path string, fields FieldMask, listener Listener) bool {
	if checkListener(listener) != nil {
		return false
	}
	return r.subs.Unregister(Subscription{Path: path, Fields: fields, Listener: listener})
}

// UnsubscribeListener removes every subscription of listener and returns
// the removed subscriptions in registration order.
func (r *Registry) UnsubscribeListener(listener Listener) []Subscription {
	if checkListener(listener) != nil {
		return nil
	}
	return r.subs.UnregisterFunc(func(s Subscription) bool {
		return s.Listener == listener
	})
}

// Clear removes every subscription. Last-unsubscribed hooks fire for every
// group.
func (r *Registry) Clear() {
	r.subs.UnregisterFunc(func(Subscription) bool { return true })
}

// Subscriptions returns the registered subscriptions in registration order.
func (r *Registry) Subscriptions() []Subscription {
	return r.subs.Snapshot()
}

// Len returns the number of registered subscriptions.
func (r *Registry) Len() int {
	return r.subs.Len()
}

// IsEmpty reports whether no subscription is registered.
func (r *Registry) IsEmpty() bool {
	return r.subs.IsEmpty()
}

// Groups returns the number of distinct (path, fields) groups.
func (r *Registry) Groups() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.groups)
}

// Dispatch delivers u to every matching subscription in registration order.
func (r *Registry) Dispatch(u Update) DispatchResult {
	return r.DispatchFunc(u, nil)
}

// DispatchFunc is like Dispatch but only considers subscriptions for which
// filter returns true. A nil filter accepts every subscription.
func (r *Registry) DispatchFunc(u Update, filter func(Subscription) bool) DispatchResult {
	var res DispatchResult
	if u.Fields == 0 {
		return res
	}
	if u.Timestamp.IsZero() {
		u.Timestamp = time.Now()
	}

	for _, s := range r.subs.Snapshot() {
		if !s.Matches(u) || (filter != nil && !filter(s)) {
			continue
		}
		res.Matched++

		err := deliver(s.Listener, u)
		if err == nil {
			res.Delivered++
			continue
		}
		res.Failed++
		lerr := &ListenerError{Subscribed: s.Path, Update: u, Err: err}
		r.debugLog("listener failed", "path", u.Path, "subscribed", s.Path, "error", err)
		r.events.Log(log.NewErrorEvent(log.LayerDispatch, u.Path, lerr, "dispatch"))
		reportError(s.Listener, lerr)
	}

	r.events.Log(log.Event{
		Timestamp: u.Timestamp,
		Layer:     log.LayerDispatch,
		Category:  log.CategoryDelivery,
		Path:      u.Path,
		Delivery: &log.DeliveryEvent{
			Fields:  u.Fields.String(),
			Matched: res.Matched,
			Failed:  res.Failed,
		},
	})
	return res
}

func deliver(l Listener, u Update) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, p)
		}
	}()
	return l.OnChange(u)
}

// reportError calls OnError, containing a panic so that the remaining
// listeners still receive the update.
func reportError(l Listener, err error) {
	defer func() { _ = recover() }()
	l.OnError(err)
}

func (r *Registry) registered(s Subscription) {
	g := s.Group()
	r.mu.Lock()
	r.groups[g]++
	first := r.groups[g] == 1
	r.mu.Unlock()

	if first && r.config.OnFirstSubscriber != nil {
		r.config.OnFirstSubscriber(g.Path, g.Fields)
	}
}

func (r *Registry) unregistered(s Subscription) {
	g := s.Group()
	r.mu.Lock()
	r.groups[g]--
	last := r.groups[g] <= 0
	if last {
		delete(r.groups, g)
	}
	r.mu.Unlock()

	if last && r.config.OnLastUnsubscribed != nil {
		r.config.OnLastUnsubscribed(g.Path, g.Fields)
	}
}

func (r *Registry) debugLog(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}
