package broker

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/log"
	"github.com/vss-go/vss-go/pkg/subscription"
	"github.com/vss-go/vss-go/pkg/tree"
)

// MemoryConfig configures a Memory broker.
type MemoryConfig struct {
	// Forest restricts the broker to the paths of a compiled catalog and
	// enables metadata. If nil, any non-empty path is accepted.
	Forest *tree.Forest

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives broker errors and delivery events. Optional.
	EventLogger log.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Memory is an in-process broker.
type Memory struct {
	config MemoryConfig
	events log.Logger

	mu      sync.RWMutex
	values  map[string]Datapoint
	targets map[string]Datapoint

	// pending holds stored updates not yet delivered; draining is set while
	// one caller delivers them. Both are guarded by mu.
	pending  []subscription.Update
	draining bool

	registry *subscription.Registry
}

// NewMemory creates an empty in-process broker.
func NewMemory(config MemoryConfig) *Memory {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Memory{
		config:  config,
		events:  log.OrNoop(config.EventLogger),
		values:  make(map[string]Datapoint),
		targets: make(map[string]Datapoint),
		registry: subscription.NewRegistryWithConfig(subscription.Config{
			Logger:      config.Logger,
			EventLogger: config.EventLogger,
		}),
	}
}

// Fetch returns the requested fields of path. For a branch it returns every
// node below it that has data, in grouped pre-order.
func (m *Memory) Fetch(ctx context.Context, path string, fields subscription.FieldMask) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fields.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFieldMask, fields)
	}

	targets, err := m.fetchTargets(path)
	if err != nil {
		return nil, m.fail(path, err, "fetch")
	}

	resp := &Response{RequestID: uuid.NewString()}
	m.mu.RLock()
	for _, p := range targets {
		if e, ok := m.entry(p, fields); ok {
			resp.Entries = append(resp.Entries, e)
		}
	}
	m.mu.RUnlock()

	if len(resp.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoValue, path, fields)
	}
	m.debugLog("fetch", "path", path, "fields", fields, "entries", len(resp.Entries))
	return resp, nil
}

// Update stores dp for fields of path and notifies subscribers.
// Notifications are delivered in the order the values were stored. An
// Update issued while another caller is delivering, including from inside a
// listener, is queued and delivered by that caller after Update returns.
func (m *Memory) Update(ctx context.Context, path string, dp Datapoint, fields subscription.FieldMask) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fields.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFieldMask, fields)
	}
	if fields.Has(subscription.FieldMetadata) {
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyField, subscription.FieldMetadata)
	}
	if err := m.checkWritable(path, fields); err != nil {
		return nil, m.fail(path, err, "update")
	}
	if dp.Timestamp.IsZero() {
		dp.Timestamp = m.config.Now()
	}

	m.mu.Lock()
	if fields.Has(subscription.FieldValue) {
		m.values[path] = dp
	}
	if fields.Has(subscription.FieldActuatorTarget) {
		m.targets[path] = dp
	}
	entry, _ := m.entry(path, fields)
	m.pending = append(m.pending, subscription.Update{
		Path:      path,
		Fields:    fields,
		Value:     dp.Value,
		Timestamp: dp.Timestamp,
	})
	deliver := !m.draining
	m.draining = true
	m.mu.Unlock()

	if deliver {
		m.drain()
	}
	return &Response{RequestID: uuid.NewString(), Entries: []Entry{entry}}, nil
}

// drain delivers pending updates until the queue is empty.
func (m *Memory) drain() {
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.pending = nil
			m.draining = false
			m.mu.Unlock()
			return
		}
		u := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		res := m.registry.Dispatch(u)
		m.debugLog("update", "path", u.Path, "fields", u.Fields, "delivered", res.Delivered, "failed", res.Failed)
	}
}

// Subscribe registers listener for fields of path and its descendants.
// Registering the same triple twice is a no-op.
func (m *Memory) Subscribe(ctx context.Context, path string, fields subscription.FieldMask, listener subscription.Listener) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.config.Forest != nil {
		if _, ok := m.config.Forest.Lookup(path); !ok {
			return m.fail(path, fmt.Errorf("%w: %s", ErrUnknownPath, path), "subscribe")
		}
	}
	if _, err := m.registry.Subscribe(path, fields, listener); err != nil {
		return m.fail(path, err, "subscribe")
	}
	return nil
}

// Unsubscribe removes a registration. Removing an absent registration is a
// no-op.
func (m *Memory) Unsubscribe(ctx context.Context, path string, fields subscription.FieldMask, listener subscription.Listener) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.registry.UnsubscribeFields(path, fields, listener)
	return nil
}

// Subscriptions returns the number of active registrations.
func (m *Memory) Subscriptions() int {
	return m.registry.Len()
}

func (m *Memory) fetchTargets(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnknownPath)
	}
	if f := m.config.Forest; f != nil {
		n, ok := f.Lookup(path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPath, path)
		}
		targets := []string{n.Path()}
		for _, d := range f.Descendants(n.ID()) {
			targets = append(targets, d.Path())
		}
		return targets, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, store := range []map[string]Datapoint{m.values, m.targets} {
		for p := range store {
			if tree.IsAncestorOrSelf(path, p) {
				seen[p] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoValue, path)
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

func (m *Memory) checkWritable(path string, fields subscription.FieldMask) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrUnknownPath)
	}
	f := m.config.Forest
	if f == nil {
		return nil
	}
	n, ok := f.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	if !n.ValueCapable() {
		return fmt.Errorf("%w: %s is a %s", ErrNotValueCapable, path, n.Kind())
	}
	if fields.Has(subscription.FieldActuatorTarget) && n.Kind() != catalog.KindActuator {
		return fmt.Errorf("%w: %s is a %s", ErrNotActuator, path, n.Kind())
	}
	return nil
}

// entry builds the entry for path. Callers hold m.mu.
func (m *Memory) entry(path string, fields subscription.FieldMask) (Entry, bool) {
	e := Entry{Path: path}
	if fields.Has(subscription.FieldValue) {
		if dp, ok := m.values[path]; ok {
			e.Value = &dp
		}
	}
	if fields.Has(subscription.FieldActuatorTarget) {
		if dp, ok := m.targets[path]; ok {
			e.ActuatorTarget = &dp
		}
	}
	if fields.Has(subscription.FieldMetadata) && m.config.Forest != nil {
		if n, ok := m.config.Forest.Lookup(path); ok {
			e.Metadata = metadataOf(n)
		}
	}
	return e, e.Value != nil || e.ActuatorTarget != nil || e.Metadata != nil
}

func metadataOf(n *tree.Node) *Metadata {
	return &Metadata{
		Kind:        n.Kind().String(),
		Datatype:    string(n.Datatype()),
		Unit:        n.Unit(),
		Description: n.Description(),
		Comment:     n.Comment(),
		UUID:        n.UUID(),
		Min:         n.Min(),
		Max:         n.Max(),
	}
}

func (m *Memory) fail(path string, err error, op string) error {
	m.debugLog(op+" failed", "path", path, "error", err)
	m.events.Log(log.NewErrorEvent(log.LayerBroker, path, err, op))
	return err
}

func (m *Memory) debugLog(msg string, args ...any) {
	if m.config.Logger != nil {
		m.config.Logger.Debug(msg, args...)
	}
}

var _ Client = (*Memory)(nil)
