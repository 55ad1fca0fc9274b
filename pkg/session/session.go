package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vss-go/vss-go/pkg/broker"
	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/collection"
	"github.com/vss-go/vss-go/pkg/log"
	"github.com/vss-go/vss-go/pkg/subscription"
	"github.com/vss-go/vss-go/pkg/tree"
)

// Session is an open catalog bound to a broker. It is safe for concurrent
// use.
type Session struct {
	id     string
	config Config
	events log.Logger

	registry *subscription.Registry
	client   broker.Client
	recent   *collection.BoundedSet[string]

	mu         sync.RWMutex
	closed     bool
	catalog    *catalog.Catalog
	forest     *tree.Forest
	forwarders map[subscription.Group]*forwarder
}

// Open loads and compiles the configured catalog and connects it to the
// configured broker.
func Open(ctx context.Context, config Config) (*Session, error) {
	config.applyDefaults()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat, err := loadCatalog(config)
	if err != nil {
		return nil, err
	}
	forest, err := tree.CompileCatalog(cat, tree.Options{
		Identifiers: config.Identifiers,
		Logger:      config.Logger,
		EventLogger: config.EventLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling catalog: %w", err)
	}

	capacity := config.RecentCapacity
	if capacity < 0 {
		capacity = collection.Unbounded
	}

	s := &Session{
		id:         uuid.NewString(),
		config:     config,
		events:     log.OrNoop(config.EventLogger),
		recent:     collection.NewBoundedSet[string](capacity),
		catalog:    cat,
		forest:     forest,
		forwarders: make(map[subscription.Group]*forwarder),
	}
	s.registry = subscription.NewRegistryWithConfig(subscription.Config{
		OnFirstSubscriber:  s.attach,
		OnLastUnsubscribed: s.detach,
		Logger:             config.Logger,
		EventLogger:        config.EventLogger,
	})

	s.client = config.Client
	if s.client == nil {
		s.client = broker.NewMemory(broker.MemoryConfig{
			Forest:      forest,
			Logger:      config.Logger,
			EventLogger: config.EventLogger,
		})
	}

	for _, w := range forest.Warnings() {
		s.debugLog("catalog warning", "error", w)
	}
	s.debugLog("session opened",
		"nodes", forest.Len(),
		"skipped", len(cat.Skipped),
		"detached", len(forest.Detached()),
	)
	s.logState(log.StateEntitySession, "", "", "OPEN", cat.Format.String())
	return s, nil
}

func loadCatalog(config Config) (*catalog.Catalog, error) {
	opts := catalog.Options{
		Policy:      config.Policy,
		Logger:      config.Logger,
		EventLogger: config.EventLogger,
	}
	switch {
	case config.CatalogData != nil:
		return catalog.Parse(config.CatalogData, config.CatalogFormat, opts)
	case config.CatalogPath != "":
		return catalog.Load(config.CatalogPath, opts)
	default:
		return nil, ErrNoCatalog
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Forest returns the compiled forest, or nil once the session is closed.
func (s *Session) Forest() *tree.Forest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forest
}

// Catalog returns the parsed catalog, or nil once the session is closed.
func (s *Session) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Client returns the broker the session talks to.
func (s *Session) Client() broker.Client {
	return s.client
}

// Subscribe registers listener for fields of path and its descendants. path
// must exist in the catalog. It returns false without error when the same
// triple is already registered.
func (s *Session) Subscribe(ctx context.Context, path string, fields subscription.FieldMask, listener subscription.Listener) (bool, error) {
	forest, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	if _, err := forest.Get(path); err != nil {
		return false, err
	}

	added, err := s.registry.Subscribe(path, fields, listener)
	if err != nil || !added {
		return added, err
	}

	g := subscription.Group{Path: path, Fields: fields}
	if err := s.attachError(g); err != nil {
		s.registry.UnsubscribeFields(path, fields, listener)
		return false, fmt.Errorf("attaching %s: %w", path, err)
	}

	// Close may have cleared the registry before this registration landed.
	if s.isClosed() {
		s.registry.UnsubscribeFields(path, fields, listener)
		return false, ErrClosed
	}
	return true, nil
}

// Unsubscribe removes every subscription of listener on exactly path.
func (s *Session) Unsubscribe(ctx context.Context, path string, listener subscription.Listener) (bool, error) {
	if _, err := s.open(ctx); err != nil {
		return false, err
	}
	return s.registry.Unsubscribe(path, listener), nil
}

// Subscriptions returns the local subscriptions in registration order.
func (s *Session) Subscriptions() []subscription.Subscription {
	return s.registry.Subscriptions()
}

// Fetch reads fields of path from the broker.
func (s *Session) Fetch(ctx context.Context, path string, fields subscription.FieldMask) (*broker.Response, error) {
	if _, err := s.open(ctx); err != nil {
		return nil, err
	}
	return s.client.Fetch(ctx, path, fields)
}

// Update writes dp to fields of path through the broker.
func (s *Session) Update(ctx context.Context, path string, dp broker.Datapoint, fields subscription.FieldMask) (*broker.Response, error) {
	if _, err := s.open(ctx); err != nil {
		return nil, err
	}
	resp, err := s.client.Update(ctx, path, dp, fields)
	if err != nil {
		return nil, err
	}
	s.recent.Add(path)
	return resp, nil
}

// RecentlyUpdated returns the distinct paths most recently updated through
// the session or notified by the broker, oldest first.
func (s *Session) RecentlyUpdated() []string {
	return s.recent.Values()
}

// Close detaches every broker subscription and releases the forest. Closing
// a closed session is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.registry.Clear()

	s.mu.Lock()
	s.forest = nil
	s.catalog = nil
	s.mu.Unlock()
	s.recent.Clear()

	s.debugLog("session closed")
	s.logState(log.StateEntitySession, "", "OPEN", "CLOSED", "")
	return nil
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// open returns the forest if the session is usable.
func (s *Session) open(ctx context.Context) (*tree.Forest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.forest, nil
}

func (s *Session) attach(path string, fields subscription.FieldMask) {
	g := subscription.Group{Path: path, Fields: fields}
	fw := &forwarder{session: s, group: g}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.BrokerTimeout)
	defer cancel()
	fw.err = s.client.Subscribe(ctx, path, fields, fw)

	s.mu.Lock()
	s.forwarders[g] = fw
	s.mu.Unlock()

	if fw.err != nil {
		s.debugLog("attach failed", "path", path, "fields", fields, "error", fw.err)
		s.events.Log(log.NewErrorEvent(log.LayerSession, path, fw.err, "attach"))
		return
	}
	s.debugLog("attached", "path", path, "fields", fields)
	s.logState(log.StateEntitySubscription, path, "", "ATTACHED", fields.String())
}

func (s *Session) detach(path string, fields subscription.FieldMask) {
	g := subscription.Group{Path: path, Fields: fields}

	s.mu.Lock()
	fw, ok := s.forwarders[g]
	delete(s.forwarders, g)
	s.mu.Unlock()
	if !ok || fw.err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.BrokerTimeout)
	defer cancel()
	if err := s.client.Unsubscribe(ctx, path, fields, fw); err != nil {
		s.debugLog("detach failed", "path", path, "fields", fields, "error", err)
		s.events.Log(log.NewErrorEvent(log.LayerSession, path, err, "detach"))
		return
	}
	s.debugLog("detached", "path", path, "fields", fields)
	s.logState(log.StateEntitySubscription, path, "ATTACHED", "DETACHED", fields.String())
}

func (s *Session) attachError(g subscription.Group) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if fw, ok := s.forwarders[g]; ok {
		return fw.err
	}
	return nil
}

func (s *Session) logState(entity log.StateEntity, path, oldState, newState, reason string) {
	s.events.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Layer:     log.LayerSession,
		Category:  log.CategoryState,
		Path:      path,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (s *Session) debugLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, append([]any{"session", s.id}, args...)...)
	}
}

// forwarder is the broker-side listener of one subscription group. It
// redelivers broker notifications to the local subscriptions of exactly
// that group, so that overlapping groups do not deliver twice.
type forwarder struct {
	session *Session
	group   subscription.Group
	err     error
}

func (f *forwarder) OnChange(u subscription.Update) error {
	f.session.recent.Add(u.Path)
	f.session.registry.DispatchFunc(u, func(sub subscription.Subscription) bool {
		return sub.Group() == f.group
	})
	return nil
}

func (f *forwarder) OnError(err error) {
	f.session.debugLog("forward failed", "path", f.group.Path, "error", err)
}
