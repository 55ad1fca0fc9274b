package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vss-go/vss-go/pkg/broker"
	"github.com/vss-go/vss-go/pkg/broker/mocks"
	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/log"
	"github.com/vss-go/vss-go/pkg/subscription"
	"github.com/vss-go/vss-go/pkg/tree"
)

var samplePath = filepath.Join("..", "catalog", "testdata", "vehicle.vspec")

func openSample(t *testing.T, mutate ...func(*Config)) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CatalogPath = samplePath
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenCompilesCatalog(t *testing.T) {
	s := openSample(t)

	assert.NotEmpty(t, s.ID())
	require.NotNil(t, s.Forest())
	assert.Equal(t, s.Catalog().Len(), s.Forest().Len())
	_, ok := s.Client().(*broker.Memory)
	assert.True(t, ok)
}

func TestOpenFromData(t *testing.T) {
	data := []byte("A:\n  type: branch\n  uuid: 1\n\nA.B:\n  type: sensor\n  datatype: int8\n  uuid: 2\n")
	s, err := Open(context.Background(), Config{CatalogData: data, CatalogFormat: catalog.FormatText})
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Forest().Get("A.B")
	require.NoError(t, err)
	assert.Equal(t, "b", n.Identifier())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrNoCatalog)

	dup := []byte("A:\n  type: branch\n  uuid: 1\n\nA:\n  type: branch\n  uuid: 2\n")
	_, err = Open(context.Background(), Config{CatalogData: dup})
	assert.ErrorIs(t, err, tree.ErrDuplicatePath)

	bad := []byte("A:\n  type: branch\n")
	_, err = Open(context.Background(), Config{CatalogData: bad})
	assert.ErrorIs(t, err, catalog.ErrMissingField)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Open(ctx, Config{CatalogPath: samplePath})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscribeReceivesDescendantUpdates(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	body := subscription.NewChannelListener(4)
	cabin := subscription.NewChannelListener(4)
	added, err := s.Subscribe(ctx, "Vehicle.Body", subscription.FieldActuatorTarget, body)
	require.NoError(t, err)
	assert.True(t, added)
	_, err = s.Subscribe(ctx, "Vehicle.Cabin", subscription.FieldActuatorTarget, cabin)
	require.NoError(t, err)

	_, err = s.Update(ctx, "Vehicle.Body.Trunk.IsOpen", broker.Datapoint{Value: true}, subscription.FieldActuatorTarget)
	require.NoError(t, err)

	u := <-body.Updates()
	assert.Equal(t, "Vehicle.Body.Trunk.IsOpen", u.Path)
	assert.Equal(t, true, u.Value)
	assert.Empty(t, cabin.Updates())
}

func TestOverlappingGroupsDeliverOnce(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	var mu sync.Mutex
	got := map[string]int{}
	counter := func(name string) subscription.Listener {
		return subscription.NewListener(func(subscription.Update) error {
			mu.Lock()
			got[name]++
			mu.Unlock()
			return nil
		}, nil)
	}

	vehicle := counter("vehicle")
	_, err := s.Subscribe(ctx, "Vehicle", subscription.FieldValue, vehicle)
	require.NoError(t, err)
	_, err = s.Subscribe(ctx, "Vehicle.Speed", subscription.FieldValue, counter("speed"))
	require.NoError(t, err)
	_, err = s.Subscribe(ctx, "Vehicle", subscription.FieldValue|subscription.FieldMetadata, counter("mixed"))
	require.NoError(t, err)

	_, err = s.Update(ctx, "Vehicle.Speed", broker.Datapoint{Value: float32(3)}, subscription.FieldValue)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"vehicle": 1, "speed": 1, "mixed": 1}, got)
	assert.Equal(t, 3, s.Client().(*broker.Memory).Subscriptions())
}

func TestSubscribeUnknownPath(t *testing.T) {
	s := openSample(t)
	_, err := s.Subscribe(context.Background(), "Vehicle.Wings", subscription.FieldValue, subscription.NewChannelListener(1))
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)
	assert.Empty(t, s.Subscriptions())
}

func TestUnsubscribeDetachesGroup(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()
	mem := s.Client().(*broker.Memory)

	a := subscription.NewChannelListener(1)
	b := subscription.NewChannelListener(1)
	_, _ = s.Subscribe(ctx, "Vehicle", subscription.FieldValue, a)
	_, _ = s.Subscribe(ctx, "Vehicle", subscription.FieldValue, b)
	assert.Equal(t, 1, mem.Subscriptions())

	removed, err := s.Unsubscribe(ctx, "Vehicle", a)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, mem.Subscriptions())

	removed, _ = s.Unsubscribe(ctx, "Vehicle", b)
	assert.True(t, removed)
	assert.Equal(t, 0, mem.Subscriptions())

	removed, _ = s.Unsubscribe(ctx, "Vehicle", b)
	assert.False(t, removed)
}

func TestRecentlyUpdatedIsBoundedFIFO(t *testing.T) {
	s := openSample(t, func(c *Config) { c.RecentCapacity = 2 })
	ctx := context.Background()

	for _, p := range []string{"Vehicle.Speed", "Vehicle.VehicleIdentification.VIN", "Vehicle.Speed", "Vehicle.Cabin.Door.Count"} {
		var v any = "x"
		switch p {
		case "Vehicle.Speed":
			v = float32(1)
		case "Vehicle.Cabin.Door.Count":
			v = uint8(2)
		}
		_, err := s.Update(ctx, p, broker.Datapoint{Value: v}, subscription.FieldValue)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Vehicle.VehicleIdentification.VIN", "Vehicle.Cabin.Door.Count"}, s.RecentlyUpdated())
}

func TestFetchAndUpdateErrors(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	_, err := s.Update(ctx, "Vehicle.Body", broker.Datapoint{Value: 1}, subscription.FieldValue)
	assert.ErrorIs(t, err, broker.ErrNotValueCapable)
	assert.Empty(t, s.RecentlyUpdated())

	_, err = s.Fetch(ctx, "Vehicle.Speed", subscription.FieldValue)
	assert.ErrorIs(t, err, broker.ErrNoValue)

	resp, err := s.Fetch(ctx, "Vehicle.Speed", subscription.FieldMetadata)
	require.NoError(t, err)
	assert.Equal(t, "efe50798638d55fab18ab7d43cc490e9", resp.Entries[0].Metadata.UUID)
}

func TestCloseReleasesEverything(t *testing.T) {
	events := &eventSink{}
	s := openSample(t, func(c *Config) { c.EventLogger = events })
	ctx := context.Background()
	mem := s.Client().(*broker.Memory)

	_, err := s.Subscribe(ctx, "Vehicle", subscription.FieldValue, subscription.NewChannelListener(1))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.Nil(t, s.Forest())
	assert.Nil(t, s.Catalog())
	assert.Empty(t, s.Subscriptions())
	assert.Equal(t, 0, mem.Subscriptions())

	_, err = s.Subscribe(ctx, "Vehicle", subscription.FieldValue, subscription.NewChannelListener(1))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Fetch(ctx, "Vehicle.Speed", subscription.FieldValue)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Update(ctx, "Vehicle.Speed", broker.Datapoint{}, subscription.FieldValue)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Unsubscribe(ctx, "Vehicle", nil)
	assert.ErrorIs(t, err, ErrClosed)

	var states []string
	for _, e := range events.snapshot() {
		if e.Category == log.CategoryState {
			assert.Equal(t, s.ID(), e.SessionID)
			states = append(states, e.StateChange.NewState)
		}
	}
	assert.Equal(t, []string{"OPEN", "ATTACHED", "DETACHED", "CLOSED"}, states)
}

func TestSessionWithMockClient(t *testing.T) {
	client := mocks.NewMockClient(t)
	s := openSample(t, func(c *Config) { c.Client = client })
	ctx := context.Background()

	var forward subscription.Listener
	client.EXPECT().
		Subscribe(mock.Anything, "Vehicle.Body", subscription.FieldValue, mock.Anything).
		Run(func(_ context.Context, _ string, _ subscription.FieldMask, l subscription.Listener) {
			forward = l
		}).
		Return(nil).
		Once()

	local := subscription.NewChannelListener(2)
	added, err := s.Subscribe(ctx, "Vehicle.Body", subscription.FieldValue, local)
	require.NoError(t, err)
	assert.True(t, added)
	require.NotNil(t, forward)

	// A broker notification reaches the local listener.
	require.NoError(t, forward.OnChange(subscription.Update{
		Path:   "Vehicle.Body.Trunk.IsOpen",
		Fields: subscription.FieldValue,
		Value:  false,
	}))
	u := <-local.Updates()
	assert.Equal(t, "Vehicle.Body.Trunk.IsOpen", u.Path)
	assert.Equal(t, []string{"Vehicle.Body.Trunk.IsOpen"}, s.RecentlyUpdated())

	client.EXPECT().
		Fetch(mock.Anything, "Vehicle.Speed", subscription.FieldValue).
		Return(&broker.Response{Entries: []broker.Entry{{Path: "Vehicle.Speed"}}}, nil).
		Once()
	resp, err := s.Fetch(ctx, "Vehicle.Speed", subscription.FieldValue)
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 1)

	client.EXPECT().
		Unsubscribe(mock.Anything, "Vehicle.Body", subscription.FieldValue, forward).
		Return(nil).
		Once()
	removed, err := s.Unsubscribe(ctx, "Vehicle.Body", local)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestSubscribeRollsBackWhenAttachFails(t *testing.T) {
	client := mocks.NewMockClient(t)
	s := openSample(t, func(c *Config) { c.Client = client })
	boom := errors.New("broker down")

	client.EXPECT().
		Subscribe(mock.Anything, "Vehicle", subscription.FieldValue, mock.Anything).
		Return(boom).
		Once()

	added, err := s.Subscribe(context.Background(), "Vehicle", subscription.FieldValue, subscription.NewChannelListener(1))
	assert.ErrorIs(t, err, boom)
	assert.False(t, added)
	assert.Empty(t, s.Subscriptions())
}

func TestSubscribeRacingCloseLeavesNoBrokerSubscription(t *testing.T) {
	client := mocks.NewMockClient(t)
	s := openSample(t, func(c *Config) { c.Client = client })

	closed := make(chan struct{})
	client.EXPECT().
		Subscribe(mock.Anything, "Vehicle", subscription.FieldValue, mock.Anything).
		RunAndReturn(func(context.Context, string, subscription.FieldMask, subscription.Listener) error {
			// Close starts while the broker subscription is being attached.
			go func() {
				defer close(closed)
				_ = s.Close()
			}()
			require.Eventually(t, s.isClosed, time.Second, time.Millisecond)
			return nil
		}).
		Once()
	client.EXPECT().
		Unsubscribe(mock.Anything, "Vehicle", subscription.FieldValue, mock.Anything).
		Return(nil).
		Once()

	added, err := s.Subscribe(context.Background(), "Vehicle", subscription.FieldValue, subscription.NewChannelListener(1))
	<-closed

	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, added)
	assert.Empty(t, s.Subscriptions())
}

type eventSink struct {
	mu     sync.Mutex
	events []log.Event
}

func (s *eventSink) Log(e log.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *eventSink) snapshot() []log.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]log.Event(nil), s.events...)
}
