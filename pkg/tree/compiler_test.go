package tree

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/log"
)

func branch(path string) catalog.Record {
	return catalog.Record{Path: path, Kind: catalog.KindBranch, UUID: "u-" + path}
}

func sensor(path string, dt catalog.Datatype) catalog.Record {
	return catalog.Record{Path: path, Kind: catalog.KindSensor, UUID: "u-" + path, Datatype: dt}
}

func paths(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path()
	}
	return out
}

func mustCompile(t *testing.T, records ...catalog.Record) *Forest {
	t.Helper()
	f, err := Compile(records, Options{})
	require.NoError(t, err)
	return f
}

func TestCompileSampleCatalog(t *testing.T) {
	cat, err := catalog.Load(filepath.Join("..", "catalog", "testdata", "vehicle.vspec"), catalog.DefaultOptions())
	require.NoError(t, err)

	f, err := CompileCatalog(cat, Options{})
	require.NoError(t, err)

	assert.Equal(t, cat.Len(), f.Len())
	require.Len(t, f.Roots(), 1)
	assert.Empty(t, f.Detached())

	vehicle := f.Roots()[0]
	assert.Equal(t, "vehicle", vehicle.Identifier())
	assert.Equal(t,
		[]string{"Vehicle.Speed", "Vehicle.VehicleIdentification", "Vehicle.Body", "Vehicle.Cabin"},
		paths(f.Children(vehicle.ID())))

	vin, ok := f.Lookup("Vehicle.VehicleIdentification.VIN")
	require.True(t, ok)
	assert.Equal(t, "vin", vin.Identifier())
	assert.Equal(t, catalog.KindAttribute, vin.Kind())
	assert.True(t, vin.ValueCapable())

	isOpen, _ := f.Lookup("Vehicle.Body.Trunk.IsOpen")
	assert.Equal(t, "isOpen", isOpen.Identifier())
	assert.Equal(t, 3, isOpen.Depth())

	parent, ok := f.Parent(isOpen.ID())
	require.True(t, ok)
	assert.Equal(t, "Vehicle.Body.Trunk", parent.Path())
}

func TestCompileNodeCountMatchesRecords(t *testing.T) {
	records := []catalog.Record{
		branch("A"),
		branch("A.B"),
		sensor("A.B.C", catalog.Float),
		branch("X.Y"),
		sensor("X.Y.Z", catalog.Int8),
		sensor("A.D", catalog.Boolean),
	}
	f := mustCompile(t, records...)
	assert.Equal(t, len(records), f.Len())

	count := 0
	f.Walk(func(*Node) bool {
		count++
		return true
	})
	assert.Equal(t, len(records), count)
}

func TestCompileChildBeforeParent(t *testing.T) {
	f := mustCompile(t,
		sensor("A.B.C", catalog.Float),
		branch("A.B"),
		branch("A"),
		sensor("A.B.D", catalog.Float),
	)

	require.Len(t, f.Roots(), 1)
	assert.Equal(t, "A", f.Roots()[0].Path())
	assert.Empty(t, f.Detached())

	ab, _ := f.Lookup("A.B")
	assert.Equal(t, []string{"A.B.C", "A.B.D"}, paths(f.Children(ab.ID())))
}

func TestCompileDuplicatePathRejectsCatalog(t *testing.T) {
	a := branch("A")
	a.Line = 1
	b := branch("A.B")
	b.Line = 4
	dup := branch("A.B")
	dup.Line = 9

	events := &captureLogger{}
	_, err := Compile([]catalog.Record{a, b, dup}, Options{EventLogger: events})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicatePath))

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "A.B", ce.Path)
	assert.Equal(t, 9, ce.Line)
	assert.Equal(t, 4, ce.FirstLine)

	require.Len(t, events.events, 1)
	assert.Equal(t, log.CategoryError, events.events[0].Category)
}

func TestCompileUnresolvedParentBecomesRoot(t *testing.T) {
	f := mustCompile(t,
		branch("Vehicle"),
		sensor("Vehicle.Speed", catalog.Float),
		sensor("Vehicle.Body.Lights.IsOn", catalog.Boolean),
	)

	assert.Equal(t, []string{"Vehicle", "Vehicle.Body.Lights.IsOn"}, paths(f.Roots()))
	assert.Equal(t, []string{"Vehicle.Body.Lights.IsOn"}, f.DetachedPaths())

	warnings := f.Warnings()
	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], ErrUnresolvedParent))

	n, _ := f.Lookup("Vehicle.Body.Lights.IsOn")
	_, hasParent := f.Parent(n.ID())
	assert.False(t, hasParent)
	assert.Equal(t, NoNode, n.ParentID())
}

func TestCompileInvalidPath(t *testing.T) {
	_, err := Compile([]catalog.Record{branch("A..B")}, Options{})
	assert.True(t, errors.Is(err, catalog.ErrInvalidPath))
}

func TestCompileEmitsCompileEvent(t *testing.T) {
	events := &captureLogger{}
	_, err := Compile([]catalog.Record{branch("A"), branch("B.C")}, Options{EventLogger: events})
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	e := events.events[0]
	require.NotNil(t, e.Compile)
	assert.Equal(t, 2, e.Compile.Nodes)
	assert.Equal(t, 2, e.Compile.Roots)
	assert.Equal(t, []string{"B.C"}, e.Compile.Detached)
}

func TestCompileIdentifiersAreSiblingScoped(t *testing.T) {
	f := mustCompile(t,
		branch("A"),
		branch("A.Children"),
		sensor("A.Children.Type", catalog.String),
		branch("B"),
		branch("B.Children"),
	)

	ac, _ := f.Lookup("A.Children")
	bc, _ := f.Lookup("B.Children")
	typ, _ := f.Lookup("A.Children.Type")
	assert.Equal(t, "vssChildren", ac.Identifier())
	assert.Equal(t, "vssChildren", bc.Identifier())
	assert.Equal(t, "vssType", typ.Identifier())
}

func TestCompileIsDeterministic(t *testing.T) {
	records := []catalog.Record{branch("VSS"), sensor("VSS.VSSVehicleID", catalog.String)}
	a := mustCompile(t, records...)
	b := mustCompile(t, records...)
	for i := range a.Len() {
		assert.Equal(t, a.Node(NodeID(i)).Identifier(), b.Node(NodeID(i)).Identifier())
	}
	n, _ := a.Lookup("VSS.VSSVehicleID")
	assert.Equal(t, "vssVehicleID", n.Identifier())
}

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.events = append(c.events, e)
}
