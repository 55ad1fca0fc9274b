package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vss-go/vss-go/pkg/catalog"
)

// groupedForest builds R with children [A, B, C], A -> D, B -> E, D -> F.
func groupedForest(t *testing.T) *Forest {
	t.Helper()
	return mustCompile(t,
		branch("R"),
		branch("R.A"),
		branch("R.B"),
		sensor("R.C", catalog.Float),
		branch("R.A.D"),
		sensor("R.B.E", catalog.Float),
		sensor("R.A.D.F", catalog.Float),
	)
}

func TestDescendantsGroupedPreOrder(t *testing.T) {
	f := mustCompile(t,
		branch("R"),
		branch("R.A"),
		branch("R.B"),
		sensor("R.C", catalog.Float),
		sensor("R.A.D", catalog.Float),
		sensor("R.B.E", catalog.Float),
	)
	r, _ := f.Lookup("R")

	assert.Equal(t,
		[]string{"R.A", "R.B", "R.C", "R.A.D", "R.B.E"},
		paths(f.Descendants(r.ID())))
}

func TestDescendantsDiffersFromDFSAndBFS(t *testing.T) {
	f := groupedForest(t)
	r, _ := f.Lookup("R")

	// DFS would be A D F B E C; BFS would be A B C D E F.
	assert.Equal(t,
		[]string{"R.A", "R.B", "R.C", "R.A.D", "R.A.D.F", "R.B.E"},
		paths(f.Descendants(r.ID())))
}

func TestDescendantsOfLeafAndUnknown(t *testing.T) {
	f := groupedForest(t)
	c, _ := f.Lookup("R.C")
	assert.Empty(t, f.Descendants(c.ID()))
	assert.Nil(t, f.Descendants(NodeID(999)))
	assert.Nil(t, f.Descendants(NoNode))
}

func TestDescendantsStableAcrossCalls(t *testing.T) {
	f := groupedForest(t)
	r, _ := f.Lookup("R")
	first := paths(f.Descendants(r.ID()))
	for range 5 {
		assert.Equal(t, first, paths(f.Descendants(r.ID())))
	}
}

func TestAncestryLine(t *testing.T) {
	f := groupedForest(t)
	r, _ := f.Lookup("R")
	leaf, _ := f.Lookup("R.A.D.F")

	assert.Equal(t, []string{"R.A", "R.A.D", "R.A.D.F"}, paths(f.AncestryLine(r.ID(), leaf.ID())))

	a, _ := f.Lookup("R.A")
	assert.Equal(t, []string{"R.A.D", "R.A.D.F"}, paths(f.AncestryLine(a.ID(), leaf.ID())))

	e, _ := f.Lookup("R.B.E")
	assert.Empty(t, f.AncestryLine(a.ID(), e.ID()))
	assert.Nil(t, f.AncestryLine(r.ID(), NodeID(-7)))
}

func TestAncestors(t *testing.T) {
	f := groupedForest(t)
	leaf, _ := f.Lookup("R.A.D.F")
	assert.Equal(t, []string{"R", "R.A", "R.A.D"}, paths(f.Ancestors(leaf.ID())))

	r, _ := f.Lookup("R")
	assert.Empty(t, f.Ancestors(r.ID()))
}

func TestWalkSkipsSubtree(t *testing.T) {
	f := groupedForest(t)
	var visited []string
	f.Walk(func(n *Node) bool {
		visited = append(visited, n.Path())
		return n.Path() != "R.A"
	})
	assert.Equal(t, []string{"R", "R.A", "R.B", "R.B.E", "R.C"}, visited)
}

func TestLookupAndGet(t *testing.T) {
	f := groupedForest(t)

	_, ok := f.Lookup("R.Z")
	assert.False(t, ok)

	_, err := f.Get("R.Z")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	n, err := f.Get("R.B.E")
	require.NoError(t, err)
	assert.Equal(t, "E", n.Name())
	assert.True(t, n.IsLeaf())
	assert.Equal(t, "u-R.B.E", n.UUID())
}

func TestValueNodes(t *testing.T) {
	f := groupedForest(t)
	assert.Equal(t, []string{"R.C", "R.B.E", "R.A.D.F"}, paths(f.ValueNodes()))
}

func TestChildIDsIsCopy(t *testing.T) {
	f := groupedForest(t)
	r, _ := f.Lookup("R")
	ids := r.ChildIDs()
	ids[0] = NodeID(42)
	assert.Equal(t, []string{"R.A", "R.B", "R.C"}, paths(f.Children(r.ID())))
}
