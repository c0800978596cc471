package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/tilemesh/shared/gamemath"
)

func totalArea(polys []gamemath.Polygon) float64 {
	var sum float64
	for _, p := range polys {
		sum += gamemath.Area(p)
	}
	return sum
}

func requireConvexCCW(t *testing.T, polys []gamemath.Polygon) {
	t.Helper()
	for _, p := range polys {
		require.True(t, gamemath.IsCCW(p), "not CCW: %v", p)
		require.True(t, gamemath.IsConvex(p), "not convex: %v", p)
	}
}

// Two right triangles sharing the hypotenuse of the unit square.
//
//	(0,1) +---+ (1,1)
//	      | / |
//	(0,0) +---+ (1,0)
var (
	lower = gamemath.Polygon{{0, 0}, {1, 0}, {1, 1}}
	upper = gamemath.Polygon{{0, 0}, {1, 1}, {0, 1}}
)

func TestAdjacent(t *testing.T) {
	graph := Adjacent([]gamemath.Polygon{lower, upper})
	require.Len(t, graph, 2)
	assert.Equal(t, []Adjacency{{Neighbor: 1, Edge: Edge{{1, 1}, {0, 0}}}}, graph[0])
	assert.Equal(t, []Adjacency{{Neighbor: 0, Edge: Edge{{0, 0}, {1, 1}}}}, graph[1])

	apart := gamemath.Polygon{{5, 5}, {6, 5}, {6, 6}}
	assert.Empty(t, Adjacent([]gamemath.Polygon{lower, apart}))
}

func TestPair_RightTriangles(t *testing.T) {
	merged, ok := Pair(lower, upper, Edge{{1, 1}, {0, 0}})
	require.True(t, ok)
	assert.Equal(t, gamemath.Polygon{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, merged)
	assert.InDelta(t, 1.0, gamemath.Area(merged), 1e-12)
}

func TestPair_WrongEdge(t *testing.T) {
	_, ok := Pair(lower, upper, Edge{{0, 0}, {1, 1}})
	assert.False(t, ok)
	_, ok = Pair(lower, upper, Edge{{7, 7}, {8, 8}})
	assert.False(t, ok)
}

func TestConvex_RightTrianglesMakeQuad(t *testing.T) {
	out := Convex([]gamemath.Polygon{lower, upper})
	require.Len(t, out, 1)
	assert.Len(t, out[0], 4)
	requireConvexCCW(t, out)
	assert.InDelta(t, 1.0, totalArea(out), 1e-12)
}

// The union has a reflex vertex at (1,0.5) and must stay split.
//
//	(0,2) +
//	      | \
//	      |  + (1,0.5)
//	      | /  \
//	(0,0) +-----+ (2,0)
func TestConvex_ReflexUnionRejected(t *testing.T) {
	a := gamemath.Polygon{{0, 0}, {2, 0}, {1, 0.5}}
	b := gamemath.Polygon{{0, 0}, {1, 0.5}, {0, 2}}
	require.True(t, gamemath.IsCCW(a))
	require.True(t, gamemath.IsCCW(b))

	_, ok := Pair(a, b, Edge{{1, 0.5}, {0, 0}})
	assert.False(t, ok)

	out := Convex([]gamemath.Polygon{a, b})
	assert.Len(t, out, 2)
	assert.InDelta(t, gamemath.Area(a)+gamemath.Area(b), totalArea(out), 1e-12)
}

// Three unit squares in a row collapse into one 3x1 rectangle.
func TestConvex_Strip(t *testing.T) {
	in := []gamemath.Polygon{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		{{1, 0}, {2, 0}, {2, 1}, {1, 1}},
		{{2, 0}, {3, 0}, {3, 1}, {2, 1}},
	}
	out := Convex(in)
	require.Len(t, out, 1)
	requireConvexCCW(t, out)
	assert.InDelta(t, 3.0, totalArea(out), 1e-12)
	r := gamemath.Bounds(out[0])
	assert.Equal(t, gamemath.Rect{MinX: 0, MinY: 0, MaxX: 3, MaxY: 1}, r)
}

// A square fanned into four triangles around its centre.
func TestConvex_FanKeepsAreaAndCount(t *testing.T) {
	c := gamemath.Pt(1, 1)
	in := []gamemath.Polygon{
		{{0, 0}, {2, 0}, c},
		{{2, 0}, {2, 2}, c},
		{{2, 2}, {0, 2}, c},
		{{0, 2}, {0, 0}, c},
	}
	snapshot := make([]gamemath.Polygon, len(in))
	for i, p := range in {
		snapshot[i] = p.Clone()
	}

	out := Convex(in)
	assert.Less(t, len(out), len(in))
	requireConvexCCW(t, out)
	assert.InDelta(t, 4.0, totalArea(out), 1e-12)
	assert.Equal(t, snapshot, in, "input must not be modified")
}

func TestConvex_Trivial(t *testing.T) {
	assert.Empty(t, Convex(nil))
	out := Convex([]gamemath.Polygon{lower})
	assert.Equal(t, []gamemath.Polygon{lower}, out)
}
