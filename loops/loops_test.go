package loops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/tilemesh/contour"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/shared/gamemath"
)

func islandLoops(t *testing.T, mode Mode, rows ...string) []gamemath.Polygon {
	t.Helper()
	g := grid.MustParse(rows...)
	islands := g.Islands(grid.Solid)
	require.Len(t, islands, 1)
	segs, defects := contour.Extract(islands[0], g.Diagonal)
	require.Empty(t, defects)
	loops, err := Assemble(segs, mode)
	require.NoError(t, err)
	return loops
}

func totalArea(loops []gamemath.Polygon) float64 {
	var sum float64
	for _, l := range loops {
		sum += gamemath.Area(l)
	}
	return sum
}

var ring = []string{
	"#####",
	"#####",
	"## ##",
	"#####",
	"#####",
}

func TestAssemble_FullSquare(t *testing.T) {
	loops := islandLoops(t, Holes,
		"####",
		"####",
		"####",
		"####",
	)
	require.Len(t, loops, 1)
	assert.True(t, gamemath.IsCCW(loops[0]))

	rect := Minimize(loops[0])
	require.Len(t, rect, 4)
	assert.ElementsMatch(t, gamemath.Polygon{{-1, -1}, {7, -1}, {7, 7}, {-1, 7}}, rect)
	assert.Equal(t, 64.0, gamemath.Area(rect))
}

func TestAssemble_NoHolesMode(t *testing.T) {
	loops := islandLoops(t, NoHoles,
		"###",
		"## ",
		"#  ",
	)
	require.Len(t, loops, 1)
	assert.Equal(t, 4.0*6, gamemath.Area(loops[0]))

	g := grid.MustParse(ring...)
	segs, _ := contour.Extract(g.Islands(grid.Solid)[0], g.Diagonal)
	_, err := Assemble(segs, NoHoles)
	require.ErrorIs(t, err, ErrNonManifoldBoundary)
}

func TestAssemble_Ring(t *testing.T) {
	loops := islandLoops(t, Holes, ring...)
	require.Len(t, loops, 2)
	assert.True(t, gamemath.IsCCW(loops[0]), "outer first and counter-clockwise")
	assert.False(t, gamemath.IsCCW(loops[1]), "hole clockwise")
	assert.Equal(t, 100.0, gamemath.Area(loops[0]))
	assert.Equal(t, -4.0, gamemath.Area(loops[1]))
}

func TestAssemble_Errors(t *testing.T) {
	p := gamemath.Pt
	open := []contour.Segment{{A: p(0, 0), B: p(1, 0)}, {A: p(1, 0), B: p(1, 1)}}
	_, err := Assemble(open, Holes)
	require.ErrorIs(t, err, ErrNonManifoldBoundary)

	dup := []contour.Segment{{A: p(0, 0), B: p(1, 0)}, {A: p(0, 0), B: p(0, 1)}}
	_, err = Assemble(dup, Holes)
	require.ErrorIs(t, err, ErrNonManifoldBoundary)

	square := func(ox float64) []contour.Segment {
		return []contour.Segment{
			{A: p(ox, 0), B: p(ox+1, 0)},
			{A: p(ox+1, 0), B: p(ox+1, 1)},
			{A: p(ox+1, 1), B: p(ox, 1)},
			{A: p(ox, 1), B: p(ox, 0)},
		}
	}
	twoOuters := append(square(0), square(5)...)
	_, err = Assemble(twoOuters, Holes)
	require.ErrorIs(t, err, ErrNoOuterLoop)

	var cw []contour.Segment
	for _, s := range square(0) {
		cw = append(cw, s.Reverse())
	}
	_, err = Assemble(cw, Holes)
	require.ErrorIs(t, err, ErrNoOuterLoop)
	_, err = Assemble(cw, NoHoles)
	require.ErrorIs(t, err, ErrNoOuterLoop)

	_, err = Assemble(nil, Holes)
	require.ErrorIs(t, err, ErrNoOuterLoop)
}

func TestBridge_Ring(t *testing.T) {
	loops := islandLoops(t, Holes, ring...)
	bridged, err := Bridge(loops)
	require.NoError(t, err)

	assert.Len(t, bridged, len(loops[0])+len(loops[1])+2)
	assert.Equal(t, totalArea(loops), gamemath.Area(bridged))
	assert.Equal(t, totalArea(loops), gamemath.Area(Minimize(bridged)))

	// input untouched
	assert.Len(t, loops, 2)
}

func TestBridge_TwoHoles(t *testing.T) {
	loops := islandLoops(t, Holes,
		"#######",
		"# ### #",
		"#######",
		"### ###",
		"#######",
	)
	require.Len(t, loops, 4)

	bridged, err := Bridge(loops)
	require.NoError(t, err)
	want := 2 * (len(loops) - 1)
	for _, l := range loops {
		want += len(l)
	}
	assert.Len(t, bridged, want)
	assert.Equal(t, totalArea(loops), gamemath.Area(bridged))
}

func TestBridge_NoCandidate(t *testing.T) {
	outer := gamemath.Polygon{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	hole := gamemath.Polygon{{5, 5}, {5, 6}, {6, 6}, {6, 5}}
	_, err := Bridge([]gamemath.Polygon{outer, hole})
	require.ErrorIs(t, err, ErrBridgeCandidateNotFound)

	_, err = Bridge(nil)
	require.ErrorIs(t, err, ErrNoOuterLoop)

	only, err := Bridge([]gamemath.Polygon{outer})
	require.NoError(t, err)
	assert.Equal(t, outer, only)
}

func TestMinimize(t *testing.T) {
	loop := gamemath.Polygon{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
	assert.Equal(t, gamemath.Polygon{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, Minimize(loop))

	spike := gamemath.Polygon{{0, 0}, {4, 0}, {4, 4}, {2, 4}, {2, 2}, {2, 4}, {0, 4}}
	assert.Equal(t, spike, Minimize(spike), "slits survive")

	line := gamemath.Polygon{{0, 0}, {1, 0}, {2, 0}}
	assert.Equal(t, line, Minimize(line))
	assert.Len(t, Minimize(gamemath.Polygon{{0, 0}, {1, 1}}), 2)
}

func TestMinimize_Idempotent(t *testing.T) {
	fixtures := [][]string{
		ring,
		{"####", "####", "####", "####"},
		{"  /##", " /###", "/####"},
		{"###  ", "#/#/#", "#####"},
	}
	for _, rows := range fixtures {
		for _, l := range islandLoops(t, Holes, rows...) {
			once := Minimize(l)
			assert.Equal(t, once, Minimize(once))
			assert.Equal(t, gamemath.Area(l), gamemath.Area(once))
			assert.LessOrEqual(t, len(once), len(l))
		}
	}
}
