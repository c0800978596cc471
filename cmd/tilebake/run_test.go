package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/tilemesh/bake"
	"github.com/automoto/tilemesh/codec"
	"github.com/automoto/tilemesh/collider"
	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/loops"
	"github.com/automoto/tilemesh/shared/gamemath"
	"github.com/automoto/tilemesh/shared/leveldata"
	"github.com/automoto/tilemesh/store"
)

func TestParseRoute(t *testing.T) {
	pts, err := parseRoute("24,24: 56.5,40")
	require.NoError(t, err)
	assert.Equal(t, []gamemath.Point{{24, 24}, {56.5, 40}}, pts)

	for _, bad := range []string{"", "1,2", "1,2:3", "a,b:1,2"} {
		_, err := parseRoute(bad)
		assert.Error(t, err, bad)
	}
}

func TestGridJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.txt")
	require.NoError(t, os.WriteFile(path, []byte("#####\n#   #\n#####\n"), 0o644))

	j, err := gridJob(path, 8)
	require.NoError(t, err)
	assert.Equal(t, "hall", j.name)
	assert.Equal(t, 3, j.grid.Count(grid.Walkable))
	assert.Equal(t, 40, j.mapW)
	assert.Equal(t, 24, j.mapH)
}

func TestLevelJob(t *testing.T) {
	dir := filepath.Join("..", "..", "shared", "leveldata", "testdata", "levels")
	level, err := leveldata.LoadLevel(os.DirFS(dir), "ramp.tmx")
	require.NoError(t, err)

	j, err := levelJob(level)
	require.NoError(t, err)
	assert.Equal(t, 96, j.mapW)
	assert.Equal(t, 64, j.mapH)
	assert.Equal(t, j.grid.Width()*j.tileW, j.mapW)
	assert.Len(t, j.spawns, 2)
}

// ######
// #....#
// #.#../
// ######
func roomJob() job {
	return job{
		name: "room",
		grid: grid.MustParse(
			"######",
			"#....#",
			"#.#../",
			"######",
		),
		tileW:  16,
		tileH:  16,
		mapW:   96,
		mapH:   64,
		spawns: []leveldata.SpawnPoint{{X: 24, Y: 20}, {X: 72, Y: 20, Index: 1}},
	}
}

func bakeJob(t *testing.T, j job) *bake.Result {
	t.Helper()
	res, err := bake.Bake(j.grid, bake.Options{TileW: float64(j.tileW), TileH: float64(j.tileH)})
	require.NoError(t, err)
	return res
}

func TestRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	st, err := store.Open()
	require.NoError(t, err)

	out := t.TempDir()
	j := roomJob()
	opts := runOptions{
		outDir:    out,
		writePNG:  true,
		verify:    true,
		colliders: bake.Convex,
		loops:     loops.Holes,
		route:     []gamemath.Point{{24, 24}, {72, 40}},
		store:     st,
	}
	require.NoError(t, run(j, opts))

	text, err := os.ReadFile(filepath.Join(out, "room.txt"))
	require.NoError(t, err)
	nav, col, err := codec.Deserialize(string(text))
	require.NoError(t, err)
	assert.NotEmpty(t, nav)
	assert.NotEmpty(t, col)
	assert.FileExists(t, filepath.Join(out, "room.png"))

	stored, err := st.Load("room")
	require.NoError(t, err)
	assert.Equal(t, string(text), stored.Data)
	assert.Equal(t, 6, stored.Width)

	opts.colliders = bake.Outline
	opts.writePNG = false
	require.NoError(t, run(j, opts))
}

func TestNavGrid_TileCells(t *testing.T) {
	j := roomJob()
	res := bakeJob(t, j)

	ng, err := navGrid(j, res, bake.Convex)
	require.NoError(t, err)
	assert.Equal(t, 5, ng.Width)
	assert.Equal(t, 3, ng.Height)
	assert.True(t, ng.Nodes[1][1].Walkable)
	assert.False(t, ng.Nodes[2][2].Walkable)
}

func TestNavGrid_SubTileCells(t *testing.T) {
	saved := cfg.Nav.CellSize
	cfg.Nav.CellSize = 8
	t.Cleanup(func() { cfg.Nav.CellSize = saved })

	j := roomJob()
	res := bakeJob(t, j)

	ng, err := navGrid(j, res, bake.Convex)
	require.NoError(t, err)
	assert.Equal(t, 12, ng.Width)
	assert.Equal(t, 8, ng.Height)

	// world (24,8) is inside wall tile (1,0); (24,24) is floor tile (1,1)
	assert.False(t, ng.Nodes[1][3].Walkable, "wall")
	assert.True(t, ng.Nodes[3][3].Walkable, "floor")
	assert.True(t, ng.Nodes[2][2].Walkable, "floor corner")
	// pillar tile (2,2) covers cells 4..5 x 4..5
	assert.False(t, ng.Nodes[4][4].Walkable, "pillar")

	path, err := findRoute(j, res, bake.Convex, gamemath.Pt(24, 24), gamemath.Pt(56, 40))
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, gamemath.Pt(28, 28), path[0])
	assert.Equal(t, gamemath.Pt(60, 44), path[len(path)-1])
	for _, p := range path {
		tile := grid.Pos{X: int(p.X) / j.tileW, Y: int(p.Y) / j.tileH}
		assert.Equal(t, grid.Walkable, j.grid.At(tile), "route point %v", p)
	}

	_, err = navGrid(j, res, bake.Outline)
	assert.Error(t, err)
}

func TestGroundSpawns(t *testing.T) {
	j := roomJob()
	res := bakeJob(t, j)
	space, err := collider.Build(res.Colliders, j.mapW, j.mapH, j.tileW, j.tileH)
	require.NoError(t, err)

	rest := groundSpawns(space, append(j.spawns, leveldata.SpawnPoint{X: 24, Y: 80, Index: 2}))
	require.Len(t, rest, 2)
	// floor at y=48, a 40px player rests with its top at 8
	assert.Equal(t, gamemath.Pt(24, 48-cfg.Bake.SpawnHeight+cfg.Bake.SpawnOffset), rest[0])
}
