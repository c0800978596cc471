package preview

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/tilemesh/bake"
	"github.com/automoto/tilemesh/fonts"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/shared/gamemath"
)

const tile = 16

func assertColor(t *testing.T, want color.RGBA, got color.Color, msg string) {
	t.Helper()
	c := color.RGBAModel.Convert(got).(color.RGBA)
	assert.InDelta(t, want.R, c.R, 2, msg)
	assert.InDelta(t, want.G, c.G, 2, msg)
	assert.InDelta(t, want.B, c.B, 2, msg)
}

func bakeGrid(t *testing.T, g *grid.Grid) *bake.Result {
	t.Helper()
	res, err := bake.Bake(g, bake.Options{TileW: tile, TileH: tile})
	require.NoError(t, err)
	return res
}

// #####
// #...#
// #.#.#
// #...#
// #####
func TestRender_Room(t *testing.T) {
	g := grid.MustParse("#####", "#...#", "#.#.#", "#...#", "#####")
	opts := DefaultOptions()
	opts.OutlineWidth = 0
	res := bakeGrid(t, g)

	img := Render(res, 5*tile, 5*tile, opts)
	require.Equal(t, 80, img.Bounds().Dx())
	require.Equal(t, 80, img.Bounds().Dy())

	assertColor(t, opts.Collider, img.At(5, 3), "wall")
	assertColor(t, opts.Collider, img.At(40, 40), "pillar")
	assertColor(t, opts.Navmesh, img.At(22, 26), "floor")
	assertColor(t, opts.Navmesh, img.At(57, 60), "floor")
}

// ###
// #
// ###
func TestRender_Background(t *testing.T) {
	g := grid.MustParse("###", "#  ", "###")
	opts := DefaultOptions()
	res := bakeGrid(t, g)

	img := Render(res, 3*tile, 3*tile, opts)
	assertColor(t, opts.Background, img.At(24, 24), "empty tile")
	assertColor(t, opts.Collider, img.At(24, 8), "wall")
}

func TestRender_RouteAndScale(t *testing.T) {
	g := grid.MustParse("#####", "#...#", "#####")
	opts := DefaultOptions()
	opts.Scale = 2
	opts.OutlineWidth = 0
	opts.Path = []gamemath.Point{{24, 24}, {56, 24}}
	res := bakeGrid(t, g)

	img := Render(res, 5*tile, 3*tile, opts)
	require.Equal(t, 160, img.Bounds().Dx())
	require.Equal(t, 96, img.Bounds().Dy())
	assertColor(t, opts.Route, img.At(80, 48), "route")
	assertColor(t, opts.Navmesh, img.At(80, 38), "beside route")
}

func TestRender_Label(t *testing.T) {
	require.NoError(t, fonts.LoadDefaults())
	g := grid.MustParse("###", "#.#", "###")
	opts := DefaultOptions()
	opts.Label = "room"
	res := bakeGrid(t, g)
	assert.NotPanics(t, func() { Render(res, 3*tile, 3*tile, opts) })
}

func TestRender_Caption(t *testing.T) {
	require.NoError(t, fonts.LoadDefaults())
	g := grid.MustParse("######", "#....#", "######")
	res := bakeGrid(t, g)

	opts := DefaultOptions()
	plain := Render(res, 6*tile, 3*tile, opts)
	opts.Caption = "colliders: " + res.ColliderStats.String()
	captioned := Render(res, 6*tile, 3*tile, opts)

	// the caption sits on the bottom wall and leaves the top row alone
	assert.NotEqual(t, plain.Pix, captioned.Pix)
	top := plain.Rect.Dx() * 4 * 8
	assert.Equal(t, plain.Pix[:top], captioned.Pix[:top])
}

func TestWritePNG(t *testing.T) {
	g := grid.MustParse("###", "#.#", "###")
	opts := DefaultOptions()
	img := Render(bakeGrid(t, g), 3*tile, 3*tile, opts)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
