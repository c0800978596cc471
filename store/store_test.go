package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/tilemesh/codec"
	"github.com/automoto/tilemesh/shared/gamemath"
)

func envelope() *Envelope {
	nav := []gamemath.Polygon{{{16, 16}, {64, 16}, {64, 32}, {16, 32}}}
	col := []gamemath.Polygon{{{0, 0}, {80, 0}, {80, 16}, {0, 16}}}
	return &Envelope{
		Level:        "hall",
		Width:        5,
		Height:       3,
		TileWidth:    16,
		TileHeight:   16,
		ColliderMode: "convex",
		Data:         codec.Serialize(nav, col),
	}
}

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(envelope())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"hall"`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, envelope(), got)

	nav, col, err := got.Polygons()
	require.NoError(t, err)
	assert.Len(t, nav, 1)
	assert.Len(t, col, 1)
	assert.Equal(t, gamemath.Pt(80, 16), col[0][2])
}

func TestEncode_Invalid(t *testing.T) {
	e := envelope()
	e.Level = ""
	_, err := Encode(e)
	require.Error(t, err)

	e = envelope()
	e.Data = "not polygons"
	_, err = Encode(e)
	require.ErrorIs(t, err, codec.ErrFormat)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("{"))
	require.Error(t, err)

	_, err = Decode([]byte(`{"level":"hall","data":"0,0;1,0\n"}`))
	require.ErrorIs(t, err, codec.ErrFormat)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "bake_hall", Key("hall"))
}

func TestStore_SaveLoad(t *testing.T) {
	// gdata keeps items under $HOME/.local/share
	t.Setenv("HOME", t.TempDir())
	st, err := Open()
	require.NoError(t, err)

	_, err = st.Load("hall")
	require.ErrorIs(t, err, ErrNotFound)

	e := envelope()
	require.NoError(t, st.Save(e))
	got, err := st.Load("hall")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	bad := envelope()
	bad.Data = "0,0;1,0\n"
	assert.ErrorIs(t, st.Save(bad), codec.ErrFormat)
}
