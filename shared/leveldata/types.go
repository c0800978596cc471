// Package leveldata turns Tiled TMX levels into occupancy grid layouts.
// It has no dependencies on resolv or the bake pipeline, pure data only.
package leveldata

import (
	"fmt"

	"github.com/automoto/tilemesh/grid"
)

// Level holds the bake-relevant data parsed from a TMX level file.
type Level struct {
	Name   string
	Layout grid.Layout
	Spawns []SpawnPoint

	TileWidth  int
	TileHeight int
}

// SpawnPoint represents a player spawn location in world pixels.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// MapWidth returns the level width in world pixels.
func (l *Level) MapWidth() int { return l.Layout.Width * l.TileWidth }

// MapHeight returns the level height in world pixels.
func (l *Level) MapHeight() int { return l.Layout.Height * l.TileHeight }

// Grid validates the layout and builds the occupancy grid.
func (l *Level) Grid() (*grid.Grid, error) {
	g, err := grid.New(l.Layout)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.Name, err)
	}
	return g, nil
}
