package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/tags"
)

// ErrNoSolidLayer is returned for levels without the configured solid layer.
var ErrNoSolidLayer = errors.New("leveldata: solid layer not found")

// LoadLevel parses a TMX file into a grid layout. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
//
// Tiles of cfg.Bake.SolidLayer are solid. Tiles of the optional
// cfg.Bake.WalkableLayer are walkable; without that layer every other tile
// is walkable when cfg.Bake.ImplicitWalkable is set. A tile whose tileset
// entry has a non-empty cfg.Bake.SlopeProperty is diagonal.
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name: strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Layout: grid.Layout{
			Width:  levelMap.Width,
			Height: levelMap.Height,
		},
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}

	var foundSolid, foundWalkable bool
	for _, layer := range levelMap.Layers {
		switch layer.Name {
		case cfg.Bake.SolidLayer:
			foundSolid = true
			level.Layout.Solid, level.Layout.Diagonal = readLayer(levelMap, layer, level.Layout.Diagonal)
		case cfg.Bake.WalkableLayer:
			foundWalkable = true
			level.Layout.Walkable, level.Layout.Diagonal = readLayer(levelMap, layer, level.Layout.Diagonal)
		}
	}
	if !foundSolid {
		return nil, fmt.Errorf("%s: %w: %q", tmxPath, ErrNoSolidLayer, cfg.Bake.SolidLayer)
	}
	level.Layout.ImplicitWalkable = !foundWalkable && cfg.Bake.ImplicitWalkable

	// Parse player spawn points from the spawn object group
	for _, og := range levelMap.ObjectGroups {
		if og.Name != cfg.Bake.SpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			level.Spawns = append(level.Spawns, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Index: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(level.Spawns, func(i, j int) bool {
		return level.Spawns[i].X < level.Spawns[j].X
	})

	return level, nil
}

// readLayer returns the positions of every painted tile in layer, and
// appends the sloped ones to diagonal.
func readLayer(levelMap *tiled.Map, layer *tiled.Layer, diagonal []grid.Pos) ([]grid.Pos, []grid.Pos) {
	var painted []grid.Pos
	for y := 0; y < levelMap.Height; y++ {
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}
			p := grid.Pos{X: x, Y: y}
			painted = append(painted, p)

			tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
			if err != nil {
				continue
			}
			switch slope := tilesetTile.Properties.GetString(cfg.Bake.SlopeProperty); slope {
			case "":
			case tags.Slope45UpRight, tags.Slope45UpLeft:
				diagonal = append(diagonal, p)
			default:
				log.Printf("Warning: tile %v in layer %s has unknown slope %q, treating it as diagonal", p, layer.Name, slope)
				diagonal = append(diagonal, p)
			}
		}
	}
	return painted, diagonal
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each
// one, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
