package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/automoto/tilemesh/bake"
	"github.com/automoto/tilemesh/codec"
	"github.com/automoto/tilemesh/collider"
	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/loops"
	"github.com/automoto/tilemesh/navgrid"
	"github.com/automoto/tilemesh/preview"
	"github.com/automoto/tilemesh/shared/gamemath"
	"github.com/automoto/tilemesh/shared/leveldata"
	"github.com/automoto/tilemesh/store"
)

// job is one level to bake.
type job struct {
	name         string
	grid         *grid.Grid
	tileW, tileH int
	mapW, mapH   int // World pixels
	spawns       []leveldata.SpawnPoint
}

type runOptions struct {
	outDir    string
	writePNG  bool
	verify    bool
	colliders bake.ColliderMode
	loops     loops.Mode
	route     []gamemath.Point // from, to in world pixels
	store     *store.Store
}

// run bakes one level and writes everything the options ask for.
func run(j job, opts runOptions) error {
	res, err := bake.Bake(j.grid, bake.Options{
		TileW:     float64(j.tileW),
		TileH:     float64(j.tileH),
		Colliders: opts.colliders,
		Loops:     opts.loops,
	})
	if err != nil {
		return fmt.Errorf("bake: %w", err)
	}
	log.Printf("Baked %s: navmesh %v; colliders %v", j.name, res.NavStats, res.ColliderStats)

	text := codec.Serialize(res.Navmesh, res.Colliders)
	txtPath := filepath.Join(opts.outDir, j.name+".txt")
	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", txtPath, err)
	}

	var path []gamemath.Point
	if len(opts.route) == 2 {
		path, err = findRoute(j, res, opts.colliders, opts.route[0], opts.route[1])
		if err != nil {
			return err
		}
	}

	if opts.verify {
		if err := verify(j, res, opts.colliders); err != nil {
			return err
		}
	}

	if opts.writePNG {
		popts := preview.DefaultOptions()
		popts.Path = path
		popts.Label = j.name
		popts.Caption = "colliders: " + res.ColliderStats.String()
		img := preview.Render(res, float64(j.mapW), float64(j.mapH), popts)
		if err := preview.SavePNG(filepath.Join(opts.outDir, j.name+".png"), img); err != nil {
			return err
		}
	}

	if opts.store != nil {
		if err := saveAndCheck(opts.store, j, opts.colliders, text); err != nil {
			return err
		}
	}

	return nil
}

// saveAndCheck stores the baked text and reads it back, so a run only
// reports success for data a later load will see.
func saveAndCheck(st *store.Store, j job, mode bake.ColliderMode, text string) error {
	err := st.Save(&store.Envelope{
		Level:        j.name,
		Width:        j.grid.Width(),
		Height:       j.grid.Height(),
		TileWidth:    j.tileW,
		TileHeight:   j.tileH,
		ColliderMode: string(mode),
		Data:         text,
	})
	if err != nil {
		return err
	}
	stored, err := st.Load(j.name)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if stored.Data != text || stored.ColliderMode != string(mode) {
		return fmt.Errorf("read back %s: stored envelope differs from the bake", j.name)
	}
	return nil
}

// findRoute runs A* between two world points and logs the result. A nil
// path with a nil error means there is no route.
func findRoute(j job, res *bake.Result, mode bake.ColliderMode, from, to gamemath.Point) ([]gamemath.Point, error) {
	ng, err := navGrid(j, res, mode)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	if i, ok := res.NavPolygonAt(from); ok {
		log.Printf("Route %s: start %v is in navmesh polygon %d", j.name, from, i)
	}
	nodes := ng.FindPath(from.X, from.Y, to.X, to.Y)
	if nodes == nil {
		log.Printf("Warning: no route from %v to %v in %s", from, to, j.name)
		return nil, nil
	}
	path := ng.WorldPath(nodes)
	log.Printf("Route %s: %d cells %v", j.name, len(path), path)
	return path, nil
}

// navGrid builds the pathfinding grid. Square tile-sized cells map one to
// one onto the nav matrix. Any other cell size is sampled from the collider
// space, keeping only cells whose centre lies on a walkable tile.
func navGrid(j job, res *bake.Result, mode bake.ColliderMode) (*navgrid.NavGrid, error) {
	cellSize := cfg.Nav.CellSize
	if cellSize <= 0 {
		cellSize = float64(j.tileW)
	}
	if cellSize == float64(j.tileW) && j.tileW == j.tileH {
		return navgrid.FromMatrix(res.NavMatrix, cellSize), nil
	}
	if mode != bake.Convex {
		return nil, fmt.Errorf("nav cell size %g needs %s colliders, have %s", cellSize, bake.Convex, mode)
	}

	space, err := collider.Build(res.Colliders, j.mapW, j.mapH, j.tileW, j.tileH)
	if err != nil {
		return nil, err
	}
	ng := navgrid.FromSpace(space, cellSize)
	for _, row := range ng.Nodes {
		for _, n := range row {
			if !n.Walkable {
				continue
			}
			x, y := ng.GridToWorld(n.X, n.Y)
			tile := grid.Pos{X: int(x) / j.tileW, Y: int(y) / j.tileH}
			n.Walkable = j.grid.At(tile) == grid.Walkable
		}
	}
	log.Printf("Nav grid %s: %dx%d cells of %g px from colliders", j.name, ng.Width, ng.Height, cellSize)
	return ng, nil
}

// verify checks convex colliders against the tile grid through resolv.
func verify(j job, res *bake.Result, mode bake.ColliderMode) error {
	if mode != bake.Convex {
		log.Printf("Warning: skipping verify for %s, %s colliders are not convex", j.name, mode)
		return nil
	}
	space, err := collider.Build(res.Colliders, j.mapW, j.mapH, j.tileW, j.tileH)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	report := collider.Verify(j.grid, space, float64(j.tileW), float64(j.tileH))
	if !report.OK() {
		return fmt.Errorf("verify: %d solid tiles uncovered %v, %d walkable tiles blocked %v",
			len(report.Uncovered), report.Uncovered, len(report.Intruding), report.Intruding)
	}
	log.Printf("Verified %s: colliders match %d solid tiles", j.name, j.grid.Count(grid.Solid))

	groundSpawns(space, j.spawns)
	return nil
}

// groundSpawns returns where each spawn comes to rest: the top-left y of a
// cfg.Bake.SpawnHeight tall player standing on the ground below it. Spawns
// with nothing below them are logged and left out.
func groundSpawns(space *collider.Space, spawns []leveldata.SpawnPoint) []gamemath.Point {
	var rest []gamemath.Point
	for _, sp := range spawns {
		ground, ok := space.GroundY(sp.X, sp.Y)
		if !ok {
			log.Printf("Warning: spawn %d at (%g,%g) has no ground below", sp.Index, sp.X, sp.Y)
			continue
		}
		y := gamemath.SnapToSurfaceY(cfg.Bake.SpawnHeight, ground, cfg.Bake.SpawnOffset)
		log.Printf("Spawn %d at (%g,%g) lands on y=%g, rests at y=%g", sp.Index, sp.X, sp.Y, ground, y)
		rest = append(rest, gamemath.Pt(sp.X, y))
	}
	return rest
}

// parseRoute reads "x1,y1:x2,y2".
func parseRoute(s string) ([]gamemath.Point, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("route %q: want x1,y1:x2,y2", s)
	}
	from, err := parsePoint(a)
	if err != nil {
		return nil, fmt.Errorf("route start: %w", err)
	}
	to, err := parsePoint(b)
	if err != nil {
		return nil, fmt.Errorf("route goal: %w", err)
	}
	return []gamemath.Point{from, to}, nil
}

func parsePoint(s string) (gamemath.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return gamemath.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return gamemath.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return gamemath.Point{}, err
	}
	return gamemath.Pt(x, y), nil
}
