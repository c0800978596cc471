// Package bake runs the full occupancy-grid to polygon pipeline for one
// level: walkable islands become navmesh polygons, solid islands become
// collider polygons.
//
// Per island: contour segments -> loops (outer first) -> minimized loops ->
// world space -> triangles. Triangles from every island are then merged into
// convex polygons. In outline collider mode each solid island instead
// becomes a single bridged, minimized polygon.
package bake

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/tilemesh/contour"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/loops"
	"github.com/automoto/tilemesh/merge"
	"github.com/automoto/tilemesh/shared/gamemath"
	"github.com/automoto/tilemesh/triangulate"
)

// ColliderMode selects the shape of the collider output.
type ColliderMode string

const (
	// Convex triangulates solid islands and merges the triangles into
	// convex polygons.
	Convex ColliderMode = "convex"
	// Outline emits one hole-free polygon per solid island, with holes
	// bridged into the outer boundary.
	Outline ColliderMode = "outline"
)

// ParseColliderMode validates a mode name from the command line or config.
func ParseColliderMode(s string) (ColliderMode, error) {
	switch m := ColliderMode(s); m {
	case Convex, Outline:
		return m, nil
	}
	return "", fmt.Errorf("unknown collider mode %q (want %q or %q)", s, Convex, Outline)
}

// Options controls a bake. A zero tile size is treated as 1.
type Options struct {
	TileW, TileH float64
	Colliders    ColliderMode
	Loops        loops.Mode
}

// Region is one island's boundary in world space: a counter-clockwise outer
// loop and its clockwise holes.
type Region struct {
	Outer gamemath.Polygon
	Holes []gamemath.Polygon
}

// Stats counts what one region kind produced.
type Stats struct {
	Islands   int
	Loops     int
	Holes     int
	Triangles int
	Polygons  int
	Defects   int
	Skipped   int // Islands dropped because a defect broke their boundary
}

func (s Stats) String() string {
	return fmt.Sprintf("%d islands (%d skipped), %d loops (%d holes), %d triangles -> %d polygons, %d defects",
		s.Islands, s.Skipped, s.Loops, s.Holes, s.Triangles, s.Polygons, s.Defects)
}

// Result is the output of Bake.
type Result struct {
	Navmesh   []gamemath.Polygon
	Colliders []gamemath.Polygon

	NavRegions      []Region
	ColliderRegions []Region

	// NavMatrix is the coarse walkability matrix for the pathfinder.
	NavMatrix [][]bool

	NavStats      Stats
	ColliderStats Stats
	Defects       []contour.Defect
}

// NavPolygonAt returns the index of the navmesh polygon containing p,
// boundary included. Navmesh polygons are convex and counter-clockwise, which
// is what PointInPolygon requires.
func (r *Result) NavPolygonAt(p gamemath.Point) (int, bool) {
	for i, poly := range r.Navmesh {
		inside, err := gamemath.PointInPolygon(poly, p)
		if err != nil {
			log.Printf("Warning: navmesh polygon %d: %v", i, err)
			continue
		}
		if inside {
			return i, true
		}
	}
	return -1, false
}

// Bake runs the pipeline over g. An island whose boundary is broken by a
// contour defect is logged and skipped; any other island that cannot be
// turned into polygons stops the bake.
func Bake(g *grid.Grid, opts Options) (*Result, error) {
	if opts.TileW <= 0 {
		opts.TileW = 1
	}
	if opts.TileH <= 0 {
		opts.TileH = 1
	}
	if opts.Colliders == "" {
		opts.Colliders = Convex
	}

	res := &Result{NavMatrix: g.NavMatrix()}

	nav, err := bakeKind(g, grid.Walkable, Convex, opts)
	if err != nil {
		return nil, err
	}
	res.Navmesh, res.NavRegions, res.NavStats = nav.polys, nav.regions, nav.stats
	res.Defects = append(res.Defects, nav.defects...)

	col, err := bakeKind(g, grid.Solid, opts.Colliders, opts)
	if err != nil {
		return nil, err
	}
	res.Colliders, res.ColliderRegions, res.ColliderStats = col.polys, col.regions, col.stats
	res.Defects = append(res.Defects, col.defects...)

	return res, nil
}

type kindOutput struct {
	polys   []gamemath.Polygon
	regions []Region
	stats   Stats
	defects []contour.Defect
}

func bakeKind(g *grid.Grid, kind grid.Cell, mode ColliderMode, opts Options) (kindOutput, error) {
	var (
		out       kindOutput
		triangles []gamemath.Polygon
	)
	islands := g.Islands(kind)
	out.stats.Islands = len(islands)

	for i, island := range islands {
		segs, defects := contour.Extract(island, g.Diagonal)
		out.defects = append(out.defects, defects...)
		out.stats.Defects += len(defects)

		ls, err := loops.Assemble(segs, opts.Loops)
		if err != nil && len(defects) > 0 && errors.Is(err, loops.ErrNonManifoldBoundary) {
			log.Printf("Warning: skipping %s island %d (%d tiles from %v), %d defects: %v",
				kind, i, len(island), island[0], len(defects), err)
			out.stats.Skipped++
			continue
		}
		if err != nil {
			return out, fmt.Errorf("%s island %d (%d tiles from %v): %w", kind, i, len(island), island[0], err)
		}
		out.stats.Loops += len(ls)
		out.stats.Holes += len(ls) - 1

		minimized := loops.MinimizeAll(ls)
		region := Region{Outer: toWorld(minimized[0], opts)}
		for _, h := range minimized[1:] {
			region.Holes = append(region.Holes, toWorld(h, opts))
		}
		out.regions = append(out.regions, region)

		if mode == Outline {
			bridged, err := loops.Bridge(ls)
			if err != nil {
				return out, fmt.Errorf("%s island %d (%d tiles from %v): %w", kind, i, len(island), island[0], err)
			}
			out.polys = append(out.polys, toWorld(loops.Minimize(bridged), opts))
			continue
		}

		tris, err := triangulate.Triangulate(region.Outer, region.Holes)
		if err != nil {
			return out, fmt.Errorf("%s island %d (%d tiles from %v): %w", kind, i, len(island), island[0], err)
		}
		triangles = append(triangles, tris...)
	}

	out.stats.Triangles = len(triangles)
	if mode != Outline {
		out.polys = merge.Convex(triangles)
	}
	out.stats.Polygons = len(out.polys)
	return out, nil
}

// toWorld maps marching-squares coordinates to world units. Cell (x,y) has
// its centre at local (2x,2y) and covers [x*tileW, (x+1)*tileW] horizontally.
func toWorld(loop gamemath.Polygon, opts Options) gamemath.Polygon {
	sx, sy := opts.TileW/2, opts.TileH/2
	out := make(gamemath.Polygon, len(loop))
	for i, p := range loop {
		out[i] = gamemath.Point{X: (p.X + 1) * sx, Y: (p.Y + 1) * sy}
	}
	return out
}
