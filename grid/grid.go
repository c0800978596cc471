package grid

import (
	"errors"
	"fmt"
)

// ErrMalformedGrid indicates a Layout that cannot form a valid grid.
var ErrMalformedGrid = errors.New("grid: malformed grid")

// MinSize is the smallest width or height accepted. Contour extraction
// samples 2x2 blocks, so each axis needs at least size-1 = 2 blocks.
const MinSize = 3

// Cell is the tri-state occupancy of one tile.
type Cell uint8

const (
	Empty Cell = iota
	Solid
	Walkable
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Solid:
		return "solid"
	case Walkable:
		return "walkable"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Pos is an integer tile coordinate.
type Pos struct {
	X, Y int
}

// Layout describes a grid before validation.
type Layout struct {
	Width, Height int
	Solid         []Pos
	Walkable      []Pos
	Diagonal      []Pos

	// ImplicitWalkable marks every non-solid cell walkable when Walkable is
	// empty. Platformer maps rarely paint a separate walkable layer.
	ImplicitWalkable bool
}

// Grid is an immutable occupancy grid.
type Grid struct {
	width, height int
	cells         []Cell
	diagonal      []bool
}

// New validates l and builds a Grid from it.
func New(l Layout) (*Grid, error) {
	if l.Width < MinSize || l.Height < MinSize {
		return nil, fmt.Errorf("%w: size %dx%d, need at least %dx%d",
			ErrMalformedGrid, l.Width, l.Height, MinSize, MinSize)
	}
	g := &Grid{
		width:    l.Width,
		height:   l.Height,
		cells:    make([]Cell, l.Width*l.Height),
		diagonal: make([]bool, l.Width*l.Height),
	}
	for _, p := range l.Solid {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: solid tile %v out of bounds", ErrMalformedGrid, p)
		}
		g.cells[g.index(p)] = Solid
	}
	for _, p := range l.Walkable {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: walkable tile %v out of bounds", ErrMalformedGrid, p)
		}
		if g.cells[g.index(p)] == Solid {
			return nil, fmt.Errorf("%w: tile %v is both solid and walkable", ErrMalformedGrid, p)
		}
		g.cells[g.index(p)] = Walkable
	}
	if len(l.Walkable) == 0 && l.ImplicitWalkable {
		for i, c := range g.cells {
			if c == Empty {
				g.cells[i] = Walkable
			}
		}
	}
	for _, p := range l.Diagonal {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: diagonal tile %v out of bounds", ErrMalformedGrid, p)
		}
		g.diagonal[g.index(p)] = true
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the cell at p. Positions outside the grid are Empty.
func (g *Grid) At(p Pos) Cell {
	if !g.InBounds(p) {
		return Empty
	}
	return g.cells[g.index(p)]
}

// Diagonal reports whether the tile at p permits an oblique boundary cut.
func (g *Grid) Diagonal(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.diagonal[g.index(p)]
}

// Positions returns every position holding kind, in row-major order.
func (g *Grid) Positions(kind Cell) []Pos {
	var out []Pos
	for i, c := range g.cells {
		if c == kind {
			out = append(out, g.coordinate(i))
		}
	}
	return out
}

// Count returns how many cells hold kind.
func (g *Grid) Count(kind Cell) int {
	n := 0
	for _, c := range g.cells {
		if c == kind {
			n++
		}
	}
	return n
}

// NavMatrix returns the coarse walkability matrix handed to the pathfinder:
// a corner-cropped copy of the grid, one cell smaller on each axis to match
// the 2x2 block sampling of contour extraction. Indexed [y][x].
func (g *Grid) NavMatrix() [][]bool {
	m := make([][]bool, g.height-1)
	for y := range m {
		m[y] = make([]bool, g.width-1)
		for x := range m[y] {
			m[y][x] = g.cells[g.index(Pos{x, y})] == Walkable
		}
	}
	return m
}

func (g *Grid) index(p Pos) int {
	return p.Y*g.width + p.X
}

func (g *Grid) coordinate(i int) Pos {
	return Pos{X: i % g.width, Y: i / g.width}
}
