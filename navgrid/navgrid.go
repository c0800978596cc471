// Package navgrid runs A* over the coarse walkability matrix that the bake
// produces alongside the polygons.
package navgrid

import (
	"math"
	"slices"

	astar "github.com/beefsack/go-astar"

	"github.com/automoto/tilemesh/collider"
	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/shared/gamemath"
)

// NavGrid represents the walkable areas of the level
type NavGrid struct {
	Width, Height int
	CellSize      float64
	Nodes         [][]*NavNode // 2D grid of nodes, indexed [y][x]
}

// NavNode represents a single cell in the navigation grid
// Implements astar.Pather interface
type NavNode struct {
	X, Y     int
	Walkable bool     // Can move through this cell
	Grid     *NavGrid // Reference to parent grid for neighbor lookup
}

var (
	cardinalDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
)

// PathNeighbors returns adjacent walkable nodes (implements astar.Pather).
// Diagonal steps need both cells they cut past to be walkable.
func (n *NavNode) PathNeighbors() []astar.Pather {
	var neighbors []astar.Pather

	for _, d := range cardinalDirs {
		if nb := n.Grid.walkable(n.X+d[0], n.Y+d[1]); nb != nil {
			neighbors = append(neighbors, nb)
		}
	}
	if !cfg.Nav.AllowDiagonal {
		return neighbors
	}
	for _, d := range diagonalDirs {
		if n.Grid.walkable(n.X+d[0], n.Y) == nil || n.Grid.walkable(n.X, n.Y+d[1]) == nil {
			continue
		}
		if nb := n.Grid.walkable(n.X+d[0], n.Y+d[1]); nb != nil {
			neighbors = append(neighbors, nb)
		}
	}

	return neighbors
}

// PathNeighborCost returns the movement cost between adjacent nodes (implements astar.Pather)
func (n *NavNode) PathNeighborCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)
	if toNode.X != n.X && toNode.Y != n.Y {
		return cfg.Nav.DiagonalCost
	}
	return cfg.Nav.StraightCost
}

// PathEstimatedCost returns heuristic distance to target (implements astar.Pather)
func (n *NavNode) PathEstimatedCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)

	dx := math.Abs(float64(toNode.X - n.X))
	dy := math.Abs(float64(toNode.Y - n.Y))
	if !cfg.Nav.AllowDiagonal {
		return (dx + dy) * cfg.Nav.StraightCost
	}

	// Octile distance
	diag := min(dx, dy)
	return diag*cfg.Nav.DiagonalCost + (max(dx, dy)-diag)*cfg.Nav.StraightCost
}

func (g *NavGrid) walkable(x, y int) *NavNode {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}
	if n := g.Nodes[y][x]; n.Walkable {
		return n
	}
	return nil
}

func newGrid(w, h int, cellSize float64, walkable func(x, y int) bool) *NavGrid {
	grid := &NavGrid{
		Width:    w,
		Height:   h,
		CellSize: cellSize,
		Nodes:    make([][]*NavNode, h),
	}
	for y := 0; y < h; y++ {
		grid.Nodes[y] = make([]*NavNode, w)
		for x := 0; x < w; x++ {
			grid.Nodes[y][x] = &NavNode{
				X:        x,
				Y:        y,
				Walkable: walkable(x, y),
				Grid:     grid,
			}
		}
	}
	return grid
}

// FromMatrix builds a navigation grid from a walkability matrix indexed
// [y][x], one cellSize-wide cell per entry.
func FromMatrix(matrix [][]bool, cellSize float64) *NavGrid {
	w := 0
	if len(matrix) > 0 {
		w = len(matrix[0])
	}
	return newGrid(w, len(matrix), cellSize, func(x, y int) bool {
		return x < len(matrix[y]) && matrix[y][x]
	})
}

// FromSpace builds a navigation grid by probing a collider space: a cell is
// walkable when a slightly shrunken box over it hits no collider.
func FromSpace(space *collider.Space, cellSize float64) *NavGrid {
	gridW := int(float64(space.MapWidth) / cellSize)
	gridH := int(float64(space.MapHeight) / cellSize)
	inset := cellSize / 8

	return newGrid(gridW, gridH, cellSize, func(x, y int) bool {
		worldX := float64(x) * cellSize
		worldY := float64(y) * cellSize
		return !space.Blocked(worldX+inset, worldY+inset, cellSize-2*inset, cellSize-2*inset)
	})
}

// FindPath uses go-astar to find a path between world coordinates. The path
// runs from start to goal; nil means no route.
func (g *NavGrid) FindPath(startX, startY, goalX, goalY float64) []*NavNode {
	if g.Width == 0 || g.Height == 0 {
		return nil
	}

	// Convert world coords to grid coords
	sx := clampInt(int(startX/g.CellSize), 0, g.Width-1)
	sy := clampInt(int(startY/g.CellSize), 0, g.Height-1)
	gx := clampInt(int(goalX/g.CellSize), 0, g.Width-1)
	gy := clampInt(int(goalY/g.CellSize), 0, g.Height-1)

	startNode := g.Nodes[sy][sx]
	goalNode := g.Nodes[gy][gx]

	// Handle case where start or goal is in solid geometry
	if !startNode.Walkable {
		startNode = g.findNearestWalkable(sx, sy)
	}
	if !goalNode.Walkable {
		goalNode = g.findNearestWalkable(gx, gy)
	}

	if startNode == nil || goalNode == nil {
		return nil
	}

	path, _, found := astar.Path(startNode, goalNode)
	if !found {
		return nil
	}

	// go-astar returns the path goal first
	result := make([]*NavNode, len(path))
	for i, p := range path {
		result[i] = p.(*NavNode)
	}
	slices.Reverse(result)

	return result
}

// findNearestWalkable finds the nearest walkable node to the given position
func (g *NavGrid) findNearestWalkable(x, y int) *NavNode {
	// Search in expanding squares
	for radius := 1; radius <= cfg.Nav.SnapRadius; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if n := g.walkable(x+dx, y+dy); n != nil {
					return n
				}
			}
		}
	}
	return nil
}

// GridToWorld converts grid coordinates to world coordinates (center of cell)
func (g *NavGrid) GridToWorld(gridX, gridY int) (float64, float64) {
	return float64(gridX)*g.CellSize + g.CellSize/2,
		float64(gridY)*g.CellSize + g.CellSize/2
}

// WorldPath converts a path to the world-space centres of its cells.
func (g *NavGrid) WorldPath(path []*NavNode) []gamemath.Point {
	points := make([]gamemath.Point, len(path))
	for i, n := range path {
		x, y := g.GridToWorld(n.X, n.Y)
		points[i] = gamemath.Pt(x, y)
	}
	return points
}

func clampInt(v, minVal, maxVal int) int {
	return max(minVal, min(maxVal, v))
}
