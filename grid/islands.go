package grid

import "fmt"

// neighborOffsets are the 8 neighbour directions: N, NE, E, SE, S, SW, W, NW.
var neighborOffsets = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// Islands partitions every cell of the given kind into 8-connected
// components. Each island lists its positions in discovery order; islands
// come out ordered by their lowest row-major position.
func (g *Grid) Islands(kind Cell) [][]Pos {
	return Split(g.Positions(kind))
}

// Split partitions positions into 8-connected islands using an iterative
// depth-first flood fill over a remaining set. Duplicate input positions are
// collapsed.
//
// Time: O(n·8). Memory: O(n).
func Split(positions []Pos) [][]Pos {
	remaining := make(map[Pos]struct{}, len(positions))
	for _, p := range positions {
		remaining[p] = struct{}{}
	}

	var islands [][]Pos
	for _, start := range positions {
		if _, ok := remaining[start]; !ok {
			continue
		}
		delete(remaining, start)
		stack := []Pos{start}
		var island []Pos
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			island = append(island, p)
			for _, d := range neighborOffsets {
				n := Pos{X: p.X + d[0], Y: p.Y + d[1]}
				if _, ok := remaining[n]; ok {
					delete(remaining, n)
					stack = append(stack, n)
				}
			}
		}
		islands = append(islands, island)
	}

	if len(remaining) != 0 {
		panic(fmt.Sprintf("grid: %d positions left unvisited after flood fill", len(remaining)))
	}
	checkDisjoint(islands)
	return islands
}

// checkDisjoint panics when a position was assigned to two islands, which
// can only happen if the remaining-set bookkeeping is broken.
func checkDisjoint(islands [][]Pos) {
	seen := make(map[Pos]int)
	for i, island := range islands {
		for _, p := range island {
			if j, ok := seen[p]; ok {
				panic(fmt.Sprintf("grid: position %v visited twice (islands %d and %d)", p, j, i))
			}
			seen[p] = i
		}
	}
}

// Bounds returns the inclusive bounding box of positions.
func Bounds(positions []Pos) (lo, hi Pos) {
	if len(positions) == 0 {
		return Pos{}, Pos{}
	}
	lo, hi = positions[0], positions[0]
	for _, p := range positions[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}
