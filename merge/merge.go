// Package merge greedily combines CCW polygons that share an edge into fewer
// convex polygons.
//
// The result is not an optimal convex decomposition. Smaller pieces are tried
// first, and the first adjacency whose union stays convex is taken.
package merge

import (
	"cmp"
	"slices"

	"github.com/automoto/tilemesh/shared/gamemath"
)

// Edge is a directed polygon edge.
type Edge [2]gamemath.Point

// Adjacency records that a polygon shares Edge with Neighbor. Edge is
// oriented as it runs in the polygon owning the adjacency list; the
// neighbour runs it the other way.
type Adjacency struct {
	Neighbor int
	Edge     Edge
}

// Adjacent builds the adjacency graph of polys. Two CCW polygons are adjacent
// when one has the directed edge (a,b) and the other (b,a). The graph is only
// valid for the slice it was built from.
func Adjacent(polys []gamemath.Polygon) map[int][]Adjacency {
	owner := make(map[Edge]int)
	for i, p := range polys {
		for k := range p {
			owner[Edge{p[k], p.At(k + 1)}] = i
		}
	}

	graph := make(map[int][]Adjacency)
	for i, p := range polys {
		for k := range p {
			a, b := p[k], p.At(k+1)
			j, ok := owner[Edge{b, a}]
			if !ok || j == i {
				continue
			}
			graph[i] = append(graph[i], Adjacency{Neighbor: j, Edge: Edge{a, b}})
		}
	}
	return graph
}

// Pair splices secondary into primary across edge, which must run a->b in
// primary and b->a in secondary. The merged polygon starts at b, walks
// primary round to a and continues with secondary's remaining vertices.
// ok is false when the edge is missing, the union would repeat a vertex or
// it is not convex.
func Pair(primary, secondary gamemath.Polygon, edge Edge) (merged gamemath.Polygon, ok bool) {
	a, b := edge[0], edge[1]
	pb := indexOf(primary, b)
	sa := indexOf(secondary, a)
	if pb < 0 || sa < 0 || primary.At(pb-1) != a || secondary.At(sa-1) != b {
		return nil, false
	}

	merged = make(gamemath.Polygon, 0, len(primary)+len(secondary)-2)
	merged = append(merged, gamemath.Rotate(primary, pb)...)
	rest := gamemath.Rotate(secondary, sa)
	// rest runs a, ..., b; its ends are already in merged.
	merged = append(merged, rest[1:len(rest)-1]...)

	seen := make(map[gamemath.Point]struct{}, len(merged))
	for _, p := range merged {
		if _, dup := seen[p]; dup {
			return nil, false
		}
		seen[p] = struct{}{}
	}
	if !gamemath.IsConvex(merged) {
		return nil, false
	}
	return merged, true
}

// Convex merges polys until no adjacent pair has a convex union or one
// polygon remains. The input slice is not modified. Total area is preserved
// and the count never increases.
func Convex(polys []gamemath.Polygon) []gamemath.Polygon {
	out := make([]gamemath.Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.Clone()
	}

	for len(out) > 1 {
		slices.SortStableFunc(out, func(p, q gamemath.Polygon) int {
			return cmp.Compare(gamemath.AbsArea(p), gamemath.AbsArea(q))
		})
		if !mergeFirst(&out) {
			break
		}
	}
	return out
}

// mergeFirst applies the first convex merge found, scanning polygons in
// order and each polygon's adjacencies in edge order.
func mergeFirst(polys *[]gamemath.Polygon) bool {
	ps := *polys
	graph := Adjacent(ps)
	for i := range ps {
		for _, adj := range graph[i] {
			merged, ok := Pair(ps[i], ps[adj.Neighbor], adj.Edge)
			if !ok {
				continue
			}
			ps[i] = merged
			*polys = slices.Delete(ps, adj.Neighbor, adj.Neighbor+1)
			return true
		}
	}
	return false
}

func indexOf(poly gamemath.Polygon, p gamemath.Point) int {
	for i, q := range poly {
		if q == p {
			return i
		}
	}
	return -1
}
