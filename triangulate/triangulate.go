// Package triangulate is the triangulation primitive of the bake pipeline:
// it cuts one outer polygon minus its holes into triangles.
//
// The heavy lifting is delegated to github.com/rclancey/earcut. Input must be
// simple and properly wound (outer counter-clockwise, holes clockwise, holes
// inside the outer loop and disjoint from it); other input is undefined.
package triangulate

import (
	"errors"
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/automoto/tilemesh/shared/gamemath"
)

// ErrDegenerate reports an outer polygon with fewer than 3 vertices.
var ErrDegenerate = errors.New("triangulate: degenerate polygon")

// minTriangleArea drops slivers produced by collinear input vertices.
const minTriangleArea = 1e-12

// Triangulate returns counter-clockwise triangles whose union is outer
// minus holes.
func Triangulate(outer gamemath.Polygon, holes []gamemath.Polygon) ([]gamemath.Polygon, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerate, len(outer))
	}

	// Flat coordinate array earcut expects: [x0, y0, x1, y1, ...], outer
	// ring first, then each hole starting at its vertex index.
	n := len(outer)
	for _, h := range holes {
		n += len(h)
	}
	coords := make([]float64, 0, 2*n)
	holeIndices := make([]int, 0, len(holes))
	for _, p := range outer {
		coords = append(coords, p.X, p.Y)
	}
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		holeIndices = append(holeIndices, len(coords)/2)
		for _, p := range h {
			coords = append(coords, p.X, p.Y)
		}
	}

	indices, err := earcut.Earcut(coords, holeIndices, 2)
	if err != nil {
		return nil, fmt.Errorf("earcut %d vertices, %d holes: %w", len(coords)/2, len(holeIndices), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("earcut returned %d indices, not a multiple of 3", len(indices))
	}

	vertex := func(i int) gamemath.Point {
		return gamemath.Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	triangles := make([]gamemath.Polygon, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		tri := gamemath.Polygon{vertex(indices[i]), vertex(indices[i+1]), vertex(indices[i+2])}
		area := gamemath.Area(tri)
		switch {
		case area > minTriangleArea:
		case area < -minTriangleArea:
			tri = gamemath.Reverse(tri)
		default:
			continue
		}
		triangles = append(triangles, tri)
	}
	return triangles, nil
}
