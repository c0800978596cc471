// Package codec writes and reads the baked polygon text consumed by the game
// client.
//
// The text has exactly two lines: navmesh polygons, then collider polygons.
// Polygons within a line are separated by '|', vertices by ';' and a vertex
// is "x,y". An empty line is an empty polygon list.
//
//	0,0;2,0;2,2|2,0;4,0;2,2
//	0,0;16,0;16,16;0,16
package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/automoto/tilemesh/shared/gamemath"
)

// ErrFormat reports text that does not follow the polygon format.
var ErrFormat = errors.New("codec: malformed polygon text")

const (
	sectionSep = "\n"
	polygonSep = "|"
	vertexSep  = ";"
	coordSep   = ","
)

// Serialize encodes the navmesh and collider polygons.
func Serialize(nav, col []gamemath.Polygon) string {
	var b strings.Builder
	writeSection(&b, nav)
	b.WriteString(sectionSep)
	writeSection(&b, col)
	return b.String()
}

func writeSection(b *strings.Builder, polys []gamemath.Polygon) {
	for i, poly := range polys {
		if i > 0 {
			b.WriteString(polygonSep)
		}
		for j, p := range poly {
			if j > 0 {
				b.WriteString(vertexSep)
			}
			b.WriteString(formatFloat(p.X))
			b.WriteString(coordSep)
			b.WriteString(formatFloat(p.Y))
		}
	}
}

// formatFloat uses the shortest representation that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Deserialize decodes text produced by Serialize.
func Deserialize(s string) (nav, col []gamemath.Polygon, err error) {
	sections := strings.Split(s, sectionSep)
	if len(sections) != 2 {
		return nil, nil, fmt.Errorf("%w: want 2 sections, got %d", ErrFormat, len(sections))
	}
	if nav, err = readSection(sections[0]); err != nil {
		return nil, nil, fmt.Errorf("navmesh section: %w", err)
	}
	if col, err = readSection(sections[1]); err != nil {
		return nil, nil, fmt.Errorf("collider section: %w", err)
	}
	return nav, col, nil
}

func readSection(s string) ([]gamemath.Polygon, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, polygonSep)
	polys := make([]gamemath.Polygon, 0, len(parts))
	for i, part := range parts {
		poly, err := readPolygon(part)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		polys = append(polys, poly)
	}
	return polys, nil
}

func readPolygon(s string) (gamemath.Polygon, error) {
	fields := strings.Split(s, vertexSep)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrFormat, len(fields))
	}
	poly := make(gamemath.Polygon, 0, len(fields))
	for i, f := range fields {
		xs, ys, ok := strings.Cut(f, coordSep)
		if !ok || strings.Contains(ys, coordSep) {
			return nil, fmt.Errorf("%w: vertex %d %q", ErrFormat, i, f)
		}
		x, err := parseFloat(xs)
		if err != nil {
			return nil, fmt.Errorf("vertex %d x: %w", i, err)
		}
		y, err := parseFloat(ys)
		if err != nil {
			return nil, fmt.Errorf("vertex %d y: %w", i, err)
		}
		poly = append(poly, gamemath.Point{X: x, Y: y})
	}
	return poly, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: coordinate %q", ErrFormat, s)
	}
	return v, nil
}
