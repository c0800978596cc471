package grid

import (
	"fmt"
	"strings"
)

// ParseLayout reads a plain-text level: one row per line, y growing down.
//
//	'#'  solid
//	'/'  solid, diagonal tile
//	'.'  walkable
//	'~'  walkable, diagonal tile
//	' '  empty (so is any column past the end of a short line)
//
// Any other character is ErrMalformedGrid. Size validation happens in New.
func ParseLayout(text string) (Layout, error) {
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	l := Layout{Height: len(rows)}
	for y, row := range rows {
		row = strings.TrimRight(row, "\r")
		l.Width = max(l.Width, len(row))
		for x, ch := range row {
			p := Pos{X: x, Y: y}
			switch ch {
			case '#':
				l.Solid = append(l.Solid, p)
			case '/':
				l.Solid = append(l.Solid, p)
				l.Diagonal = append(l.Diagonal, p)
			case '.':
				l.Walkable = append(l.Walkable, p)
			case '~':
				l.Walkable = append(l.Walkable, p)
				l.Diagonal = append(l.Diagonal, p)
			case ' ':
			default:
				return Layout{}, fmt.Errorf("%w: unexpected %q at %v", ErrMalformedGrid, ch, p)
			}
		}
	}
	return l, nil
}

// MustParse builds a Grid from rows of ParseLayout text and panics on error.
// Meant for fixtures.
func MustParse(rows ...string) *Grid {
	l, err := ParseLayout(strings.Join(rows, "\n"))
	if err != nil {
		panic(err)
	}
	g, err := New(l)
	if err != nil {
		panic(err)
	}
	return g
}
