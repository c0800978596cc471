// Package contour extracts oriented boundary segments from an island of
// grid cells with a marching-squares pass.
//
// Every 2x2 block of cells becomes a 4-bit code (bit0 bottom-left, bit1
// bottom-right, bit2 top-right, bit3 top-left) that indexes one of two edge
// tables: squareTable for orthogonal tiles, diagonalTable when a block
// touches a diagonal tile. Segments keep the occupied side on their left, so
// outer boundaries chain counter-clockwise and holes clockwise.
//
// Coordinates: the centre of cell (x,y) maps to (2x, 2y); boundaries run
// through odd coordinates between cell centres.
package contour

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/shared/gamemath"
)

var (
	// ErrUnsupportedCode reports a checkerboard block on square tiles, which
	// has no well-defined orthogonal cut. Use diagonal tiles for the pattern.
	ErrUnsupportedCode = errors.New("contour: checkerboard block needs diagonal tiles")
	// ErrCodeOutOfRange reports a block code above 15.
	ErrCodeOutOfRange = errors.New("contour: block code out of range")
)

// Segment is a directed boundary edge with the occupied side on its left.
type Segment struct {
	A, B gamemath.Point
}

// Offset translates s by d.
func (s Segment) Offset(d gamemath.Point) Segment {
	return Segment{A: s.A.Add(d), B: s.B.Add(d)}
}

// Reverse flips the segment direction.
func (s Segment) Reverse() Segment {
	return Segment{A: s.B, B: s.A}
}

// Defect records a block that contributed no geometry because its code was
// invalid for the tile flavor.
type Defect struct {
	Block    grid.Pos // grid position of the block's bottom-left cell
	Code     int
	Diagonal bool
	Err      error
}

func (d Defect) Error() string {
	return fmt.Sprintf("block %v code %d (diagonal=%t): %v", d.Block, d.Code, d.Diagonal, d.Err)
}

// Lookup returns the block-local segments for code. Segment slices are
// shared table entries and must not be modified.
func Lookup(code int, diagonal bool) ([]Segment, error) {
	if code < 0 || code > 15 {
		return nil, fmt.Errorf("%w: %d", ErrCodeOutOfRange, code)
	}
	if diagonal {
		return diagonalTable[code], nil
	}
	if code == codeBLTR || code == codeBRTL {
		return nil, fmt.Errorf("%w: code %d", ErrUnsupportedCode, code)
	}
	return squareTable[code], nil
}

// Code packs the four corner occupancies of a block into its table index.
func Code(bl, br, tr, tl bool) int {
	code := 0
	if bl {
		code |= bitBL
	}
	if br {
		code |= bitBR
	}
	if tr {
		code |= bitTR
	}
	if tl {
		code |= bitTL
	}
	return code
}

// Extract returns the unordered boundary segments of island.
//
// The island's bounding sub-grid is sampled with a one-cell unoccupied
// margin on every side, so the blocks straddling the grid's borders emit
// the closing edges from the same tables as interior blocks. diagonal
// classifies tiles; a block uses diagonalTable if any of its four cells is
// diagonal. Blocks whose code cannot be cut are logged, skipped, and
// returned as defects.
func Extract(island []grid.Pos, diagonal func(grid.Pos) bool) ([]Segment, []Defect) {
	if len(island) == 0 {
		return nil, nil
	}
	lo, hi := grid.Bounds(island)
	// padded matrix: cell (px,py) is grid cell (lo.X+px-1, lo.Y+py-1)
	w := hi.X - lo.X + 3
	h := hi.Y - lo.Y + 3
	occupied := make([][]bool, h)
	for y := range occupied {
		occupied[y] = make([]bool, w)
	}
	for _, p := range island {
		occupied[p.Y-lo.Y+1][p.X-lo.X+1] = true
	}
	if diagonal == nil {
		diagonal = func(grid.Pos) bool { return false }
	}

	var (
		segments []Segment
		defects  []Defect
	)
	for j := 0; j < h-1; j++ {
		for i := 0; i < w-1; i++ {
			code := Code(occupied[j][i], occupied[j][i+1], occupied[j+1][i+1], occupied[j+1][i])
			if code == 0 || code == 15 {
				continue
			}
			origin := grid.Pos{X: lo.X + i - 1, Y: lo.Y + j - 1}
			diag := diagonal(origin) ||
				diagonal(grid.Pos{X: origin.X + 1, Y: origin.Y}) ||
				diagonal(grid.Pos{X: origin.X + 1, Y: origin.Y + 1}) ||
				diagonal(grid.Pos{X: origin.X, Y: origin.Y + 1})

			local, err := Lookup(code, diag)
			if err != nil {
				d := Defect{Block: origin, Code: code, Diagonal: diag, Err: err}
				log.Printf("Warning: skipping %v", d)
				defects = append(defects, d)
				continue
			}
			offset := gamemath.Pt(float64(2*origin.X), float64(2*origin.Y))
			for _, s := range local {
				segments = append(segments, s.Offset(offset))
			}
		}
	}
	return segments, defects
}
