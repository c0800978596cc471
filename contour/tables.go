package contour

import "github.com/automoto/tilemesh/shared/gamemath"

// Block-local anchor points. A 2x2 block spans 0..2 on both axes with the
// four cell centres on its corners: BL (0,0), BR (2,0), TR (2,2), TL (0,2).
var (
	mB = gamemath.Pt(1, 0) // bottom edge midpoint
	mR = gamemath.Pt(2, 1) // right edge midpoint
	mT = gamemath.Pt(1, 2) // top edge midpoint
	mL = gamemath.Pt(0, 1) // left edge midpoint
	mC = gamemath.Pt(1, 1) // block centre
)

func seg(a, b gamemath.Point) Segment { return Segment{A: a, B: b} }

// Corner bits of a block code.
const (
	bitBL = 1 << iota
	bitBR
	bitTR
	bitTL
)

// Checkerboard codes: occupied corners are diagonally opposite.
const (
	codeBLTR = bitBL | bitTR // 5
	codeBRTL = bitBR | bitTL // 10
)

// squareTable cuts blocks with axis-aligned segments only. Every segment
// runs between an edge midpoint and the block centre, oriented so the
// occupied side is on the left; a straight cut is split in two at the
// centre so runs along one axis have equal-length steps. The checkerboard
// entries are nil and rejected by Lookup.
var squareTable = [16][]Segment{
	0:                             nil,
	bitBL:                         {seg(mB, mC), seg(mC, mL)},
	bitBR:                         {seg(mR, mC), seg(mC, mB)},
	bitBL | bitBR:                 {seg(mR, mC), seg(mC, mL)},
	bitTR:                         {seg(mT, mC), seg(mC, mR)},
	codeBLTR:                      nil,
	bitBR | bitTR:                 {seg(mT, mC), seg(mC, mB)},
	bitBL | bitBR | bitTR:         {seg(mT, mC), seg(mC, mL)},
	bitTL:                         {seg(mL, mC), seg(mC, mT)},
	bitBL | bitTL:                 {seg(mB, mC), seg(mC, mT)},
	codeBRTL:                      nil,
	bitBL | bitBR | bitTL:         {seg(mR, mC), seg(mC, mT)},
	bitTR | bitTL:                 {seg(mL, mC), seg(mC, mR)},
	bitBL | bitTR | bitTL:         {seg(mB, mC), seg(mC, mR)},
	bitBR | bitTR | bitTL:         {seg(mL, mC), seg(mC, mB)},
	bitBL | bitBR | bitTR | bitTL: nil,
}

// diagonalTable cuts single-corner and three-corner blocks with one oblique
// segment between two edge midpoints. The checkerboards keep the occupied
// diagonal connected and cut off both empty corners. Two-corner codes along
// one side match squareTable.
var diagonalTable = [16][]Segment{
	0:                             nil,
	bitBL:                         {seg(mB, mL)},
	bitBR:                         {seg(mR, mB)},
	bitBL | bitBR:                 {seg(mR, mC), seg(mC, mL)},
	bitTR:                         {seg(mT, mR)},
	codeBLTR:                      {seg(mB, mR), seg(mT, mL)},
	bitBR | bitTR:                 {seg(mT, mC), seg(mC, mB)},
	bitBL | bitBR | bitTR:         {seg(mT, mL)},
	bitTL:                         {seg(mL, mT)},
	bitBL | bitTL:                 {seg(mB, mC), seg(mC, mT)},
	codeBRTL:                      {seg(mL, mB), seg(mR, mT)},
	bitBL | bitBR | bitTL:         {seg(mR, mT)},
	bitTR | bitTL:                 {seg(mL, mC), seg(mC, mR)},
	bitBL | bitTR | bitTL:         {seg(mB, mR)},
	bitBR | bitTR | bitTL:         {seg(mL, mB)},
	bitBL | bitBR | bitTR | bitTL: nil,
}
