// Package loops turns the unordered segment bag of one island into closed
// vertex loops, and post-processes them.
//
//   - Assemble chains segments into loops and, in Holes mode, puts the single
//     counter-clockwise outer loop first, followed by the clockwise holes.
//   - Bridge splices every hole into the outer loop through a zero-width
//     slit, for consumers that cannot carry separate hole lists.
//   - Minimize drops vertices that sit in the middle of a straight run.
//
// Errors:
//
//   - ErrNonManifoldBoundary: a chain cannot be closed, or two segments start
//     at the same point.
//   - ErrNoOuterLoop: zero or several counter-clockwise loops.
//   - ErrBridgeCandidateNotFound: no vertex to the right of a hole on its
//     anchor row.
package loops

import "errors"

var (
	ErrNonManifoldBoundary     = errors.New("loops: non-manifold island boundary")
	ErrNoOuterLoop             = errors.New("loops: island needs exactly one counter-clockwise loop")
	ErrBridgeCandidateNotFound = errors.New("loops: no bridge candidate for hole")
)
