// Package grid holds the occupancy grid the bake pipeline consumes: a fixed
// size matrix of tri-state cells (empty, solid, walkable) plus a per-cell
// "diagonal tile" flag.
//
// A Grid is built once from a Layout and never mutated afterwards. Islands
// splits the cells of one kind into 8-connected components; NavMatrix hands
// the coarse walkability matrix to a pathfinder.
//
// Errors:
//
//   - ErrMalformedGrid: size below 3x3, positions out of bounds, or a cell
//     marked both solid and walkable.
package grid
