package loops

import "github.com/automoto/tilemesh/shared/gamemath"

// Minimize removes every vertex whose incoming and outgoing edges point the
// same way, leaving one vertex per corner. Detection runs on the input
// loop; removals then go from the highest index down so pending indices
// stay valid. Spikes (edges that double back) are kept, which preserves the
// slits made by Bridge.
//
// The result is never shorter than 3 vertices: a loop that would collapse
// further is returned unchanged. Minimize is idempotent.
func Minimize(loop gamemath.Polygon) gamemath.Polygon {
	out := loop.Clone()
	if len(loop) < 3 {
		return out
	}

	var drop []int
	for i := range loop {
		in := loop[i].Sub(loop.At(i - 1))
		next := loop.At(i + 1).Sub(loop[i])
		cross := in.X*next.Y - in.Y*next.X
		dot := in.X*next.X + in.Y*next.Y
		if cross == 0 && dot > 0 {
			drop = append(drop, i)
		}
	}
	if len(loop)-len(drop) < 3 {
		return out
	}
	for k := len(drop) - 1; k >= 0; k-- {
		i := drop[k]
		out = append(out[:i], out[i+1:]...)
	}
	return out
}

// MinimizeAll applies Minimize to every loop.
func MinimizeAll(loops []gamemath.Polygon) []gamemath.Polygon {
	out := make([]gamemath.Polygon, len(loops))
	for i, l := range loops {
		out[i] = Minimize(l)
	}
	return out
}
