package tags

// Resolv tags for physics collision
const (
	ResolvSolid = "solid"
	ResolvRamp  = "ramp"
	ResolvProbe = "probe"

	// Slope type tags, also the values of the TMX slope property
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)
