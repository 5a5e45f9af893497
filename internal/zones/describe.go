package zones

// Describe renders an obstacle zone set as a short English phrase, e.g.
// "obstacle low on the left" or "obstacle, wall on the right". An empty set
// reads as an obstacle ahead.
func Describe(s Set) string {
	var vertical string
	switch {
	case s.Has(Low):
		vertical = "low"
	case s.Has(High):
		vertical = "high"
	case s.Has(Center):
		vertical = "ahead"
	}

	var horizontal string
	wall := false
	switch {
	case s.Has(LeftWall):
		horizontal, wall = "wall on the left", true
	case s.Has(RightWall):
		horizontal, wall = "wall on the right", true
	case s.Has(Left):
		horizontal = "on the left"
	case s.Has(Right):
		horizontal = "on the right"
	}

	switch {
	case wall:
		return "obstacle, " + horizontal
	case vertical != "" && horizontal != "":
		return "obstacle " + vertical + " " + horizontal
	case vertical != "":
		return "obstacle " + vertical
	case horizontal != "":
		return "obstacle " + horizontal
	default:
		return "obstacle ahead"
	}
}
