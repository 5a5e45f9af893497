package zones

import (
	"fmt"
	"strings"

	"github.com/banshee-data/pathguard/internal/scene"
)

// Zone is a coarse directional or vertical bucket relative to the user's
// forward path.
type Zone uint8

const (
	// Obstacle geometry, produced by the classifier.
	Left Zone = iota
	Right
	Center
	High
	Low
	LeftWall
	RightWall

	// Vertical discontinuities, produced from the step detector's result.
	StepUp
	StepDown
	Pit
	AlmostOnStep

	zoneCount
)

// All lists every zone in declaration order.
var All = []Zone{Left, Right, Center, High, Low, LeftWall, RightWall, StepUp, StepDown, Pit, AlmostOnStep}

func (z Zone) String() string {
	switch z {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Center:
		return "CENTER"
	case High:
		return "HIGH"
	case Low:
		return "LOW"
	case LeftWall:
		return "LEFT_WALL"
	case RightWall:
		return "RIGHT_WALL"
	case StepUp:
		return "STEP_UP"
	case StepDown:
		return "STEP_DOWN"
	case Pit:
		return "PIT"
	case AlmostOnStep:
		return "ALMOST_ON_STEP"
	default:
		return fmt.Sprintf("Zone(%d)", uint8(z))
	}
}

// Set is a bitmask of zones.
type Set uint16

// Of builds a set from individual zones.
func Of(zs ...Zone) Set {
	var s Set
	for _, z := range zs {
		s = s.Add(z)
	}
	return s
}

// Add returns s with z included.
func (s Set) Add(z Zone) Set { return s | 1<<z }

// Has reports whether z is in s.
func (s Set) Has(z Zone) bool { return s&(1<<z) != 0 }

// HasAll reports whether every zone of other is in s.
func (s Set) HasAll(other Set) bool { return s&other == other }

// HasAny reports whether s shares at least one zone with other.
func (s Set) HasAny(other Set) bool { return s&other != 0 }

// Union returns the zones in either set.
func (s Set) Union(other Set) Set { return s | other }

// Empty reports whether no zone is set.
func (s Set) Empty() bool { return s == 0 }

// Zones lists the members in declaration order.
func (s Set) Zones() []Zone {
	var out []Zone
	for z := Zone(0); z < zoneCount; z++ {
		if s.Has(z) {
			out = append(out, z)
		}
	}
	return out
}

// Len returns the number of zones in s.
func (s Set) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

func (s Set) String() string {
	zs := s.Zones()
	names := make([]string, len(zs))
	for i, z := range zs {
		names[i] = z.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

// FrameZoneMap holds, for one frame, the obstacle zones each nearby
// category occupies.
type FrameZoneMap map[scene.Category]Set

// Presence is a flattened zone presence map. Only present zones are stored,
// so a missing key and false mean the same thing.
type Presence map[Zone]bool

// PresenceOf builds a Presence from a set.
func PresenceOf(s Set) Presence {
	p := make(Presence, s.Len())
	for _, z := range s.Zones() {
		p[z] = true
	}
	return p
}

// Has reports whether z is present.
func (p Presence) Has(z Zone) bool { return p[z] }

// Set returns the present zones as a bitmask.
func (p Presence) Set() Set {
	var s Set
	for z, on := range p {
		if on {
			s = s.Add(z)
		}
	}
	return s
}

// Clone returns an independent copy holding only present zones.
func (p Presence) Clone() Presence {
	return PresenceOf(p.Set())
}

var (
	bothWalls = Of(LeftWall, RightWall)
	bothSides = Of(Left, Right)
)

// ResolveWalls drops both walls when they accompany CENTER without both
// side bands. Only a full-width obstacle may span both walls and the centre.
func (s Set) ResolveWalls() Set {
	if s.HasAll(bothWalls) && s.Has(Center) && !s.HasAll(bothSides) {
		return s &^ bothWalls
	}
	return s
}

// CheckExclusive reports an error when more than one vertical-discontinuity
// zone is present, or when both walls accompany CENTER without both sides.
// The resolver never produces such a map; a failure here means a
// classification bug.
func (p Presence) CheckExclusive() error {
	s := p.Set()
	if vertical := s & Of(StepUp, StepDown, Pit); vertical.Len() > 1 {
		return fmt.Errorf("mutually exclusive zones present: %v", vertical)
	}
	if s.ResolveWalls() != s {
		return fmt.Errorf("both walls with centre but not both sides: %v", s)
	}
	return nil
}
