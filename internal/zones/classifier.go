package zones

import (
	"fmt"

	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/monitoring"
	"github.com/banshee-data/pathguard/internal/scene"
)

// LabeledPoint is a depth pixel whose semantic pixel carries an obstacle
// category. X is the depth-image column, Y the row.
type LabeledPoint struct {
	X, Y        int
	DepthMeters float64
}

// ClassifierConfig holds the distance gates for the Zone Classifier.
type ClassifierConfig struct {
	// MaxDistanceMeters drops points farther than this; points at or
	// below zero are always dropped as invalid samples.
	MaxDistanceMeters float64

	// NearDistanceMeters is the proximity gate: a category is zoned only
	// if one of its points in the central band is closer than this.
	NearDistanceMeters float64
}

// DefaultClassifierConfig returns the field-tested gates.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MaxDistanceMeters:  3.0,
		NearDistanceMeters: 1.0,
	}
}

// ClassifierConfigFromTuning builds a ClassifierConfig from a loaded
// TuningConfig.
func ClassifierConfigFromTuning(cfg *config.TuningConfig) ClassifierConfig {
	return ClassifierConfig{
		MaxDistanceMeters:  cfg.GetMaxDistanceMeters(),
		NearDistanceMeters: cfg.GetNearDistanceMeters(),
	}
}

// Classifier converts semantic and depth buffers into per-category zones.
// It holds no per-frame state.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a classifier. Zero-valued fields take defaults.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	def := DefaultClassifierConfig()
	if cfg.MaxDistanceMeters <= 0 {
		cfg.MaxDistanceMeters = def.MaxDistanceMeters
	}
	if cfg.NearDistanceMeters <= 0 {
		cfg.NearDistanceMeters = def.NearDistanceMeters
	}
	return &Classifier{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Classifier) Config() ClassifierConfig {
	return c.cfg
}

// Classify returns the zones each nearby obstacle category occupies. Buffer
// problems are swallowed: the frame simply yields an empty map.
func (c *Classifier) Classify(sem *scene.SemanticImage, depth *scene.DepthImage) FrameZoneMap {
	points, err := c.LabeledPoints(sem, depth)
	if err != nil {
		monitoring.Debugf("zones: skipping classification: %v", err)
		return FrameZoneMap{}
	}
	b := newBands(depth.Width, depth.Height)
	out := make(FrameZoneMap)
	for category, pts := range points {
		if !c.isNear(pts, b) {
			continue
		}
		out[category] = zonesFor(pts, b)
	}
	return out
}

// LabeledPoints extracts obstacle points grouped by category. Each depth
// pixel is mapped to its semantic pixel by proportional nearest-neighbour
// scaling.
func (c *Classifier) LabeledPoints(sem *scene.SemanticImage, depth *scene.DepthImage) (map[scene.Category][]LabeledPoint, error) {
	if err := sem.Validate(); err != nil {
		return nil, fmt.Errorf("semantic image: %w", err)
	}
	if err := depth.Validate(); err != nil {
		return nil, fmt.Errorf("depth image: %w", err)
	}

	out := make(map[scene.Category][]LabeledPoint)
	for y := 0; y < depth.Height; y++ {
		semY := y * sem.Height / depth.Height
		for x := 0; x < depth.Width; x++ {
			semX := x * sem.Width / depth.Width
			category := sem.CategoryAt(semX, semY)
			if category.IsGroundPlane() {
				continue
			}
			d := depth.MetersAt(x, y)
			if d <= 0 || d > c.cfg.MaxDistanceMeters {
				continue
			}
			out[category] = append(out[category], LabeledPoint{X: x, Y: y, DepthMeters: d})
		}
	}
	return out, nil
}

func (c *Classifier) isNear(pts []LabeledPoint, b bands) bool {
	for _, p := range pts {
		if p.Y >= b.nearLow && p.Y <= b.nearHigh && p.X >= b.high && p.DepthMeters < c.cfg.NearDistanceMeters {
			return true
		}
	}
	return false
}

// bands are the image partitions, in pixels. Columns (X) run along the
// user's vertical axis: high, then centre, then low. Rows (Y) run across
// the path around the row centre c.
type bands struct {
	high, medium, low int

	rightExtreme, rightMedium, rightCenter int
	leftCenter, leftMedium, leftExtreme    int

	nearLow, nearHigh int
}

func newBands(width, height int) bands {
	c := height / 2
	return bands{
		high:   width * 1 / 8,
		medium: width * 1 / 4,
		low:    width * 11 / 16,

		rightExtreme: c - width*3/16,
		rightMedium:  c - width*7/80,
		rightCenter:  c - width/16,
		leftCenter:   c + width/16,
		leftMedium:   c + width*7/80,
		leftExtreme:  c + width*3/16,

		nearLow:  c - width*7/80,
		nearHigh: c + width*7/80,
	}
}

// Band hit flags. The first seven are primary; the rest are near misses
// used only for backfill.
const (
	hitCenter uint16 = 1 << iota
	hitLow
	hitHigh
	hitRight
	hitLeft
	hitRightWall
	hitLeftWall
	nearRightCenter
	nearLeftCenter
	nearRightLow
	nearLeftLow

	primaryHits = hitCenter | hitLow | hitHigh | hitRight | hitLeft | hitRightWall | hitLeftWall
)

func between(v, lo, hi int) bool { return v >= lo && v <= hi }

// classifyPoint returns the first band the point falls in, or 0.
func classifyPoint(x, y int, b bands) uint16 {
	centreCol := between(y, b.rightCenter, b.leftCenter)
	midRow := between(x, b.medium, b.low)
	switch {
	case centreCol && midRow:
		return hitCenter
	case centreCol && x >= b.low:
		return hitLow
	case centreCol && between(x, b.high, b.medium):
		return hitHigh
	case between(y, b.rightExtreme, b.rightMedium) && midRow:
		return hitRight
	case between(y, b.leftMedium, b.leftExtreme) && midRow:
		return hitLeft
	case y < b.rightExtreme:
		return hitLeftWall
	case y > b.leftExtreme:
		return hitRightWall
	case between(y, b.rightMedium, b.rightCenter) && midRow:
		return nearRightCenter
	case between(y, b.leftCenter, b.leftMedium) && midRow:
		return nearLeftCenter
	case between(y, b.rightExtreme, b.rightMedium) && x >= b.low:
		return nearRightLow
	case between(y, b.leftMedium, b.leftExtreme) && x >= b.low:
		return nearLeftLow
	}
	return 0
}

func zonesFor(pts []LabeledPoint, b bands) Set {
	var hits uint16
	for _, p := range pts {
		if hits&primaryHits == primaryHits {
			break
		}
		hits |= classifyPoint(p.X, p.Y, b)
	}

	has := func(f uint16) bool { return hits&f != 0 }

	var s Set
	center := has(hitCenter)
	if center {
		s = s.Add(Center)
	}
	if has(hitRight) {
		s = s.Add(Right)
	}
	if has(hitLeft) {
		s = s.Add(Left)
	}
	if has(hitRightWall) {
		s = s.Add(RightWall)
	}
	if has(hitLeftWall) {
		s = s.Add(LeftWall)
	}

	// A transition hit backfills centre or low unless the side band
	// opposite it fired.
	if !center && ((has(nearRightCenter) && !has(hitLeft)) || (has(nearLeftCenter) && !has(hitRight))) {
		s = s.Add(Center)
		center = true
	}

	low := has(hitLow) ||
		(has(nearRightLow) && !has(hitLeft)) ||
		(has(nearLeftLow) && !has(hitRight))

	// Centre takes precedence over high and low.
	if !center {
		if has(hitHigh) {
			s = s.Add(High)
		}
		if low {
			s = s.Add(Low)
		}
	}
	return s.ResolveWalls()
}
