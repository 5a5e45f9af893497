package steps

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/pathguard/internal/scene"
)

// HitTester casts a ray from a screen location into the platform's world
// model. It returns scene.ErrNotYetAvailable while depth is not ready.
type HitTester interface {
	HitTest(pt scene.Point2D) ([]scene.Hit, error)
}

// HitTesterFunc adapts a function to HitTester.
type HitTesterFunc func(pt scene.Point2D) ([]scene.Hit, error)

// HitTest calls f(pt).
func (f HitTesterFunc) HitTest(pt scene.Point2D) ([]scene.Hit, error) {
	return f(pt)
}

// Sampler produces this frame's world points under a probe grid.
type Sampler interface {
	Sample(grid scene.ProbeGrid) (scene.ProbePoints, error)
}

// HitTestSampler samples each probe by hit-testing its screen location.
type HitTestSampler struct {
	Tester HitTester
}

// NewHitTestSampler wraps a hit tester.
func NewHitTestSampler(t HitTester) *HitTestSampler {
	return &HitTestSampler{Tester: t}
}

// Sample averages the positions of the point-cloud and depth-point hits
// under each probe and keeps the first such hit's pose. Probes with no
// usable hit are left out.
func (s *HitTestSampler) Sample(grid scene.ProbeGrid) (scene.ProbePoints, error) {
	if s == nil || s.Tester == nil {
		return nil, scene.ErrNotYetAvailable
	}
	out := make(scene.ProbePoints, len(grid))
	for _, id := range grid.IDs() {
		hits, err := s.Tester.HitTest(grid[id])
		if err != nil {
			return nil, fmt.Errorf("hit test %s: %w", id, err)
		}
		if wp, ok := averageHits(hits); ok {
			out[id] = wp
		}
	}
	return out, nil
}

func averageHits(hits []scene.Hit) (scene.WorldPoint, bool) {
	var (
		sum   r3.Vec
		first scene.Pose
		n     int
	)
	for _, h := range hits {
		if h.Trackable != scene.TrackablePoint && h.Trackable != scene.TrackableDepthPoint {
			continue
		}
		if n == 0 {
			first = h.Pose
		}
		sum = r3.Add(sum, h.Pose.Translation)
		n++
	}
	if n == 0 {
		return scene.WorldPoint{}, false
	}
	return scene.WorldPoint{
		Position: r3.Scale(1/float64(n), sum),
		Pose:     first,
	}, true
}

// StaticSampler returns pre-sampled points, as stored in a recording.
type StaticSampler struct {
	Points scene.ProbePoints
	Err    error
}

// Sample returns the stored points restricted to the grid's probes.
func (s StaticSampler) Sample(grid scene.ProbeGrid) (scene.ProbePoints, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Points == nil {
		return nil, scene.ErrNotYetAvailable
	}
	out := make(scene.ProbePoints, len(s.Points))
	for id, wp := range s.Points {
		if _, ok := grid[id]; ok {
			out[id] = wp
		}
	}
	return out, nil
}
