// Package testutil provides shared test fixtures: synthetic semantic and
// depth frames, a calibrated probe grid, and probe samples for ground
// profiles.
package testutil

import (
	"testing"

	"github.com/banshee-data/pathguard/internal/scene"
)

// Label bytes as the platform encodes them.
const (
	LabelRoad   byte = 4
	LabelObject byte = 8
	LabelPerson byte = 10
)

// Frame dimensions used by the fixtures. With W=160, H=120 the classifier's
// central band spans rows 50..70 and the centre columns 40..110.
const (
	FrameWidth  = 160
	FrameHeight = 120
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Images is a matched semantic and depth frame of the fixture size.
type Images struct {
	Semantic *scene.SemanticImage
	Depth    *scene.DepthImage
}

// NewImages returns a frame filled with one label at one depth.
func NewImages(label byte, depthMM uint16) Images {
	n := FrameWidth * FrameHeight
	sem := &scene.SemanticImage{Width: FrameWidth, Height: FrameHeight, Pix: make([]byte, n)}
	depth := &scene.DepthImage{Width: FrameWidth, Height: FrameHeight, Samples: make([]uint16, n)}
	for i := 0; i < n; i++ {
		sem.Pix[i] = label
		depth.Samples[i] = depthMM
	}
	return Images{Semantic: sem, Depth: depth}
}

// Paint labels the rectangle of columns x0..x1 and rows y0..y1 and sets its
// depth. It returns the receiver for chaining.
func (im Images) Paint(label byte, x0, x1, y0, y1 int, depthMM uint16) Images {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			im.Semantic.Pix[y*FrameWidth+x] = label
			im.Depth.Samples[y*FrameWidth+x] = depthMM
		}
	}
	return im
}

// PersonAhead is a person 0.8 m away in the middle of the path.
func PersonAhead() Images {
	return NewImages(LabelRoad, 2500).Paint(LabelPerson, 60, 70, 58, 62, 800)
}

// EmptyRoad is a frame with nothing but road.
func EmptyRoad() Images {
	return NewImages(LabelRoad, 2500)
}

// ProbeGrid returns a fully calibrated 3x4 grid on a 1080x1920 screen.
func ProbeGrid() scene.ProbeGrid {
	grid := make(scene.ProbeGrid, scene.ProbeRows*scene.ProbeCols)
	for r := 1; r <= scene.ProbeRows; r++ {
		for c := 1; c <= scene.ProbeCols; c++ {
			grid[scene.Probe(r, c)] = scene.Point2D{
				X: 1080 * float64(c) / 5,
				Y: 1920 * (0.4 + 0.15*float64(r)),
			}
		}
	}
	return grid
}

// Row is the ground height and depth sampled by every cell of a probe row.
type Row struct {
	Y, Z float64
}

// ProbeRows builds a full probe sample from three rows, farthest first.
// Column c sits at X = 0.1*c, and each cell's pose is at its position.
func ProbeRows(far, mid, near Row) scene.ProbePoints {
	rows := [...]Row{far, mid, near}
	out := make(scene.ProbePoints, scene.ProbeRows*scene.ProbeCols)
	for r, v := range rows {
		for c := 1; c <= scene.ProbeCols; c++ {
			p := scene.NewPose(0.1*float64(c), v.Y, v.Z)
			out[scene.Probe(r+1, c)] = scene.WorldPoint{Position: p.Translation, Pose: p}
		}
	}
	return out
}

// StepDownAt is a 0.28 m descending step whose near row is dist metres away.
func StepDownAt(dist float64) scene.ProbePoints {
	return ProbeRows(Row{-0.28, dist + 0.2}, Row{0, dist + 0.1}, Row{0, dist})
}

// PitAt is a 0.45 m drop with a 0.6 m depth jump, near row dist metres away.
func PitAt(dist float64) scene.ProbePoints {
	return ProbeRows(Row{0.45, dist + 0.6}, Row{0, dist}, Row{0, dist})
}
