package steps

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pathguard/internal/scene"
)

// rowPair compares a farther probe row against a nearer one.
type rowPair struct {
	far, near int
}

// rowPairs is tried in order; the first pair that classifies wins. The
// widest baseline comes first, then the pair closest to the device.
var rowPairs = []rowPair{
	{far: 1, near: 3},
	{far: 2, near: 3},
	{far: 1, near: 2},
}

// representativeCol is the near-row column whose hit pose stands in for the
// whole step.
const representativeCol = 2

// pairMeasure is what a row pair contributes on one frame.
type pairMeasure struct {
	pair     rowPair
	dy, dz   float64
	distance float64
	pose     scene.Pose
	hasPose  bool
}

// measure averages the far-minus-near differences over the grid columns.
// A column with a missing cell contributes zero. The distance is only
// known when the whole near row was sampled.
func measure(points scene.ProbePoints, pair rowPair) pairMeasure {
	dys := make([]float64, scene.ProbeCols)
	dzs := make([]float64, scene.ProbeCols)
	nearZ := make([]float64, 0, scene.ProbeCols)
	for col := 1; col <= scene.ProbeCols; col++ {
		far, okFar := points[scene.Probe(pair.far, col)]
		near, okNear := points[scene.Probe(pair.near, col)]
		if okFar && okNear {
			dys[col-1] = far.Position.Y - near.Position.Y
			dzs[col-1] = far.Position.Z - near.Position.Z
		}
		if okNear {
			nearZ = append(nearZ, near.Position.Z)
		}
	}

	m := pairMeasure{
		pair: pair,
		dy:   stat.Mean(dys, nil),
		dz:   stat.Mean(dzs, nil),
	}
	if len(nearZ) == scene.ProbeCols {
		m.distance = math.Abs(stat.Mean(nearZ, nil))
	}
	if rep, ok := points[scene.Probe(pair.near, representativeCol)]; ok {
		m.pose, m.hasPose = rep.Pose, true
	}
	return m
}

// pairRules is the ordered classification table applied to each pair.
var pairRules = []struct {
	kind  Kind
	match func(DetectorConfig, pairMeasure) bool
}{
	{KindPit, DetectorConfig.isPit},
	{KindStep, DetectorConfig.isStep},
}

func (c DetectorConfig) isPit(m pairMeasure) bool {
	return math.Abs(m.dy) >= c.MaxHeightDifference &&
		m.dz >= c.MaxDepthDifference &&
		m.distance <= c.PitMaxDistanceMeters
}

func (c DetectorConfig) isStep(m pairMeasure) bool {
	rise := math.Abs(m.dy)
	return rise >= c.MinHeightDifference &&
		rise < c.MaxHeightDifference &&
		m.dz <= c.MaxDepthDifference &&
		m.hasPose
}

// classify walks the pairs and rules in order.
func (c DetectorConfig) classify(points scene.ProbePoints) (pairMeasure, Kind) {
	for _, pair := range rowPairs {
		m := measure(points, pair)
		for _, rule := range pairRules {
			if rule.match(c, m) {
				return m, rule.kind
			}
		}
	}
	return pairMeasure{}, KindNone
}
