package scene

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid transform in the platform's world frame with Y up. Poses
// are values; capturing one copies it out of the platform frame.
type Pose struct {
	Translation r3.Vec
	Rotation    quat.Number
}

// NewPose returns a pose at (x, y, z) with identity orientation.
func NewPose(x, y, z float64) Pose {
	return Pose{
		Translation: r3.Vec{X: x, Y: y, Z: z},
		Rotation:    quat.Number{Real: 1},
	}
}

// DistanceTo is the Euclidean distance between the two translations.
func (p Pose) DistanceTo(q Pose) float64 {
	return r3.Norm(r3.Sub(p.Translation, q.Translation))
}

// Lowered returns the pose moved down by h metres. Used to approximate the
// ground point under a hand-held device.
func (p Pose) Lowered(h float64) Pose {
	p.Translation.Y -= h
	return p
}

// Hit is a single hit-test result for a screen location.
type Hit struct {
	Pose      Pose
	Trackable Trackable
}

// Trackable identifies what a hit test struck.
type Trackable uint8

const (
	TrackableUnknown Trackable = iota
	// TrackablePoint is a feature point in the platform's point cloud.
	TrackablePoint
	// TrackableDepthPoint is a point synthesised from the depth image.
	TrackableDepthPoint
	// TrackablePlane is a detected plane.
	TrackablePlane
)

// WorldPoint is the averaged world-space location sampled for one probe
// cell on one frame, plus one representative hit pose.
type WorldPoint struct {
	Position r3.Vec
	Pose     Pose
}

// ProbePoints maps probe identifiers to this frame's sampled world points.
// Cells without a usable hit are absent.
type ProbePoints map[ProbeID]WorldPoint
