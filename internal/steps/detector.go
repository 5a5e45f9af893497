package steps

import (
	"math"

	"github.com/banshee-data/pathguard/internal/monitoring"
	"github.com/banshee-data/pathguard/internal/scene"
)

// State is the detector's cross-frame memory.
type State struct {
	// LastCameraPose is the pose at the last significant camera move.
	LastCameraPose *scene.Pose

	// ActiveStaircase holds the steps of the flight currently being
	// followed, oldest first.
	ActiveStaircase []scene.Pose

	// PendingSteps holds every detected step the user has not yet reached.
	PendingSteps []scene.Pose
}

func (s State) clone() State {
	out := State{
		ActiveStaircase: append([]scene.Pose(nil), s.ActiveStaircase...),
		PendingSteps:    append([]scene.Pose(nil), s.PendingSteps...),
	}
	if s.LastCameraPose != nil {
		p := *s.LastCameraPose
		out.LastCameraPose = &p
	}
	return out
}

// Detector finds steps and pits by comparing probe rows. It is not safe for
// concurrent use.
type Detector struct {
	cfg   DetectorConfig
	state State
}

// NewDetector creates a detector with empty state.
func NewDetector(cfg DetectorConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Config returns the detector configuration.
func (d *Detector) Config() DetectorConfig {
	return d.cfg
}

// State returns a copy of the cross-frame state.
func (d *Detector) State() State {
	return d.state.clone()
}

// Reset forgets the camera pose, the active staircase and all pending steps.
func (d *Detector) Reset() {
	d.state = State{}
}

// Detect processes one frame. points may be nil when the depth image was not
// available; the camera and pending-step bookkeeping still run.
func (d *Detector) Detect(pose scene.Pose, points scene.ProbePoints) Result {
	moved := d.observeCamera(pose)

	if dist, ok := d.consumePendingStep(pose); ok {
		return Result{DistanceToNearestPendingStep: dist}
	}

	if len(points) == 0 {
		return NoSignal()
	}

	m, kind := d.cfg.classify(points)
	switch kind {
	case KindPit:
		monitoring.Debugf("steps: pit rows %d/%d dy=%.2f dz=%.2f dist=%.2f",
			m.pair.far, m.pair.near, m.dy, m.dz, m.distance)
	case KindStep:
		d.recordStep(m.pose, moved)
	default:
		return NoSignal()
	}
	return Result{
		VerticalDrop:                 m.dy,
		DistanceMeters:               m.distance,
		DistanceToNearestPendingStep: NoPendingStep,
		Kind:                         kind,
	}
}

// observeCamera records the pose when the camera moved significantly, or when
// no pose has been seen yet, and reports whether it did.
func (d *Detector) observeCamera(pose scene.Pose) bool {
	last := d.state.LastCameraPose
	if last != nil && pose.DistanceTo(*last) <= d.cfg.CameraMovedMeters {
		return false
	}
	d.state.LastCameraPose = &pose
	return true
}

// consumePendingStep removes the first remembered step within reach of the
// ground under the device.
func (d *Detector) consumePendingStep(pose scene.Pose) (float64, bool) {
	ground := pose.Lowered(d.cfg.DeviceHeightMeters)
	for i, step := range d.state.PendingSteps {
		dist := ground.DistanceTo(step)
		if dist < d.cfg.PendingStepRadiusMeters {
			d.state.PendingSteps = append(d.state.PendingSteps[:i], d.state.PendingSteps[i+1:]...)
			monitoring.Debugf("steps: reached pending step at %.2fm, %d left", dist, len(d.state.PendingSteps))
			return dist, true
		}
	}
	return 0, false
}

func (d *Detector) recordStep(pose scene.Pose, moved bool) {
	if moved || !d.BelongsToStaircase(pose) {
		d.state.ActiveStaircase = []scene.Pose{pose}
		monitoring.Debugf("steps: new staircase (camera moved=%v)", moved)
	} else {
		d.state.ActiveStaircase = append(d.state.ActiveStaircase, pose)
		monitoring.Debugf("steps: staircase continues, %d steps", len(d.state.ActiveStaircase))
	}
	// A step seen again on later frames is remembered once.
	for _, step := range d.state.PendingSteps {
		if pose.DistanceTo(step) < d.cfg.PendingStepRadiusMeters {
			return
		}
	}
	d.state.PendingSteps = append(d.state.PendingSteps, pose)
}

// BelongsToStaircase reports whether candidate plausibly follows the last
// step of the active staircase. With no active staircase it is false.
func (d *Detector) BelongsToStaircase(candidate scene.Pose) bool {
	n := len(d.state.ActiveStaircase)
	if n == 0 {
		return false
	}
	return d.cfg.continuesStaircase(d.state.ActiveStaircase[n-1], candidate)
}

func (c DetectorConfig) continuesStaircase(last, next scene.Pose) bool {
	dx := next.Translation.X - last.Translation.X
	dy := next.Translation.Y - last.Translation.Y
	dz := next.Translation.Z - last.Translation.Z

	rise := math.Abs(dy)
	if rise < c.MinStepRise || rise > c.MaxStepRise {
		return false
	}
	advance := math.Hypot(dx, dz)
	if advance < c.MinStepAdvance || advance > c.MaxStepAdvance {
		return false
	}
	return math.Abs(dx) <= c.MaxLateralOffset
}
