package steps

// NoPendingStep is the DistanceToNearestPendingStep value of a frame in
// which no remembered step was reached.
const NoPendingStep = -1.0

// Kind classifies a frame's ground discontinuity.
type Kind uint8

const (
	KindNone Kind = iota
	KindStep
	KindPit
)

func (k Kind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindPit:
		return "pit"
	default:
		return "none"
	}
}

// Result is the detector's per-frame output.
type Result struct {
	// VerticalDrop is the mean far-minus-near height difference. Positive
	// means the ground rises away from the user.
	VerticalDrop float64

	// DistanceMeters is the mean depth of the near probe row.
	DistanceMeters float64

	// DistanceToNearestPendingStep is the distance to a remembered step
	// reached on this frame, or NoPendingStep.
	DistanceToNearestPendingStep float64

	Kind Kind
}

// NoSignal is the neutral result for frames with nothing to report.
func NoSignal() Result {
	return Result{DistanceToNearestPendingStep: NoPendingStep}
}

// Up reports whether the discontinuity rises away from the user.
func (r Result) Up() bool {
	return r.VerticalDrop > 0
}

// PendingStepReached reports whether a remembered step was reached.
func (r Result) PendingStepReached() bool {
	return r.DistanceToNearestPendingStep >= 0
}
