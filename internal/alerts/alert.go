package alerts

import "fmt"

// Alert is the user-facing indication chosen for a frame.
type Alert uint8

const (
	// None means nothing worth telling the user this frame.
	None Alert = iota
	Stop
	LeftHuge
	RightHuge
	RightBig
	LeftBig
	Narrow
	Center
	Right
	Left
	AlmostOnStep
	StepUp
	StepDown
	Pit
	High
	Low
)

// VibrationPattern names a companion-device haptic pattern.
type VibrationPattern uint8

const (
	VibrationNone VibrationPattern = iota
	VibrationLeft
	VibrationRight
	VibrationUp
	VibrationDown
	VibrationDanger
	VibrationGeneric
)

func (v VibrationPattern) String() string {
	switch v {
	case VibrationLeft:
		return "left"
	case VibrationRight:
		return "right"
	case VibrationUp:
		return "up"
	case VibrationDown:
		return "down"
	case VibrationDanger:
		return "danger"
	case VibrationGeneric:
		return "generic"
	default:
		return "none"
	}
}

type catalogueEntry struct {
	name      string
	messageID string
	text      string
	vibration VibrationPattern
}

var catalogue = map[Alert]catalogueEntry{
	Stop:         {"STOP", "warning_obstacle_stop", "Stop, obstacle ahead", VibrationDanger},
	LeftHuge:     {"LEFT_HUGE", "warning_obstacle_left_huge", "Huge obstacle on the left", VibrationLeft},
	RightHuge:    {"RIGHT_HUGE", "warning_obstacle_right_huge", "Huge obstacle on the right", VibrationRight},
	RightBig:     {"RIGHT_BIG", "warning_obstacle_right_big", "Big obstacle on the right", VibrationRight},
	LeftBig:      {"LEFT_BIG", "warning_obstacle_left_big", "Big obstacle on the left", VibrationLeft},
	Narrow:       {"NARROW", "warning_obstacle_narrow", "Narrow passage", VibrationGeneric},
	Center:       {"CENTER", "warning_obstacle_center", "Obstacle ahead", VibrationUp},
	Right:        {"RIGHT", "warning_obstacle_right", "Obstacle on the right", VibrationRight},
	Left:         {"LEFT", "warning_obstacle_left", "Obstacle on the left", VibrationLeft},
	AlmostOnStep: {"ALMOST_ON_STEP", "warning_almost_on_a_step", "You are almost on a step", VibrationDown},
	StepUp:       {"STEP_UP", "warning_stepup", "Step up ahead", VibrationDown},
	StepDown:     {"STEP_DOWN", "warning_stepdown", "Step down ahead", VibrationUp},
	Pit:          {"PIT", "warning_pit", "Drop-off ahead", VibrationDown},
	High:         {"HIGH", "warning_obstacle_high", "Obstacle at head height", VibrationUp},
	Low:          {"LOW", "warning_obstacle_low", "Low obstacle ahead", VibrationDown},
}

func (a Alert) String() string {
	if e, ok := catalogue[a]; ok {
		return e.name
	}
	if a == None {
		return "NONE"
	}
	return fmt.Sprintf("Alert(%d)", uint8(a))
}

// MessageID is the identifier of the localized message the presentation
// layer speaks or shows. Empty for None.
func (a Alert) MessageID() string {
	return catalogue[a].messageID
}

// Text is an English rendering of the message, for logs and reports.
func (a Alert) Text() string {
	return catalogue[a].text
}

// Vibration is the companion-device pattern for the alert.
func (a Alert) Vibration() VibrationPattern {
	return catalogue[a].vibration
}

// Priority is the alert's rank in the decision table; 0 is the most urgent.
// None ranks below every alert.
func (a Alert) Priority() int {
	for i, r := range decisionTable {
		if r.alert == a {
			return i
		}
	}
	return len(decisionTable)
}

// IsVertical reports whether the alert announces a ground discontinuity
// rather than an obstacle.
func (a Alert) IsVertical() bool {
	switch a {
	case StepUp, StepDown, Pit, AlmostOnStep:
		return true
	}
	return false
}

// ParseAlert is the inverse of String.
func ParseAlert(name string) (Alert, error) {
	if name == "NONE" {
		return None, nil
	}
	for a, e := range catalogue {
		if e.name == name {
			return a, nil
		}
	}
	return None, fmt.Errorf("unknown alert %q", name)
}
