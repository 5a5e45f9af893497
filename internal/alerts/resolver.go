package alerts

import (
	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/monitoring"
	"github.com/banshee-data/pathguard/internal/steps"
	"github.com/banshee-data/pathguard/internal/units"
	"github.com/banshee-data/pathguard/internal/zones"
)

// ResolverConfig holds the step and pit alerting thresholds.
type ResolverConfig struct {
	StepAlertDistanceMeters float64 // Steps this close alert without debounce (default: 1.2)
	StepRepeatThreshold     int     // Consecutive detections that force an alert (default: 3)
	PitAlertDistanceCM      float64 // Pits alert within this range (default: 100)
	AlmostOnStepMeters      float64 // Radius for the almost-on-step alert (default: 0.3)
}

// DefaultResolverConfig returns resolver configuration loaded from the
// canonical tuning defaults file (config/tuning.defaults.json).
// Panics if the file cannot be found.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfigFromTuning(config.MustLoadDefaultConfig())
}

// ResolverConfigFromTuning builds a ResolverConfig from a loaded TuningConfig.
func ResolverConfigFromTuning(cfg *config.TuningConfig) ResolverConfig {
	return ResolverConfig{
		StepAlertDistanceMeters: cfg.GetStepAlertDistanceMeters(),
		StepRepeatThreshold:     cfg.GetStepRepeatThreshold(),
		PitAlertDistanceCM:      cfg.GetPitAlertDistanceCM(),
		AlmostOnStepMeters:      cfg.GetAlmostOnStepMeters(),
	}
}

// Counters are the consecutive step detections per direction.
type Counters struct {
	StepUp   int
	StepDown int
}

// Resolver picks at most one alert per frame. It is not safe for concurrent
// use.
type Resolver struct {
	cfg      ResolverConfig
	counters Counters
}

// NewResolver creates a resolver with zeroed counters.
func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Counters returns the current debounce counters.
func (r *Resolver) Counters() Counters {
	return r.counters
}

// Reset zeroes the debounce counters.
func (r *Resolver) Reset() {
	r.counters = Counters{}
}

// Resolve folds the step result into the stable zones and returns the
// winning alert together with the zones it was chosen from.
func (r *Resolver) Resolve(stable zones.Presence, step steps.Result) (Alert, zones.Presence) {
	set := r.incorporate(stable.Set().ResolveWalls(), step)
	return Decide(set), zones.PresenceOf(set)
}

func (r *Resolver) incorporate(set zones.Set, step steps.Result) zones.Set {
	if d := step.DistanceToNearestPendingStep; d >= 0 && d < r.cfg.AlmostOnStepMeters {
		set = set.Add(zones.AlmostOnStep)
	}

	switch step.Kind {
	case steps.KindPit:
		if units.MetersToCentimeters(step.DistanceMeters) <= r.cfg.PitAlertDistanceCM {
			set = set.Add(zones.Pit)
		}
	case steps.KindStep:
		near := step.DistanceMeters <= r.cfg.StepAlertDistanceMeters
		if step.Up() {
			r.counters.StepDown = 0
			r.counters.StepUp++
			if near || r.counters.StepUp >= r.cfg.StepRepeatThreshold {
				set = set.Add(zones.StepUp)
				r.counters.StepUp = 0
			}
		} else {
			r.counters.StepUp = 0
			r.counters.StepDown++
			if near || r.counters.StepDown >= r.cfg.StepRepeatThreshold {
				set = set.Add(zones.StepDown)
				r.counters.StepDown = 0
			}
		}
		monitoring.Debugf("alerts: step drop=%.2f dist=%.2f counters=%+v", step.VerticalDrop, step.DistanceMeters, r.counters)
	}
	return set
}
