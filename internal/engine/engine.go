package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/pathguard/internal/alerts"
	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/monitoring"
	"github.com/banshee-data/pathguard/internal/scene"
	"github.com/banshee-data/pathguard/internal/stability"
	"github.com/banshee-data/pathguard/internal/steps"
	"github.com/banshee-data/pathguard/internal/timeutil"
	"github.com/banshee-data/pathguard/internal/zones"
)

// Frame is one sensor frame, already materialized in memory. Any field may
// be missing while the platform warms up.
type Frame struct {
	Semantic *scene.SemanticImage
	Depth    *scene.DepthImage
	Pose     scene.Pose

	// Probes samples world points under the calibrated grid. Nil means the
	// hit-test depth image is not available this frame.
	Probes steps.Sampler
}

// Output is the engine's answer for one frame.
type Output struct {
	SessionID  string
	FrameIndex int

	Alert alerts.Alert

	// Zones is the stabilized presence map the alert was chosen from,
	// including any step zones folded in this frame.
	Zones zones.Presence

	Step       steps.Result
	Classified zones.FrameZoneMap
	Latency    time.Duration
}

// HasAlert reports whether the frame produced an alert.
func (o Output) HasAlert() bool {
	return o.Alert != alerts.None
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for latency measurement.
func WithClock(c timeutil.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(e *Engine) { e.sessionID = id }
}

// Engine turns frames into alerts.
type Engine struct {
	clock     timeutil.Clock
	sessionID string

	classifier *zones.Classifier
	stabilizer *stability.Stabilizer
	detector   *steps.Detector
	resolver   *alerts.Resolver

	grid       scene.ProbeGrid
	frameIndex int
	stats      *statsCollector
}

// New builds an engine from a tuning config. A nil config uses the built-in
// defaults.
func New(cfg *config.TuningConfig, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	e := &Engine{
		clock:      timeutil.RealClock{},
		classifier: zones.NewClassifier(zones.ClassifierConfigFromTuning(cfg)),
		stabilizer: stability.NewStabilizer(stability.StabilizerConfigFromTuning(cfg)),
		detector:   steps.NewDetector(steps.DetectorConfigFromTuning(cfg)),
		resolver:   alerts.NewResolver(alerts.ResolverConfigFromTuning(cfg)),
		stats:      newStatsCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sessionID == "" {
		e.sessionID = uuid.NewString()
	}
	return e
}

// SessionID identifies this engine's run.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// SetProbeGrid installs the probe calibration from the presentation layer.
// Until a non-empty grid is set, step detection is skipped.
func (e *Engine) SetProbeGrid(grid scene.ProbeGrid) {
	e.grid = grid.Clone()
	monitoring.Debugf("engine: probe grid set with %d probes", len(e.grid))
}

// ProbeGrid returns a copy of the current calibration.
func (e *Engine) ProbeGrid() scene.ProbeGrid {
	return e.grid.Clone()
}

// ProcessFrame runs the full pipeline for one frame. It never fails: any
// unavailable input degrades to "no signal" for that stage.
func (e *Engine) ProcessFrame(f Frame) Output {
	start := e.clock.Now()
	idx := e.frameIndex
	e.frameIndex++

	classified := e.classifier.Classify(f.Semantic, f.Depth)
	e.stabilizer.Push(classified)
	stable := e.stabilizer.Stable()

	step := e.detectSteps(f)
	alert, presence := e.resolver.Resolve(stable, step)
	if err := presence.CheckExclusive(); err != nil {
		monitoring.Logf("engine: frame %d: %v", idx, err)
	}

	latency := e.clock.Since(start)
	e.stats.record(alert, latency)

	return Output{
		SessionID:  e.sessionID,
		FrameIndex: idx,
		Alert:      alert,
		Zones:      presence,
		Step:       step,
		Classified: classified,
		Latency:    latency,
	}
}

func (e *Engine) detectSteps(f Frame) steps.Result {
	if !e.grid.Calibrated() {
		return steps.NoSignal()
	}
	var points scene.ProbePoints
	if f.Probes != nil {
		p, err := f.Probes.Sample(e.grid)
		if err != nil {
			monitoring.Debugf("engine: probes unavailable: %v", err)
		} else {
			points = p
		}
	}
	return e.detector.Detect(f.Pose, points)
}

// StepState returns a copy of the detector's cross-frame state.
func (e *Engine) StepState() steps.State {
	return e.detector.State()
}

// Counters returns the resolver's step debounce counters.
func (e *Engine) Counters() alerts.Counters {
	return e.resolver.Counters()
}

// Stats returns a snapshot of the processing statistics.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot()
}

// Reset clears the frame history, the step state and the debounce counters.
// The session, calibration and statistics are kept.
func (e *Engine) Reset() {
	e.stabilizer.Reset()
	e.detector.Reset()
	e.resolver.Reset()
}
