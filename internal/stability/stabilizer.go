package stability

import (
	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/scene"
	"github.com/banshee-data/pathguard/internal/zones"
)

// DefaultMinOccurrences is how many buffered frames a category must appear in
// before its zones are trusted.
const DefaultMinOccurrences = 2

// StabilizerConfig controls the Temporal Stabilizer.
type StabilizerConfig struct {
	HistorySize    int
	MinOccurrences int
}

// DefaultStabilizerConfig returns a 3-frame window with a 2-frame quorum.
func DefaultStabilizerConfig() StabilizerConfig {
	return StabilizerConfig{
		HistorySize:    DefaultHistorySize,
		MinOccurrences: DefaultMinOccurrences,
	}
}

// StabilizerConfigFromTuning builds a StabilizerConfig from a loaded
// TuningConfig.
func StabilizerConfigFromTuning(cfg *config.TuningConfig) StabilizerConfig {
	return StabilizerConfig{
		HistorySize:    cfg.GetHistorySize(),
		MinOccurrences: cfg.GetMinOccurrences(),
	}
}

// Stabilizer filters per-frame zone maps down to zones backed by a
// recently persistent category. A category need not stay in the same zone
// from frame to frame; its zones over the window are unioned.
type Stabilizer struct {
	cfg     StabilizerConfig
	history *History
}

// NewStabilizer creates a stabilizer. Non-positive fields take defaults.
func NewStabilizer(cfg StabilizerConfig) *Stabilizer {
	if cfg.HistorySize < 1 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.MinOccurrences < 1 {
		cfg.MinOccurrences = DefaultMinOccurrences
	}
	return &Stabilizer{cfg: cfg, history: NewHistory(cfg.HistorySize)}
}

// Push appends this frame's zone map, evicting the oldest at capacity.
// A nil map is recorded as an empty frame.
func (s *Stabilizer) Push(frame zones.FrameZoneMap) {
	if frame == nil {
		frame = zones.FrameZoneMap{}
	}
	s.history.Add(frame)
}

// Stable returns the stabilized presence map using the configured quorum.
func (s *Stabilizer) Stable() zones.Presence {
	return s.StableWith(s.cfg.MinOccurrences)
}

// StableWith returns the zones of every category that appeared in at least
// minOccurrences buffered frames. It does not modify the history.
func (s *Stabilizer) StableWith(minOccurrences int) zones.Presence {
	return zones.PresenceOf(s.StableSet(minOccurrences))
}

// StableSet is StableWith as a bitmask.
func (s *Stabilizer) StableSet(minOccurrences int) zones.Set {
	seen := make(map[scene.Category]int)
	union := make(map[scene.Category]zones.Set)
	for _, frame := range s.history.All() {
		for category, zs := range frame {
			seen[category]++
			union[category] = union[category].Union(zs)
		}
	}

	var out zones.Set
	for category, n := range seen {
		if n >= minOccurrences {
			out = out.Union(union[category])
		}
	}
	return out
}

// History exposes the underlying buffer for diagnostics.
func (s *Stabilizer) History() *History {
	return s.history
}

// Reset clears the buffered frames.
func (s *Stabilizer) Reset() {
	s.history.Clear()
}
