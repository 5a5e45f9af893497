package steps

import (
	"fmt"

	"github.com/banshee-data/pathguard/internal/config"
)

// DetectorConfig holds the thresholds for the Step/Stair/Pit Detector.
// Distances are in metres.
type DetectorConfig struct {
	CameraMovedMeters       float64 // Displacement that invalidates staircase context (default: 0.4)
	PendingStepRadiusMeters float64 // Radius at which a remembered step counts as reached (default: 0.3)
	DeviceHeightMeters      float64 // Device-to-ground offset for pending checks (default: 1.0)

	// Row-pair classification
	MinHeightDifference  float64 // Smallest |Δy| for a step (default: 0.22)
	MaxHeightDifference  float64 // Step ceiling and pit floor for |Δy| (default: 0.35)
	MaxDepthDifference   float64 // Step ceiling and pit floor for Δz (default: 0.50)
	PitMaxDistanceMeters float64 // Pits farther than this are ignored (default: 1.2)

	// Staircase continuity
	MinStepRise      float64 // default: 0.18
	MaxStepRise      float64 // default: 0.30
	MinStepAdvance   float64 // XZ-plane advance, default: 0.10
	MaxStepAdvance   float64 // default: 0.45
	MaxLateralOffset float64 // |Δx|, default: 0.30
}

// DefaultDetectorConfig returns detector configuration loaded from the
// canonical tuning defaults file (config/tuning.defaults.json).
// Panics if the file cannot be found.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfigFromTuning(config.MustLoadDefaultConfig())
}

// DetectorConfigFromTuning builds a DetectorConfig from a loaded TuningConfig.
func DetectorConfigFromTuning(cfg *config.TuningConfig) DetectorConfig {
	return DetectorConfig{
		CameraMovedMeters:       cfg.GetCameraMovedMeters(),
		PendingStepRadiusMeters: cfg.GetPendingStepRadiusMeters(),
		DeviceHeightMeters:      cfg.GetDeviceHeightMeters(),
		MinHeightDifference:     cfg.GetMinHeightDifference(),
		MaxHeightDifference:     cfg.GetMaxHeightDifference(),
		MaxDepthDifference:      cfg.GetMaxDepthDifference(),
		PitMaxDistanceMeters:    cfg.GetPitMaxDistanceMeters(),
		MinStepRise:             cfg.GetMinStepRise(),
		MaxStepRise:             cfg.GetMaxStepRise(),
		MinStepAdvance:          cfg.GetMinStepAdvance(),
		MaxStepAdvance:          cfg.GetMaxStepAdvance(),
		MaxLateralOffset:        cfg.GetMaxLateralOffset(),
	}
}

// Validate checks if the configuration is valid.
func (c DetectorConfig) Validate() error {
	if c.CameraMovedMeters <= 0 {
		return fmt.Errorf("CameraMovedMeters must be positive, got %f", c.CameraMovedMeters)
	}
	if c.PendingStepRadiusMeters <= 0 {
		return fmt.Errorf("PendingStepRadiusMeters must be positive, got %f", c.PendingStepRadiusMeters)
	}
	if c.MinHeightDifference >= c.MaxHeightDifference {
		return fmt.Errorf("MinHeightDifference (%f) must be below MaxHeightDifference (%f)",
			c.MinHeightDifference, c.MaxHeightDifference)
	}
	if c.MinStepRise > c.MaxStepRise {
		return fmt.Errorf("MinStepRise (%f) must not exceed MaxStepRise (%f)", c.MinStepRise, c.MaxStepRise)
	}
	if c.MinStepAdvance > c.MaxStepAdvance {
		return fmt.Errorf("MinStepAdvance (%f) must not exceed MaxStepAdvance (%f)", c.MinStepAdvance, c.MaxStepAdvance)
	}
	return nil
}
