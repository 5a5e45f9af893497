package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for detection thresholds.
// Every field is optional; the Get* accessors supply the field-tested
// defaults for anything the JSON leaves out.
type TuningConfig struct {
	// Zone classifier params
	MaxDistanceMeters  *float64 `json:"max_distance_meters,omitempty"`
	NearDistanceMeters *float64 `json:"near_distance_meters,omitempty"`

	// Temporal stabilizer params
	HistorySize    *int `json:"history_size,omitempty"`
	MinOccurrences *int `json:"min_occurrences,omitempty"`

	// Step detector params
	CameraMovedMeters       *float64 `json:"camera_moved_meters,omitempty"`
	PendingStepRadiusMeters *float64 `json:"pending_step_radius_meters,omitempty"`
	DeviceHeightMeters      *float64 `json:"device_height_meters,omitempty"`
	MinHeightDifference     *float64 `json:"min_height_difference,omitempty"`
	MaxHeightDifference     *float64 `json:"max_height_difference,omitempty"`
	MaxDepthDifference      *float64 `json:"max_depth_difference,omitempty"`
	PitMaxDistanceMeters    *float64 `json:"pit_max_distance_meters,omitempty"`

	// Staircase continuity params
	MinStepRise      *float64 `json:"min_step_rise,omitempty"`
	MaxStepRise      *float64 `json:"max_step_rise,omitempty"`
	MinStepAdvance   *float64 `json:"min_step_advance,omitempty"`
	MaxStepAdvance   *float64 `json:"max_step_advance,omitempty"`
	MaxLateralOffset *float64 `json:"max_lateral_offset,omitempty"`

	// Resolver params
	StepAlertDistanceMeters *float64 `json:"step_alert_distance_meters,omitempty"`
	StepRepeatThreshold     *int     `json:"step_repeat_threshold,omitempty"`
	PitAlertDistanceCM      *float64 `json:"pit_alert_distance_cm,omitempty"`
	AlmostOnStepMeters      *float64 `json:"almost_on_step_meters,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	positive := []struct {
		name string
		v    *float64
	}{
		{"max_distance_meters", c.MaxDistanceMeters},
		{"near_distance_meters", c.NearDistanceMeters},
		{"camera_moved_meters", c.CameraMovedMeters},
		{"pending_step_radius_meters", c.PendingStepRadiusMeters},
		{"min_height_difference", c.MinHeightDifference},
		{"max_height_difference", c.MaxHeightDifference},
		{"max_depth_difference", c.MaxDepthDifference},
		{"pit_max_distance_meters", c.PitMaxDistanceMeters},
		{"step_alert_distance_meters", c.StepAlertDistanceMeters},
		{"pit_alert_distance_cm", c.PitAlertDistanceCM},
		{"almost_on_step_meters", c.AlmostOnStepMeters},
	}
	for _, p := range positive {
		if p.v != nil && *p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", p.name, *p.v)
		}
	}

	if c.DeviceHeightMeters != nil && *c.DeviceHeightMeters < 0 {
		return fmt.Errorf("device_height_meters must be non-negative, got %f", *c.DeviceHeightMeters)
	}

	if c.GetNearDistanceMeters() > c.GetMaxDistanceMeters() {
		return fmt.Errorf("near_distance_meters (%f) must not exceed max_distance_meters (%f)",
			c.GetNearDistanceMeters(), c.GetMaxDistanceMeters())
	}

	if c.HistorySize != nil && *c.HistorySize < 1 {
		return fmt.Errorf("history_size must be at least 1, got %d", *c.HistorySize)
	}
	if c.MinOccurrences != nil && *c.MinOccurrences < 1 {
		return fmt.Errorf("min_occurrences must be at least 1, got %d", *c.MinOccurrences)
	}
	if c.GetMinOccurrences() > c.GetHistorySize() {
		return fmt.Errorf("min_occurrences (%d) must not exceed history_size (%d)",
			c.GetMinOccurrences(), c.GetHistorySize())
	}

	if c.GetMinHeightDifference() >= c.GetMaxHeightDifference() {
		return fmt.Errorf("min_height_difference (%f) must be below max_height_difference (%f)",
			c.GetMinHeightDifference(), c.GetMaxHeightDifference())
	}
	if c.GetMinStepRise() > c.GetMaxStepRise() {
		return fmt.Errorf("min_step_rise (%f) must not exceed max_step_rise (%f)",
			c.GetMinStepRise(), c.GetMaxStepRise())
	}
	if c.GetMinStepAdvance() > c.GetMaxStepAdvance() {
		return fmt.Errorf("min_step_advance (%f) must not exceed max_step_advance (%f)",
			c.GetMinStepAdvance(), c.GetMaxStepAdvance())
	}

	if c.StepRepeatThreshold != nil && *c.StepRepeatThreshold < 1 {
		return fmt.Errorf("step_repeat_threshold must be at least 1, got %d", *c.StepRepeatThreshold)
	}

	return nil
}

// GetMaxDistanceMeters returns the max_distance_meters value or the default.
func (c *TuningConfig) GetMaxDistanceMeters() float64 {
	if c.MaxDistanceMeters == nil {
		return 3.0
	}
	return *c.MaxDistanceMeters
}

// GetNearDistanceMeters returns the near_distance_meters value or the default.
func (c *TuningConfig) GetNearDistanceMeters() float64 {
	if c.NearDistanceMeters == nil {
		return 1.0
	}
	return *c.NearDistanceMeters
}

// GetHistorySize returns the history_size value or the default.
func (c *TuningConfig) GetHistorySize() int {
	if c.HistorySize == nil {
		return 3
	}
	return *c.HistorySize
}

// GetMinOccurrences returns the min_occurrences value or the default.
func (c *TuningConfig) GetMinOccurrences() int {
	if c.MinOccurrences == nil {
		return 2
	}
	return *c.MinOccurrences
}

// GetCameraMovedMeters returns the camera_moved_meters value or the default.
func (c *TuningConfig) GetCameraMovedMeters() float64 {
	if c.CameraMovedMeters == nil {
		return 0.4
	}
	return *c.CameraMovedMeters
}

// GetPendingStepRadiusMeters returns the pending_step_radius_meters value or the default.
func (c *TuningConfig) GetPendingStepRadiusMeters() float64 {
	if c.PendingStepRadiusMeters == nil {
		return 0.3
	}
	return *c.PendingStepRadiusMeters
}

// GetDeviceHeightMeters returns the device_height_meters value or the default.
func (c *TuningConfig) GetDeviceHeightMeters() float64 {
	if c.DeviceHeightMeters == nil {
		return 1.0
	}
	return *c.DeviceHeightMeters
}

// GetMinHeightDifference returns the min_height_difference value or the default.
func (c *TuningConfig) GetMinHeightDifference() float64 {
	if c.MinHeightDifference == nil {
		return 0.22
	}
	return *c.MinHeightDifference
}

// GetMaxHeightDifference returns the max_height_difference value or the default.
func (c *TuningConfig) GetMaxHeightDifference() float64 {
	if c.MaxHeightDifference == nil {
		return 0.35
	}
	return *c.MaxHeightDifference
}

// GetMaxDepthDifference returns the max_depth_difference value or the default.
func (c *TuningConfig) GetMaxDepthDifference() float64 {
	if c.MaxDepthDifference == nil {
		return 0.50
	}
	return *c.MaxDepthDifference
}

// GetPitMaxDistanceMeters returns the pit_max_distance_meters value or the default.
func (c *TuningConfig) GetPitMaxDistanceMeters() float64 {
	if c.PitMaxDistanceMeters == nil {
		return 1.2
	}
	return *c.PitMaxDistanceMeters
}

// GetMinStepRise returns the min_step_rise value or the default.
func (c *TuningConfig) GetMinStepRise() float64 {
	if c.MinStepRise == nil {
		return 0.18
	}
	return *c.MinStepRise
}

// GetMaxStepRise returns the max_step_rise value or the default.
func (c *TuningConfig) GetMaxStepRise() float64 {
	if c.MaxStepRise == nil {
		return 0.30
	}
	return *c.MaxStepRise
}

// GetMinStepAdvance returns the min_step_advance value or the default.
func (c *TuningConfig) GetMinStepAdvance() float64 {
	if c.MinStepAdvance == nil {
		return 0.10
	}
	return *c.MinStepAdvance
}

// GetMaxStepAdvance returns the max_step_advance value or the default.
func (c *TuningConfig) GetMaxStepAdvance() float64 {
	if c.MaxStepAdvance == nil {
		return 0.45
	}
	return *c.MaxStepAdvance
}

// GetMaxLateralOffset returns the max_lateral_offset value or the default.
func (c *TuningConfig) GetMaxLateralOffset() float64 {
	if c.MaxLateralOffset == nil {
		return 0.30
	}
	return *c.MaxLateralOffset
}

// GetStepAlertDistanceMeters returns the step_alert_distance_meters value or the default.
func (c *TuningConfig) GetStepAlertDistanceMeters() float64 {
	if c.StepAlertDistanceMeters == nil {
		return 1.2
	}
	return *c.StepAlertDistanceMeters
}

// GetStepRepeatThreshold returns the step_repeat_threshold value or the default.
func (c *TuningConfig) GetStepRepeatThreshold() int {
	if c.StepRepeatThreshold == nil {
		return 3
	}
	return *c.StepRepeatThreshold
}

// GetPitAlertDistanceCM returns the pit_alert_distance_cm value or the default.
func (c *TuningConfig) GetPitAlertDistanceCM() float64 {
	if c.PitAlertDistanceCM == nil {
		return 100
	}
	return *c.PitAlertDistanceCM
}

// GetAlmostOnStepMeters returns the almost_on_step_meters value or the default.
func (c *TuningConfig) GetAlmostOnStepMeters() float64 {
	if c.AlmostOnStepMeters == nil {
		return 0.3
	}
	return *c.AlmostOnStepMeters
}
