package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmptyTuningConfigDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	assert.Equal(t, 3.0, cfg.GetMaxDistanceMeters())
	assert.Equal(t, 1.0, cfg.GetNearDistanceMeters())
	assert.Equal(t, 3, cfg.GetHistorySize())
	assert.Equal(t, 2, cfg.GetMinOccurrences())
	assert.Equal(t, 0.4, cfg.GetCameraMovedMeters())
	assert.Equal(t, 0.3, cfg.GetPendingStepRadiusMeters())
	assert.Equal(t, 1.0, cfg.GetDeviceHeightMeters())
	assert.Equal(t, 0.22, cfg.GetMinHeightDifference())
	assert.Equal(t, 0.35, cfg.GetMaxHeightDifference())
	assert.Equal(t, 0.50, cfg.GetMaxDepthDifference())
	assert.Equal(t, 1.2, cfg.GetPitMaxDistanceMeters())
	assert.Equal(t, 0.18, cfg.GetMinStepRise())
	assert.Equal(t, 0.30, cfg.GetMaxStepRise())
	assert.Equal(t, 0.10, cfg.GetMinStepAdvance())
	assert.Equal(t, 0.45, cfg.GetMaxStepAdvance())
	assert.Equal(t, 0.30, cfg.GetMaxLateralOffset())
	assert.Equal(t, 1.2, cfg.GetStepAlertDistanceMeters())
	assert.Equal(t, 3, cfg.GetStepRepeatThreshold())
	assert.Equal(t, 100.0, cfg.GetPitAlertDistanceCM())
	assert.Equal(t, 0.3, cfg.GetAlmostOnStepMeters())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTuningConfigPartial(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"max_distance_meters": 3.5, "history_size": 5}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.GetMaxDistanceMeters())
	assert.Equal(t, 5, cfg.GetHistorySize())
	// Omitted fields fall back to defaults.
	assert.Equal(t, 2, cfg.GetMinOccurrences())
}

func TestLoadTuningConfigErrors(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		path := writeConfig(t, "tuning.yaml", `{}`)
		_, err := LoadTuningConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stat")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeConfig(t, "bad.json", `{"history_size": `)
		_, err := LoadTuningConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("too large", func(t *testing.T) {
		path := writeConfig(t, "big.json", `{"pad":"`+strings.Repeat("x", 1024*1024)+`"}`)
		_, err := LoadTuningConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, "invalid.json", `{"min_occurrences": 4, "history_size": 3}`)
		_, err := LoadTuningConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TuningConfig
		wantErr string
	}{
		{"negative max distance", TuningConfig{MaxDistanceMeters: ptrFloat64(-1)}, "max_distance_meters must be positive"},
		{"near beyond max", TuningConfig{NearDistanceMeters: ptrFloat64(4)}, "must not exceed max_distance_meters"},
		{"zero history", TuningConfig{HistorySize: ptrInt(0)}, "history_size must be at least 1"},
		{"occurrences above history", TuningConfig{MinOccurrences: ptrInt(3), HistorySize: ptrInt(2)}, "must not exceed history_size"},
		{"height band inverted", TuningConfig{MinHeightDifference: ptrFloat64(0.4)}, "must be below max_height_difference"},
		{"rise inverted", TuningConfig{MinStepRise: ptrFloat64(0.5)}, "min_step_rise"},
		{"advance inverted", TuningConfig{MaxStepAdvance: ptrFloat64(0.05)}, "min_step_advance"},
		{"negative device height", TuningConfig{DeviceHeightMeters: ptrFloat64(-0.1)}, "device_height_meters"},
		{"zero repeat threshold", TuningConfig{StepRepeatThreshold: ptrInt(0)}, "step_repeat_threshold"},
		{"valid override", TuningConfig{MaxDistanceMeters: ptrFloat64(3.5), HistorySize: ptrInt(5)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMustLoadDefaultConfigMatchesGetters(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	empty := EmptyTuningConfig()

	// The canonical file and the in-code defaults must agree.
	assert.Equal(t, empty.GetMaxDistanceMeters(), cfg.GetMaxDistanceMeters())
	assert.Equal(t, empty.GetHistorySize(), cfg.GetHistorySize())
	assert.Equal(t, empty.GetMinOccurrences(), cfg.GetMinOccurrences())
	assert.Equal(t, empty.GetCameraMovedMeters(), cfg.GetCameraMovedMeters())
	assert.Equal(t, empty.GetMinHeightDifference(), cfg.GetMinHeightDifference())
	assert.Equal(t, empty.GetMaxDepthDifference(), cfg.GetMaxDepthDifference())
	assert.Equal(t, empty.GetStepRepeatThreshold(), cfg.GetStepRepeatThreshold())
	assert.Equal(t, empty.GetPitAlertDistanceCM(), cfg.GetPitAlertDistanceCM())
}
