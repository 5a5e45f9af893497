package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathguard/internal/alerts"
	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/scene"
	"github.com/banshee-data/pathguard/internal/steps"
	"github.com/banshee-data/pathguard/internal/testutil"
	"github.com/banshee-data/pathguard/internal/zones"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sessionSamples(t *testing.T) []Sample {
	t.Helper()
	e := engine.New(config.MustLoadDefaultConfig())
	e.SetProbeGrid(testutil.ProbeGrid())
	road := testutil.EmptyRoad()

	var outs []engine.Output
	for _, points := range []scene.ProbePoints{nil, testutil.StepDownAt(1.5), testutil.StepDownAt(0.9), testutil.PitAt(0.8)} {
		f := engine.Frame{Semantic: road.Semantic, Depth: road.Depth, Pose: scene.NewPose(0, 1.0, 0)}
		if points != nil {
			f.Probes = steps.StaticSampler{Points: points}
		}
		outs = append(outs, e.ProcessFrame(f))
	}
	return SamplesFromOutputs(outs)
}

func TestSamplesFromOutputs(t *testing.T) {
	samples := sessionSamples(t)
	require.Len(t, samples, 4)

	assert.Equal(t, 0, samples[0].FrameIndex)
	assert.Equal(t, alerts.None, samples[0].Alert)
	assert.Equal(t, steps.KindNone, samples[0].StepKind)

	assert.Equal(t, alerts.StepDown, samples[2].Alert)
	assert.True(t, samples[2].Zones.Has(zones.StepDown))
	assert.InDelta(t, 0.9, samples[2].DistanceMeters, 1e-9)

	assert.Equal(t, alerts.Pit, samples[3].Alert)
	assert.Equal(t, steps.KindPit, samples[3].StepKind)
}

func TestWriteStepProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStepProfile(&buf, sessionSamples(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature), "output is not a PNG")
}

func TestWriteStepProfileWithoutAlerts(t *testing.T) {
	samples := []Sample{{FrameIndex: 0}, {FrameIndex: 1, VerticalDrop: -0.1, DistanceMeters: 2}}
	var buf bytes.Buffer
	require.NoError(t, WriteStepProfile(&buf, samples))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestWriteAlertTimeline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAlertTimeline(&buf, sessionSamples(t)))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Alert timeline")
	assert.Contains(t, html, "STEP_DOWN")
	assert.Contains(t, html, "PIT")
}

func TestEmptySessions(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteStepProfile(&buf, nil), ErrNoSamples)
	assert.ErrorIs(t, WriteAlertTimeline(&buf, nil), ErrNoSamples)
	assert.Zero(t, buf.Len())
}

func TestAlertCountsFollowPriority(t *testing.T) {
	names, values := alertCounts(map[alerts.Alert]int{alerts.Low: 1, alerts.Stop: 2, alerts.StepUp: 3})
	assert.Equal(t, []string{"STOP", "STEP_UP", "LOW"}, names)
	require.Len(t, values, 3)
	assert.Equal(t, 2, values[0].Value)
}
