package alertlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/scene"
	"github.com/banshee-data/pathguard/internal/steps"
	"github.com/banshee-data/pathguard/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "alerts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Migrate())
	v, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}

func TestSchemaVersionBeforeMigrate(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)
	defer store.Close()

	v, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)
}

func TestRecordAndEvents(t *testing.T) {
	store := openTestStore(t)
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	id, err := store.Record(Event{
		SessionID: "s1", FrameIndex: 7, Alert: "STEP_DOWN", MessageID: "warning_stepdown",
		Vibration: "up", Zones: "{STEP_DOWN}", StepKind: "step", DistanceMeters: 0.9, Timestamp: ts,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = store.Record(Event{SessionID: "s1", FrameIndex: 2, Alert: "CENTER", Timestamp: ts})
	require.NoError(t, err)
	_, err = store.Record(Event{SessionID: "other", FrameIndex: 1, Alert: "PIT", Timestamp: ts})
	require.NoError(t, err)

	events, err := store.Events("s1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, 2, events[0].FrameIndex)
	assert.Equal(t, "none", events[0].StepKind)

	got := events[1]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "STEP_DOWN", got.Alert)
	assert.Equal(t, "warning_stepdown", got.MessageID)
	assert.Equal(t, "{STEP_DOWN}", got.Zones)
	assert.InDelta(t, 0.9, got.DistanceMeters, 1e-9)
	assert.True(t, ts.Equal(got.Timestamp))
}

func TestRecordKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Record(Event{ID: "fixed", SessionID: "s", Alert: "LEFT"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = store.Record(Event{ID: "fixed", SessionID: "s", Alert: "LEFT"})
	assert.Error(t, err, "duplicate event IDs are rejected")
}

func TestCountByAlert(t *testing.T) {
	store := openTestStore(t)
	for i, name := range []string{"CENTER", "CENTER", "PIT", "STEP_UP"} {
		_, err := store.Record(Event{SessionID: "s", FrameIndex: i, Alert: name})
		require.NoError(t, err)
	}

	counts, err := store.CountByAlert("s")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"CENTER": 2, "PIT": 1, "STEP_UP": 1}, counts)

	empty, err := store.CountByAlert("missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEventFromOutput(t *testing.T) {
	e := engine.New(config.MustLoadDefaultConfig(), engine.WithSessionID("replay-1"))
	e.SetProbeGrid(testutil.ProbeGrid())

	im := testutil.EmptyRoad()
	out := e.ProcessFrame(engine.Frame{
		Semantic: im.Semantic,
		Depth:    im.Depth,
		Pose:     scene.NewPose(0, 1.0, 0),
		Probes:   steps.StaticSampler{Points: testutil.StepDownAt(0.9)},
	})
	require.True(t, out.HasAlert())

	ev := EventFromOutput(out, time.Unix(10, 0))
	assert.Equal(t, "replay-1", ev.SessionID)
	assert.Equal(t, "STEP_DOWN", ev.Alert)
	assert.Equal(t, out.Alert.MessageID(), ev.MessageID)
	assert.Equal(t, "step", ev.StepKind)
	assert.Contains(t, ev.Zones, "STEP_DOWN")

	store := openTestStore(t)
	_, err := store.Record(ev)
	require.NoError(t, err)
	counts, err := store.CountByAlert("replay-1")
	require.NoError(t, err)
	assert.Equal(t, 1, counts["STEP_DOWN"])
}

func TestClosedStoreErrors(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.Migrate())
	_, err = store.Record(Event{SessionID: "s"})
	assert.Error(t, err)
	_, err = store.Events("s")
	assert.Error(t, err)
}
