package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathguard/internal/alertlog"
	"github.com/banshee-data/pathguard/internal/alerts"
	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/fsutil"
	"github.com/banshee-data/pathguard/internal/recording"
	"github.com/banshee-data/pathguard/internal/scene"
	"github.com/banshee-data/pathguard/internal/security"
	"github.com/banshee-data/pathguard/internal/steps"
	"github.com/banshee-data/pathguard/internal/testutil"
)

const sessionID = "walk 2026/10/19"

// writeWalk records a short walk: a near step, a person who lingers for two
// frames, then a pit. A corrupt frame sits in the middle.
func writeWalk(t *testing.T, fs fsutil.FileSystem, path string) {
	t.Helper()
	grid := testutil.ProbeGrid()
	rec, err := recording.Create(fs, path, recording.NewLogHeader(sessionID, time.Unix(1700000000, 0), grid))
	require.NoError(t, err)

	frame := func(im testutil.Images, points scene.ProbePoints) engine.Frame {
		f := engine.Frame{Semantic: im.Semantic, Depth: im.Depth, Pose: scene.NewPose(0, 1.0, 0)}
		if points != nil {
			f.Probes = steps.StaticSampler{Points: points}
		}
		return f
	}
	frames := []engine.Frame{
		frame(testutil.EmptyRoad(), testutil.StepDownAt(0.9)),
		frame(testutil.PersonAhead(), nil),
		frame(testutil.PersonAhead(), nil),
		frame(testutil.EmptyRoad(), nil),
		frame(testutil.EmptyRoad(), testutil.PitAt(0.8)),
	}
	ts := time.Unix(1700000000, 0)
	for i, f := range frames {
		require.NoError(t, rec.Record(recording.NewFrameRecord(i, ts.Add(time.Duration(i)*33*time.Millisecond), f, grid)))
		if i == 2 {
			bad := recording.FrameRecord{Index: 99, Depth: &recording.ImageRecord{Width: 4, Height: 4, Data: make([]byte, 3)}}
			require.NoError(t, rec.Record(bad))
		}
	}
	require.NoError(t, rec.Close())
}

func TestRunReplaysSession(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "walk"+recording.FileExtension)
	writeWalk(t, fsutil.OSFileSystem{}, in)

	opts := options{
		In:          in,
		DB:          filepath.Join(dir, "alerts.db"),
		ReportDir:   filepath.Join(dir, "reports"),
		AllowedDirs: []string{dir},
	}
	var stdout bytes.Buffer
	stats, err := run(opts, fsutil.OSFileSystem{}, &stdout)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Frames, "corrupt frame is skipped")
	assert.Equal(t, 4, stats.FramesWithAlert)
	assert.Equal(t, map[alerts.Alert]int{alerts.StepDown: 1, alerts.Center: 2, alerts.Pit: 1}, stats.AlertCounts)

	out := stdout.String()
	assert.Contains(t, out, "STEP_DOWN")
	assert.Contains(t, out, "obstacle ahead")
	assert.Contains(t, out, "PIT")
	assert.Contains(t, out, "session "+sessionID+": 5 frames, 4 with alerts")

	store, err := alertlog.Open(opts.DB)
	require.NoError(t, err)
	defer store.Close()
	counts, err := store.CountByAlert(sessionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"STEP_DOWN": 1, "CENTER": 2, "PIT": 1}, counts)

	stem := filepath.Join(opts.ReportDir, security.SanitizeFilename(sessionID))
	png, err := os.ReadFile(stem + "_steps.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	html, err := os.ReadFile(stem + "_alerts.html")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(html), "echarts"))
}

func TestRunWithMemoryFileSystem(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	writeWalk(t, fs, "/walks/a"+recording.FileExtension)

	var stdout bytes.Buffer
	_, err := run(options{In: "/walks/a" + recording.FileExtension}, fs, &stdout)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 5, "four alerts and a summary")
}

func TestRunRejectsOutputOutsideAllowedDirs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "walk"+recording.FileExtension)
	writeWalk(t, fsutil.OSFileSystem{}, in)

	opts := options{
		In:          in,
		HTML:        filepath.Join(dir, "..", "escape.html"),
		AllowedDirs: []string{dir},
	}
	_, err := run(opts, fsutil.OSFileSystem{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, security.ErrOutsideAllowedDirs)
}

func TestRunErrors(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()

	_, err := run(options{In: "/missing.pgrec"}, fs, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = run(options{In: "/missing.pgrec", Config: "/no/such/tuning.json"}, fs, &bytes.Buffer{})
	assert.ErrorContains(t, err, "load config")
}

func TestWithReportNames(t *testing.T) {
	o := options{ReportDir: "out", HTML: "custom.html"}.withReportNames("../a b")
	assert.Equal(t, filepath.Join("out", "a_b_steps.png"), o.Plot)
	assert.Equal(t, "custom.html", o.HTML)

	assert.Equal(t, options{}, options{}.withReportNames("x"))
}
