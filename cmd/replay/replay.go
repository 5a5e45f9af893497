package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/banshee-data/pathguard/internal/alertlog"
	"github.com/banshee-data/pathguard/internal/config"
	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/fsutil"
	"github.com/banshee-data/pathguard/internal/monitoring"
	"github.com/banshee-data/pathguard/internal/recording"
	"github.com/banshee-data/pathguard/internal/report"
	"github.com/banshee-data/pathguard/internal/security"
	"github.com/banshee-data/pathguard/internal/zones"
)

type options struct {
	In     string
	Config string
	DB     string
	Plot   string
	HTML   string

	// ReportDir receives both reports, named after the session, unless
	// Plot or HTML name a file explicitly.
	ReportDir string

	// AllowedDirs bounds the output paths. Empty means the working
	// directory and the system temp directory.
	AllowedDirs []string
}

func (o options) outputs() []string {
	var out []string
	for _, p := range []string{o.DB, o.Plot, o.HTML} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadConfig(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.EmptyTuningConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

// withReportNames fills Plot and HTML from ReportDir for the session.
func (o options) withReportNames(sessionID string) options {
	if o.ReportDir == "" {
		return o
	}
	stem := filepath.Join(o.ReportDir, security.SanitizeFilename(sessionID))
	if o.Plot == "" {
		o.Plot = stem + "_steps.png"
	}
	if o.HTML == "" {
		o.HTML = stem + "_alerts.html"
	}
	return o
}

// run replays opts.In and returns the engine's statistics.
func run(opts options, fs fsutil.FileSystem, stdout io.Writer) (engine.Stats, error) {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return engine.Stats{}, fmt.Errorf("load config: %w", err)
	}

	rp, err := recording.Open(fs, opts.In)
	if err != nil {
		return engine.Stats{}, err
	}
	defer rp.Close()

	header := rp.Header()
	grid, err := header.Grid()
	if err != nil {
		return engine.Stats{}, fmt.Errorf("recording calibration: %w", err)
	}

	e := engine.New(cfg, engine.WithSessionID(header.SessionID))
	opts = opts.withReportNames(e.SessionID())
	for _, p := range opts.outputs() {
		if err := security.ValidateOutputPath(p, opts.AllowedDirs...); err != nil {
			return engine.Stats{}, err
		}
	}
	if len(grid) > 0 {
		e.SetProbeGrid(grid)
	} else {
		monitoring.Logf("replay: %s has no probe calibration, step detection disabled", opts.In)
	}

	var store *alertlog.Store
	if opts.DB != "" {
		if store, err = alertlog.Open(opts.DB); err != nil {
			return engine.Stats{}, err
		}
		defer store.Close()
		if err := store.Migrate(); err != nil {
			return engine.Stats{}, err
		}
	}

	var outs []engine.Output
	for {
		rec, err := rp.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return engine.Stats{}, err
		}
		frame, err := rec.Frame()
		if err != nil {
			monitoring.Logf("replay: skipping frame %d: %v", rec.Index, err)
			continue
		}

		out := e.ProcessFrame(frame)
		outs = append(outs, out)
		if !out.HasAlert() {
			continue
		}
		fmt.Fprintf(stdout, "%6d  %-14s %s\n", rec.Index, out.Alert, describe(out))
		if store != nil {
			if _, err := store.Record(alertlog.EventFromOutput(out, time.Unix(0, rec.TimestampNs))); err != nil {
				return engine.Stats{}, err
			}
		}
	}

	stats := e.Stats()
	fmt.Fprintf(stdout, "session %s: %d frames, %d with alerts, mean latency %v\n",
		e.SessionID(), stats.Frames, stats.FramesWithAlert, stats.MeanLatency)

	samples := report.SamplesFromOutputs(outs)
	if opts.Plot != "" {
		if err := writeReport(fs, opts.Plot, samples, report.WriteStepProfile); err != nil {
			return stats, err
		}
	}
	if opts.HTML != "" {
		if err := writeReport(fs, opts.HTML, samples, report.WriteAlertTimeline); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// describe renders the alert text, adding where the obstacle is.
func describe(out engine.Output) string {
	if out.Alert.IsVertical() {
		return out.Alert.Text()
	}
	return fmt.Sprintf("%s (%s)", out.Alert.Text(), zones.Describe(out.Zones.Set()))
}

func writeReport(fs fsutil.FileSystem, path string, samples []report.Sample, render func(io.Writer, []report.Sample) error) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f, samples); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
