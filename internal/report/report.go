// Package report renders offline views of a replayed session: a PNG profile
// of the step detector's measurements and an HTML alert timeline.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/pathguard/internal/alerts"
	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/steps"
	"github.com/banshee-data/pathguard/internal/zones"
)

// ErrNoSamples is returned when there is nothing to render.
var ErrNoSamples = errors.New("report: no samples")

// Sample is one frame's worth of report data.
type Sample struct {
	FrameIndex     int
	Alert          alerts.Alert
	StepKind       steps.Kind
	VerticalDrop   float64
	DistanceMeters float64
	Zones          zones.Set
}

// SampleFromOutput extracts the reported fields of an engine output.
func SampleFromOutput(out engine.Output) Sample {
	return Sample{
		FrameIndex:     out.FrameIndex,
		Alert:          out.Alert,
		StepKind:       out.Step.Kind,
		VerticalDrop:   out.Step.VerticalDrop,
		DistanceMeters: out.Step.DistanceMeters,
		Zones:          out.Zones.Set(),
	}
}

// SamplesFromOutputs converts a replayed session.
func SamplesFromOutputs(outs []engine.Output) []Sample {
	samples := make([]Sample, len(outs))
	for i, out := range outs {
		samples[i] = SampleFromOutput(out)
	}
	return samples
}

var (
	dropColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	distanceColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	alertColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// WriteStepProfile plots vertical drop and near-row distance per frame as a
// PNG, marking frames that raised a step or pit alert.
func WriteStepProfile(w io.Writer, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = "Step profile"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Metres"

	dropPts := make(plotter.XYs, 0, len(samples))
	distPts := make(plotter.XYs, 0, len(samples))
	alertPts := make(plotter.XYs, 0)
	for _, s := range samples {
		x := float64(s.FrameIndex)
		dropPts = append(dropPts, plotter.XY{X: x, Y: s.VerticalDrop})
		distPts = append(distPts, plotter.XY{X: x, Y: s.DistanceMeters})
		if s.Alert.IsVertical() {
			alertPts = append(alertPts, plotter.XY{X: x, Y: s.VerticalDrop})
		}
	}

	dropLine, err := plotter.NewLine(dropPts)
	if err != nil {
		return fmt.Errorf("vertical drop line: %w", err)
	}
	dropLine.Color = dropColor
	dropLine.Width = vg.Points(1)
	p.Add(dropLine)
	p.Legend.Add("vertical drop", dropLine)

	distLine, err := plotter.NewLine(distPts)
	if err != nil {
		return fmt.Errorf("distance line: %w", err)
	}
	distLine.Color = distanceColor
	distLine.Width = vg.Points(1)
	p.Add(distLine)
	p.Legend.Add("distance", distLine)

	if len(alertPts) > 0 {
		marks, err := plotter.NewScatter(alertPts)
		if err != nil {
			return fmt.Errorf("alert markers: %w", err)
		}
		marks.Color = alertColor
		p.Add(marks)
		p.Legend.Add("alert", marks)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render step profile: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write step profile: %w", err)
	}
	return nil
}

// WriteAlertTimeline renders an HTML page with the alert raised on each
// frame (by priority, lower is more urgent) and a per-alert count.
func WriteAlertTimeline(w io.Writer, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	frames := make([]string, len(samples))
	points := make([]opts.ScatterData, 0, len(samples))
	counts := make(map[alerts.Alert]int)
	for i, s := range samples {
		frames[i] = strconv.Itoa(s.FrameIndex)
		if s.Alert == alerts.None {
			points = append(points, opts.ScatterData{Value: "-"})
			continue
		}
		counts[s.Alert]++
		points = append(points, opts.ScatterData{
			Name:  s.Alert.String(),
			Value: s.Alert.Priority(),
		})
	}

	timeline := charts.NewScatter()
	timeline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Alert timeline", Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Alerts per frame", Subtitle: fmt.Sprintf("frames=%d alerts=%d", len(samples), total(counts))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Priority"}),
	)
	timeline.SetXAxis(frames).
		AddSeries("alert", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	names, values := alertCounts(counts)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Alert counts"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("count", values,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.PageTitle = "Alert timeline"
	page.AddCharts(timeline, bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render alert timeline: %w", err)
	}
	return nil
}

// alertCounts orders the tally by alert priority.
func alertCounts(counts map[alerts.Alert]int) ([]string, []opts.BarData) {
	keys := make([]alerts.Alert, 0, len(counts))
	for a := range counts {
		keys = append(keys, a)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Priority() < keys[j].Priority() })

	names := make([]string, len(keys))
	values := make([]opts.BarData, len(keys))
	for i, a := range keys {
		names[i] = a.String()
		values[i] = opts.BarData{Value: counts[a]}
	}
	return names, values
}

func total(counts map[alerts.Alert]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
