package engine

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pathguard/internal/alerts"
)

// latencyWindow bounds the latency samples kept for the mean and p95.
const latencyWindow = 256

// Stats summarizes an engine's processing so far.
type Stats struct {
	Frames          int
	FramesWithAlert int
	AlertCounts     map[alerts.Alert]int

	// Latency figures cover the most recent frames only.
	MeanLatency time.Duration
	P95Latency  time.Duration
}

type statsCollector struct {
	frames          int
	framesWithAlert int
	alertCounts     map[alerts.Alert]int

	latencies []float64 // nanoseconds, ring of latencyWindow
	next      int
}

func newStatsCollector() *statsCollector {
	return &statsCollector{
		alertCounts: make(map[alerts.Alert]int),
		latencies:   make([]float64, 0, latencyWindow),
	}
}

func (s *statsCollector) record(a alerts.Alert, latency time.Duration) {
	s.frames++
	if a != alerts.None {
		s.framesWithAlert++
		s.alertCounts[a]++
	}
	if len(s.latencies) < latencyWindow {
		s.latencies = append(s.latencies, float64(latency))
	} else {
		s.latencies[s.next] = float64(latency)
	}
	s.next = (s.next + 1) % latencyWindow
}

func (s *statsCollector) snapshot() Stats {
	out := Stats{
		Frames:          s.frames,
		FramesWithAlert: s.framesWithAlert,
		AlertCounts:     make(map[alerts.Alert]int, len(s.alertCounts)),
	}
	for a, n := range s.alertCounts {
		out.AlertCounts[a] = n
	}
	if len(s.latencies) == 0 {
		return out
	}
	sorted := append([]float64(nil), s.latencies...)
	sort.Float64s(sorted)
	out.MeanLatency = time.Duration(stat.Mean(sorted, nil))
	out.P95Latency = time.Duration(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	return out
}
