package scene

import (
	"fmt"
	"sort"
)

// Probe grid dimensions. Row 1 is farthest from the user along the ground,
// row 3 nearest.
const (
	ProbeRows = 3
	ProbeCols = 4
)

// ProbeID names one cell of the probe grid, "point{row}{col}".
type ProbeID string

// Probe returns the identifier for a grid cell. It does not range-check.
func Probe(row, col int) ProbeID {
	return ProbeID(fmt.Sprintf("point%d%d", row, col))
}

// ParseProbeID splits an identifier into its row and column.
func ParseProbeID(s string) (row, col int, err error) {
	if len(s) != len("point11") || s[:5] != "point" {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownProbe, s)
	}
	row, col = int(s[5]-'0'), int(s[6]-'0')
	if row < 1 || row > ProbeRows || col < 1 || col > ProbeCols {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownProbe, s)
	}
	return row, col, nil
}

// AllProbeIDs lists the twelve cells in row-major order.
func AllProbeIDs() []ProbeID {
	ids := make([]ProbeID, 0, ProbeRows*ProbeCols)
	for r := 1; r <= ProbeRows; r++ {
		for c := 1; c <= ProbeCols; c++ {
			ids = append(ids, Probe(r, c))
		}
	}
	return ids
}

// Point2D is a screen coordinate in pixels.
type Point2D struct {
	X, Y float64
}

// ProbeGrid maps probe identifiers to calibrated screen coordinates. It is
// supplied by the presentation layer after layout.
type ProbeGrid map[ProbeID]Point2D

// NewProbeGrid validates raw identifiers from the presentation layer.
func NewProbeGrid(points map[string]Point2D) (ProbeGrid, error) {
	grid := make(ProbeGrid, len(points))
	for id, pt := range points {
		if _, _, err := ParseProbeID(id); err != nil {
			return nil, err
		}
		grid[ProbeID(id)] = pt
	}
	return grid, nil
}

// Calibrated reports whether any coordinates have been supplied.
func (g ProbeGrid) Calibrated() bool {
	return len(g) > 0
}

// IDs returns the grid's identifiers in sorted order.
func (g ProbeGrid) IDs() []ProbeID {
	ids := make([]ProbeID, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns an independent copy.
func (g ProbeGrid) Clone() ProbeGrid {
	if g == nil {
		return nil
	}
	out := make(ProbeGrid, len(g))
	for id, pt := range g {
		out[id] = pt
	}
	return out
}
