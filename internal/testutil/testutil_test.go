package testutil

import (
	"testing"

	"github.com/banshee-data/pathguard/internal/scene"
)

func TestNewImagesAndPaint(t *testing.T) {
	im := PersonAhead()
	AssertNoError(t, im.Semantic.Validate())
	AssertNoError(t, im.Depth.Validate())

	if got := im.Semantic.CategoryAt(65, 60); got != scene.CategoryPerson {
		t.Errorf("CategoryAt(65, 60) = %v, want person", got)
	}
	if got := im.Depth.MetersAt(65, 60); got != 0.8 {
		t.Errorf("MetersAt(65, 60) = %v, want 0.8", got)
	}
	if got := im.Semantic.CategoryAt(0, 0); got != scene.CategoryRoad {
		t.Errorf("CategoryAt(0, 0) = %v, want road", got)
	}
}

func TestProbeGridIsComplete(t *testing.T) {
	grid := ProbeGrid()
	if len(grid) != 12 {
		t.Fatalf("len(grid) = %d, want 12", len(grid))
	}
	for _, id := range scene.AllProbeIDs() {
		if _, ok := grid[id]; !ok {
			t.Errorf("missing probe %s", id)
		}
	}
	if grid["point11"].Y >= grid["point31"].Y {
		t.Error("row 1 should sit above row 3 on screen")
	}
}

func TestProbeRows(t *testing.T) {
	points := StepDownAt(0.9)
	if len(points) != 12 {
		t.Fatalf("len(points) = %d, want 12", len(points))
	}
	near := points[scene.Probe(3, 2)]
	if near.Position.Z != 0.9 || near.Pose.Translation.X != 0.2 {
		t.Errorf("point32 = %+v, want z=0.9 x=0.2", near)
	}
	far := points[scene.Probe(1, 1)]
	if far.Position.Y != -0.28 {
		t.Errorf("point11 y = %v, want -0.28", far.Position.Y)
	}
}

func TestAssertHelpers(t *testing.T) {
	AssertNoError(t, nil)
	AssertError(t, scene.ErrEmptyBuffer)
}
