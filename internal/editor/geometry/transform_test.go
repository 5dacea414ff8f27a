package geometry

import (
	"math"
	"testing"

	"map-editor/internal/editor/models"
)

func testGeometries() []Geometry {
	a := New(40)
	b := Pan(New(57.6), models.Point{X: 123.4, Y: -87.25})
	c := Zoom(Pan(New(40), models.Point{X: 300, Y: 200}), -1, DefaultWheelRatio, DefaultMinScale, DefaultMaxScale)
	d := Zoom(Zoom(New(33.3), 1, DefaultWheelRatio, DefaultMinScale, DefaultMaxScale), 1, DefaultWheelRatio, DefaultMinScale, DefaultMaxScale)
	return []Geometry{a, b, c, d}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	points := []models.Point{
		{X: 0, Y: 0},
		{X: 1.5, Y: -2.25},
		{X: 0.1 + 0.2, Y: 7},
		{X: -13.37, Y: 42.42},
		{X: 1000.125, Y: -0.3333},
	}

	for gi, g := range testGeometries() {
		for _, p := range points {
			got := ScreenToWorld(WorldToScreen(p, g), g)
			if math.Abs(got.X-p.X) > PrecisionEpsilon || math.Abs(got.Y-p.Y) > PrecisionEpsilon {
				t.Fatalf("geometry %d: round trip of %+v gave %+v", gi, p, got)
			}
		}
	}
}

func TestWorldToScreenInvertsY(t *testing.T) {
	g := Pan(New(10), models.Point{X: 100, Y: 100})
	got := WorldToScreen(models.Point{X: 2, Y: 3}, g)
	want := models.Point{X: 120, Y: 70}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScreenToWorldFixesDrift(t *testing.T) {
	g := New(10)
	got := ScreenToWorld(models.Point{X: 30.0004, Y: -19.9996}, g)
	if got.X != 3 || got.Y != 2 {
		t.Fatalf("expected drift snapped to integers, got %+v", got)
	}

	got = ScreenToWorld(models.Point{X: 35, Y: 0}, g)
	if got.X != 3.5 {
		t.Fatalf("non-integer value must be kept, got %+v", got)
	}
}

func TestSnapToGridIdempotent(t *testing.T) {
	points := []models.Point{
		{X: 0, Y: 0},
		{X: 17.3, Y: 91.9},
		{X: -55.5, Y: 12.49},
		{X: 640.01, Y: 480.99},
	}
	for gi, g := range testGeometries() {
		for _, p := range points {
			once := SnapToGrid(p, g)
			twice := SnapToGrid(once, g)
			if math.Abs(once.X-twice.X) > 1e-9 || math.Abs(once.Y-twice.Y) > 1e-9 {
				t.Fatalf("geometry %d: snap not idempotent for %+v: %+v vs %+v", gi, p, once, twice)
			}
		}
	}
}

func TestSnapToGridRespectsOffset(t *testing.T) {
	g := Pan(New(10), models.Point{X: 3, Y: 4})
	got := SnapToGrid(models.Point{X: 17, Y: 21}, g)
	want := models.Point{X: 13, Y: 24}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestZoomClampsAndRecomputesGrid(t *testing.T) {
	g := New(40)
	for i := 0; i < 50; i++ {
		g = Zoom(g, -1, DefaultWheelRatio, DefaultMinScale, DefaultMaxScale)
	}
	if g.Scale != DefaultMaxScale {
		t.Fatalf("scale not clamped to max: %v", g.Scale)
	}
	if g.ScaledGridSize != 40*DefaultMaxScale {
		t.Fatalf("scaled grid size not recomputed: %v", g.ScaledGridSize)
	}

	for i := 0; i < 100; i++ {
		g = Zoom(g, 1, DefaultWheelRatio, DefaultMinScale, DefaultMaxScale)
	}
	if g.Scale != DefaultMinScale {
		t.Fatalf("scale not clamped to min: %v", g.Scale)
	}

	g = New(40)
	g = Zoom(g, 120, DefaultWheelRatio, DefaultMinScale, DefaultMaxScale)
	if math.Abs(g.Scale-1/1.1) > 1e-12 {
		t.Fatalf("positive delta must zoom out, got %v", g.Scale)
	}
}
