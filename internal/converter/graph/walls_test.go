package graph

import (
	"testing"

	cmodels "map-editor/internal/converter/models"
	"map-editor/internal/editor/models"
	"map-editor/internal/editor/spatial"
)

func rect(id string, x, y, w, h float64) cmodels.SVGElement {
	return cmodels.SVGElement{ID: id, Kind: cmodels.KindWall, Geometry: cmodels.RectGeometry{X: x, Y: y, Width: w, Height: h}}
}

func TestRectBecomesCenterLine(t *testing.T) {
	walls, err := NewBuilder().Build([]cmodels.SVGElement{rect("Wall_1", 0, 0, 100, 10)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := models.Wall{X1: 0, Y1: 5, X2: 100, Y2: 5}
	if len(walls) != 1 || walls[0] != want {
		t.Fatalf("walls = %+v, want %+v", walls, want)
	}
}

func TestTJunctionSplitsIntoSharedEnds(t *testing.T) {
	walls, err := NewBuilder().Build([]cmodels.SVGElement{
		rect("Wall_top", 0, 0, 100, 10),
		rect("Wall_stem", 45, 10, 10, 90),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(walls) != 3 {
		t.Fatalf("walls = %+v, want 3 pieces", walls)
	}
	for i := range walls {
		for j := i + 1; j < len(walls); j++ {
			if spatial.WallsIntersect(walls[i], walls[j]) {
				t.Fatalf("pieces %+v and %+v still intersect", walls[i], walls[j])
			}
		}
	}
}

func TestCrossingSplitsBothWalls(t *testing.T) {
	walls, err := NewBuilder().Build([]cmodels.SVGElement{
		rect("Wall_h", 0, 45, 100, 10),
		rect("Wall_v", 45, 0, 10, 100),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(walls) != 4 {
		t.Fatalf("walls = %+v, want 4 pieces", walls)
	}
}

func TestPathWallAndDuplicates(t *testing.T) {
	walls, err := NewBuilder().Build([]cmodels.SVGElement{
		{ID: "Wall_p", Kind: cmodels.KindWall, Geometry: cmodels.PathGeometry{D: "M 0 0 H 10 V 80 H 0 Z"}},
		rect("Wall_dup", 0, 0, 10, 80),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := models.Wall{X1: 5, Y1: 0, X2: 5, Y2: 80}
	if len(walls) != 1 || walls[0] != want {
		t.Fatalf("walls = %+v, want %+v", walls, want)
	}
}
