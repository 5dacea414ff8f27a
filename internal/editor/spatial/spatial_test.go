package spatial

import (
	"math"
	"testing"

	"map-editor/internal/editor/models"
)

func wall(x1, y1, x2, y2 float64) models.Wall {
	return models.Wall{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func TestWallsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Wall
		want bool
	}{
		{"proper crossing", wall(0, 0, 4, 4), wall(0, 4, 4, 0), true},
		{"t-junction", wall(0, 0, 5, 0), wall(2, 0, 2, 5), true},
		{"t-junction from below", wall(0, 0, 5, 0), wall(2, -3, 2, 0), true},
		{"corner joint", wall(0, 0, 5, 0), wall(5, 0, 5, 5), false},
		{"corner joint reversed", wall(5, 0, 0, 0), wall(5, 5, 5, 0), false},
		{"parallel apart", wall(0, 0, 5, 0), wall(0, 1, 5, 1), false},
		{"disjoint non parallel", wall(0, 0, 1, 1), wall(3, 0, 5, -4), false},
		{"collinear overlap", wall(0, 0, 5, 0), wall(3, 0, 8, 0), true},
		{"collinear contained", wall(0, 0, 10, 0), wall(2, 0, 4, 0), true},
		{"collinear identical", wall(0, 0, 10, 0), wall(10, 0, 0, 0), true},
		{"collinear end to end", wall(0, 0, 5, 0), wall(5, 0, 9, 0), false},
		{"collinear apart", wall(0, 0, 5, 0), wall(6, 0, 9, 0), false},
		{"collinear vertical overlap", wall(1, 0, 1, 5), wall(1, 4, 1, 9), true},
		{"collinear diagonal end to end", wall(0, 0, 2, 2), wall(2, 2, 4, 4), false},
		{"collinear diagonal overlap", wall(0, 0, 3, 3), wall(2, 2, 4, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WallsIntersect(tt.a, tt.b); got != tt.want {
				t.Fatalf("WallsIntersect(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWallsIntersectSymmetric(t *testing.T) {
	coords := []float64{-2, 0, 1.5, 3}
	var walls []models.Wall
	for _, x1 := range coords {
		for _, y1 := range coords {
			for _, x2 := range coords {
				for _, y2 := range coords {
					w := wall(x1, y1, x2, y2)
					if w.IsDegenerate() {
						continue
					}
					walls = append(walls, w)
				}
			}
		}
	}

	for i := range walls {
		for j := range walls {
			if WallsIntersect(walls[i], walls[j]) != WallsIntersect(walls[j], walls[i]) {
				t.Fatalf("asymmetric result for %+v and %+v", walls[i], walls[j])
			}
		}
	}
}

func TestClosestPoint(t *testing.T) {
	walls := []models.Wall{
		wall(0, 0, 10, 0),
		wall(10, 0, 10, 10),
	}

	p, ok := ClosestPoint(walls, models.Point{X: 5, Y: 0.3}, 0.5)
	if !ok || p != (models.Point{X: 5, Y: 0}) {
		t.Fatalf("expected projection (5,0), got %+v %v", p, ok)
	}

	p, ok = ClosestPoint(walls, models.Point{X: 9.8, Y: 4}, 0.5)
	if !ok || math.Abs(p.X-10) > 1e-12 || math.Abs(p.Y-4) > 1e-12 {
		t.Fatalf("expected projection on second wall, got %+v %v", p, ok)
	}

	p, ok = ClosestPoint(walls, models.Point{X: -0.3, Y: 0.1}, 0.5)
	if !ok || p != (models.Point{X: 0, Y: 0}) {
		t.Fatalf("expected clamp to endpoint, got %+v %v", p, ok)
	}

	if _, ok := ClosestPoint(walls, models.Point{X: 5, Y: 3}, 0.5); ok {
		t.Fatal("expected no point outside threshold")
	}
	if _, ok := ClosestPoint(nil, models.Point{}, 10); ok {
		t.Fatal("expected no point for empty wall set")
	}
}

func TestClosestPointThresholdIsStrict(t *testing.T) {
	walls := []models.Wall{wall(0, 0, 10, 0)}
	if _, ok := ClosestPoint(walls, models.Point{X: 5, Y: 1}, 1); ok {
		t.Fatal("distance equal to threshold must not qualify")
	}
}

func TestClosestPointFirstWallWinsTie(t *testing.T) {
	walls := []models.Wall{
		wall(0, 1, 10, 1),
		wall(0, -1, 10, -1),
	}
	p, ok := ClosestPoint(walls, models.Point{X: 5, Y: 0}, 2)
	if !ok || p != (models.Point{X: 5, Y: 1}) {
		t.Fatalf("expected first wall to win tie, got %+v", p)
	}
}
