package floors

import (
	"testing"

	"map-editor/internal/editor/models"
)

func withFloors(numbers ...float64) Directory {
	d := New()
	for _, n := range numbers {
		d.Ensure(n).Walls = []models.Wall{{X2: 1}}
	}
	return d
}

func TestResolveByRank(t *testing.T) {
	d := withFloors(1, 1.5, 2)

	tests := []struct {
		name   string
		from   float64
		steps  int
		want   float64
		wantOK bool
	}{
		{"fractional floor is adjacent", 1, 1, 1.5, true},
		{"two ranks up", 1, 2, 2, true},
		{"top has nothing above", 2, 1, 0, false},
		{"down from mezzanine", 1.5, -1, 1, true},
		{"bottom has nothing below", 1, -1, 0, false},
		{"missing floor joins the order", 0, 1, 1, true},
		{"missing floor between ranks", 1.75, -1, 1.5, true},
		{"missing floor on top", 3, -1, 2, true},
		{"zero steps returns itself", 1.5, 0, 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Resolve(tt.from, tt.steps)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Fatalf("Resolve(%v, %d) = %v, %v; want %v, %v", tt.from, tt.steps, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveOnEmptyDirectory(t *testing.T) {
	d := New()
	if _, ok := d.Resolve(1, 1); ok {
		t.Fatal("expected no floor above on empty directory")
	}
	if got, ok := d.Resolve(1, 0); !ok || got != 1 {
		t.Fatalf("expected floor itself, got %v %v", got, ok)
	}
}

func TestEnsureAndDeleteIfEmpty(t *testing.T) {
	d := New()
	f := d.Ensure(-1)
	if d.Get(-1) != f {
		t.Fatal("Ensure must store the floor")
	}
	if d.Ensure(-1) != f {
		t.Fatal("Ensure must return the existing floor")
	}

	f.Beacons = append(f.Beacons, models.Beacon{X: 1, Y: 1})
	if d.DeleteIfEmpty(-1) {
		t.Fatal("non-empty floor must be kept")
	}
	f.Beacons = nil
	if !d.DeleteIfEmpty(-1) {
		t.Fatal("empty floor must be deleted")
	}
	if d.Get(-1) != nil {
		t.Fatal("floor still present after delete")
	}
}

func TestNumbersSorted(t *testing.T) {
	d := withFloors(2, -1, 1.5, 0)
	got := d.Numbers()
	want := []float64{-1, 0, 1.5, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Numbers() = %v, want %v", got, want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := withFloors(1)
	c := d.Clone()
	c.Get(1).Walls[0].X2 = 42
	c.Ensure(2)

	if d.Get(1).Walls[0].X2 != 1 {
		t.Fatal("clone shares floor storage")
	}
	if d.Get(2) != nil {
		t.Fatal("clone shares the map")
	}
}
