package mapper

import (
	"strings"
	"testing"
)

const planSVG = `<svg xmlns="http://www.w3.org/2000/svg">
  <rect id="Wall_1" x="0" y="0" width="500" height="10"/>
  <rect id="Door_1" x="200" y="0" width="50" height="10"/>
  <rect id="OuterDoor_1" x="400" y="0" width="50" height="10"/>
</svg>`

func TestConvertToMeters(t *testing.T) {
	plan, err := New(50).Convert(strings.NewReader(planSVG))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(plan.Walls) != 1 {
		t.Fatalf("walls = %+v", plan.Walls)
	}
	w := plan.Walls[0]
	if w.X1 != 0 || w.X2 != 10 || w.Y1 != -0.1 || w.Y2 != -0.1 {
		t.Fatalf("wall = %+v, want (0,-0.1)-(10,-0.1)", w)
	}

	if len(plan.Doors) != 2 {
		t.Fatalf("doors = %+v", plan.Doors)
	}
	if d := plan.Doors[0]; d.X != 4.5 || d.IsOuter {
		t.Fatalf("door = %+v", d)
	}
	if d := plan.Doors[1]; d.X != 8.5 || !d.IsOuter {
		t.Fatalf("outer door = %+v", d)
	}
}

func TestConvertDefaultsScale(t *testing.T) {
	plan, err := New(0).Convert(strings.NewReader(planSVG))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if plan.Walls[0].X2 != 500/DefaultPixelsPerMeter {
		t.Fatalf("wall = %+v", plan.Walls[0])
	}
}

func TestConvertRejectsGarbage(t *testing.T) {
	if _, err := New(50).Convert(strings.NewReader("<html>")); err == nil {
		t.Fatal("expected error")
	}
}
