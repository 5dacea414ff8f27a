package parser

import (
	"strings"
	"testing"

	"map-editor/internal/converter/models"
	editor "map-editor/internal/editor/models"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []editor.Point
	}{
		{"absolute", "M 0 0 L 10 0 L 10 5", []editor.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}},
		{"relative", "m 1,1 l 2,0 v 3", []editor.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 4}}},
		{"implicit lineto", "M0 0 5 0 5 5", []editor.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}},
		{"horizontal and close", "M2 2 H 6 V 4 Z", []editor.Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 4}, {X: 2, Y: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParsePathEmpty(t *testing.T) {
	if _, err := ParsePath("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestParseSVG(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg">
  <rect id="Wall_1" x="0" y="0" width="100" height="10"/>
  <rect id="Room_1" x="0" y="0" width="100" height="100"/>
  <g id="Doors">
    <rect id="Door_1" x="40" y="0" width="20" height="10"/>
    <path id="Entrance_1" d="M 0 50 h 10 v 20 h -10 z"/>
  </g>
  <g id="Wall_layer">
    <path id="outline" d="M 95 0 L 105 0 L 105 100 L 95 100 Z"/>
  </g>
</svg>`

	elements, err := ParseSVG(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseSVG: %v", err)
	}

	kinds := map[string]models.ElementKind{}
	for _, e := range elements {
		kinds[e.ID] = e.Kind
	}
	want := map[string]models.ElementKind{
		"Wall_1":     models.KindWall,
		"Door_1":     models.KindDoor,
		"Entrance_1": models.KindOuterDoor,
		"outline":    models.KindWall,
	}
	if len(kinds) != len(want) {
		t.Fatalf("elements = %v", kinds)
	}
	for id, kind := range want {
		if kinds[id] != kind {
			t.Fatalf("%s: kind %q, want %q", id, kinds[id], kind)
		}
	}
}

func TestParseSVGInvalid(t *testing.T) {
	if _, err := ParseSVG(strings.NewReader("not xml")); err == nil {
		t.Fatal("expected decode error")
	}
}
