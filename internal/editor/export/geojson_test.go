package export

import (
	"encoding/json"
	"testing"

	"map-editor/internal/editor/floors"
	"map-editor/internal/editor/models"
)

func TestWallAndBeacon(t *testing.T) {
	dir := floors.New()
	f := dir.Ensure(1)
	f.Walls = []models.Wall{{X1: 0, Y1: 0, X2: 5, Y2: 0}}
	f.Beacons = []models.Beacon{{X: 1, Y: 1, ID: "B1"}}

	fc := ToGeoJSON(dir, models.GlobalFields{Address: "Lenina 1", Azimuth: 90})

	raw, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Features   []struct {
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Type        string `json:"type"`
				Coordinates any    `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.Type != "FeatureCollection" {
		t.Fatalf("type = %q", doc.Type)
	}
	if doc.Properties["address"] != "Lenina 1" || doc.Properties["azimuth"] != 90.0 {
		t.Fatalf("properties = %v", doc.Properties)
	}
	if len(doc.Features) != 2 {
		t.Fatalf("features = %d, want 2", len(doc.Features))
	}

	wall := doc.Features[0]
	if wall.Properties["objectType"] != "wall" || wall.Geometry.Type != "LineString" {
		t.Fatalf("wall feature = %+v", wall)
	}
	beacon := doc.Features[1]
	if beacon.Properties["bluetoothID"] != "B1" || beacon.Geometry.Type != "Point" {
		t.Fatalf("beacon feature = %+v", beacon)
	}
	if beacon.Properties["floor"] != 1.0 {
		t.Fatalf("floor = %v", beacon.Properties["floor"])
	}
}

func TestFeatureOrder(t *testing.T) {
	dir := floors.New()
	upper := dir.Ensure(2)
	upper.PointsOfInterest = []models.PointOfInterest{{X: 1, Y: 1, Description: "cafe"}}
	lower := dir.Ensure(1)
	lower.Doors = []models.Door{{X: 1, Y: 0, IsOuter: true}}
	lower.StairsDown = []models.Stairs{{Type: models.StairsDown, StartFloor: 1, EndFloor: 0}}
	lower.StairsUp = []models.Stairs{{Type: models.StairsUp, StartFloor: 1, EndFloor: 2}}
	lower.Beacons = []models.Beacon{{X: 2, Y: 2}}

	fc := ToGeoJSON(dir, models.GlobalFields{})

	var got []string
	for _, f := range fc.Features {
		got = append(got, f.Properties.MustString("objectType"))
	}
	want := []string{"beacon", "door", "stairsUp", "stairsDown", "pointOfInterest"}
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestStairsGeometry(t *testing.T) {
	dir := floors.New()
	dir.Ensure(1).StairsUp = []models.Stairs{{
		Type:       models.StairsUp,
		StartFloor: 1,
		EndFloor:   2,
		Bounds:     models.Bounds{X1: 0, Y1: 0, X2: 2, Y2: 0, X3: 2, Y3: 2, X4: 0, Y4: 2},
		Direction:  models.Direction{X1: 1, Y1: 0, X2: 1, Y2: 2},
	}}

	raw, err := json.Marshal(ToGeoJSON(dir, models.GlobalFields{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Features []struct {
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Bounds struct {
					Type        string       `json:"type"`
					Coordinates [][2]float64 `json:"coordinates"`
				} `json:"bounds"`
				Direction struct {
					Type        string       `json:"type"`
					Coordinates [][2]float64 `json:"coordinates"`
				} `json:"direction"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	st := doc.Features[0]
	if st.Properties["endFloor"] != 2.0 || st.Properties["startFloor"] != 1.0 {
		t.Fatalf("properties = %v", st.Properties)
	}
	if _, ok := st.Properties["floor"]; ok {
		t.Fatal("stairs must not carry floor")
	}
	corners := st.Geometry.Bounds.Coordinates
	if st.Geometry.Bounds.Type != "Polygon" || len(corners) != 4 || corners[2] != [2]float64{2, 2} || corners[3] != [2]float64{0, 2} {
		t.Fatalf("bounds = %+v", st.Geometry.Bounds)
	}
	if st.Geometry.Direction.Type != "LineString" || st.Geometry.Direction.Coordinates[1] != [2]float64{1, 2} {
		t.Fatalf("direction = %+v", st.Geometry.Direction)
	}
}

func TestEmptyDirectory(t *testing.T) {
	raw, err := json.Marshal(ToGeoJSON(floors.New(), models.GlobalFields{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if features, ok := doc["features"].([]any); !ok || len(features) != 0 {
		t.Fatalf("features = %v, want empty array", doc["features"])
	}
}

func TestBeaconIDs(t *testing.T) {
	dir := floors.New()
	dir.Ensure(1).Beacons = []models.Beacon{{ID: "A"}, {X: 1}, {X: 2, ID: "C"}}
	ids := ToGeoJSON(dir, models.GlobalFields{}).BeaconIDs()
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "C" {
		t.Fatalf("ids = %v", ids)
	}
}
