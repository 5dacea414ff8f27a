package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"map-editor/internal/editor/floors"
	"map-editor/internal/editor/models"
)

// ============================================================
// Document types
// ============================================================

// Object types, как их ждёт бэкенд карт.
const (
	ObjectWall            = "wall"
	ObjectBeacon          = "beacon"
	ObjectDoor            = "door"
	ObjectPointOfInterest = "pointOfInterest"
)

// FeatureCollection описывает документ карты здания. В отличие от RFC 7946 несёт
// свойства верхнего уровня (адрес и азимут).
type FeatureCollection struct {
	Type       string             `json:"type"`
	Properties geojson.Properties `json:"properties"`
	Features   []Feature          `json:"features"`
}

// Feature описывает один объект этажа. Geometry содержит либо стандартную геометрию
// *geojson.Geometry, либо StairsGeometry.
type Feature struct {
	Type       string             `json:"type"`
	Properties geojson.Properties `json:"properties"`
	Geometry   any                `json:"geometry"`
}

// StairsGeometry объединяет контур лестницы и стрелку направления.
type StairsGeometry struct {
	Bounds    StairsBounds      `json:"bounds"`
	Direction *geojson.Geometry `json:"direction"`
}

// StairsBounds кодирует контур как Polygon из четырёх углов без вложенного
// кольца и без повтора первой точки: такой формат ждёт бэкенд карт.
type StairsBounds struct {
	Type        string         `json:"type"`
	Coordinates orb.LineString `json:"coordinates"`
}

// ============================================================
// Serializer
// ============================================================

// ToGeoJSON сериализует все этажи. Порядок: этажи по возрастанию, внутри
// этажа стены, маяки, двери, лестницы вверх, лестницы вниз, точки интереса.
func ToGeoJSON(dir floors.Directory, global models.GlobalFields) FeatureCollection {
	fc := FeatureCollection{
		Type: "FeatureCollection",
		Properties: geojson.Properties{
			"address": global.Address,
			"azimuth": global.Azimuth,
		},
		Features: []Feature{},
	}

	for _, n := range dir.Numbers() {
		f := dir.Get(n)
		if f == nil {
			continue
		}

		for _, w := range f.Walls {
			fc.Features = append(fc.Features, feature(
				orb.LineString{{w.X1, w.Y1}, {w.X2, w.Y2}},
				geojson.Properties{"objectType": ObjectWall, "floor": n},
			))
		}
		for _, b := range f.Beacons {
			fc.Features = append(fc.Features, feature(
				orb.Point{b.X, b.Y},
				geojson.Properties{"objectType": ObjectBeacon, "floor": n, "bluetoothID": b.ID},
			))
		}
		for _, d := range f.Doors {
			fc.Features = append(fc.Features, feature(
				orb.Point{d.X, d.Y},
				geojson.Properties{"objectType": ObjectDoor, "floor": n, "isOuter": d.IsOuter},
			))
		}
		for _, st := range f.StairsUp {
			fc.Features = append(fc.Features, stairsFeature(st))
		}
		for _, st := range f.StairsDown {
			fc.Features = append(fc.Features, stairsFeature(st))
		}
		for _, poi := range f.PointsOfInterest {
			fc.Features = append(fc.Features, feature(
				orb.Point{poi.X, poi.Y},
				geojson.Properties{"objectType": ObjectPointOfInterest, "floor": n, "description": poi.Description},
			))
		}
	}
	return fc
}

func feature(g orb.Geometry, props geojson.Properties) Feature {
	return Feature{Type: "Feature", Properties: props, Geometry: geojson.NewGeometry(g)}
}

func stairsFeature(st models.Stairs) Feature {
	c := st.Bounds.Corners()
	corners := make(orb.LineString, 0, len(c))
	for _, p := range c {
		corners = append(corners, orb.Point{p.X, p.Y})
	}
	d := st.Direction

	return Feature{
		Type: "Feature",
		Properties: geojson.Properties{
			"objectType": string(st.Type),
			"startFloor": st.StartFloor,
			"endFloor":   st.EndFloor,
		},
		Geometry: StairsGeometry{
			Bounds:    StairsBounds{Type: "Polygon", Coordinates: corners},
			Direction: geojson.NewGeometry(orb.LineString{{d.X1, d.Y1}, {d.X2, d.Y2}}),
		},
	}
}

// BeaconIDs возвращает непустые Bluetooth-идентификаторы маяков документа.
func (fc FeatureCollection) BeaconIDs() []string {
	var ids []string
	for _, f := range fc.Features {
		if f.Properties.MustString("objectType", "") != ObjectBeacon {
			continue
		}
		if id := f.Properties.MustString("bluetoothID", ""); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
