package models

import (
	"encoding/json"
	"strings"
	"testing"

	"map-editor/internal/editor/export"
	"map-editor/internal/editor/floors"
	editor "map-editor/internal/editor/models"
)

func TestParseEditorDocument(t *testing.T) {
	dir := floors.New()
	f := dir.Ensure(1)
	f.Walls = []editor.Wall{{X2: 5}}
	f.Beacons = []editor.Beacon{{X: 1, Y: 1, ID: "B1"}}
	f.StairsUp = []editor.Stairs{{Type: editor.StairsUp, StartFloor: 1, EndFloor: 2}}

	raw, err := json.Marshal(export.ToGeoJSON(dir, editor.GlobalFields{Address: "Lenina 1", Azimuth: 12}))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if ids := doc.BeaconIDs(); len(ids) != 1 || ids[0] != "B1" {
		t.Fatalf("beacon ids = %v", ids)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := map[string]string{
		"garbage":      `{`,
		"wrong type":   `{"type":"Feature","properties":{"address":"a"},"features":[]}`,
		"no address":   `{"type":"FeatureCollection","properties":{},"features":[]}`,
		"bad feature":  `{"type":"FeatureCollection","properties":{"address":"a"},"features":[{"type":"Thing","properties":{"objectType":"wall"},"geometry":{}}]}`,
		"no geometry":  `{"type":"FeatureCollection","properties":{"address":"a"},"features":[{"type":"Feature","properties":{"objectType":"wall"}}]}`,
		"unknown kind": `{"type":"FeatureCollection","properties":{"address":"a"},"features":[{"type":"Feature","properties":{"objectType":"window"},"geometry":{}}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseEmptyMap(t *testing.T) {
	raw := `{"type":"FeatureCollection","properties":{"address":"a","azimuth":0},"features":[]}`
	doc, err := ParseDocument([]byte(raw))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if !strings.EqualFold(doc.Properties.MustString("address"), "a") {
		t.Fatalf("address = %v", doc.Properties["address"])
	}
}
