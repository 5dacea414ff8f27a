package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"map-editor/internal/editor/export"
	editor "map-editor/internal/editor/models"
)

// ============================================================
// Map document
// ============================================================

// Map хранит сохранённый документ карты здания.
type Map struct {
	ID        string          `json:"id"`
	Address   string          `json:"address"`
	Azimuth   float64         `json:"azimuth"`
	BeaconIDs []string        `json:"beaconIds"`
	CreatedAt time.Time       `json:"createdAt"`
	Document  json.RawMessage `json:"document"`
}

var knownObjects = map[string]bool{
	export.ObjectWall:            true,
	export.ObjectBeacon:          true,
	export.ObjectDoor:            true,
	export.ObjectPointOfInterest: true,
	string(editor.StairsUp):      true,
	string(editor.StairsDown):    true,
}

// ParseDocument проверяет присланный документ и возвращает его разобранную
// форму. Требуется адрес и известный objectType у каждого объекта.
func ParseDocument(raw []byte) (*export.FeatureCollection, error) {
	var doc export.FeatureCollection
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	if doc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("type must be FeatureCollection, got %q", doc.Type)
	}
	if strings.TrimSpace(doc.Properties.MustString("address", "")) == "" {
		return nil, fmt.Errorf("properties.address required")
	}
	for i, f := range doc.Features {
		if f.Type != "Feature" {
			return nil, fmt.Errorf("feature %d: type must be Feature", i)
		}
		if f.Geometry == nil {
			return nil, fmt.Errorf("feature %d: geometry required", i)
		}
		if obj := f.Properties.MustString("objectType", ""); !knownObjects[obj] {
			return nil, fmt.Errorf("feature %d: unknown objectType %q", i, obj)
		}
	}
	return &doc, nil
}
