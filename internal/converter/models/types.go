package models

import editor "map-editor/internal/editor/models"

// ============================================================
// SVG Elements
// ============================================================

type ElementKind string

const (
	KindWall      ElementKind = "wall"
	KindDoor      ElementKind = "door"
	KindOuterDoor ElementKind = "outerDoor"
)

type SVGElement struct {
	ID       string
	Kind     ElementKind
	Geometry interface{}
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type PathGeometry struct {
	D string
}

// ============================================================
// Plan
// ============================================================

// Plan содержит результат импорта одного этажа в мировых координатах (метры, Y вверх).
type Plan struct {
	Walls []editor.Wall `json:"walls"`
	Doors []editor.Door `json:"doors"`
}
