package engine

import "map-editor/internal/editor/models"

// ============================================================
// Construction drafts
// ============================================================

// Construction хранит недостроенный объект текущего инструмента. Каждый вариант
// несёт ровно те поля, которые нужны его шагу протокола.
type Construction interface {
	isConstruction()
}

// WallDraft: первый конец стены уже выбран.
type WallDraft struct {
	Start models.Point
}

// StairsCorners: собраны первые 1..3 угла лестницы.
type StairsCorners struct {
	Type    models.StairsType
	Corners []models.Point
}

// StairsFootprint: контур готов, ждём начало стрелки направления.
type StairsFootprint struct {
	Type   models.StairsType
	Bounds models.Bounds
}

// StairsArrow: контур и начало стрелки готовы, ждём её конец.
type StairsArrow struct {
	Type   models.StairsType
	Bounds models.Bounds
	Start  models.Point
}

func (WallDraft) isConstruction()       {}
func (StairsCorners) isConstruction()   {}
func (StairsFootprint) isConstruction() {}
func (StairsArrow) isConstruction()     {}

// Draft показывает черновик рендереру.
type Draft struct {
	Kind   string         `json:"kind"`
	Points []models.Point `json:"points"`
}

func draftOf(c Construction) *Draft {
	switch d := c.(type) {
	case WallDraft:
		return &Draft{Kind: "wall", Points: []models.Point{d.Start}}
	case StairsCorners:
		return &Draft{Kind: string(d.Type) + ".bounds", Points: append([]models.Point(nil), d.Corners...)}
	case StairsFootprint:
		corners := d.Bounds.Corners()
		return &Draft{Kind: string(d.Type) + ".bounds", Points: corners[:]}
	case StairsArrow:
		corners := d.Bounds.Corners()
		return &Draft{Kind: string(d.Type) + ".direction", Points: append(corners[:], d.Start)}
	}
	return nil
}
