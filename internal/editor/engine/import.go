package engine

import (
	"map-editor/internal/editor/models"
	"map-editor/internal/editor/spatial"
)

// ImportReport подводит итог импорта плана на этаж.
type ImportReport struct {
	Floor        float64 `json:"floor"`
	WallsAdded   int     `json:"wallsAdded"`
	WallsSkipped int     `json:"wallsSkipped"`
	DoorsAdded   int     `json:"doorsAdded"`
	DoorsSkipped int     `json:"doorsSkipped"`
}

// Committed сообщает, попал ли в этаж хотя бы один объект.
func (r ImportReport) Committed() bool {
	return r.WallsAdded+r.DoorsAdded > 0
}

// Import добавляет стены и двери на этаж floor за одну запись истории.
// Стены проверяются последовательно теми же правилами, что и при ручном
// рисовании; двери проецируются на стены этажа после добавления стен.
func (s *State) Import(floor float64, walls []models.Wall, doors []models.Door) ImportReport {
	report := ImportReport{Floor: floor}
	if !isFinite(floor) {
		report.WallsSkipped, report.DoorsSkipped = len(walls), len(doors)
		return report
	}

	staged := s.Floors.Get(floor).Clone()
	if staged == nil {
		staged = &models.Floor{}
	}

	for _, w := range walls {
		if !s.wallFits(w, staged.Walls, -1) {
			report.WallsSkipped++
			continue
		}
		staged.Walls = append(staged.Walls, w)
		report.WallsAdded++
	}

	for _, d := range doors {
		p, ok := spatial.ClosestPoint(staged.Walls, models.Point{X: d.X, Y: d.Y}, s.opts.SnapDistance)
		if !ok || doorAt(staged.Doors, p, -1) {
			report.DoorsSkipped++
			continue
		}
		staged.Doors = append(staged.Doors, models.Door{X: p.X, Y: p.Y, IsOuter: d.IsOuter})
		report.DoorsAdded++
	}

	if !report.Committed() {
		return report
	}

	s.record()
	s.Floors[floor] = staged
	s.Selected = nil
	s.Construction = nil
	s.refreshOverlay()
	if s.Input.Cursor != nil {
		s.refreshInput(*s.Input.Cursor)
	}
	return report
}
