package engine

import (
	"strconv"
	"strings"

	"map-editor/internal/editor/models"
	"map-editor/internal/editor/spatial"
)

// ============================================================
// Coordinate edits
// ============================================================

// Property называет редактируемую координату выделенного объекта.
type Property string

const (
	PropX  Property = "x"
	PropY  Property = "y"
	PropX1 Property = "x1"
	PropY1 Property = "y1"
	PropX2 Property = "x2"
	PropY2 Property = "y2"

	PropBoundsX1 Property = "bounds.x1"
	PropBoundsY1 Property = "bounds.y1"
	PropBoundsX2 Property = "bounds.x2"
	PropBoundsY2 Property = "bounds.y2"
	PropBoundsX3 Property = "bounds.x3"
	PropBoundsY3 Property = "bounds.y3"
	PropBoundsX4 Property = "bounds.x4"
	PropBoundsY4 Property = "bounds.y4"

	PropDirectionX1 Property = "direction.x1"
	PropDirectionY1 Property = "direction.y1"
	PropDirectionX2 Property = "direction.x2"
	PropDirectionY2 Property = "direction.y2"
)

// selectedFloor возвращает этаж выделенного объекта, если ссылка ещё валидна.
func (s *State) selectedFloor() (*models.Floor, models.ObjectRef, bool) {
	if s.Selected == nil {
		return nil, models.ObjectRef{}, false
	}
	ref := *s.Selected
	f := s.Floors.Get(ref.Floor)
	if ref.Index < 0 || ref.Index >= f.Len(ref.Kind) {
		return nil, ref, false
	}
	return f, ref, true
}

func (s *State) editCoordinate(prop Property, raw string) Outcome {
	f, ref, ok := s.selectedFloor()
	if !ok {
		return Ignored
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(value) {
		return Rejected
	}

	switch ref.Kind {
	case models.KindWall:
		return s.editWall(f, ref.Index, prop, value)
	case models.KindBeacon:
		return s.editBeacon(f, ref.Index, prop, value)
	case models.KindDoor:
		return s.editDoor(f, ref.Index, prop, value)
	case models.KindStairsUp:
		return s.editStairs(f.StairsUp, ref.Index, prop, value)
	case models.KindStairsDown:
		return s.editStairs(f.StairsDown, ref.Index, prop, value)
	case models.KindPointOfInterest:
		return s.editPointOfInterest(f, ref.Index, prop, value)
	}
	return Ignored
}

func (s *State) editWall(f *models.Floor, i int, prop Property, v float64) Outcome {
	w := f.Walls[i]
	switch prop {
	case PropX1:
		w.X1 = v
	case PropY1:
		w.Y1 = v
	case PropX2:
		w.X2 = v
	case PropY2:
		w.Y2 = v
	default:
		return Ignored
	}
	if w == f.Walls[i] {
		return Ignored
	}
	if !s.wallFits(w, f.Walls, i) {
		return Rejected
	}
	s.record()
	f.Walls[i] = w
	return Committed
}

func (s *State) editBeacon(f *models.Floor, i int, prop Property, v float64) Outcome {
	p, ok := movePoint(models.Point{X: f.Beacons[i].X, Y: f.Beacons[i].Y}, prop, v)
	if !ok {
		return Ignored
	}
	if p.X == f.Beacons[i].X && p.Y == f.Beacons[i].Y {
		return Ignored
	}
	if beaconAt(f.Beacons, p, i) {
		return Rejected
	}
	s.record()
	f.Beacons[i].X, f.Beacons[i].Y = p.X, p.Y
	return Committed
}

// editDoor переносит дверь и заново проецирует её на ближайшую стену.
func (s *State) editDoor(f *models.Floor, i int, prop Property, v float64) Outcome {
	p, ok := movePoint(models.Point{X: f.Doors[i].X, Y: f.Doors[i].Y}, prop, v)
	if !ok {
		return Ignored
	}
	projected, ok := spatial.ClosestPoint(f.Walls, p, s.opts.SnapDistance)
	if !ok {
		return Rejected
	}
	if projected.X == f.Doors[i].X && projected.Y == f.Doors[i].Y {
		return Ignored
	}
	if doorAt(f.Doors, projected, i) {
		return Rejected
	}
	s.record()
	f.Doors[i].X, f.Doors[i].Y = projected.X, projected.Y
	return Committed
}

func (s *State) editPointOfInterest(f *models.Floor, i int, prop Property, v float64) Outcome {
	poi := f.PointsOfInterest[i]
	p, ok := movePoint(models.Point{X: poi.X, Y: poi.Y}, prop, v)
	if !ok {
		return Ignored
	}
	if p.X == poi.X && p.Y == poi.Y {
		return Ignored
	}
	if pointOfInterestAt(f.PointsOfInterest, p, i) {
		return Rejected
	}
	s.record()
	f.PointsOfInterest[i].X, f.PointsOfInterest[i].Y = p.X, p.Y
	return Committed
}

func (s *State) editStairs(bucket []models.Stairs, i int, prop Property, v float64) Outcome {
	st := bucket[i]
	b, d := &st.Bounds, &st.Direction
	targets := map[Property]*float64{
		PropBoundsX1: &b.X1, PropBoundsY1: &b.Y1,
		PropBoundsX2: &b.X2, PropBoundsY2: &b.Y2,
		PropBoundsX3: &b.X3, PropBoundsY3: &b.Y3,
		PropBoundsX4: &b.X4, PropBoundsY4: &b.Y4,
		PropDirectionX1: &d.X1, PropDirectionY1: &d.Y1,
		PropDirectionX2: &d.X2, PropDirectionY2: &d.Y2,
	}
	target, ok := targets[prop]
	if !ok {
		return Ignored
	}
	if *target == v {
		return Ignored
	}
	*target = v
	if !stairsValid(st) {
		return Rejected
	}
	s.record()
	bucket[i] = st
	return Committed
}

func movePoint(p models.Point, prop Property, v float64) (models.Point, bool) {
	switch prop {
	case PropX:
		p.X = v
	case PropY:
		p.Y = v
	default:
		return p, false
	}
	return p, true
}

// ============================================================
// Property edits
// ============================================================

func (s *State) setBeaconID(id string) Outcome {
	f, ref, ok := s.selectedFloor()
	if !ok || ref.Kind != models.KindBeacon {
		return Ignored
	}
	id = strings.TrimSpace(id)
	if id == "" || f.Beacons[ref.Index].ID == id {
		return Ignored
	}
	s.record()
	f.Beacons[ref.Index].ID = id
	return Committed
}

func (s *State) setDoorOuter(outer bool) Outcome {
	f, ref, ok := s.selectedFloor()
	if !ok || ref.Kind != models.KindDoor {
		return Ignored
	}
	if f.Doors[ref.Index].IsOuter == outer {
		return Ignored
	}
	s.record()
	f.Doors[ref.Index].IsOuter = outer
	return Committed
}

func (s *State) setDescription(text string) Outcome {
	f, ref, ok := s.selectedFloor()
	if !ok || ref.Kind != models.KindPointOfInterest {
		return Ignored
	}
	if f.PointsOfInterest[ref.Index].Description == text {
		return Ignored
	}
	s.record()
	f.PointsOfInterest[ref.Index].Description = text
	return Committed
}

// ============================================================
// Delete
// ============================================================

// deleteSelected удаляет выделенный объект. Удаление фиксируется в истории
// так же, как создание, и может быть отменено.
func (s *State) deleteSelected() Outcome {
	f, ref, ok := s.selectedFloor()
	if !ok {
		return Ignored
	}
	s.record()
	f.Remove(ref.Kind, ref.Index)
	s.Floors.DeleteIfEmpty(ref.Floor)
	s.Selected = nil
	s.refreshOverlay()
	return Committed
}
