package engine

import (
	"math"

	"map-editor/internal/editor/geometry"
	"map-editor/internal/editor/models"
	"map-editor/internal/editor/spatial"
)

// ============================================================
// Object Construction Protocol
// ============================================================

func (s *State) click(e Click) Outcome {
	if e.Button != ButtonPrimary {
		return Ignored
	}
	s.refreshInput(e.Pos)

	switch s.Tool {
	case models.ToolSelect:
		if s.Selected == nil {
			return Ignored
		}
		s.Selected = nil
		return Updated
	case models.ToolBeacon:
		return s.placeBeacon()
	case models.ToolWall:
		return s.placeWallPoint()
	case models.ToolDoor:
		return s.placeDoor()
	case models.ToolStairsUp, models.ToolStairsDown:
		return s.placeStairsPoint()
	case models.ToolPointOfInterest:
		return s.placePointOfInterest()
	}
	return Ignored
}

func (s *State) objectClick(e ObjectClick) Outcome {
	if e.Button != ButtonPrimary || s.Tool != models.ToolSelect {
		return Ignored
	}
	if e.Ref.Index < 0 || e.Ref.Index >= s.Floors.Get(e.Ref.Floor).Len(e.Ref.Kind) {
		return Ignored
	}
	ref := e.Ref
	s.Selected = &ref
	return Updated
}

// commit фиксирует новый объект на текущем этаже: снимок истории, ленивое
// создание этажа, добавление, выделение нового объекта, сброс черновика.
func (s *State) commit(kind models.ObjectKind, add func(f *models.Floor)) Outcome {
	s.record()
	f := s.Floors.Ensure(s.CurrentFloor)
	add(f)
	s.Selected = &models.ObjectRef{Kind: kind, Floor: s.CurrentFloor, Index: f.Len(kind) - 1}
	s.Construction = nil
	s.refreshOverlay()
	return Committed
}

// reject сбрасывает черновик, не трогая этажи.
func (s *State) reject() Outcome {
	s.Construction = nil
	return Rejected
}

// ============================================================
// Single-click tools
// ============================================================

func (s *State) placeBeacon() Outcome {
	p := s.cursorWorld()
	if f := s.currentFloor(); f != nil && beaconAt(f.Beacons, p, -1) {
		return s.reject()
	}
	return s.commit(models.KindBeacon, func(f *models.Floor) {
		f.Beacons = append(f.Beacons, models.Beacon{X: p.X, Y: p.Y})
	})
}

func (s *State) placePointOfInterest() Outcome {
	p := s.cursorWorld()
	if f := s.currentFloor(); f != nil && pointOfInterestAt(f.PointsOfInterest, p, -1) {
		return s.reject()
	}
	return s.commit(models.KindPointOfInterest, func(f *models.Floor) {
		f.PointsOfInterest = append(f.PointsOfInterest, models.PointOfInterest{X: p.X, Y: p.Y})
	})
}

// placeDoor ставит дверь в проекцию курсора на ближайшую стену.
func (s *State) placeDoor() Outcome {
	raw := geometry.ScreenToWorld(*s.Input.Cursor, s.Geometry)
	p, ok := spatial.ClosestPoint(s.currentWalls(), raw, s.opts.SnapDistance)
	if !ok {
		return Ignored
	}
	if doorAt(s.currentFloor().Doors, p, -1) {
		return s.reject()
	}
	return s.commit(models.KindDoor, func(f *models.Floor) {
		f.Doors = append(f.Doors, models.Door{X: p.X, Y: p.Y})
	})
}

// ============================================================
// Walls
// ============================================================

func (s *State) placeWallPoint() Outcome {
	p := s.cursorWorld()

	draft, ok := s.Construction.(WallDraft)
	if !ok {
		s.Construction = WallDraft{Start: p}
		return Updated
	}

	w := models.Wall{X1: draft.Start.X, Y1: draft.Start.Y, X2: p.X, Y2: p.Y}
	if !s.wallFits(w, s.currentWalls(), -1) {
		return s.reject()
	}
	return s.commit(models.KindWall, func(f *models.Floor) {
		f.Walls = append(f.Walls, w)
	})
}

// wallFits проверяет ненулевую длину и отсутствие пересечений; стена с
// индексом skip (сама редактируемая стена) не учитывается.
func (s *State) wallFits(w models.Wall, walls []models.Wall, skip int) bool {
	if w.IsDegenerate() {
		return false
	}
	for i, other := range walls {
		if i == skip {
			continue
		}
		if spatial.WallsIntersect(w, other) {
			return false
		}
	}
	return true
}

// ============================================================
// Stairs
// ============================================================

// placeStairsPoint ведёт протокол из шести щелчков: четыре угла, начало и
// конец стрелки направления.
func (s *State) placeStairsPoint() Outcome {
	stairsType, _ := s.Tool.StairsType()
	p := s.cursorWorld()

	switch draft := s.Construction.(type) {
	case StairsCorners:
		corners := append(append([]models.Point(nil), draft.Corners...), p)
		if len(corners) < 4 {
			s.Construction = StairsCorners{Type: draft.Type, Corners: corners}
			return Updated
		}
		s.Construction = StairsFootprint{
			Type:   draft.Type,
			Bounds: models.BoundsFromCorners([4]models.Point{corners[0], corners[1], corners[2], corners[3]}),
		}
		return Updated
	case StairsFootprint:
		s.Construction = StairsArrow{Type: draft.Type, Bounds: draft.Bounds, Start: p}
		return Updated
	case StairsArrow:
		return s.commitStairs(draft, p)
	}

	s.Construction = StairsCorners{Type: stairsType, Corners: []models.Point{p}}
	return Updated
}

func (s *State) commitStairs(draft StairsArrow, end models.Point) Outcome {
	endFloor, ok := s.Floors.Resolve(s.CurrentFloor, draft.Type.Step())
	if !ok {
		return s.reject()
	}

	stairs := models.Stairs{
		Type:       draft.Type,
		StartFloor: s.CurrentFloor,
		EndFloor:   endFloor,
		Bounds:     draft.Bounds,
		Direction:  models.Direction{X1: draft.Start.X, Y1: draft.Start.Y, X2: end.X, Y2: end.Y},
	}
	if !stairsValid(stairs) {
		return s.reject()
	}

	return s.commit(models.KindForStairs(draft.Type), func(f *models.Floor) {
		if draft.Type == models.StairsDown {
			f.StairsDown = append(f.StairsDown, stairs)
			return
		}
		f.StairsUp = append(f.StairsUp, stairs)
	})
}

// stairsValid требует простой (несамопересекающийся) контур без повторяющихся
// углов и стрелку ненулевой длины.
func stairsValid(st models.Stairs) bool {
	d := st.Direction
	if d.X1 == d.X2 && d.Y1 == d.Y2 {
		return false
	}

	c := st.Bounds.Corners()
	for i := 0; i < len(c); i++ {
		for j := i + 1; j < len(c); j++ {
			if c[i] == c[j] {
				return false
			}
		}
	}

	var edges [4]models.Wall
	for i := range c {
		next := c[(i+1)%len(c)]
		edges[i] = models.Wall{X1: c[i].X, Y1: c[i].Y, X2: next.X, Y2: next.Y}
	}
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			if spatial.WallsIntersect(edges[i], edges[j]) {
				return false
			}
		}
	}
	return true
}

// ============================================================
// Occupancy
// ============================================================

func beaconAt(beacons []models.Beacon, p models.Point, skip int) bool {
	for i, b := range beacons {
		if i != skip && b.X == p.X && b.Y == p.Y {
			return true
		}
	}
	return false
}

func doorAt(doors []models.Door, p models.Point, skip int) bool {
	for i, d := range doors {
		if i != skip && d.X == p.X && d.Y == p.Y {
			return true
		}
	}
	return false
}

func pointOfInterestAt(points []models.PointOfInterest, p models.Point, skip int) bool {
	for i, poi := range points {
		if i != skip && poi.X == p.X && poi.Y == p.Y {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
