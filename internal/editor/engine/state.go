package engine

import (
	"strings"

	"map-editor/internal/editor/floors"
	"map-editor/internal/editor/geometry"
	"map-editor/internal/editor/history"
	"map-editor/internal/editor/models"
	"map-editor/internal/editor/spatial"
)

// ============================================================
// Editor State
// ============================================================

// WallPoint хранит ближайшую к курсору точку стены в обеих системах координат.
type WallPoint struct {
	World  models.Point `json:"world"`
	Screen models.Point `json:"screen"`
}

// Input хранит состояние указателя между событиями.
type Input struct {
	Cursor        *models.Point `json:"cursor,omitempty"`
	CursorSnapped *models.Point `json:"cursorSnapped,omitempty"`
	ClosestWall   *WallPoint    `json:"closestWall,omitempty"`
	Panning       bool          `json:"panning"`
}

// State хранит корневое состояние сеанса редактора. Единственный писатель:
// обработчик текущего события; State не потокобезопасен.
type State struct {
	Floors       floors.Directory
	Global       models.GlobalFields
	Tool         models.Tool
	Selected     *models.ObjectRef
	Geometry     geometry.Geometry
	Construction Construction
	Settings     models.Settings
	CurrentFloor float64
	Overlay      *float64
	Input        Input

	history *history.Manager
	opts    Options
}

// New создаёт пустой редактор с инструментом выделения и включённой сеткой.
func New(opts Options) *State {
	opts = opts.normalized()
	return &State{
		Floors:       floors.New(),
		Tool:         models.ToolSelect,
		Geometry:     geometry.New(opts.BaseGridSize),
		Settings:     models.Settings{GridSnapping: true},
		CurrentFloor: opts.InitialFloor,
		history:      history.New(opts.HistoryLimit),
		opts:         opts,
	}
}

func (s *State) Options() Options { return s.opts }

func (s *State) CanUndo() bool { return s.history.CanUndo() }
func (s *State) CanRedo() bool { return s.history.CanRedo() }

// Apply применяет одно событие к состоянию.
func (s *State) Apply(ev Event) Outcome {
	switch e := ev.(type) {
	case PointerMove:
		return s.pointerMove(e.Pos)
	case Click:
		return s.click(e)
	case ObjectClick:
		return s.objectClick(e)
	case PanStart:
		s.Input.Panning = true
		return Updated
	case PanMove:
		return s.pan(e.Delta)
	case PanEnd:
		s.Input.Panning = false
		return Updated
	case Wheel:
		return s.wheel(e.DeltaY)
	case KeyCombo:
		return s.keyCombo(e)
	case Undo:
		return s.undo()
	case Redo:
		return s.redo()
	case SelectTool:
		return s.selectTool(e.Tool)
	case SetFloor:
		return s.setFloor(e.Floor)
	case EditCoordinate:
		return s.editCoordinate(e.Property, e.Value)
	case SetBeaconID:
		return s.setBeaconID(e.ID)
	case SetDoorOuter:
		return s.setDoorOuter(e.Outer)
	case SetDescription:
		return s.setDescription(e.Text)
	case DeleteSelected:
		return s.deleteSelected()
	case SetSettings:
		s.Settings = e.Settings
		return Updated
	case SetGlobalFields:
		return s.setGlobalFields(e.Fields)
	case ImportPlan:
		if report := s.Import(e.Floor, e.Walls, e.Doors); report.Committed() {
			return Committed
		}
		return Rejected
	}
	return Ignored
}

// ============================================================
// View transform & pointer
// ============================================================

func (s *State) pointerMove(pos models.Point) Outcome {
	if s.Input.Panning && s.Input.Cursor != nil {
		prev := *s.Input.Cursor
		s.Geometry = geometry.Pan(s.Geometry, models.Point{X: pos.X - prev.X, Y: pos.Y - prev.Y})
	}
	s.refreshInput(pos)
	return Updated
}

func (s *State) pan(delta models.Point) Outcome {
	s.Geometry = geometry.Pan(s.Geometry, delta)
	if s.Input.Cursor != nil {
		s.refreshInput(*s.Input.Cursor)
	}
	return Updated
}

func (s *State) wheel(deltaY float64) Outcome {
	if deltaY == 0 {
		return Ignored
	}
	s.Geometry = geometry.Zoom(s.Geometry, deltaY, s.opts.WheelRatio, s.opts.MinScale, s.opts.MaxScale)
	if s.Input.Cursor != nil {
		s.refreshInput(*s.Input.Cursor)
	}
	return Updated
}

// refreshInput пересчитывает производные курсора от одного и того же
// значения Geometry, чтобы сдвиг и привязка не расходились.
func (s *State) refreshInput(pos models.Point) {
	g := s.Geometry
	snapped := geometry.SnapToGrid(pos, g)
	s.Input.Cursor = &pos
	s.Input.CursorSnapped = &snapped
	s.Input.ClosestWall = nil

	world := geometry.ScreenToWorld(pos, g)
	if p, ok := spatial.ClosestPoint(s.currentWalls(), world, s.opts.SnapDistance); ok {
		s.Input.ClosestWall = &WallPoint{World: p, Screen: geometry.WorldToScreen(p, g)}
	}
}

// cursorWorld возвращает мировую позицию для размещения: узел сетки, если привязка
// включена, иначе ближайшая точка стены, иначе сырой курсор.
func (s *State) cursorWorld() models.Point {
	switch {
	case s.Settings.GridSnapping:
		return geometry.ScreenToWorld(*s.Input.CursorSnapped, s.Geometry)
	case s.Input.ClosestWall != nil:
		return s.Input.ClosestWall.World
	}
	return geometry.ScreenToWorld(*s.Input.Cursor, s.Geometry)
}

func (s *State) currentFloor() *models.Floor {
	return s.Floors.Get(s.CurrentFloor)
}

func (s *State) currentWalls() []models.Wall {
	if f := s.currentFloor(); f != nil {
		return f.Walls
	}
	return nil
}

// ============================================================
// History
// ============================================================

func (s *State) keyCombo(e KeyCombo) Outcome {
	if !e.Ctrl {
		return Ignored
	}
	switch strings.ToLower(e.Key) {
	case "z":
		return s.undo()
	case "y":
		return s.redo()
	}
	return Ignored
}

func (s *State) undo() Outcome {
	prev, ok := s.history.Undo(s.Floors)
	if !ok {
		return Ignored
	}
	s.restore(prev)
	return Committed
}

func (s *State) redo() Outcome {
	next, ok := s.history.Redo(s.Floors)
	if !ok {
		return Ignored
	}
	s.restore(next)
	return Committed
}

func (s *State) restore(d floors.Directory) {
	s.Floors = d
	s.Selected = nil
	s.refreshOverlay()
	if s.Input.Cursor != nil {
		s.refreshInput(*s.Input.Cursor)
	}
}

// record снимает копию этажей до изменения и очищает redo.
func (s *State) record() {
	s.history.Record(s.Floors)
}

// ============================================================
// Tool, floor & global fields
// ============================================================

func (s *State) selectTool(tool models.Tool) Outcome {
	s.Tool = tool
	s.Construction = nil
	s.refreshOverlay()
	return Updated
}

func (s *State) setFloor(n float64) Outcome {
	if !isFinite(n) {
		return Rejected
	}
	if n == s.CurrentFloor {
		return Ignored
	}
	s.CurrentFloor = n
	s.Construction = nil
	s.refreshOverlay()
	if s.Input.Cursor != nil {
		s.refreshInput(*s.Input.Cursor)
	}
	return Updated
}

// refreshOverlay показывает этаж, на который ведёт лестница вверх.
func (s *State) refreshOverlay() {
	s.Overlay = nil
	if s.Tool != models.ToolStairsUp {
		return
	}
	if n, ok := s.Floors.Resolve(s.CurrentFloor, 1); ok {
		s.Overlay = &n
	}
}

func (s *State) setGlobalFields(fields models.GlobalFields) Outcome {
	if !isFinite(fields.Azimuth) {
		return Rejected
	}
	s.Global = fields
	return Updated
}

// ============================================================
// Renderer view
// ============================================================

// FloorView отдаёт этаж вместе с номером.
type FloorView struct {
	Number float64       `json:"number"`
	Floor  *models.Floor `json:"floor"`
}

// View собирает снимок состояния только для чтения для рендерера.
type View struct {
	Tool         models.Tool         `json:"tool"`
	CurrentFloor float64             `json:"currentFloor"`
	Floors       []float64           `json:"floors"`
	Floor        *models.Floor       `json:"floor"`
	Beneath      *FloorView          `json:"beneath,omitempty"`
	Overlay      *FloorView          `json:"overlay,omitempty"`
	Geometry     geometry.Geometry   `json:"geometry"`
	Selected     *models.ObjectRef   `json:"selected,omitempty"`
	Draft        *Draft              `json:"draft,omitempty"`
	Settings     models.Settings     `json:"settings"`
	Global       models.GlobalFields `json:"global"`
	Input        Input               `json:"input"`
	CanUndo      bool                `json:"canUndo"`
	CanRedo      bool                `json:"canRedo"`
}

// View собирает снимок текущего этажа и, при необходимости, соседних.
func (s *State) View() View {
	v := View{
		Tool:         s.Tool,
		CurrentFloor: s.CurrentFloor,
		Floors:       s.Floors.Numbers(),
		Floor:        s.currentFloor().Clone(),
		Geometry:     s.Geometry,
		Draft:        draftOf(s.Construction),
		Settings:     s.Settings,
		Global:       s.Global,
		Input:        s.Input,
		CanUndo:      s.CanUndo(),
		CanRedo:      s.CanRedo(),
	}
	if v.Floor == nil {
		v.Floor = &models.Floor{}
	}
	if s.Selected != nil {
		ref := *s.Selected
		v.Selected = &ref
	}
	if s.Settings.ShowObjectsBeneath {
		if n, ok := s.Floors.Resolve(s.CurrentFloor, -1); ok {
			v.Beneath = &FloorView{Number: n, Floor: s.Floors.Get(n).Clone()}
		}
	}
	if s.Overlay != nil {
		if f := s.Floors.Get(*s.Overlay); f != nil {
			v.Overlay = &FloorView{Number: *s.Overlay, Floor: f.Clone()}
		}
	}
	return v
}
