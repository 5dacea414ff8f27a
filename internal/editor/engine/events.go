package engine

import "map-editor/internal/editor/models"

// ============================================================
// Events
// ============================================================

// Event описывает дискретное входное событие. Набор закрыт.
type Event interface {
	isEvent()
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerMove: Pos в экранных координатах.
type PointerMove struct {
	Pos models.Point
}

// Click приходит при щелчке по фону холста.
type Click struct {
	Pos    models.Point
	Button Button
}

// ObjectClick приходит при щелчке по объекту (попадание определяет рендерер).
type ObjectClick struct {
	Ref    models.ObjectRef
	Button Button
}

type PanStart struct{}

type PanMove struct {
	Delta models.Point
}

type PanEnd struct{}

type Wheel struct {
	DeltaY float64
}

// KeyCombo: Ctrl+Z отменяет, Ctrl+Y повторяет.
type KeyCombo struct {
	Ctrl bool
	Key  string
}

type Undo struct{}

type Redo struct{}

type SelectTool struct {
	Tool models.Tool
}

type SetFloor struct {
	Floor float64
}

// EditCoordinate правит координату выделенного объекта из боковой панели.
// Value содержит сырой ввод пользователя.
type EditCoordinate struct {
	Property Property
	Value    string
}

type SetBeaconID struct {
	ID string
}

type SetDoorOuter struct {
	Outer bool
}

type SetDescription struct {
	Text string
}

type DeleteSelected struct{}

type SetSettings struct {
	Settings models.Settings
}

type SetGlobalFields struct {
	Fields models.GlobalFields
}

// ImportPlan добавляет на этаж стены и двери, полученные из импортированного плана.
type ImportPlan struct {
	Floor float64
	Walls []models.Wall
	Doors []models.Door
}

func (PointerMove) isEvent()     {}
func (Click) isEvent()           {}
func (ObjectClick) isEvent()     {}
func (PanStart) isEvent()        {}
func (PanMove) isEvent()         {}
func (PanEnd) isEvent()          {}
func (Wheel) isEvent()           {}
func (KeyCombo) isEvent()        {}
func (Undo) isEvent()            {}
func (Redo) isEvent()            {}
func (SelectTool) isEvent()      {}
func (SetFloor) isEvent()        {}
func (EditCoordinate) isEvent()  {}
func (SetBeaconID) isEvent()     {}
func (SetDoorOuter) isEvent()    {}
func (SetDescription) isEvent()  {}
func (DeleteSelected) isEvent()  {}
func (SetSettings) isEvent()     {}
func (SetGlobalFields) isEvent() {}
func (ImportPlan) isEvent()      {}

// ============================================================
// Outcome
// ============================================================

// Outcome описывает результат применения события. Недопустимый ввод не
// является ошибкой: он просто не меняет этажи.
type Outcome int

const (
	// Ignored: событие не относится к текущему состоянию.
	Ignored Outcome = iota
	// Updated: изменилось только переходное состояние.
	Updated
	// Committed: изменение этажей зафиксировано в истории.
	Committed
	// Rejected: попытка изменения не прошла проверку, этажи не тронуты.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Updated:
		return "updated"
	case Committed:
		return "committed"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}
