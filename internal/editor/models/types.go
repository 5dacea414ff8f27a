package models

// ============================================================
// Geometry primitives
// ============================================================

// Point задаёт точку в мировых (метры, Y вверх) или экранных (пиксели, Y вниз) координатах.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================
// Domain objects
// ============================================================

type Wall struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Start и End возвращают концы стены.
func (w Wall) Start() Point { return Point{X: w.X1, Y: w.Y1} }
func (w Wall) End() Point   { return Point{X: w.X2, Y: w.Y2} }

// IsDegenerate сообщает, что стена имеет нулевую длину.
func (w Wall) IsDegenerate() bool {
	return w.X1 == w.X2 && w.Y1 == w.Y2
}

type Beacon struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID string  `json:"id"`
}

type Door struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	IsOuter bool    `json:"isOuter"`
}

type StairsType string

const (
	StairsUp   StairsType = "stairsUp"
	StairsDown StairsType = "stairsDown"
)

// Step возвращает смещение по рангу этажа для направления лестницы.
func (t StairsType) Step() int {
	if t == StairsDown {
		return -1
	}
	return 1
}

// Bounds описывает четырёхугольник, занимаемый лестницей.
type Bounds struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	X3 float64 `json:"x3"`
	Y3 float64 `json:"y3"`
	X4 float64 `json:"x4"`
	Y4 float64 `json:"y4"`
}

// Corners возвращает углы в порядке обхода.
func (b Bounds) Corners() [4]Point {
	return [4]Point{
		{X: b.X1, Y: b.Y1},
		{X: b.X2, Y: b.Y2},
		{X: b.X3, Y: b.Y3},
		{X: b.X4, Y: b.Y4},
	}
}

// BoundsFromCorners собирает Bounds из четырёх углов.
func BoundsFromCorners(c [4]Point) Bounds {
	return Bounds{
		X1: c[0].X, Y1: c[0].Y,
		X2: c[1].X, Y2: c[1].Y,
		X3: c[2].X, Y3: c[2].Y,
		X4: c[3].X, Y4: c[3].Y,
	}
}

// Direction задаёт стрелку направления подъёма/спуска.
type Direction struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type Stairs struct {
	Type       StairsType `json:"type"`
	StartFloor float64    `json:"startFloor"`
	EndFloor   float64    `json:"endFloor"`
	Bounds     Bounds     `json:"bounds"`
	Direction  Direction  `json:"direction"`
}

type PointOfInterest struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Description string  `json:"description"`
}

// ============================================================
// Floor
// ============================================================

type Floor struct {
	Walls            []Wall            `json:"walls"`
	Beacons          []Beacon          `json:"beacons"`
	Doors            []Door            `json:"doors"`
	StairsUp         []Stairs          `json:"stairsUp"`
	StairsDown       []Stairs          `json:"stairsDown"`
	PointsOfInterest []PointOfInterest `json:"pointsOfInterest"`
}

// IsEmpty сообщает, что на этаже нет ни одного объекта.
func (f *Floor) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.Walls) == 0 &&
		len(f.Beacons) == 0 &&
		len(f.Doors) == 0 &&
		len(f.StairsUp) == 0 &&
		len(f.StairsDown) == 0 &&
		len(f.PointsOfInterest) == 0
}

// Clone делает глубокую копию этажа. Все объекты хранятся по значению, поэтому
// достаточно скопировать слайсы.
func (f *Floor) Clone() *Floor {
	if f == nil {
		return nil
	}
	return &Floor{
		Walls:            append([]Wall(nil), f.Walls...),
		Beacons:          append([]Beacon(nil), f.Beacons...),
		Doors:            append([]Door(nil), f.Doors...),
		StairsUp:         append([]Stairs(nil), f.StairsUp...),
		StairsDown:       append([]Stairs(nil), f.StairsDown...),
		PointsOfInterest: append([]PointOfInterest(nil), f.PointsOfInterest...),
	}
}

// Stairs возвращает корзину лестниц нужного типа.
func (f *Floor) Stairs(t StairsType) []Stairs {
	if t == StairsDown {
		return f.StairsDown
	}
	return f.StairsUp
}

// Len возвращает размер корзины объектов указанного вида.
func (f *Floor) Len(kind ObjectKind) int {
	if f == nil {
		return 0
	}
	switch kind {
	case KindWall:
		return len(f.Walls)
	case KindBeacon:
		return len(f.Beacons)
	case KindDoor:
		return len(f.Doors)
	case KindStairsUp:
		return len(f.StairsUp)
	case KindStairsDown:
		return len(f.StairsDown)
	case KindPointOfInterest:
		return len(f.PointsOfInterest)
	}
	return 0
}

// Remove удаляет объект по индексу. Возвращает false, если индекс вне корзины.
func (f *Floor) Remove(kind ObjectKind, index int) bool {
	if index < 0 || index >= f.Len(kind) {
		return false
	}
	switch kind {
	case KindWall:
		f.Walls = append(f.Walls[:index], f.Walls[index+1:]...)
	case KindBeacon:
		f.Beacons = append(f.Beacons[:index], f.Beacons[index+1:]...)
	case KindDoor:
		f.Doors = append(f.Doors[:index], f.Doors[index+1:]...)
	case KindStairsUp:
		f.StairsUp = append(f.StairsUp[:index], f.StairsUp[index+1:]...)
	case KindStairsDown:
		f.StairsDown = append(f.StairsDown[:index], f.StairsDown[index+1:]...)
	case KindPointOfInterest:
		f.PointsOfInterest = append(f.PointsOfInterest[:index], f.PointsOfInterest[index+1:]...)
	}
	return true
}

// ============================================================
// Building-level fields & settings
// ============================================================

type GlobalFields struct {
	Address string  `json:"address"`
	Azimuth float64 `json:"azimuth"`
}

type Settings struct {
	GridSnapping       bool `json:"gridSnapping"`
	ShowObjectsBeneath bool `json:"showObjectsBeneath"`
}
