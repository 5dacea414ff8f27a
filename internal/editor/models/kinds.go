package models

import "fmt"

// ============================================================
// Object kinds
// ============================================================

// ObjectKind перечисляет виды объектов на этаже. Перечень закрыт.
type ObjectKind int

const (
	KindWall ObjectKind = iota
	KindBeacon
	KindDoor
	KindStairsUp
	KindStairsDown
	KindPointOfInterest
)

var kindNames = map[ObjectKind]string{
	KindWall:            "wall",
	KindBeacon:          "beacon",
	KindDoor:            "door",
	KindStairsUp:        "stairsUp",
	KindStairsDown:      "stairsDown",
	KindPointOfInterest: "pointOfInterest",
}

func (k ObjectKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k ObjectKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown object kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ObjectKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown object kind %q", string(text))
}

// KindForStairs сопоставляет тип лестницы с её корзиной.
func KindForStairs(t StairsType) ObjectKind {
	if t == StairsDown {
		return KindStairsDown
	}
	return KindStairsUp
}

// ObjectRef ссылается на объект по позиции: этаж, корзина и индекс.
type ObjectRef struct {
	Kind  ObjectKind `json:"kind"`
	Floor float64    `json:"floor"`
	Index int        `json:"index"`
}

// ============================================================
// Tools
// ============================================================

type Tool int

const (
	ToolSelect Tool = iota
	ToolWall
	ToolBeacon
	ToolDoor
	ToolStairsUp
	ToolStairsDown
	ToolPointOfInterest
)

var toolNames = map[Tool]string{
	ToolSelect:          "select",
	ToolWall:            "wall",
	ToolBeacon:          "beacon",
	ToolDoor:            "door",
	ToolStairsUp:        "stairsUp",
	ToolStairsDown:      "stairsDown",
	ToolPointOfInterest: "pointOfInterest",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

func (t Tool) MarshalText() ([]byte, error) {
	if _, ok := toolNames[t]; !ok {
		return nil, fmt.Errorf("unknown tool %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(text []byte) error {
	for tool, name := range toolNames {
		if name == string(text) {
			*t = tool
			return nil
		}
	}
	return fmt.Errorf("unknown tool %q", string(text))
}

// StairsType возвращает тип лестницы для инструментов лестниц.
func (t Tool) StairsType() (StairsType, bool) {
	switch t {
	case ToolStairsUp:
		return StairsUp, true
	case ToolStairsDown:
		return StairsDown, true
	}
	return "", false
}
