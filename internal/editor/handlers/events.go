package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"map-editor/internal/editor/engine"
	"map-editor/internal/editor/models"
)

// ============================================================
// Event wire format
// ============================================================

// eventMessage описывает событие в JSON. Поле type выбирает вариант,
// остальные поля читаются по необходимости.
type eventMessage struct {
	Type     string               `json:"type"`
	Pos      *models.Point        `json:"pos"`
	Button   string               `json:"button"`
	Ref      *models.ObjectRef    `json:"ref"`
	Delta    *models.Point        `json:"delta"`
	DeltaY   float64              `json:"deltaY"`
	Ctrl     bool                 `json:"ctrl"`
	Key      string               `json:"key"`
	Tool     *models.Tool         `json:"tool"`
	Floor    *float64             `json:"floor"`
	Property string               `json:"property"`
	Value    json.RawMessage      `json:"value"`
	ID       string               `json:"id"`
	Outer    bool                 `json:"outer"`
	Text     string               `json:"text"`
	Settings *models.Settings     `json:"settings"`
	Global   *models.GlobalFields `json:"global"`
}

// decodeEvents принимает одно событие или массив событий.
func decodeEvents(body []byte) ([]engine.Event, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("body required")
	}

	var messages []eventMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &messages); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
	} else {
		var m eventMessage
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
		messages = append(messages, m)
	}

	events := make([]engine.Event, 0, len(messages))
	for i, m := range messages {
		ev, err := m.event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (m eventMessage) event() (engine.Event, error) {
	switch m.Type {
	case "pointerMove":
		if m.Pos == nil {
			return nil, fmt.Errorf("pointerMove requires pos")
		}
		return engine.PointerMove{Pos: *m.Pos}, nil
	case "click":
		if m.Pos == nil {
			return nil, fmt.Errorf("click requires pos")
		}
		button, err := parseButton(m.Button)
		if err != nil {
			return nil, err
		}
		return engine.Click{Pos: *m.Pos, Button: button}, nil
	case "objectClick":
		if m.Ref == nil {
			return nil, fmt.Errorf("objectClick requires ref")
		}
		button, err := parseButton(m.Button)
		if err != nil {
			return nil, err
		}
		return engine.ObjectClick{Ref: *m.Ref, Button: button}, nil
	case "panStart":
		return engine.PanStart{}, nil
	case "panMove":
		if m.Delta == nil {
			return nil, fmt.Errorf("panMove requires delta")
		}
		return engine.PanMove{Delta: *m.Delta}, nil
	case "panEnd":
		return engine.PanEnd{}, nil
	case "wheel":
		return engine.Wheel{DeltaY: m.DeltaY}, nil
	case "keyCombo":
		return engine.KeyCombo{Ctrl: m.Ctrl, Key: m.Key}, nil
	case "undo":
		return engine.Undo{}, nil
	case "redo":
		return engine.Redo{}, nil
	case "selectTool":
		if m.Tool == nil {
			return nil, fmt.Errorf("selectTool requires tool")
		}
		return engine.SelectTool{Tool: *m.Tool}, nil
	case "setFloor":
		if m.Floor == nil {
			return nil, fmt.Errorf("setFloor requires floor")
		}
		return engine.SetFloor{Floor: *m.Floor}, nil
	case "editCoordinate":
		return engine.EditCoordinate{Property: engine.Property(m.Property), Value: rawValue(m.Value)}, nil
	case "setBeaconId":
		return engine.SetBeaconID{ID: m.ID}, nil
	case "setDoorOuter":
		return engine.SetDoorOuter{Outer: m.Outer}, nil
	case "setDescription":
		return engine.SetDescription{Text: m.Text}, nil
	case "delete":
		return engine.DeleteSelected{}, nil
	case "setSettings":
		if m.Settings == nil {
			return nil, fmt.Errorf("setSettings requires settings")
		}
		return engine.SetSettings{Settings: *m.Settings}, nil
	case "setGlobalFields":
		if m.Global == nil {
			return nil, fmt.Errorf("setGlobalFields requires global")
		}
		return engine.SetGlobalFields{Fields: *m.Global}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", m.Type)
}

func parseButton(s string) (engine.Button, error) {
	switch strings.ToLower(s) {
	case "", "primary", "left":
		return engine.ButtonPrimary, nil
	case "middle":
		return engine.ButtonMiddle, nil
	case "secondary", "right":
		return engine.ButtonSecondary, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// rawValue возвращает пользовательский ввод как есть: строку без кавычек
// или JSON-литерал числа.
func rawValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// eventName возвращает метку события для метрик.
func eventName(ev engine.Event) string {
	switch ev.(type) {
	case engine.PointerMove:
		return "pointerMove"
	case engine.Click:
		return "click"
	case engine.ObjectClick:
		return "objectClick"
	case engine.PanStart, engine.PanMove, engine.PanEnd:
		return "pan"
	case engine.Wheel:
		return "wheel"
	case engine.KeyCombo:
		return "keyCombo"
	case engine.Undo:
		return "undo"
	case engine.Redo:
		return "redo"
	case engine.SelectTool:
		return "selectTool"
	case engine.SetFloor:
		return "setFloor"
	case engine.EditCoordinate:
		return "editCoordinate"
	case engine.SetBeaconID, engine.SetDoorOuter, engine.SetDescription:
		return "editProperty"
	case engine.DeleteSelected:
		return "delete"
	case engine.SetSettings:
		return "setSettings"
	case engine.SetGlobalFields:
		return "setGlobalFields"
	case engine.ImportPlan:
		return "import"
	}
	return "other"
}
