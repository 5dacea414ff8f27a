package history

import "map-editor/internal/editor/floors"

// ============================================================
// History Manager
// ============================================================

// DefaultLimit задаёт глубину истории по умолчанию.
const DefaultLimit = 100

// Manager хранит стеки снимков каталога этажей. Снимок всегда делается до
// изменения, которое он защищает. Последний снимок лежит в конце стека.
type Manager struct {
	undo  []floors.Directory
	redo  []floors.Directory
	limit int
}

// New создаёт историю; limit <= 0 означает неограниченную глубину.
func New(limit int) *Manager {
	return &Manager{limit: limit}
}

// Record кладёт копию текущего состояния в undo и очищает redo.
// Вызывается перед каждым фиксируемым изменением.
func (m *Manager) Record(current floors.Directory) {
	m.undo = m.pushBounded(m.undo, current.Clone())
	m.redo = nil
}

// Undo возвращает предыдущее состояние; текущее уходит в redo.
// При пустом стеке возвращает current и false.
func (m *Manager) Undo(current floors.Directory) (floors.Directory, bool) {
	n := len(m.undo)
	if n == 0 {
		return current, false
	}
	prev := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.redo = m.pushBounded(m.redo, current)
	return prev, true
}

// Redo симметричен Undo.
func (m *Manager) Redo(current floors.Directory) (floors.Directory, bool) {
	n := len(m.redo)
	if n == 0 {
		return current, false
	}
	next := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.undo = m.pushBounded(m.undo, current)
	return next, true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Depth возвращает размеры стеков undo и redo.
func (m *Manager) Depth() (int, int) {
	return len(m.undo), len(m.redo)
}

func (m *Manager) pushBounded(stack []floors.Directory, snap floors.Directory) []floors.Directory {
	stack = append(stack, snap)
	if m.limit > 0 && len(stack) > m.limit {
		// drop oldest
		stack = stack[1:]
	}
	return stack
}
