package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"map-editor/internal/editor/engine"
)

// ============================================================
// Session Registry
// ============================================================

var ErrNotFound = errors.New("session not found")

// Session держит один открытый редактор. Все обращения к State идут через Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	state    *engine.State
	lastSeen time.Time
}

// Do выполняет fn под замком сеанса.
func (s *Session) Do(fn func(st *engine.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	fn(s.state)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     engine.Options
}

func NewRegistry(opts engine.Options) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Create открывает новый пустой редактор.
func (r *Registry) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		state:     engine.New(r.opts),
		lastSeen:  now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep закрывает сеансы, простаивающие дольше idle. Возвращает число закрытых.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	list := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	r.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	closed := 0
	for _, s := range list {
		if s.idleSince().Before(cutoff) && r.Delete(s.ID) == nil {
			closed++
		}
	}
	return closed
}
