package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"map-editor/internal/editor/engine"
	"map-editor/internal/editor/models"
)

func TestCreateGetDelete(t *testing.T) {
	r := NewRegistry(engine.DefaultOptions())
	s := r.Create()

	got, err := r.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("get: %v", err)
	}
	if err := r.Delete(s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get(s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
	if err := r.Delete(s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	r := NewRegistry(engine.DefaultOptions())
	a, b := r.Create(), r.Create()
	if a.ID == b.ID {
		t.Fatal("ids must differ")
	}

	a.Do(func(st *engine.State) {
		st.Apply(engine.SelectTool{Tool: models.ToolBeacon})
		st.Apply(engine.Click{Pos: models.Point{X: 40, Y: -40}})
	})
	b.Do(func(st *engine.State) {
		if len(st.Floors) != 0 {
			t.Error("session b sees objects of session a")
		}
	})
}

func TestConcurrentEvents(t *testing.T) {
	r := NewRegistry(engine.DefaultOptions())
	s := r.Create()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(st *engine.State) {
				st.Apply(engine.Wheel{DeltaY: -1})
			})
		}()
	}
	wg.Wait()

	s.Do(func(st *engine.State) {
		if st.Geometry.Scale <= 1 {
			t.Errorf("scale = %v", st.Geometry.Scale)
		}
	})
}

func TestSweep(t *testing.T) {
	r := NewRegistry(engine.DefaultOptions())
	old := r.Create()
	old.lastSeen = time.Now().Add(-time.Hour)
	fresh := r.Create()

	if n := r.Sweep(time.Minute); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := r.Get(fresh.ID); err != nil {
		t.Fatal("fresh session must survive")
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d", r.Len())
	}
}
