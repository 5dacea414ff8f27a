package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"map-editor/internal/editor/export"
	"map-editor/internal/editor/floors"
	"map-editor/internal/editor/models"
)

func sampleDoc() export.FeatureCollection {
	dir := floors.New()
	dir.Ensure(1).Beacons = []models.Beacon{{X: 1, Y: 1, ID: "B1"}}
	return export.ToGeoJSON(dir, models.GlobalFields{Address: "Lenina 1"})
}

func TestSubmitPostsDocument(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/map" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if err := c.Submit(context.Background(), sampleDoc()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got["type"] != "FeatureCollection" {
		t.Fatalf("posted = %v", got)
	}
}

func TestSubmitReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"address required"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Submit(context.Background(), sampleDoc())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if se.Code != http.StatusBadRequest || se.Message != "address required" {
		t.Fatalf("status error = %+v", se)
	}
}

func TestSubmitWithoutBackend(t *testing.T) {
	err := NewClient("", time.Second).Submit(context.Background(), sampleDoc())
	if !errors.Is(err, ErrNoBackend) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := NewClient(url, time.Second).Submit(context.Background(), sampleDoc()); err == nil {
		t.Fatal("expected error for closed server")
	}
}
