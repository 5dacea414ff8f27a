package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

type pingFunc func() error

func (f pingFunc) Ping() error { return f() }

func TestReadinessProbe(t *testing.T) {
	tests := []struct {
		name   string
		deps   map[string]Pinger
		status int
	}{
		{"no deps", nil, http.StatusOK},
		{"all up", map[string]Pinger{"maps": pingFunc(func() error { return nil })}, http.StatusOK},
		{"one down", map[string]Pinger{
			"maps":   pingFunc(func() error { return nil }),
			"editor": pingFunc(func() error { return errors.New("refused") }),
		}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health/ready", ReadinessProbe(tt.deps))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
