package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"map-editor/internal/converter/mapper"
	"map-editor/internal/editor/engine"
	"map-editor/internal/editor/export"
	"map-editor/internal/editor/session"
	"map-editor/internal/editor/submit"
)

// ============================================================
// Editor Handler
// ============================================================

// Submitter отправляет готовый документ карты во внешний сервис.
type Submitter interface {
	Submit(ctx context.Context, doc export.FeatureCollection) error
}

type EditorHandler struct {
	sessions      *session.Registry
	submitter     Submitter
	metrics       *Metrics
	submitTimeout time.Duration
}

func NewEditorHandler(sessions *session.Registry, submitter Submitter, metrics *Metrics, submitTimeout time.Duration) *EditorHandler {
	if submitTimeout <= 0 {
		submitTimeout = 10 * time.Second
	}
	return &EditorHandler{
		sessions:      sessions,
		submitter:     submitter,
		metrics:       metrics,
		submitTimeout: submitTimeout,
	}
}

// Register вешает маршруты редактора на router.
func (h *EditorHandler) Register(router fiber.Router) {
	router.Post("/sessions", h.CreateSession)
	router.Get("/sessions/:id", h.GetSession)
	router.Delete("/sessions/:id", h.DeleteSession)
	router.Post("/sessions/:id/events", h.ApplyEvents)
	router.Get("/sessions/:id/geojson", h.GeoJSON)
	router.Post("/sessions/:id/save", h.Save)
	router.Post("/sessions/:id/import", h.ImportPlan)
}

// CreateSession открывает пустой редактор.
func (h *EditorHandler) CreateSession(c fiber.Ctx) error {
	s := h.sessions.Create()
	h.metrics.SetSessions(h.sessions.Len())
	log.Printf("[EDITOR] Session %s opened", s.ID)

	var view engine.View
	s.Do(func(st *engine.State) { view = st.View() })

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   s.ID,
		"view": view,
	})
}

func (h *EditorHandler) GetSession(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	var view engine.View
	s.Do(func(st *engine.State) { view = st.View() })
	return c.JSON(view)
}

func (h *EditorHandler) DeleteSession(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.sessions.Delete(id); err != nil {
		return sessionNotFound(c)
	}
	h.metrics.SetSessions(h.sessions.Len())
	log.Printf("[EDITOR] Session %s closed", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyEvents применяет события по порядку и возвращает исход каждого.
func (h *EditorHandler) ApplyEvents(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	events, err := decodeEvents(c.Body())
	if err != nil {
		log.Printf("[EDITOR] Decode error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	outcomes := make([]string, 0, len(events))
	var view engine.View
	s.Do(func(st *engine.State) {
		for _, ev := range events {
			outcome := st.Apply(ev).String()
			h.metrics.observeEvent(eventName(ev), outcome)
			outcomes = append(outcomes, outcome)
		}
		view = st.View()
	})

	return c.JSON(fiber.Map{
		"outcomes": outcomes,
		"view":     view,
	})
}

func (h *EditorHandler) GeoJSON(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	var doc export.FeatureCollection
	s.Do(func(st *engine.State) { doc = export.ToGeoJSON(st.Floors, st.Global) })

	return c.JSON(doc, "application/geo+json")
}

// Save сериализует карту под замком сеанса и отправляет её уже без замка:
// пока бэкенд отвечает, редактирование не блокируется. Ошибка отправки
// состояние не меняет.
func (h *EditorHandler) Save(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}
	if h.submitter == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "maps service is not configured"})
	}

	var doc export.FeatureCollection
	s.Do(func(st *engine.State) { doc = export.ToGeoJSON(st.Floors, st.Global) })

	ctx, cancel := context.WithTimeout(c.Context(), h.submitTimeout)
	defer cancel()

	if err := h.submitter.Submit(ctx, doc); err != nil {
		h.metrics.observeSubmit("error")
		log.Printf("[EDITOR] Submit for session %s failed: %v", s.ID, err)

		status := fiber.StatusBadGateway
		var se *submit.StatusError
		if errors.As(err, &se) && se.Code < 500 {
			status = se.Code
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	h.metrics.observeSubmit("ok")
	return c.JSON(fiber.Map{
		"message":  "map submitted",
		"features": len(doc.Features),
	})
}

// ImportPlan принимает SVG-план (multipart, поле file) и добавляет его стены
// и двери на этаж из query-параметра floor.
func (h *EditorHandler) ImportPlan(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	floor, err := parseFloatQuery(c, "floor", math.NaN())
	if err != nil || math.IsNaN(floor) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "floor query parameter required"})
	}
	scale, err := parseFloatQuery(c, "scale", mapper.DefaultPixelsPerMeter)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scale"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[EDITOR] FormFile error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	plan, err := mapper.New(scale).Convert(f)
	if err != nil {
		h.metrics.observeImport("invalid")
		log.Printf("[EDITOR] Conversion error: %v", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	var (
		report engine.ImportReport
		view   engine.View
	)
	s.Do(func(st *engine.State) {
		report = st.Import(floor, plan.Walls, plan.Doors)
		view = st.View()
	})

	result := "empty"
	if report.Committed() {
		result = "ok"
	}
	h.metrics.observeImport(result)
	log.Printf("[EDITOR] Imported %s into session %s: %d walls, %d doors", file.Filename, s.ID, report.WallsAdded, report.DoorsAdded)

	return c.JSON(fiber.Map{
		"report": report,
		"view":   view,
	})
}

// ============================================================
// Helpers
// ============================================================

func (h *EditorHandler) lookup(c fiber.Ctx) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Params("id"))
	return s, err == nil
}

func sessionNotFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": session.ErrNotFound.Error()})
}

func parseFloatQuery(c fiber.Ctx, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
