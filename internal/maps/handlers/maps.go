package handlers

import (
	"context"
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"map-editor/internal/maps/models"
	"map-editor/internal/maps/service"
)

// ============================================================
// Maps Handler
// ============================================================

// MapService перечисляет операции бэкенда карт, нужные обработчикам.
type MapService interface {
	Create(ctx context.Context, raw []byte) (*models.Map, error)
	ByID(ctx context.Context, id string) (*models.Map, error)
	ByAddress(ctx context.Context, address string) (*models.Map, error)
	ByBeacon(ctx context.Context, beaconID string) (*models.Map, error)
}

type MapsHandler struct {
	svc MapService
}

func NewMapsHandler(svc MapService) *MapsHandler {
	return &MapsHandler{svc: svc}
}

func (h *MapsHandler) Register(router fiber.Router) {
	router.Post("/map", h.Create)
	router.Get("/map/address/:address", h.ByAddress)
	router.Get("/map/beacon/:id", h.ByBeacon)
	router.Get("/map/:id", h.ByID)
}

// Create принимает документ карты от редактора.
func (h *MapsHandler) Create(c fiber.Ctx) error {
	m, err := h.svc.Create(c.Context(), c.Body())
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
		}
		log.Printf("[MAPS] Create error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save map"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        m.ID,
		"address":   m.Address,
		"beaconIds": m.BeaconIDs,
		"createdAt": m.CreatedAt,
	})
}

func (h *MapsHandler) ByID(c fiber.Ctx) error {
	m, err := h.svc.ByID(c.Context(), c.Params("id"))
	return h.document(c, m, err)
}

func (h *MapsHandler) ByAddress(c fiber.Ctx) error {
	address, err := url.PathUnescape(c.Params("address"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid address"})
	}
	m, err := h.svc.ByAddress(c.Context(), address)
	return h.document(c, m, err)
}

func (h *MapsHandler) ByBeacon(c fiber.Ctx) error {
	m, err := h.svc.ByBeacon(c.Context(), c.Params("id"))
	return h.document(c, m, err)
}

// document отдаёт сохранённый GeoJSON как есть.
func (h *MapsHandler) document(c fiber.Ctx, m *models.Map, err error) error {
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "map not found"})
		}
		log.Printf("[MAPS] Lookup error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load map"})
	}

	c.Set("X-Map-Id", m.ID)
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(m.Document)
}
