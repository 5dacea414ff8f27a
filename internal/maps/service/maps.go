package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"map-editor/internal/maps/cache"
	"map-editor/internal/maps/events"
	"map-editor/internal/maps/models"
	"map-editor/internal/maps/repository"
)

var ErrNotFound = repository.ErrNotFound

// ValidationError означает, что присланный документ не является картой.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

type Store interface {
	Create(ctx context.Context, m *models.Map) error
	GetByID(ctx context.Context, id string) (*models.Map, error)
	GetByAddress(ctx context.Context, address string) (*models.Map, error)
	GetByBeacon(ctx context.Context, beaconID string) (*models.Map, error)
}

// ============================================================
// Map Service
// ============================================================

type MapService struct {
	store     Store
	cache     cache.Cache
	publisher events.Publisher
	now       func() time.Time
}

func NewMapService(store Store, c cache.Cache, p events.Publisher) *MapService {
	if c == nil {
		c = cache.Noop{}
	}
	if p == nil {
		p = events.Noop{}
	}
	return &MapService{
		store:     store,
		cache:     c,
		publisher: p,
		now:       time.Now,
	}
}

// Create проверяет документ, сохраняет его как новую версию карты адреса,
// обновляет кэш по её маячкам и публикует map.created. Ошибка публикации
// не отменяет сохранение.
func (s *MapService) Create(ctx context.Context, raw []byte) (*models.Map, error) {
	doc, err := models.ParseDocument(raw)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	m := &models.Map{
		ID:        uuid.NewString(),
		Address:   strings.TrimSpace(doc.Properties.MustString("address")),
		Azimuth:   doc.Properties.MustFloat64("azimuth", 0),
		BeaconIDs: doc.BeaconIDs(),
		CreatedAt: s.now().UTC(),
		Document:  append([]byte(nil), raw...),
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("[MAPS] Map %s saved for %q with %d beacons", m.ID, m.Address, len(m.BeaconIDs))

	// новая версия сразу вытесняет закэшированные ответы по её маячкам
	for _, id := range m.BeaconIDs {
		s.cache.Set(ctx, cache.BeaconKey(id), m)
	}

	if err := s.publisher.MapCreated(ctx, m); err != nil {
		log.Printf("[MAPS] Publish map.created %s failed: %v", m.ID, err)
	}
	return m, nil
}

func (s *MapService) ByID(ctx context.Context, id string) (*models.Map, error) {
	return s.store.GetByID(ctx, id)
}

// ByAddress возвращает последнюю версию карты по адресу. Кэш не
// используется: новая версия должна быть видна сразу после сохранения.
func (s *MapService) ByAddress(ctx context.Context, address string) (*models.Map, error) {
	return s.store.GetByAddress(ctx, strings.TrimSpace(address))
}

// ByBeacon находит карту по идентификатору маячка, сначала в кэше.
func (s *MapService) ByBeacon(ctx context.Context, beaconID string) (*models.Map, error) {
	key := cache.BeaconKey(beaconID)
	if m, ok := s.cache.Get(ctx, key); ok {
		return m, nil
	}

	m, err := s.store.GetByBeacon(ctx, beaconID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, m)
	return m, nil
}
