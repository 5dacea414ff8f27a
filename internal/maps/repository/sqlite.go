package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"map-editor/internal/maps/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("map not found")

// timeLayout имеет фиксированную ширину, поэтому строковый порядок
// created_at совпадает с порядком во времени.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции по порядку имён.
func (r *Repository) Init(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Create сохраняет карту и индекс её маячков одной транзакцией.
func (r *Repository) Create(ctx context.Context, m *models.Map) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO maps (id, address, azimuth, document, created_at)
        VALUES (?, ?, ?, ?, ?)
    `, m.ID, m.Address, m.Azimuth, string(m.Document), m.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert map: %w", err)
	}

	for _, id := range m.BeaconIDs {
		_, err = tx.ExecContext(ctx, `
            INSERT OR IGNORE INTO map_beacons (beacon_id, map_id) VALUES (?, ?)
        `, id, m.ID)
		if err != nil {
			return fmt.Errorf("insert beacon %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Map, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, address, azimuth, document, created_at
        FROM maps
        WHERE id = ?
    `, id)
	return r.scan(ctx, row)
}

// GetByAddress возвращает последнюю сохранённую версию карты по адресу.
func (r *Repository) GetByAddress(ctx context.Context, address string) (*models.Map, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, address, azimuth, document, created_at
        FROM maps
        WHERE address = ?
        ORDER BY created_at DESC, rowid DESC
        LIMIT 1
    `, address)
	return r.scan(ctx, row)
}

// GetByBeacon находит последнюю карту, в которой есть маячок с данным id.
func (r *Repository) GetByBeacon(ctx context.Context, beaconID string) (*models.Map, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT m.id, m.address, m.azimuth, m.document, m.created_at
        FROM maps m
        JOIN map_beacons b ON b.map_id = m.id
        WHERE b.beacon_id = ?
        ORDER BY m.created_at DESC, m.rowid DESC
        LIMIT 1
    `, beaconID)
	return r.scan(ctx, row)
}

func (r *Repository) scan(ctx context.Context, row *sql.Row) (*models.Map, error) {
	var (
		m         models.Map
		document  string
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.Address, &m.Azimuth, &document, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m.Document = []byte(document)

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	m.CreatedAt = t

	ids, err := r.beaconIDs(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.BeaconIDs = ids
	return &m, nil
}

func (r *Repository) beaconIDs(ctx context.Context, mapID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT beacon_id FROM map_beacons WHERE map_id = ? ORDER BY beacon_id
    `, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
