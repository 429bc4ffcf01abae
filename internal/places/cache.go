package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wayplan.openmobility.org/internal/models"
)

// Cache is a SQLite-backed store of resolved places, keyed by provider
// place ID. Editing a plan re-resolves the same handful of places over and
// over; the cache keeps those edits from re-hitting the provider.
type Cache struct {
	DB *sql.DB
}

// NewCache wraps an open database handle.
func NewCache(db *sql.DB) *Cache {
	return &Cache{DB: db}
}

// Init creates the cache schema if it does not exist.
func (c *Cache) Init(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("place cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS place_cache (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        address TEXT NOT NULL DEFAULT '',
        lat REAL NOT NULL,
        lon REAL NOT NULL,
        resolved_at INTEGER NOT NULL
    );
	`
	if _, err := c.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("place cache: create schema: %w", err)
	}
	return nil
}

// Get returns the cached place for id, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, id string) (*models.Place, error) {
	if c.DB == nil {
		return nil, errors.New("place cache: db is nil")
	}
	if id == "" {
		return nil, errors.New("place cache: id must not be empty")
	}

	q := `
	SELECT id, name, address, lat, lon
    FROM place_cache
    WHERE id = ?;
	`

	var place models.Place
	err := c.DB.QueryRowContext(ctx, q, id).Scan(
		&place.ID, &place.Name, &place.Address,
		&place.Location.Lat, &place.Location.Lon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("place cache: query place_cache table: %w", err)
	}
	return &place, nil
}

// Put stores or refreshes a resolved place.
func (c *Cache) Put(ctx context.Context, place *models.Place, resolvedAtUnixMilli int64) error {
	if c.DB == nil {
		return errors.New("place cache: db is nil")
	}
	if place == nil || place.ID == "" {
		return errors.New("place cache: place with non-empty id required")
	}

	q := `
	INSERT OR REPLACE INTO place_cache (id, name, address, lat, lon, resolved_at)
    VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := c.DB.ExecContext(ctx, q,
		place.ID, place.Name, place.Address,
		place.Location.Lat, place.Location.Lon, resolvedAtUnixMilli,
	)
	if err != nil {
		return fmt.Errorf("place cache: insert id=%q: %w", place.ID, err)
	}
	return nil
}

// All returns every cached place, most recently resolved first. Used to
// rebuild the spatial index at startup.
func (c *Cache) All(ctx context.Context) ([]models.Place, error) {
	if c.DB == nil {
		return nil, errors.New("place cache: db is nil")
	}

	q := `
	SELECT id, name, address, lat, lon
    FROM place_cache
    ORDER BY resolved_at DESC;
	`

	rows, err := c.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("place cache: query place_cache table: %w", err)
	}
	defer rows.Close()

	var out []models.Place
	for rows.Next() {
		var place models.Place
		if err := rows.Scan(&place.ID, &place.Name, &place.Address, &place.Location.Lat, &place.Location.Lon); err != nil {
			return nil, fmt.Errorf("place cache: scan rows: %w", err)
		}
		out = append(out, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("place cache: row iteration: %w", err)
	}
	return out, nil
}
