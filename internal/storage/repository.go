package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/petmap/internal/poi"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository stores the real event catalog.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

const selectEvents = `
	SELECT name, latitude, longitude, event_date, address, url, venue, prefecture, city
	FROM events
`

// ListEvents returns the whole catalog ordered by id, tagged as real events.
func (r *Repository) ListEvents(ctx context.Context) ([]poi.PointOfInterest, error) {
	rows, err := r.q.Query(ctx, selectEvents+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return scanEvents(rows)
}

// ListEventsInBounds returns catalog entries inside b, ordered by id.
func (r *Repository) ListEventsInBounds(ctx context.Context, b poi.Bounds) ([]poi.PointOfInterest, error) {
	const where = `
		WHERE latitude BETWEEN $1 AND $2
		AND longitude BETWEEN $3 AND $4
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, selectEvents+where, b.MinLat, b.MaxLat, b.MinLng, b.MaxLng)
	if err != nil {
		return nil, fmt.Errorf("querying events in bounds: %w", err)
	}
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]poi.PointOfInterest, error) {
	defer rows.Close()

	results := []poi.PointOfInterest{}
	for rows.Next() {
		p := poi.PointOfInterest{Category: poi.ReservedCategory, Source: poi.SourceReal}

		if err := rows.Scan(
			&p.Name,
			&p.Latitude,
			&p.Longitude,
			&p.Date,
			&p.Address,
			&p.URL,
			&p.Venue,
			&p.Prefecture,
			&p.City,
		); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}

		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event rows: %w", err)
	}

	return results, nil
}

// UpsertEvents inserts or updates each event and returns how many rows were written.
// On conflict (name, latitude, longitude) the descriptive fields are replaced.
func (r *Repository) UpsertEvents(ctx context.Context, events []poi.PointOfInterest) (int, error) {
	const q = `
		INSERT INTO events (name, latitude, longitude, event_date, address, url, venue, prefecture, city, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (name, latitude, longitude) DO UPDATE
		SET event_date = EXCLUDED.event_date,
		    address    = EXCLUDED.address,
		    url        = EXCLUDED.url,
		    venue      = EXCLUDED.venue,
		    prefecture = EXCLUDED.prefecture,
		    city       = EXCLUDED.city,
		    updated_at = EXCLUDED.updated_at
	`

	written := 0
	for _, e := range events {
		if _, err := r.q.Exec(ctx, q,
			e.Name, e.Latitude, e.Longitude,
			e.Date, e.Address, e.URL, e.Venue, e.Prefecture, e.City,
		); err != nil {
			return written, fmt.Errorf("upserting event %s: %w", e.Name, err)
		}
		written++
	}

	return written, nil
}
