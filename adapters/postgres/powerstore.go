package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// PowerStore implements ports.PowerStore using PostgreSQL.
type PowerStore struct {
	db *DB
}

// NewPowerStore creates a new PostgreSQL power store.
func NewPowerStore(db *DB) *PowerStore {
	return &PowerStore{db: db}
}

// List returns all powers ordered by ID.
func (s *PowerStore) List(ctx context.Context) ([]hero.Power, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM powers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query powers: %w", err)
	}
	defer rows.Close()

	powers := []hero.Power{}
	for rows.Next() {
		p, err := scanPower(rows)
		if err != nil {
			return nil, err
		}
		powers = append(powers, p)
	}
	return powers, rows.Err()
}

// Get retrieves a power by ID.
func (s *PowerStore) Get(ctx context.Context, id int64) (hero.Power, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM powers
		WHERE id = $1
	`, id)

	p, err := scanPower(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return hero.Power{}, ports.ErrNotFound
	}
	return p, err
}

// Create stores a new power.
func (s *PowerStore) Create(ctx context.Context, p hero.Power) (hero.Power, error) {
	if err := hero.ValidateDescription(p.Description); err != nil {
		return hero.Power{}, err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO powers (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, p.Name, p.Description, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return hero.Power{}, fmt.Errorf("insert power: %w", err)
	}
	return p, nil
}

func scanPower(row pgx.Row) (hero.Power, error) {
	var p hero.Power
	var name, description *string

	if err := row.Scan(&p.ID, &name, &description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return hero.Power{}, err
	}

	p.Name = deref(name)
	p.Description = deref(description)
	return p, nil
}

// Ensure interface compliance.
var _ ports.PowerStore = (*PowerStore)(nil)
