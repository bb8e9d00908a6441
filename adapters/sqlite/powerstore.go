package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// PowerStore implements ports.PowerStore using SQLite.
type PowerStore struct {
	db *DB
}

// NewPowerStore creates a new SQLite power store.
func NewPowerStore(db *DB) *PowerStore {
	return &PowerStore{db: db}
}

// List returns all powers ordered by ID.
func (s *PowerStore) List(ctx context.Context) ([]hero.Power, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM powers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
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
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM powers
		WHERE id = ?
	`, id)

	p, err := scanPower(row)
	if errors.Is(err, sql.ErrNoRows) {
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

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO powers (name, description, created_at)
		VALUES (?, ?, ?)
	`, p.Name, p.Description, p.CreatedAt)
	if err != nil {
		return hero.Power{}, err
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return hero.Power{}, err
	}
	return p, nil
}

func scanPower(sc scanner) (hero.Power, error) {
	var p hero.Power
	var name, description sql.NullString
	var updatedAt sql.NullTime

	if err := sc.Scan(&p.ID, &name, &description, &p.CreatedAt, &updatedAt); err != nil {
		return hero.Power{}, err
	}

	p.Name = name.String
	p.Description = description.String
	p.UpdatedAt = nullTimePtr(updatedAt)
	return p, nil
}

// Ensure interface compliance.
var _ ports.PowerStore = (*PowerStore)(nil)
