package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// HeroStore implements ports.HeroStore using SQLite.
type HeroStore struct {
	db *DB
}

// NewHeroStore creates a new SQLite hero store.
func NewHeroStore(db *DB) *HeroStore {
	return &HeroStore{db: db}
}

// List returns all heroes ordered by ID.
func (s *HeroStore) List(ctx context.Context) ([]hero.Hero, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, super_name, created_at, updated_at
		FROM heroes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	heroes := []hero.Hero{}
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	return heroes, rows.Err()
}

// Get retrieves a hero by ID.
func (s *HeroStore) Get(ctx context.Context, id int64) (hero.Hero, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, super_name, created_at, updated_at
		FROM heroes
		WHERE id = ?
	`, id)

	h, err := scanHero(row)
	if errors.Is(err, sql.ErrNoRows) {
		return hero.Hero{}, ports.ErrNotFound
	}
	return h, err
}

// Create stores a new hero.
func (s *HeroStore) Create(ctx context.Context, h hero.Hero) (hero.Hero, error) {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO heroes (name, super_name, created_at)
		VALUES (?, ?, ?)
	`, h.Name, h.SuperName, h.CreatedAt)
	if err != nil {
		return hero.Hero{}, err
	}

	h.ID, err = result.LastInsertId()
	if err != nil {
		return hero.Hero{}, err
	}
	return h, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHero(sc scanner) (hero.Hero, error) {
	var h hero.Hero
	var name, superName sql.NullString
	var updatedAt sql.NullTime

	if err := sc.Scan(&h.ID, &name, &superName, &h.CreatedAt, &updatedAt); err != nil {
		return hero.Hero{}, err
	}

	h.Name = name.String
	h.SuperName = superName.String
	h.UpdatedAt = nullTimePtr(updatedAt)
	return h, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Ensure interface compliance.
var _ ports.HeroStore = (*HeroStore)(nil)
