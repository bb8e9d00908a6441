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

// HeroStore implements ports.HeroStore using PostgreSQL.
type HeroStore struct {
	db *DB
}

// NewHeroStore creates a new PostgreSQL hero store.
func NewHeroStore(db *DB) *HeroStore {
	return &HeroStore{db: db}
}

// List returns all heroes ordered by ID.
func (s *HeroStore) List(ctx context.Context) ([]hero.Hero, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, super_name, created_at, updated_at
		FROM heroes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query heroes: %w", err)
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
	row := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, super_name, created_at, updated_at
		FROM heroes
		WHERE id = $1
	`, id)

	h, err := scanHero(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return hero.Hero{}, ports.ErrNotFound
	}
	return h, err
}

// Create stores a new hero.
func (s *HeroStore) Create(ctx context.Context, h hero.Hero) (hero.Hero, error) {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO heroes (name, super_name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, h.Name, h.SuperName, h.CreatedAt).Scan(&h.ID)
	if err != nil {
		return hero.Hero{}, fmt.Errorf("insert hero: %w", err)
	}
	return h, nil
}

func scanHero(row pgx.Row) (hero.Hero, error) {
	var h hero.Hero
	var name, superName *string

	if err := row.Scan(&h.ID, &name, &superName, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return hero.Hero{}, err
	}

	h.Name = deref(name)
	h.SuperName = deref(superName)
	return h, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ensure interface compliance.
var _ ports.HeroStore = (*HeroStore)(nil)
