package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// HeroPowerStore implements ports.HeroPowerStore using PostgreSQL.
type HeroPowerStore struct {
	db *DB
}

// NewHeroPowerStore creates a new PostgreSQL hero power store.
func NewHeroPowerStore(db *DB) *HeroPowerStore {
	return &HeroPowerStore{db: db}
}

// Create stores a new association. The foreign keys reject unknown
// hero and power IDs.
func (s *HeroPowerStore) Create(ctx context.Context, hp hero.HeroPower) (hero.HeroPower, error) {
	if err := hero.ValidateStrength(hp.Strength); err != nil {
		return hero.HeroPower{}, err
	}
	if hp.CreatedAt.IsZero() {
		hp.CreatedAt = time.Now().UTC()
	}

	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO hero_powers (strength, hero_id, power_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, string(hp.Strength), hp.HeroID, hp.PowerID, hp.CreatedAt).Scan(&hp.ID)
	if err != nil {
		return hero.HeroPower{}, fmt.Errorf("insert hero power: %w", err)
	}
	return hp, nil
}

// ListByHero returns the powers assigned to a hero in join row order.
func (s *HeroPowerStore) ListByHero(ctx context.Context, heroID int64) ([]hero.AssignedPower, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT hp.id, hp.strength,
		       p.id, p.name, p.description, p.created_at, p.updated_at
		FROM hero_powers hp
		INNER JOIN powers p ON p.id = hp.power_id
		WHERE hp.hero_id = $1
		ORDER BY hp.id ASC
	`, heroID)
	if err != nil {
		return nil, fmt.Errorf("query hero powers: %w", err)
	}
	defer rows.Close()

	assigned := []hero.AssignedPower{}
	for rows.Next() {
		var ap hero.AssignedPower
		var strength string
		var name, description *string

		err := rows.Scan(
			&ap.HeroPowerID, &strength,
			&ap.Power.ID, &name, &description, &ap.Power.CreatedAt, &ap.Power.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		ap.Strength = hero.Strength(strength)
		ap.Power.Name = deref(name)
		ap.Power.Description = deref(description)
		assigned = append(assigned, ap)
	}
	return assigned, rows.Err()
}

// Count returns the number of association rows.
func (s *HeroPowerStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM hero_powers`).Scan(&n)
	return n, err
}

// Ensure interface compliance.
var _ ports.HeroPowerStore = (*HeroPowerStore)(nil)
