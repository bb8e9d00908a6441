package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// HeroPowerStore implements ports.HeroPowerStore using SQLite.
type HeroPowerStore struct {
	db *DB
}

// NewHeroPowerStore creates a new SQLite hero power store.
func NewHeroPowerStore(db *DB) *HeroPowerStore {
	return &HeroPowerStore{db: db}
}

// Create stores a new association.
func (s *HeroPowerStore) Create(ctx context.Context, hp hero.HeroPower) (hero.HeroPower, error) {
	if err := hero.ValidateStrength(hp.Strength); err != nil {
		return hero.HeroPower{}, err
	}
	if hp.CreatedAt.IsZero() {
		hp.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO hero_powers (strength, hero_id, power_id, created_at)
		VALUES (?, ?, ?, ?)
	`, string(hp.Strength), hp.HeroID, hp.PowerID, hp.CreatedAt)
	if err != nil {
		return hero.HeroPower{}, err
	}

	hp.ID, err = result.LastInsertId()
	if err != nil {
		return hero.HeroPower{}, err
	}
	return hp, nil
}

// ListByHero returns the powers assigned to a hero in join row order.
func (s *HeroPowerStore) ListByHero(ctx context.Context, heroID int64) ([]hero.AssignedPower, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hp.id, hp.strength,
		       p.id, p.name, p.description, p.created_at, p.updated_at
		FROM hero_powers hp
		INNER JOIN powers p ON p.id = hp.power_id
		WHERE hp.hero_id = ?
		ORDER BY hp.id ASC
	`, heroID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := []hero.AssignedPower{}
	for rows.Next() {
		var ap hero.AssignedPower
		var strength string
		var name, description sql.NullString
		var updatedAt sql.NullTime

		err := rows.Scan(
			&ap.HeroPowerID, &strength,
			&ap.Power.ID, &name, &description, &ap.Power.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}

		ap.Strength = hero.Strength(strength)
		ap.Power.Name = name.String
		ap.Power.Description = description.String
		ap.Power.UpdatedAt = nullTimePtr(updatedAt)
		assigned = append(assigned, ap)
	}
	return assigned, rows.Err()
}

// Count returns the number of association rows.
func (s *HeroPowerStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hero_powers`).Scan(&n)
	return n, err
}

// Ensure interface compliance.
var _ ports.HeroPowerStore = (*HeroPowerStore)(nil)
