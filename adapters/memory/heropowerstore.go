package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// HeroPowerStore is an in-memory implementation of ports.HeroPowerStore.
// It reads power rows from the PowerStore it was built with.
type HeroPowerStore struct {
	mu     sync.RWMutex
	rows   []hero.HeroPower // ordered by ID
	nextID int64
	powers *PowerStore
}

// NewHeroPowerStore creates a new in-memory hero power store.
func NewHeroPowerStore(powers *PowerStore) *HeroPowerStore {
	return &HeroPowerStore{powers: powers}
}

// Create stores a new association.
func (s *HeroPowerStore) Create(ctx context.Context, hp hero.HeroPower) (hero.HeroPower, error) {
	if err := hero.ValidateStrength(hp.Strength); err != nil {
		return hero.HeroPower{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if hp.CreatedAt.IsZero() {
		hp.CreatedAt = time.Now().UTC()
	}
	s.nextID++
	hp.ID = s.nextID
	s.rows = append(s.rows, hp)
	return hp, nil
}

// ListByHero returns the powers assigned to a hero in join row order.
// Rows pointing at a missing power are skipped, as with an inner join.
func (s *HeroPowerStore) ListByHero(ctx context.Context, heroID int64) ([]hero.AssignedPower, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assigned := []hero.AssignedPower{}
	for _, hp := range s.rows {
		if hp.HeroID != heroID {
			continue
		}
		p, err := s.powers.Get(ctx, hp.PowerID)
		if errors.Is(err, ports.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		assigned = append(assigned, hero.AssignedPower{
			HeroPowerID: hp.ID,
			Strength:    hp.Strength,
			Power:       p,
		})
	}
	return assigned, nil
}

// Count returns the number of association rows.
func (s *HeroPowerStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

// Reset removes all associations and restarts ID assignment.
func (s *HeroPowerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.nextID = 0
}

// Ensure interface compliance.
var _ ports.HeroPowerStore = (*HeroPowerStore)(nil)
