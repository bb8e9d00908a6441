package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// PowerStore is an in-memory implementation of ports.PowerStore.
type PowerStore struct {
	mu     sync.RWMutex
	powers map[int64]hero.Power
	nextID int64
}

// NewPowerStore creates a new in-memory power store.
func NewPowerStore() *PowerStore {
	return &PowerStore{powers: make(map[int64]hero.Power)}
}

// List returns all powers ordered by ID.
func (s *PowerStore) List(ctx context.Context) ([]hero.Power, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	powers := make([]hero.Power, 0, len(s.powers))
	for _, p := range s.powers {
		powers = append(powers, p)
	}
	sort.Slice(powers, func(i, j int) bool { return powers[i].ID < powers[j].ID })
	return powers, nil
}

// Get retrieves a power by ID.
func (s *PowerStore) Get(ctx context.Context, id int64) (hero.Power, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.powers[id]
	if !ok {
		return hero.Power{}, ports.ErrNotFound
	}
	return p, nil
}

// Create stores a new power.
func (s *PowerStore) Create(ctx context.Context, p hero.Power) (hero.Power, error) {
	if err := hero.ValidateDescription(p.Description); err != nil {
		return hero.Power{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.nextID++
	p.ID = s.nextID
	s.powers[p.ID] = p
	return p, nil
}

// Reset removes all powers and restarts ID assignment.
func (s *PowerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.powers = make(map[int64]hero.Power)
	s.nextID = 0
}

// Ensure interface compliance.
var _ ports.PowerStore = (*PowerStore)(nil)
