// Package memory provides in-memory implementations of storage ports.
// Used by tests and by the "memory" database driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// HeroStore is an in-memory implementation of ports.HeroStore.
type HeroStore struct {
	mu     sync.RWMutex
	heroes map[int64]hero.Hero
	nextID int64
}

// NewHeroStore creates a new in-memory hero store.
func NewHeroStore() *HeroStore {
	return &HeroStore{heroes: make(map[int64]hero.Hero)}
}

// List returns all heroes ordered by ID.
func (s *HeroStore) List(ctx context.Context) ([]hero.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	heroes := make([]hero.Hero, 0, len(s.heroes))
	for _, h := range s.heroes {
		heroes = append(heroes, h)
	}
	sort.Slice(heroes, func(i, j int) bool { return heroes[i].ID < heroes[j].ID })
	return heroes, nil
}

// Get retrieves a hero by ID.
func (s *HeroStore) Get(ctx context.Context, id int64) (hero.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.heroes[id]
	if !ok {
		return hero.Hero{}, ports.ErrNotFound
	}
	return h, nil
}

// Create stores a new hero.
func (s *HeroStore) Create(ctx context.Context, h hero.Hero) (hero.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	s.nextID++
	h.ID = s.nextID
	s.heroes[h.ID] = h
	return h, nil
}

// Reset removes all heroes and restarts ID assignment.
func (s *HeroStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes = make(map[int64]hero.Hero)
	s.nextID = 0
}

// Ensure interface compliance.
var _ ports.HeroStore = (*HeroStore)(nil)
