// Package app contains the HeroService that reads heroes and powers and
// assigns powers to heroes.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

var (
	// ErrHeroNotFound is returned by GetHero when the hero does not exist.
	ErrHeroNotFound = errors.New("hero not found")

	// ErrReferenceNotFound is returned by CreateHeroPower when the hero or
	// the power it names does not exist.
	ErrReferenceNotFound = errors.New("power or hero doesn't exist")
)

// HeroService coordinates the hero, power and hero-power stores.
// It holds no state of its own; all I/O goes through the injected ports.
type HeroService struct {
	heroes     ports.HeroStore
	powers     ports.PowerStore
	heroPowers ports.HeroPowerStore
	clock      ports.Clock
	logger     zerolog.Logger
}

// NewHeroService creates a new hero service.
func NewHeroService(stores ports.Stores, clock ports.Clock, logger zerolog.Logger) *HeroService {
	return &HeroService{
		heroes:     stores.Heroes,
		powers:     stores.Powers,
		heroPowers: stores.HeroPowers,
		clock:      clock,
		logger:     logger,
	}
}

// ListHeroes returns every hero ordered by ID.
func (s *HeroService) ListHeroes(ctx context.Context) ([]hero.Hero, error) {
	heroes, err := s.heroes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}
	return heroes, nil
}

// GetHero returns a hero together with the powers reached through its
// hero_powers rows.
func (s *HeroService) GetHero(ctx context.Context, id int64) (hero.Detail, error) {
	h, err := s.heroes.Get(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return hero.Detail{}, ErrHeroNotFound
	}
	if err != nil {
		return hero.Detail{}, fmt.Errorf("get hero %d: %w", id, err)
	}

	powers, err := s.heroPowers.ListByHero(ctx, id)
	if err != nil {
		return hero.Detail{}, fmt.Errorf("list powers of hero %d: %w", id, err)
	}

	return hero.Detail{Hero: h, Powers: powers}, nil
}

// ListPowers returns every power ordered by ID.
func (s *HeroService) ListPowers(ctx context.Context) ([]hero.Power, error) {
	powers, err := s.powers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list powers: %w", err)
	}
	return powers, nil
}

// CreateHeroPower assigns a power to a hero and returns the power.
//
// The hero and power must both exist, otherwise ErrReferenceNotFound is
// returned. An unknown strength yields *hero.ValidationError. Nothing is
// written in either case.
func (s *HeroService) CreateHeroPower(ctx context.Context, strength string, heroID, powerID int64) (hero.Power, error) {
	p, err := s.powers.Get(ctx, powerID)
	if errors.Is(err, ports.ErrNotFound) {
		return hero.Power{}, ErrReferenceNotFound
	}
	if err != nil {
		return hero.Power{}, fmt.Errorf("get power %d: %w", powerID, err)
	}

	if _, err := s.heroes.Get(ctx, heroID); errors.Is(err, ports.ErrNotFound) {
		return hero.Power{}, ErrReferenceNotFound
	} else if err != nil {
		return hero.Power{}, fmt.Errorf("get hero %d: %w", heroID, err)
	}

	hp, err := hero.NewHeroPower(strength, heroID, powerID)
	if err != nil {
		return hero.Power{}, err
	}
	hp.CreatedAt = s.clock.Now()

	hp, err = s.heroPowers.Create(ctx, hp)
	if err != nil {
		return hero.Power{}, fmt.Errorf("create hero power: %w", err)
	}

	s.logger.Info().
		Int64("hero_power_id", hp.ID).
		Int64("hero_id", heroID).
		Int64("power_id", powerID).
		Str("strength", string(hp.Strength)).
		Msg("power assigned to hero")

	return p, nil
}
