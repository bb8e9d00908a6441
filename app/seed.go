package app

import (
	"context"
	"fmt"

	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

// SeedResult counts the rows written by Seed.
type SeedResult struct {
	Heroes     int
	Powers     int
	HeroPowers int
}

var seedHeroes = []struct{ name, superName string }{
	{"Kamala Khan", "Ms. Marvel"},
	{"Doreen Green", "Squirrel Girl"},
	{"Gwen Stacy", "Spider-Gwen"},
	{"Janet Van Dyne", "The Wasp"},
	{"Wanda Maximoff", "Scarlet Witch"},
	{"Carol Danvers", "Captain Marvel"},
	{"Jean Grey", "Dark Phoenix"},
	{"Ororo Munroe", "Storm"},
	{"Kitty Pryde", "Shadowcat"},
	{"Elektra Natchios", "Elektra"},
}

var seedPowers = []struct{ name, description string }{
	{"super strength", "gives the wielder super-human strengths"},
	{"flight", "gives the wielder the ability to fly through the skies at supersonic speed"},
	{"super human senses", "allows the wielder to use her senses at a super-human level"},
	{"elasticity", "can stretch the human body to extreme lengths"},
}

// seedAssignments lists (hero index, power index, strength) triples.
var seedAssignments = []struct {
	hero, power int
	strength    hero.Strength
}{
	{0, 3, hero.StrengthStrong},
	{0, 1, hero.StrengthAverage},
	{1, 0, hero.StrengthStrong},
	{2, 2, hero.StrengthAverage},
	{3, 1, hero.StrengthWeak},
	{4, 0, hero.StrengthAverage},
	{5, 1, hero.StrengthStrong},
	{5, 0, hero.StrengthStrong},
	{6, 2, hero.StrengthWeak},
	{7, 1, hero.StrengthAverage},
	{8, 2, hero.StrengthWeak},
	{9, 0, hero.StrengthAverage},
}

// Seed writes a fixed sample set of heroes, powers and hero powers.
// Powers go through hero.NewPower, so the description rule applies.
func Seed(ctx context.Context, stores ports.Stores, clock ports.Clock) (SeedResult, error) {
	var res SeedResult

	heroIDs := make([]int64, len(seedHeroes))
	for i, s := range seedHeroes {
		h := hero.NewHero(s.name, s.superName)
		h.CreatedAt = clock.Now()
		created, err := stores.Heroes.Create(ctx, h)
		if err != nil {
			return res, fmt.Errorf("seed hero %q: %w", s.name, err)
		}
		heroIDs[i] = created.ID
		res.Heroes++
	}

	powerIDs := make([]int64, len(seedPowers))
	for i, s := range seedPowers {
		p, err := hero.NewPower(s.name, s.description)
		if err != nil {
			return res, fmt.Errorf("seed power %q: %w", s.name, err)
		}
		p.CreatedAt = clock.Now()
		created, err := stores.Powers.Create(ctx, p)
		if err != nil {
			return res, fmt.Errorf("seed power %q: %w", s.name, err)
		}
		powerIDs[i] = created.ID
		res.Powers++
	}

	for _, a := range seedAssignments {
		hp, err := hero.NewHeroPower(string(a.strength), heroIDs[a.hero], powerIDs[a.power])
		if err != nil {
			return res, fmt.Errorf("seed hero power: %w", err)
		}
		hp.CreatedAt = clock.Now()
		if _, err := stores.HeroPowers.Create(ctx, hp); err != nil {
			return res, fmt.Errorf("seed hero power: %w", err)
		}
		res.HeroPowers++
	}

	return res, nil
}
