package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/superheroes/adapters/clock"
	"github.com/artpar/superheroes/adapters/memory"
	"github.com/artpar/superheroes/app"
	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*app.HeroService, *memory.Backend) {
	t.Helper()
	backend := memory.NewBackend()
	svc := app.NewHeroService(backend.Stores(), clock.NewFake(epoch), zerolog.Nop())
	return svc, backend
}

func seedOne(t *testing.T, b *memory.Backend) (hero.Hero, hero.Power) {
	t.Helper()
	ctx := context.Background()

	h, err := b.Heroes.Create(ctx, hero.NewHero("Kamala Khan", "Ms. Marvel"))
	require.NoError(t, err)
	p, err := hero.NewPower("elasticity", "can stretch the human body to extreme lengths")
	require.NoError(t, err)
	p, err = b.Powers.Create(ctx, p)
	require.NoError(t, err)
	return h, p
}

func TestHeroService_GetHero(t *testing.T) {
	svc, b := newService(t)
	ctx := context.Background()
	h, p := seedOne(t, b)

	t.Run("without powers", func(t *testing.T) {
		d, err := svc.GetHero(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, h.Name, d.Hero.Name)
		assert.NotNil(t, d.Powers)
		assert.Empty(t, d.Powers)
	})

	t.Run("powers follow hero_powers rows", func(t *testing.T) {
		_, err := svc.CreateHeroPower(ctx, "Strong", h.ID, p.ID)
		require.NoError(t, err)
		_, err = svc.CreateHeroPower(ctx, "Weak", h.ID, p.ID)
		require.NoError(t, err)

		d, err := svc.GetHero(ctx, h.ID)
		require.NoError(t, err)
		require.Len(t, d.Powers, 2)
		assert.Equal(t, p.ID, d.Powers[0].Power.ID)
		assert.Equal(t, hero.StrengthWeak, d.Powers[1].Strength)
	})

	t.Run("missing hero", func(t *testing.T) {
		_, err := svc.GetHero(ctx, 404)
		assert.ErrorIs(t, err, app.ErrHeroNotFound)
	})
}

func TestHeroService_CreateHeroPower(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request writes one row", func(t *testing.T) {
		svc, b := newService(t)
		h, p := seedOne(t, b)

		got, err := svc.CreateHeroPower(ctx, "Average", h.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, p.Description, got.Description)

		n, err := b.HeroPowers.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	tests := []struct {
		name     string
		strength string
		heroID   func(hero.Hero) int64
		powerID  func(hero.Power) int64
		wantErr  error
		wantVal  bool
	}{
		{
			name:     "missing hero",
			strength: "Strong",
			heroID:   func(hero.Hero) int64 { return 999 },
			powerID:  func(p hero.Power) int64 { return p.ID },
			wantErr:  app.ErrReferenceNotFound,
		},
		{
			name:     "missing power",
			strength: "Strong",
			heroID:   func(h hero.Hero) int64 { return h.ID },
			powerID:  func(hero.Power) int64 { return 999 },
			wantErr:  app.ErrReferenceNotFound,
		},
		{
			name:     "existence checked before strength",
			strength: "Mighty",
			heroID:   func(hero.Hero) int64 { return 999 },
			powerID:  func(p hero.Power) int64 { return p.ID },
			wantErr:  app.ErrReferenceNotFound,
		},
		{
			name:     "invalid strength",
			strength: "strong",
			heroID:   func(h hero.Hero) int64 { return h.ID },
			powerID:  func(p hero.Power) int64 { return p.ID },
			wantVal:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, b := newService(t)
			h, p := seedOne(t, b)

			_, err := svc.CreateHeroPower(ctx, tt.strength, tt.heroID(h), tt.powerID(p))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantVal {
				var verr *hero.ValidationError
				assert.ErrorAs(t, err, &verr)
			}

			n, err := b.HeroPowers.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n, "no row may be written")
		})
	}
}

type failingHeroStore struct {
	ports.HeroStore
	err error
}

func (s failingHeroStore) List(ctx context.Context) ([]hero.Hero, error) { return nil, s.err }
func (s failingHeroStore) Get(ctx context.Context, id int64) (hero.Hero, error) {
	return hero.Hero{}, s.err
}

func TestHeroService_StoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	backend := memory.NewBackend()
	stores := backend.Stores()
	stores.Heroes = failingHeroStore{err: boom}
	svc := app.NewHeroService(stores, clock.Real{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.ListHeroes(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = svc.GetHero(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, app.ErrHeroNotFound)

	p, err := hero.NewPower("flight", "gives the wielder the ability to fly")
	require.NoError(t, err)
	p, err = backend.Powers.Create(ctx, p)
	require.NoError(t, err)

	_, err = svc.CreateHeroPower(ctx, "Strong", 1, p.ID)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, app.ErrReferenceNotFound)
}

func TestHeroService_ListPowersEmpty(t *testing.T) {
	svc, _ := newService(t)

	powers, err := svc.ListPowers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, powers)
	assert.Empty(t, powers)
}
