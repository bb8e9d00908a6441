package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/superheroes/adapters/memory"
	"github.com/artpar/superheroes/domain/hero"
	"github.com/artpar/superheroes/ports"
)

func TestHeroStore_CreateListGet(t *testing.T) {
	store := memory.NewHeroStore()
	ctx := context.Background()

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a, err := store.Create(ctx, hero.NewHero("Kamala Khan", "Ms. Marvel"))
	require.NoError(t, err)
	b, err := store.Create(ctx, hero.NewHero("Doreen Green", "Squirrel Girl"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Kamala Khan", list[0].Name)
	assert.Equal(t, "Doreen Green", list[1].Name)

	got, err := store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Squirrel Girl", got.SuperName)

	_, err = store.Get(ctx, 99)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestHeroStore_ConcurrentCreate(t *testing.T) {
	store := memory.NewHeroStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, hero.NewHero("n", "s"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
	for i, h := range list {
		assert.Equal(t, int64(i+1), h.ID)
	}
}

func TestPowerStore_RejectsShortDescription(t *testing.T) {
	store := memory.NewPowerStore()

	_, err := store.Create(context.Background(), hero.Power{Name: "blink", Description: "nineteen characters"})
	var verr *hero.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHeroPowerStore_ListByHero(t *testing.T) {
	ctx := context.Background()
	powers := memory.NewPowerStore()
	store := memory.NewHeroPowerStore(powers)

	p1, err := hero.NewPower("flight", "gives the wielder the ability to fly")
	require.NoError(t, err)
	p1, err = powers.Create(ctx, p1)
	require.NoError(t, err)
	p2, err := hero.NewPower("elasticity", "can stretch the human body to extreme lengths")
	require.NoError(t, err)
	p2, err = powers.Create(ctx, p2)
	require.NoError(t, err)

	for _, hp := range []hero.HeroPower{
		{Strength: hero.StrengthStrong, HeroID: 1, PowerID: p2.ID},
		{Strength: hero.StrengthWeak, HeroID: 2, PowerID: p1.ID},
		{Strength: hero.StrengthAverage, HeroID: 1, PowerID: p1.ID},
		{Strength: hero.StrengthAverage, HeroID: 1, PowerID: 404},
	} {
		_, err := store.Create(ctx, hp)
		require.NoError(t, err)
	}

	assigned, err := store.ListByHero(ctx, 1)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, p2.ID, assigned[0].Power.ID)
	assert.Equal(t, p1.ID, assigned[1].Power.ID)
	assert.Equal(t, hero.StrengthAverage, assigned[1].Strength)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = store.Create(ctx, hero.HeroPower{Strength: "Heroic", HeroID: 1, PowerID: p1.ID})
	var verr *hero.ValidationError
	require.ErrorAs(t, err, &verr)

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	heroes := memory.NewHeroStore()
	powers := memory.NewPowerStore()
	heroPowers := memory.NewHeroPowerStore(powers)

	_, err := heroes.Create(ctx, hero.NewHero("a", "b"))
	require.NoError(t, err)
	_, err = heroPowers.Create(ctx, hero.HeroPower{Strength: hero.StrengthWeak, HeroID: 1, PowerID: 1})
	require.NoError(t, err)

	heroes.Reset()
	powers.Reset()
	heroPowers.Reset()

	h, err := heroes.Create(ctx, hero.NewHero("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.ID)

	n, err := heroPowers.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
