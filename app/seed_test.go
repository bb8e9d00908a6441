package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/superheroes/adapters/clock"
	"github.com/artpar/superheroes/adapters/memory"
	"github.com/artpar/superheroes/app"
	"github.com/artpar/superheroes/domain/hero"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBackend()

	res, err := app.Seed(ctx, backend.Stores(), clock.NewFake(epoch))
	require.NoError(t, err)
	assert.Equal(t, 10, res.Heroes)
	assert.Equal(t, 4, res.Powers)
	assert.Equal(t, 12, res.HeroPowers)

	powers, err := backend.Powers.List(ctx)
	require.NoError(t, err)
	for _, p := range powers {
		assert.GreaterOrEqual(t, len([]rune(p.Description)), hero.MinDescriptionLength, p.Name)
	}

	n, err := backend.HeroPowers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.HeroPowers, n)
}

func TestSeed_AfterReset(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBackend()

	_, err := app.Seed(ctx, backend.Stores(), clock.Real{})
	require.NoError(t, err)
	require.NoError(t, backend.Reset(ctx))
	_, err = app.Seed(ctx, backend.Stores(), clock.Real{})
	require.NoError(t, err)

	heroes, err := backend.Heroes.List(ctx)
	require.NoError(t, err)
	require.Len(t, heroes, 10)
	assert.Equal(t, int64(1), heroes[0].ID)
}
