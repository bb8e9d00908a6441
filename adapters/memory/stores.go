package memory

import (
	"context"

	"github.com/artpar/superheroes/ports"
)

// Backend bundles the three in-memory stores so they can be reset and
// pinged as one database.
type Backend struct {
	Heroes     *HeroStore
	Powers     *PowerStore
	HeroPowers *HeroPowerStore
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	powers := NewPowerStore()
	return &Backend{
		Heroes:     NewHeroStore(),
		Powers:     powers,
		HeroPowers: NewHeroPowerStore(powers),
	}
}

// Stores returns the backend's stores as ports.
func (b *Backend) Stores() ports.Stores {
	return ports.Stores{
		Heroes:     b.Heroes,
		Powers:     b.Powers,
		HeroPowers: b.HeroPowers,
	}
}

// Migrate is a no-op; the in-memory backend has no schema.
func (b *Backend) Migrate(ctx context.Context) error { return nil }

// Reset empties every store.
func (b *Backend) Reset(ctx context.Context) error {
	b.HeroPowers.Reset()
	b.Powers.Reset()
	b.Heroes.Reset()
	return nil
}

// PingContext always succeeds.
func (b *Backend) PingContext(ctx context.Context) error { return nil }

// Close is a no-op.
func (b *Backend) Close() error { return nil }
