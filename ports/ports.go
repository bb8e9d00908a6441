// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/artpar/superheroes/domain/hero"
)

// ErrNotFound is returned by stores when an entity does not exist.
var ErrNotFound = errors.New("not found")

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// HeroStore persists heroes.
type HeroStore interface {
	// List returns all heroes ordered by ID.
	List(ctx context.Context) ([]hero.Hero, error)

	// Get retrieves a hero by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id int64) (hero.Hero, error)

	// Create stores a new hero and returns it with ID and CreatedAt set.
	Create(ctx context.Context, h hero.Hero) (hero.Hero, error)
}

// PowerStore persists powers.
type PowerStore interface {
	// List returns all powers ordered by ID.
	List(ctx context.Context) ([]hero.Power, error)

	// Get retrieves a power by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id int64) (hero.Power, error)

	// Create stores a new power. Descriptions shorter than
	// hero.MinDescriptionLength are rejected with *hero.ValidationError.
	Create(ctx context.Context, p hero.Power) (hero.Power, error)
}

// HeroPowerStore persists hero-power associations.
type HeroPowerStore interface {
	// Create stores a new association. Unknown strengths are rejected with
	// *hero.ValidationError. Hero and power existence is NOT checked.
	Create(ctx context.Context, hp hero.HeroPower) (hero.HeroPower, error)

	// ListByHero returns the powers reached through a hero's join rows,
	// ordered by join row ID. Duplicated powers appear once per row.
	ListByHero(ctx context.Context, heroID int64) ([]hero.AssignedPower, error)

	// Count returns the number of association rows.
	Count(ctx context.Context) (int, error)
}

// Pinger checks store connectivity.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Stores groups the data store ports used by the application.
type Stores struct {
	Heroes     HeroStore
	Powers     PowerStore
	HeroPowers HeroPowerStore
}

// Database is the lifecycle surface shared by every storage backend.
type Database interface {
	Pinger

	// Migrate brings the schema up to date. Applied versions are skipped.
	Migrate(ctx context.Context) error

	// Reset deletes all rows and restarts ID assignment.
	Reset(ctx context.Context) error

	Close() error
}
