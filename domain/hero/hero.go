// Package hero provides hero, power and hero-power value types and pure
// validation functions.
// This package has NO dependencies on I/O or external packages.
package hero

import (
	"fmt"
	"time"
)

// MinDescriptionLength is the shortest description a Power may carry.
const MinDescriptionLength = 20

// Strength rates a hero's proficiency with a power.
type Strength string

const (
	StrengthStrong  Strength = "Strong"
	StrengthWeak    Strength = "Weak"
	StrengthAverage Strength = "Average"
)

// IsValid returns true if the strength is one of the known ratings.
// Matching is exact; "strong" is not a valid strength.
func (s Strength) IsValid() bool {
	switch s {
	case StrengthStrong, StrengthWeak, StrengthAverage:
		return true
	}
	return false
}

// Strengths returns all valid strengths in display order.
func Strengths() []Strength {
	return []Strength{StrengthStrong, StrengthWeak, StrengthAverage}
}

// ValidationError reports a field value outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Hero is a named entity with a superhero alias (immutable value type).
type Hero struct {
	ID        int64
	Name      string
	SuperName string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewHero creates an unsaved hero. Heroes carry no field rules.
func NewHero(name, superName string) Hero {
	return Hero{Name: name, SuperName: superName}
}

// Power is a named ability (immutable value type).
type Power struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NewPower creates an unsaved power, rejecting short descriptions.
func NewPower(name, description string) (Power, error) {
	if err := ValidateDescription(description); err != nil {
		return Power{}, err
	}
	return Power{Name: name, Description: description}, nil
}

// WithDescription returns a copy of the power with the description replaced.
// The receiver is returned unchanged alongside the error when the new value
// is too short.
func (p Power) WithDescription(description string) (Power, error) {
	if err := ValidateDescription(description); err != nil {
		return p, err
	}
	p.Description = description
	return p, nil
}

// ValidateDescription checks the minimum description length.
// Length is counted in characters, not bytes.
func ValidateDescription(description string) error {
	if len([]rune(description)) < MinDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("Description must be at least %d characters long", MinDescriptionLength),
		}
	}
	return nil
}

// HeroPower associates one hero with one power (immutable value type).
type HeroPower struct {
	ID        int64
	Strength  Strength
	HeroID    int64
	PowerID   int64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewHeroPower creates an unsaved association, rejecting unknown strengths.
// It does not check that the hero or power exist; callers do that first.
func NewHeroPower(strength string, heroID, powerID int64) (HeroPower, error) {
	if err := ValidateStrength(Strength(strength)); err != nil {
		return HeroPower{}, err
	}
	return HeroPower{
		Strength: Strength(strength),
		HeroID:   heroID,
		PowerID:  powerID,
	}, nil
}

// ValidateStrength checks the strength against the fixed set.
func ValidateStrength(s Strength) error {
	if !s.IsValid() {
		return &ValidationError{
			Field:   "strength",
			Message: "Strength must be a value either 'Strong', 'Weak' or 'Average'",
		}
	}
	return nil
}

// AssignedPower is a power reached through one of a hero's join rows.
type AssignedPower struct {
	HeroPowerID int64
	Strength    Strength
	Power       Power
}

// Detail is a hero together with its assigned powers, in join-row order.
type Detail struct {
	Hero   Hero
	Powers []AssignedPower
}
