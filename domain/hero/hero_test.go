package hero_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/artpar/superheroes/domain/hero"
)

func TestStrength_IsValid(t *testing.T) {
	tests := []struct {
		strength hero.Strength
		want     bool
	}{
		{hero.StrengthStrong, true},
		{hero.StrengthWeak, true},
		{hero.StrengthAverage, true},
		{"strong", false},
		{"Mighty", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.strength), func(t *testing.T) {
			if got := tt.strength.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.strength, got, tt.want)
			}
		})
	}
}

func TestNewPower(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{"exactly minimum", strings.Repeat("a", 20), false},
		{"long", "gives the wielder super-human strengths", false},
		{"one short", strings.Repeat("a", 19), true},
		{"empty", "", true},
		{"multibyte counted as runes", strings.Repeat("é", 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := hero.NewPower("flight", tt.description)
			if tt.wantErr {
				var verr *hero.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if verr.Field != "description" {
					t.Errorf("Field = %s, want description", verr.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Description != tt.description {
				t.Errorf("Description = %q, want %q", p.Description, tt.description)
			}
		})
	}
}

func TestPower_WithDescription(t *testing.T) {
	p, err := hero.NewPower("flight", "gives the wielder the ability to fly")
	if err != nil {
		t.Fatalf("new power: %v", err)
	}

	same, err := p.WithDescription("too short")
	if err == nil {
		t.Fatal("expected error for short description")
	}
	if same.Description != p.Description {
		t.Errorf("description changed on failure: %q", same.Description)
	}

	updated, err := p.WithDescription("gives the wielder the ability to hover")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description != "gives the wielder the ability to hover" {
		t.Errorf("Description = %q", updated.Description)
	}
	if p.Description != "gives the wielder the ability to fly" {
		t.Error("original power mutated")
	}
}

func TestNewHeroPower(t *testing.T) {
	for _, s := range hero.Strengths() {
		hp, err := hero.NewHeroPower(string(s), 1, 2)
		if err != nil {
			t.Fatalf("NewHeroPower(%s): %v", s, err)
		}
		if hp.Strength != s || hp.HeroID != 1 || hp.PowerID != 2 {
			t.Errorf("unexpected hero power %+v", hp)
		}
	}

	_, err := hero.NewHeroPower("Mighty", 1, 2)
	var verr *hero.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "strength" {
		t.Errorf("Field = %s, want strength", verr.Field)
	}
}
