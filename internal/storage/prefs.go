package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/poetry/internal/domain"
)

// Preferences holds presentation settings, stored apart from the poems.
type Preferences struct {
	kv KV
}

func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv}
}

// Theme returns the stored theme, light when none is stored.
func (p *Preferences) Theme(ctx context.Context) (domain.Theme, error) {
	v, err := p.kv.Get(ctx, KeyTheme)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.ThemeLight, nil
		}
		return domain.ThemeLight, fmt.Errorf("failed to load theme: %w", err)
	}
	return domain.ParseTheme(v), nil
}

func (p *Preferences) SetTheme(ctx context.Context, t domain.Theme) error {
	if err := p.kv.Set(ctx, KeyTheme, string(domain.ParseTheme(string(t)))); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the stored theme and returns the new value.
func (p *Preferences) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	current, err := p.Theme(ctx)
	if err != nil {
		return current, err
	}
	next := current.Toggle()
	if err := p.SetTheme(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
