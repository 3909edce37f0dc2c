// Package theme persists the light/dark appearance preference, the terminal
// counterpart of the web client's theme switcher.
package theme

import (
	"context"
	"fmt"

	"github.com/dmorozov/testoria/internal/common"
	"github.com/dmorozov/testoria/internal/storage"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Manager reads and writes the persisted theme preference.
type Manager struct {
	store    storage.Storage
	fallback Theme
}

// NewManager returns a Manager that reports fallback while no preference
// has been saved yet.
func NewManager(store storage.Storage, fallback Theme) *Manager {
	if fallback != Dark {
		fallback = Light
	}
	return &Manager{store: store, fallback: fallback}
}

// Current returns the saved preference, or the fallback when none is saved
// or the saved value is not a known theme.
func (m *Manager) Current(ctx context.Context) (Theme, error) {
	data, err := m.store.Get(ctx, common.KeyTheme)
	if err != nil {
		return m.fallback, fmt.Errorf("failed to load theme: %w", err)
	}

	switch Theme(data) {
	case Light, Dark:
		return Theme(data), nil
	default:
		return m.fallback, nil
	}
}

// Set persists the given preference.
func (m *Manager) Set(ctx context.Context, t Theme) error {
	if t != Light && t != Dark {
		return fmt.Errorf("unknown theme %q", t)
	}
	if err := m.store.Set(ctx, common.KeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle flips between light and dark, persists the result, and returns it.
func (m *Manager) Toggle(ctx context.Context) (Theme, error) {
	current, err := m.Current(ctx)
	if err != nil {
		return current, err
	}

	next := Light
	if current == Light {
		next = Dark
	}

	if err := m.Set(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
