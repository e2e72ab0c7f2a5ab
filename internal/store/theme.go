package store

import (
	"context"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// ThemeStore holds the light/dark preference.
type ThemeStore struct {
	base
	mu    sync.RWMutex
	theme domain.Theme
}

// NewThemeStore loads the theme, falling back to def.
func NewThemeStore(ctx context.Context, a *storage.Adapter, log *logger.Logger, def domain.Theme, opts ...Option) *ThemeStore {
	if def != domain.ThemeDark {
		def = domain.ThemeLight
	}
	t := &ThemeStore{base: newBase(a, log, opts)}
	t.theme = storage.Load(ctx, a, storage.KeyTheme, def)
	if t.theme != domain.ThemeLight && t.theme != domain.ThemeDark {
		t.theme = def
	}
	return t
}

// Get returns the current theme.
func (t *ThemeStore) Get() domain.Theme {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.theme
}

// Toggle switches between light and dark and returns the new theme.
func (t *ThemeStore) Toggle(ctx context.Context) domain.Theme {
	t.mu.Lock()
	if t.theme == domain.ThemeDark {
		t.theme = domain.ThemeLight
	} else {
		t.theme = domain.ThemeDark
	}
	out := t.theme
	t.adapter.Save(ctx, storage.KeyTheme, t.theme)
	t.mu.Unlock()

	t.events.emit(ThemeChanged)
	return out
}
