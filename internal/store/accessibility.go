package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// Accessibility holds the singleton accessibility settings.
type Accessibility struct {
	base
	mu       sync.RWMutex
	settings domain.AccessibilitySettings
}

// NewAccessibility loads settings, filling absent fields from the defaults.
func NewAccessibility(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *Accessibility {
	s := &Accessibility{base: newBase(a, log, opts)}
	s.settings = storage.Load(ctx, a, storage.KeyAccessibility, domain.DefaultAccessibility())
	if !s.settings.FontSize.Valid() {
		s.log.Warn("unknown font size %q, using %s", s.settings.FontSize, domain.FontMedium)
		s.settings.FontSize = domain.FontMedium
	}
	return s
}

// Get returns the current settings.
func (s *Accessibility) Get() domain.AccessibilitySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetFontSize changes the reading size.
func (s *Accessibility) SetFontSize(ctx context.Context, size domain.FontSize) error {
	if !size.Valid() {
		return fmt.Errorf("font size %q: %w", size, domain.ErrInvalidInput)
	}
	s.update(ctx, func(a *domain.AccessibilitySettings) { a.FontSize = size })
	return nil
}

// ToggleHighContrast flips high contrast and returns the new value.
func (s *Accessibility) ToggleHighContrast(ctx context.Context) bool {
	return s.update(ctx, func(a *domain.AccessibilitySettings) { a.HighContrast = !a.HighContrast }).HighContrast
}

// ToggleTextToSpeech flips read-aloud and returns the new value.
func (s *Accessibility) ToggleTextToSpeech(ctx context.Context) bool {
	return s.update(ctx, func(a *domain.AccessibilitySettings) { a.TextToSpeech = !a.TextToSpeech }).TextToSpeech
}

// ToggleReadingMode flips reading mode and returns the new value.
func (s *Accessibility) ToggleReadingMode(ctx context.Context) bool {
	return s.update(ctx, func(a *domain.AccessibilitySettings) { a.ReadingMode = !a.ReadingMode }).ReadingMode
}

// ToggleKeyboardNavigation flips keyboard shortcuts and returns the new value.
func (s *Accessibility) ToggleKeyboardNavigation(ctx context.Context) bool {
	return s.update(ctx, func(a *domain.AccessibilitySettings) { a.KeyboardNavigation = !a.KeyboardNavigation }).KeyboardNavigation
}

func (s *Accessibility) update(ctx context.Context, fn func(*domain.AccessibilitySettings)) domain.AccessibilitySettings {
	s.mu.Lock()
	fn(&s.settings)
	out := s.settings
	s.adapter.Save(ctx, storage.KeyAccessibility, s.settings)
	s.mu.Unlock()

	s.events.emit(AccessibilityChanged)
	return out
}
