package store

import (
	"context"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// Stores groups every domain store behind one event hub.
type Stores struct {
	Events        *Events
	Favorites     *Favorites
	Shopping      *ShoppingList
	Collections   *Collections
	Notes         *Notes
	Ratings       *Ratings
	History       *History
	Accessibility *Accessibility
	Theme         *ThemeStore
}

// Open loads every store from the adapter.
func Open(ctx context.Context, a *storage.Adapter, log *logger.Logger, defaultTheme domain.Theme, opts ...Option) *Stores {
	events := NewEvents()
	opts = append([]Option{WithEvents(events)}, opts...)
	s := &Stores{
		Events:        events,
		Favorites:     NewFavorites(ctx, a, log.Named("favorites"), opts...),
		Shopping:      NewShoppingList(ctx, a, log.Named("shopping"), opts...),
		Collections:   NewCollections(ctx, a, log.Named("collections"), opts...),
		Notes:         NewNotes(ctx, a, log.Named("notes"), opts...),
		Ratings:       NewRatings(ctx, a, log.Named("ratings"), opts...),
		History:       NewHistory(ctx, a, log.Named("history"), opts...),
		Accessibility: NewAccessibility(ctx, a, log.Named("accessibility"), opts...),
		Theme:         NewThemeStore(ctx, a, log.Named("theme"), defaultTheme, opts...),
	}
	log.Info("stores loaded: %d favorites, %d shopping items, %d collections, %d history entries",
		s.Favorites.Len(), s.Shopping.Len(), s.Collections.Len(), s.History.Len())
	return s
}
