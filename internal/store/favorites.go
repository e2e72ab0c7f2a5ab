package store

import (
	"context"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// Favorites is the ordered list of favorited recipe snapshots.
type Favorites struct {
	base
	mu      sync.RWMutex
	recipes []domain.Recipe
}

// NewFavorites loads the favorites list.
func NewFavorites(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *Favorites {
	f := &Favorites{base: newBase(a, log, opts)}
	f.recipes = storage.Load(ctx, a, storage.KeyFavorites, []domain.Recipe{})
	f.log.Debug("loaded %d favorites", len(f.recipes))
	return f
}

// Toggle removes the recipe if it is a favorite, otherwise appends it.
// Returns true when the recipe was added.
func (f *Favorites) Toggle(ctx context.Context, r domain.Recipe) bool {
	f.mu.Lock()
	added := true
	for i := range f.recipes {
		if f.recipes[i].ID == r.ID {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			added = false
			break
		}
	}
	if added {
		f.recipes = append(f.recipes, r)
	}
	f.adapter.Save(ctx, storage.KeyFavorites, f.recipes)
	f.mu.Unlock()

	f.log.Debug("favorite %s toggled, added=%v", r.ID, added)
	f.events.emit(FavoritesChanged)
	return added
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			return true
		}
	}
	return false
}

// IDs returns the favorite ids as a set.
func (f *Favorites) IDs() map[string]struct{} {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]struct{}, len(f.recipes))
	for i := range f.recipes {
		out[f.recipes[i].ID] = struct{}{}
	}
	return out
}

// All returns a copy of the favorites in insertion order.
func (f *Favorites) All() []domain.Recipe {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.Recipe(nil), f.recipes...)
}

// Len returns the number of favorites.
func (f *Favorites) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.recipes)
}
