package view

import (
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/store"
)

// Snapshot is a read-only copy of everything a render pass needs.
type Snapshot struct {
	Favorites     []domain.Recipe
	FavoriteIDs   map[string]struct{}
	Shopping      []domain.ShoppingItem
	Collections   []domain.Collection
	Timers        []domain.Timer
	Notes         map[string]domain.RecipeNote
	Ratings       map[string]domain.RecipeRating
	History       []domain.HistoryEntry
	Accessibility domain.AccessibilitySettings
	Theme         domain.Theme
	Query         string
	Results       []domain.Recipe
}

// TimerSource lists timers.
type TimerSource interface {
	All() []domain.Timer
}

// ResultSource exposes the catalog's in-memory result set.
type ResultSource interface {
	Query() string
	Results() []domain.Recipe
}

// Capture copies the current state out of the stores. Either source may
// be nil.
func Capture(s *store.Stores, timers TimerSource, results ResultSource) Snapshot {
	snap := Snapshot{
		Favorites:     s.Favorites.All(),
		FavoriteIDs:   s.Favorites.IDs(),
		Shopping:      s.Shopping.All(),
		Collections:   s.Collections.All(),
		Notes:         s.Notes.All(),
		Ratings:       s.Ratings.All(),
		History:       s.History.All(),
		Accessibility: s.Accessibility.Get(),
		Theme:         s.Theme.Get(),
	}
	if timers != nil {
		snap.Timers = timers.All()
	}
	if results != nil {
		snap.Query = results.Query()
		snap.Results = results.Results()
	}
	return snap
}

// IsFavorite reports favorite membership through the id set.
func (s Snapshot) IsFavorite(id string) bool {
	_, ok := s.FavoriteIDs[id]
	return ok
}

// Rating returns the star rating for id, 0 when unrated.
func (s Snapshot) Rating(id string) int {
	return s.Ratings[id].Rating
}

// LastCooked returns the history entry for id.
func (s Snapshot) LastCooked(id string) (domain.HistoryEntry, bool) {
	for _, h := range s.History {
		if h.RecipeID == id {
			return h, true
		}
	}
	return domain.HistoryEntry{}, false
}

// CollectionsWith returns the names of collections holding id.
func (s Snapshot) CollectionsWith(id string) []string {
	var out []string
	for i := range s.Collections {
		if s.Collections[i].HasRecipe(id) {
			out = append(out, s.Collections[i].Name)
		}
	}
	return out
}
