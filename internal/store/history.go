package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// HistoryLimit is the number of cooking history entries kept.
const HistoryLimit = 50

// History is the most-recent-first list of cooked recipes, one entry per
// recipe id.
type History struct {
	base
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistory loads the cooking history.
func NewHistory(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *History {
	h := &History{base: newBase(a, log, opts)}
	h.entries = storage.Load(ctx, a, storage.KeyCookingHistory, []domain.HistoryEntry{})
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[:HistoryLimit]
	}
	return h
}

// Record marks a recipe as cooked now. Any earlier entry for the same
// recipe is dropped and the new one goes first.
func (h *History) Record(ctx context.Context, recipeID, recipeName string) domain.HistoryEntry {
	entry := domain.HistoryEntry{
		ID:         uuid.NewString(),
		RecipeID:   recipeID,
		RecipeName: recipeName,
		CookedOn:   h.now(),
	}

	h.mu.Lock()
	next := make([]domain.HistoryEntry, 0, len(h.entries)+1)
	next = append(next, entry)
	for _, e := range h.entries {
		if e.RecipeID != recipeID {
			next = append(next, e)
		}
	}
	if len(next) > HistoryLimit {
		next = next[:HistoryLimit]
	}
	h.entries = next
	h.adapter.Save(ctx, storage.KeyCookingHistory, h.entries)
	h.mu.Unlock()

	h.log.Debug("recorded cook of %s", recipeID)
	h.events.emit(HistoryChanged)
	return entry
}

// LastCooked returns when the recipe was last cooked.
func (h *History) LastCooked(recipeID string) (time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.RecipeID == recipeID {
			return e.CookedOn, true
		}
	}
	return time.Time{}, false
}

// CountFor returns how many history entries mention the recipe. With
// de-duplication this is 0 or 1.
func (h *History) CountFor(recipeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, e := range h.entries {
		if e.RecipeID == recipeID {
			n++
		}
	}
	return n
}

// All returns a copy of the history, most recent first.
func (h *History) All() []domain.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.HistoryEntry(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
