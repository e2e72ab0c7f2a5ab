package store

import (
	"context"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// Notes maps recipe ids to the user's free-text note.
type Notes struct {
	base
	mu    sync.RWMutex
	notes map[string]domain.RecipeNote
}

// NewNotes loads recipe notes.
func NewNotes(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *Notes {
	n := &Notes{base: newBase(a, log, opts)}
	n.notes = storage.Load(ctx, a, storage.KeyRecipeNotes, map[string]domain.RecipeNote{})
	return n
}

// Save upserts the note for a recipe and stamps it with the current time.
func (n *Notes) Save(ctx context.Context, recipeID, text string) domain.RecipeNote {
	n.mu.Lock()
	note := domain.RecipeNote{Note: text, LastModified: n.now()}
	n.notes[recipeID] = note
	n.adapter.Save(ctx, storage.KeyRecipeNotes, n.notes)
	n.mu.Unlock()

	n.events.emit(NotesChanged)
	return note
}

// Get returns the note text for a recipe, or "" when there is none.
func (n *Notes) Get(recipeID string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.notes[recipeID].Note
}

// Lookup returns the full note record.
func (n *Notes) Lookup(recipeID string) (domain.RecipeNote, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	note, ok := n.notes[recipeID]
	return note, ok
}

// All returns a copy of every note.
func (n *Notes) All() map[string]domain.RecipeNote {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]domain.RecipeNote, len(n.notes))
	for k, v := range n.notes {
		out[k] = v
	}
	return out
}
