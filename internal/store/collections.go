package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// CollectionColors is the palette new collections draw from.
var CollectionColors = []string{"#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4", "#feca57", "#ff9ff3", "#54a0ff", "#5f27cd"}

// AddResult tells the caller whether AddRecipe changed the collection.
type AddResult int

const (
	Added AddResult = iota
	Duplicate
)

// String returns a human-readable result.
func (r AddResult) String() string {
	if r == Added {
		return "added"
	}
	return "duplicate"
}

// Collections holds the user's named recipe groups.
type Collections struct {
	base
	mu          sync.RWMutex
	collections []domain.Collection
	counter     int
	pick        func(n int) int
}

// NewCollections loads collections and the id counter.
func NewCollections(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *Collections {
	c := &Collections{base: newBase(a, log, opts), pick: rand.IntN}
	c.collections = storage.Load(ctx, a, storage.KeyCollections, []domain.Collection{})
	c.counter = storage.Load(ctx, a, storage.KeyCollectionIDCounter, 0)
	for _, col := range c.collections {
		if col.ID > c.counter {
			c.counter = col.ID
		}
	}
	c.log.Debug("loaded %d collections, counter %d", len(c.collections), c.counter)
	return c
}

// Create adds an empty collection. The name must be non-empty.
func (c *Collections) Create(ctx context.Context, name, description string) (domain.Collection, error) {
	if name == "" {
		return domain.Collection{}, fmt.Errorf("collection name: %w", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	c.counter++
	col := domain.Collection{
		ID:          c.counter,
		Name:        name,
		Description: description,
		Color:       CollectionColors[c.pick(len(CollectionColors))],
		CreatedAt:   c.now(),
		Recipes:     []domain.Recipe{},
	}
	c.collections = append(c.collections, col)
	c.adapter.Save(ctx, storage.KeyCollections, c.collections)
	c.adapter.Save(ctx, storage.KeyCollectionIDCounter, c.counter)
	c.mu.Unlock()

	c.log.Info("created collection %d %q", col.ID, col.Name)
	c.events.emit(CollectionsChanged)
	return copyCollection(col), nil
}

// AddRecipe appends a recipe snapshot unless the collection already holds
// that recipe id, in which case it reports Duplicate and changes nothing.
func (c *Collections) AddRecipe(ctx context.Context, id int, r domain.Recipe) (AddResult, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return Duplicate, fmt.Errorf("collection %d: %w", id, domain.ErrNotFound)
	}
	if c.collections[i].HasRecipe(r.ID) {
		c.mu.Unlock()
		return Duplicate, nil
	}
	c.collections[i].Recipes = append(c.collections[i].Recipes, r)
	c.adapter.Save(ctx, storage.KeyCollections, c.collections)
	c.mu.Unlock()

	c.events.emit(CollectionsChanged)
	return Added, nil
}

// RemoveRecipe drops a recipe from a collection. Removing an absent
// recipe is not an error.
func (c *Collections) RemoveRecipe(ctx context.Context, id int, recipeID string) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("collection %d: %w", id, domain.ErrNotFound)
	}
	kept := c.collections[i].Recipes[:0]
	for _, r := range c.collections[i].Recipes {
		if r.ID != recipeID {
			kept = append(kept, r)
		}
	}
	c.collections[i].Recipes = kept
	c.adapter.Save(ctx, storage.KeyCollections, c.collections)
	c.mu.Unlock()

	c.events.emit(CollectionsChanged)
	return nil
}

// Delete removes a collection. The id counter is never rewound.
func (c *Collections) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("collection %d: %w", id, domain.ErrNotFound)
	}
	name := c.collections[i].Name
	c.collections = append(c.collections[:i], c.collections[i+1:]...)
	c.adapter.Save(ctx, storage.KeyCollections, c.collections)
	c.mu.Unlock()

	c.log.Info("deleted collection %d %q", id, name)
	c.events.emit(CollectionsChanged)
	return nil
}

// Get returns a copy of one collection.
func (c *Collections) Get(id int) (domain.Collection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return domain.Collection{}, fmt.Errorf("collection %d: %w", id, domain.ErrNotFound)
	}
	return copyCollection(c.collections[i]), nil
}

// Containing returns the collections that hold recipeID.
func (c *Collections) Containing(recipeID string) []domain.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Collection
	for i := range c.collections {
		if c.collections[i].HasRecipe(recipeID) {
			out = append(out, copyCollection(c.collections[i]))
		}
	}
	return out
}

// All returns a copy of every collection in creation order.
func (c *Collections) All() []domain.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Collection, len(c.collections))
	for i := range c.collections {
		out[i] = copyCollection(c.collections[i])
	}
	return out
}

// Len returns the number of collections.
func (c *Collections) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.collections)
}

// Counter returns the last id handed out.
func (c *Collections) Counter() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter
}

func (c *Collections) indexOf(id int) int {
	for i := range c.collections {
		if c.collections[i].ID == id {
			return i
		}
	}
	return -1
}

func copyCollection(col domain.Collection) domain.Collection {
	col.Recipes = append([]domain.Recipe{}, col.Recipes...)
	return col
}
