package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// Ratings maps recipe ids to a 1-5 star rating.
type Ratings struct {
	base
	mu      sync.RWMutex
	ratings map[string]domain.RecipeRating
}

// NewRatings loads recipe ratings.
func NewRatings(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *Ratings {
	r := &Ratings{base: newBase(a, log, opts)}
	r.ratings = storage.Load(ctx, a, storage.KeyRecipeRatings, map[string]domain.RecipeRating{})
	return r
}

// Set upserts a rating. Values outside 1..5 are rejected.
func (r *Ratings) Set(ctx context.Context, recipeID string, rating int) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("rating %d: %w", rating, domain.ErrInvalidInput)
	}

	r.mu.Lock()
	r.ratings[recipeID] = domain.RecipeRating{Rating: rating, RatedOn: r.now()}
	r.adapter.Save(ctx, storage.KeyRecipeRatings, r.ratings)
	r.mu.Unlock()

	r.events.emit(RatingsChanged)
	return nil
}

// Get returns the rating for a recipe, 0 when unrated.
func (r *Ratings) Get(recipeID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ratings[recipeID].Rating
}

// All returns a copy of every rating.
func (r *Ratings) All() map[string]domain.RecipeRating {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.RecipeRating, len(r.ratings))
	for k, v := range r.ratings {
		out[k] = v
	}
	return out
}
