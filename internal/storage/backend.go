// Package storage persists application state as JSON documents under
// string keys. Backends are byte stores; the Adapter layers decoding,
// default merging and write-failure reporting on top.
package storage

import (
	"context"
)

// Keys used by the domain stores.
const (
	KeyFavorites           = "favorites"
	KeyTheme               = "theme"
	KeyShoppingList        = "shoppingList"
	KeyRecipeNotes         = "recipeNotes"
	KeyRecipeRatings       = "recipeRatings"
	KeyCookingHistory      = "cookingHistory"
	KeyCollections         = "collections"
	KeyCollectionIDCounter = "collectionIdCounter"
	KeyAccessibility       = "accessibilitySettings"
)

// Backend is a flat key/value byte store.
type Backend interface {
	// Get returns the value for key. ok is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
