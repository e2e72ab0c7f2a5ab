package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// CategoryOther is assigned when no keyword matches.
const CategoryOther = "Other"

// categoryRule maps keywords to a shopping category. Rules are checked in
// order and the first match wins.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"Produce", []string{"onion", "garlic", "tomato", "potato", "carrot", "celery", "pepper", "lettuce", "spinach", "herbs", "lemon", "lime", "apple", "banana"}},
	{"Meat & Seafood", []string{"chicken", "beef", "pork", "fish", "salmon", "shrimp", "turkey", "lamb", "bacon", "sausage"}},
	{"Dairy", []string{"milk", "cheese", "butter", "cream", "yogurt", "eggs"}},
	{"Pantry", []string{"flour", "sugar", "salt", "pepper", "oil", "vinegar", "rice", "pasta", "beans", "spices", "sauce"}},
	{"Frozen", []string{"frozen", "ice cream"}},
	{"Bakery", []string{"bread", "rolls", "bagels"}},
}

// CategoryOrder is the display order of shopping categories.
func CategoryOrder() []string {
	out := make([]string, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		out = append(out, r.category)
	}
	return append(out, CategoryOther)
}

// Categorize returns the shopping category for an ingredient name.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, r := range categoryRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return CategoryOther
}

// ShoppingList is the merged list of ingredients to buy.
type ShoppingList struct {
	base
	mu     sync.RWMutex
	items  []domain.ShoppingItem
	nextID int
	fold   cases.Caser
}

// NewShoppingList loads the shopping list. Item ids continue after the
// highest persisted id.
func NewShoppingList(ctx context.Context, a *storage.Adapter, log *logger.Logger, opts ...Option) *ShoppingList {
	s := &ShoppingList{base: newBase(a, log, opts), fold: cases.Fold()}
	s.items = storage.Load(ctx, a, storage.KeyShoppingList, []domain.ShoppingItem{})
	for _, it := range s.items {
		if it.ID > s.nextID {
			s.nextID = it.ID
		}
	}
	s.log.Debug("loaded %d shopping items, next id %d", len(s.items), s.nextID+1)
	return s
}

func (s *ShoppingList) key(name string) string {
	return s.fold.String(name)
}

// Add merges ingredient names into the list on behalf of recipeName.
// Blank names are skipped. Returns a copy of the updated list.
func (s *ShoppingList) Add(ctx context.Context, names []string, recipeName string) []domain.ShoppingItem {
	s.mu.Lock()
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		k := s.key(name)
		merged := false
		for i := range s.items {
			if s.key(s.items[i].Name) == k {
				s.items[i].Quantity++
				s.items[i].Recipes = append(s.items[i].Recipes, recipeName)
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		s.nextID++
		s.items = append(s.items, domain.ShoppingItem{
			ID:       s.nextID,
			Name:     name,
			Quantity: 1,
			Category: Categorize(name),
			Recipes:  []string{recipeName},
		})
	}
	s.adapter.Save(ctx, storage.KeyShoppingList, s.items)
	out := copyItems(s.items)
	s.mu.Unlock()

	s.events.emit(ShoppingChanged)
	return out
}

// Toggle flips the completed flag of an item.
func (s *ShoppingList) Toggle(ctx context.Context, id int) (domain.ShoppingItem, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ShoppingItem{}, fmt.Errorf("shopping item %d: %w", id, domain.ErrNotFound)
	}
	s.items[i].Completed = !s.items[i].Completed
	item := copyItem(s.items[i])
	s.adapter.Save(ctx, storage.KeyShoppingList, s.items)
	s.mu.Unlock()

	s.events.emit(ShoppingChanged)
	return item, nil
}

// Remove deletes one item.
func (s *ShoppingList) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("shopping item %d: %w", id, domain.ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.adapter.Save(ctx, storage.KeyShoppingList, s.items)
	s.mu.Unlock()

	s.events.emit(ShoppingChanged)
	return nil
}

// Clear empties the list.
func (s *ShoppingList) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = []domain.ShoppingItem{}
	s.adapter.Save(ctx, storage.KeyShoppingList, s.items)
	s.mu.Unlock()

	s.log.Info("shopping list cleared")
	s.events.emit(ShoppingChanged)
}

// All returns a copy of the list in insertion order.
func (s *ShoppingList) All() []domain.ShoppingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyItems(s.items)
}

// Len returns the number of items.
func (s *ShoppingList) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Grouped returns the items keyed by category. Use CategoryOrder for a
// stable iteration order.
func (s *ShoppingList) Grouped() map[string][]domain.ShoppingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]domain.ShoppingItem)
	for _, it := range s.items {
		cat := it.Category
		if cat == "" {
			cat = CategoryOther
		}
		out[cat] = append(out[cat], copyItem(it))
	}
	return out
}

func (s *ShoppingList) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func copyItem(it domain.ShoppingItem) domain.ShoppingItem {
	it.Recipes = append([]string(nil), it.Recipes...)
	return it
}

func copyItems(items []domain.ShoppingItem) []domain.ShoppingItem {
	out := make([]domain.ShoppingItem, len(items))
	for i, it := range items {
		out[i] = copyItem(it)
	}
	return out
}
