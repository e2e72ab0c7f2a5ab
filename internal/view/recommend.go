package view

import (
	"sort"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Shuffler returns a shuffled copy of its input.
type Shuffler func([]domain.Recipe) []domain.Recipe

// Recommend derives suggestions for ref from pool: up to three from the
// same category, up to two from the same area, then random picks until
// target is reached. ref itself is never suggested.
func Recommend(ref domain.Recipe, pool []domain.Recipe, target int, shuffle Shuffler) []domain.Recipe {
	taken := map[string]struct{}{ref.ID: {}}
	var out []domain.Recipe
	take := func(r domain.Recipe) {
		taken[r.ID] = struct{}{}
		out = append(out, r)
	}

	n := 0
	for _, r := range pool {
		if n == 3 || len(out) == target {
			break
		}
		if _, ok := taken[r.ID]; ok || r.Category != ref.Category {
			continue
		}
		take(r)
		n++
	}

	n = 0
	for _, r := range pool {
		if n == 2 || len(out) == target {
			break
		}
		if _, ok := taken[r.ID]; ok || r.Area != ref.Area {
			continue
		}
		take(r)
		n++
	}

	if len(out) < target {
		var rest []domain.Recipe
		for _, r := range pool {
			if _, ok := taken[r.ID]; !ok {
				rest = append(rest, r)
			}
		}
		if shuffle != nil {
			rest = shuffle(rest)
		}
		for _, r := range rest {
			if len(out) == target {
				break
			}
			if _, ok := taken[r.ID]; ok {
				continue
			}
			take(r)
		}
	}
	return out
}

// Personalized suggests recipes from the pool in the categories the user
// favorites (up to three, excluding existing favorites) followed by pool
// recipes rated four stars or more (up to two).
func Personalized(favorites []domain.Recipe, ratings map[string]domain.RecipeRating, pool []domain.Recipe, target int, shuffle Shuffler) []domain.Recipe {
	favIDs := make(map[string]struct{}, len(favorites))
	favCats := make(map[string]struct{})
	for _, f := range favorites {
		favIDs[f.ID] = struct{}{}
		favCats[f.Category] = struct{}{}
	}

	var byCategory []domain.Recipe
	for _, r := range pool {
		_, fav := favIDs[r.ID]
		_, cat := favCats[r.Category]
		if cat && !fav {
			byCategory = append(byCategory, r)
		}
	}
	if shuffle != nil {
		byCategory = shuffle(byCategory)
	}
	if len(byCategory) > 3 {
		byCategory = byCategory[:3]
	}

	seen := make(map[string]struct{})
	out := make([]domain.Recipe, 0, target)
	for _, r := range byCategory {
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	rated := 0
	for _, r := range pool {
		if rated == 2 {
			break
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		if ratings[r.ID].Rating >= 4 {
			seen[r.ID] = struct{}{}
			out = append(out, r)
			rated++
		}
	}

	if len(out) > target {
		out = out[:target]
	}
	return out
}

// TrendingLimit is the number of trending recipes shown.
const TrendingLimit = 6

// ScoredRecipe is a recipe with its trending score.
type ScoredRecipe struct {
	domain.Recipe
	Score int
}

// Trending ranks the pool by 2 points per cook, the star rating, and 3
// points for a favorite. Ties keep pool order.
func Trending(pool []domain.Recipe, history []domain.HistoryEntry, ratings map[string]domain.RecipeRating, favorites map[string]struct{}) []ScoredRecipe {
	cooks := make(map[string]int)
	for _, h := range history {
		cooks[h.RecipeID]++
	}

	out := make([]ScoredRecipe, 0, len(pool))
	for _, r := range pool {
		score := cooks[r.ID]*2 + ratings[r.ID].Rating
		if _, ok := favorites[r.ID]; ok {
			score += 3
		}
		out = append(out, ScoredRecipe{Recipe: r, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > TrendingLimit {
		out = out[:TrendingLimit]
	}
	return out
}
