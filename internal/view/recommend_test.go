package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

func rec(id, category, area string) domain.Recipe {
	return domain.Recipe{ID: id, Name: "Recipe " + id, Category: category, Area: area}
}

func ids(rs []domain.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func reverse(in []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}

func TestRecommendCapsCategoryAndArea(t *testing.T) {
	ref := rec("ref", "Chicken", "Indian")
	pool := []domain.Recipe{
		ref,
		rec("c1", "Chicken", "Thai"),
		rec("c2", "Chicken", "Thai"),
		rec("c3", "Chicken", "Thai"),
		rec("c4", "Chicken", "Thai"),
		rec("a1", "Lamb", "Indian"),
		rec("a2", "Vegan", "Indian"),
		rec("a3", "Beef", "Indian"),
		rec("x1", "Dessert", "French"),
	}

	got := Recommend(ref, pool, 5, nil)
	assert.Equal(t, []string{"c1", "c2", "c3", "a1", "a2"}, ids(got))
}

func TestRecommendFillsWithShuffledRest(t *testing.T) {
	ref := rec("ref", "Chicken", "Indian")
	pool := []domain.Recipe{
		rec("c1", "Chicken", "Thai"),
		rec("x1", "Dessert", "French"),
		rec("x2", "Pasta", "Italian"),
		rec("x3", "Seafood", "Greek"),
		rec("x4", "Beef", "British"),
	}

	got := Recommend(ref, pool, 3, reverse)
	assert.Equal(t, []string{"c1", "x4", "x3"}, ids(got))
}

func TestRecommendNeverIncludesReference(t *testing.T) {
	for n := 0; n < 12; n++ {
		ref := rec("r0", "Chicken", "Indian")
		pool := []domain.Recipe{ref}
		for i := 1; i <= n; i++ {
			pool = append(pool, rec(fmt.Sprintf("r%d", i), []string{"Chicken", "Beef"}[i%2], []string{"Indian", "Thai", "French"}[i%3]))
		}
		got := Recommend(ref, pool, 5, reverse)

		seen := map[string]bool{}
		for _, r := range got {
			require.NotEqual(t, ref.ID, r.ID)
			require.False(t, seen[r.ID], "duplicate %s", r.ID)
			seen[r.ID] = true
		}
		assert.Len(t, got, min(5, n))
	}
}

func TestPersonalized(t *testing.T) {
	favorites := []domain.Recipe{rec("f1", "Chicken", "Indian")}
	ratings := map[string]domain.RecipeRating{
		"p4": {Rating: 5},
		"p5": {Rating: 4},
		"p6": {Rating: 3},
	}
	pool := []domain.Recipe{
		rec("f1", "Chicken", "Indian"),
		rec("p1", "Chicken", "Thai"),
		rec("p2", "Chicken", "Thai"),
		rec("p3", "Chicken", "Thai"),
		rec("p7", "Chicken", "Thai"),
		rec("p4", "Beef", "British"),
		rec("p5", "Vegan", "Thai"),
		rec("p6", "Pasta", "Italian"),
	}

	got := Personalized(favorites, ratings, pool, 5, nil)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(got))

	assert.Empty(t, Personalized(nil, nil, pool, 5, nil))
}

func TestTrendingScores(t *testing.T) {
	pool := []domain.Recipe{rec("a", "X", "Y"), rec("b", "X", "Y"), rec("c", "X", "Y")}
	history := []domain.HistoryEntry{{RecipeID: "b"}, {RecipeID: "b"}}
	ratings := map[string]domain.RecipeRating{"c": {Rating: 5}, "a": {Rating: 1}}
	favorites := map[string]struct{}{"a": {}}

	got := Trending(pool, history, ratings, favorites)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, 5, got[0].Score)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, 4, got[1].Score)
	assert.Equal(t, "b", got[2].ID)
	assert.Equal(t, 4, got[2].Score)
}

func TestTrendingLimit(t *testing.T) {
	var pool []domain.Recipe
	for i := 0; i < 10; i++ {
		pool = append(pool, rec(fmt.Sprint(i), "X", "Y"))
	}
	assert.Len(t, Trending(pool, nil, nil, nil), TrendingLimit)
}
