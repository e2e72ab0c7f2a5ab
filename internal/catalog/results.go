package catalog

import (
	"sort"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Query returns the text of the last completed search.
func (c *Client) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Results returns a copy of the last result set.
func (c *Client) Results() []domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneRecipes(c.results)
}

// Current returns the last recipe opened with LookupByID.
func (c *Client) Current() (domain.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return domain.Recipe{}, false
	}
	return *c.current, true
}

// ClearCurrent forgets the open recipe.
func (c *Client) ClearCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Filter narrows the last result set. Empty arguments match everything.
func (c *Client) Filter(category, area string) []domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Recipe
	for _, r := range c.results {
		if category != "" && r.Category != category {
			continue
		}
		if area != "" && r.Area != area {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Categories lists the distinct categories in the last result set.
func (c *Client) Categories() []string {
	return c.distinct(func(r domain.Recipe) string { return r.Category })
}

// Areas lists the distinct areas in the last result set.
func (c *Client) Areas() []string {
	return c.distinct(func(r domain.Recipe) string { return r.Area })
}

func (c *Client) distinct(field func(domain.Recipe) string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, r := range c.results {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Find returns a recipe from the last result set by id.
func (c *Client) Find(id string) (domain.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.results {
		if r.ID == id {
			return r, true
		}
	}
	if c.current != nil && c.current.ID == id {
		return *c.current, true
	}
	return domain.Recipe{}, false
}

// Random picks one recipe from the last result set.
func (c *Client) Random() (domain.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.results) == 0 {
		return domain.Recipe{}, false
	}
	return c.results[c.rng.IntN(len(c.results))], true
}

// Shuffle returns a shuffled copy of recipes using the client's source.
func (c *Client) Shuffle(recipes []domain.Recipe) []domain.Recipe {
	out := cloneRecipes(recipes)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
