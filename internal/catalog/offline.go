package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Offline serves the catalog's search and lookup endpoints from recipes
// held in memory. It backs --offline runs and the package tests.
type Offline struct {
	mu      sync.RWMutex
	recipes map[string]domain.Recipe
	log     *logger.Logger
}

// NewOffline creates an offline catalog preloaded with built-in recipes.
func NewOffline(log *logger.Logger) *Offline {
	o := &Offline{
		recipes: make(map[string]domain.Recipe),
		log:     log,
	}
	o.seed()
	return o
}

// Add inserts or replaces a recipe.
func (o *Offline) Add(r domain.Recipe) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recipes[r.ID] = r
}

// ServeHTTP answers /search.php?s= and /lookup.php?i= in the service's
// {"meals": [...] | null} shape.
func (o *Offline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var meals []domain.Recipe
	switch {
	case strings.HasSuffix(r.URL.Path, "/search.php"):
		meals = o.search(r.URL.Query().Get("s"))
	case strings.HasSuffix(r.URL.Path, "/lookup.php"):
		if rec, ok := o.lookup(r.URL.Query().Get("i")); ok {
			meals = []domain.Recipe{rec}
		}
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(meals) == 0 {
		_, _ = w.Write([]byte(`{"meals":null}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"meals": meals})
}

// Transport returns a RoundTripper that answers requests from o without
// touching the network.
func (o *Offline) Transport() http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		o.ServeHTTP(rec, req)
		return rec.Result(), nil
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func (o *Offline) search(query string) []domain.Recipe {
	o.mu.RLock()
	defer o.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	o.log.Debug("offline search for: %s", q)

	var out []domain.Recipe
	for _, r := range o.recipes {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (o *Offline) lookup(id string) (domain.Recipe, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	r, ok := o.recipes[id]
	return r, ok
}

func matches(r domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Category), query) {
		return true
	}
	for _, tag := range r.TagList() {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// seed populates the catalog with built-in recipes.
func (o *Offline) seed() {
	recipes := []domain.Recipe{
		chickenAlfredo(),
		vegetableStirFry(),
		chickenTikka(),
		beefStew(),
		salmonTraybake(),
		bananaBread(),
	}
	for _, r := range recipes {
		o.recipes[r.ID] = r
	}
	o.log.Debug("seeded %d offline recipes", len(recipes))
}

func withIngredients(r domain.Recipe, pairs ...string) domain.Recipe {
	for i := 0; i+1 < len(pairs) && i/2 < domain.MaxIngredients; i += 2 {
		r.Ingredients[i/2] = pairs[i]
		r.Measures[i/2] = pairs[i+1]
	}
	return r
}

func chickenAlfredo() domain.Recipe {
	return withIngredients(domain.Recipe{
		ID:       "90001",
		Name:     "Chicken Alfredo",
		Category: "Chicken",
		Area:     "Italian",
		Tags:     "Pasta,Comfort",
		Instructions: "Bring a large pot of salted water to a boil for the pasta.\n" +
			"Season the chicken breasts with salt and pepper and pound them to even thickness.\n" +
			"Sear the chicken in olive oil for about 6 minutes per side. Rest, then slice.\n" +
			"Cook the spaghetti until al dente and reserve a cup of pasta water.\n" +
			"Melt butter, add minced garlic and cook 1 minute until fragrant.\n" +
			"Stir in the creme fraiche and reduce for 3 minutes.\n" +
			"Off the heat, stir in the gruyere until smooth. Loosen with pasta water.\n" +
			"Toss the pasta in the sauce and serve with the chicken on top.",
	},
		"Spaghetti", "250g",
		"Chicken Breast", "2 medium",
		"Creme Fraiche", "1 cup",
		"Gruyere Cheese", "1 cup grated",
		"Butter", "3 tbs",
		"Garlic", "4 cloves",
		"Olive Oil", "1 tbs",
		"Salt", "to taste",
		"Black Pepper", "to taste",
	)
}

func vegetableStirFry() domain.Recipe {
	return withIngredients(domain.Recipe{
		ID:       "90002",
		Name:     "Vegetable Stir Fry",
		Category: "Vegan",
		Area:     "Chinese",
		Tags:     "Quick,Healthy",
		Instructions: "Start the rice first.\n" +
			"Prep all vegetables before the pan goes on.\n" +
			"Mix soy sauce, sesame oil and cornstarch with 2 tablespoons of water.\n" +
			"Heat the wok until it just smokes, then add the oil.\n" +
			"Stir-fry broccoli and carrot 2 minutes, then pepper and snap peas 2 more.\n" +
			"Add garlic and ginger for 30 seconds, pour over the sauce and toss.\n" +
			"Serve immediately over rice.",
	},
		"Red Pepper", "1 large",
		"Broccoli", "2 cups",
		"Carrot", "1 medium",
		"Snap Peas", "1 cup",
		"Garlic", "3 cloves",
		"Ginger", "1 tbs grated",
		"Soy Sauce", "2 tbs",
		"Sesame Oil", "1 tbs",
		"Rice", "1 cup",
	)
}

func chickenTikka() domain.Recipe {
	return withIngredients(domain.Recipe{
		ID:           "90003",
		Name:         "Chicken Tikka Masala",
		Category:     "Chicken",
		Area:         "Indian",
		Tags:         "Curry,Spicy",
		YouTube:      "https://www.youtube.com/watch?v=example-tikka",
		Instructions: "Marinate the chicken in yogurt and spices for an hour.\nGrill until charred.\nSimmer in the tomato and cream sauce for 15 minutes.",
	},
		"Chicken Thighs", "600g",
		"Yogurt", "1/2 cup",
		"Tomato Puree", "400g",
		"Double Cream", "1/4 cup",
		"Garam Masala", "2 tsp",
		"Onion", "1",
	)
}

func beefStew() domain.Recipe {
	return withIngredients(domain.Recipe{
		ID:           "90004",
		Name:         "Beef Stew",
		Category:     "Beef",
		Area:         "British",
		Tags:         "Stew,Comfort",
		Instructions: "Brown the beef in batches.\nSoften onion, carrot and celery.\nAdd stock and simmer for 2 hours.",
	},
		"Beef Chuck", "1kg",
		"Onion", "2",
		"Carrot", "3",
		"Celery", "2 sticks",
		"Beef Stock", "1 1/2 cups",
		"Flour", "2 tbs",
	)
}

func salmonTraybake() domain.Recipe {
	return withIngredients(domain.Recipe{
		ID:           "90005",
		Name:         "Salmon Traybake",
		Category:     "Seafood",
		Area:         "British",
		Tags:         "Quick,Healthy",
		Instructions: "Roast the potatoes for 20 minutes.\nAdd the salmon and lemon and roast 12 minutes more.",
	},
		"Salmon", "2 fillets",
		"Potatoes", "500g",
		"Lemon", "1",
		"Olive Oil", "2 tbs",
	)
}

func bananaBread() domain.Recipe {
	return withIngredients(domain.Recipe{
		ID:           "90006",
		Name:         "Banana Bread",
		Category:     "Dessert",
		Area:         "American",
		Tags:         "Baking,Cake",
		Instructions: "Mash the bananas.\nMix in melted butter, sugar, egg and flour.\nBake for 1 hour.",
	},
		"Banana", "3 ripe",
		"Butter", "1/3 cup",
		"Sugar", "3/4 cup",
		"Eggs", "1",
		"Flour", "1 1/2 cups",
	)
}
