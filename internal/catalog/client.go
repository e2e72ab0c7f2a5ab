// Package catalog talks to the public recipe lookup service and keeps the
// most recent result set and recipe in memory for filtering and
// recommendations.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// DefaultBaseURL is the public v1 endpoint with the shared test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const (
	defaultCacheSize = 128
	defaultCacheTTL  = 10 * time.Minute
)

// Compile-time interface check.
var _ domain.Catalog = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRand sets the random source used for enrichment and random picks.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) {
		c.rng = r
	}
}

// WithCache sizes the lookup cache. A size of zero disables it.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheSize = size
		c.cacheTTL = ttl
	}
}

// Client is the catalog client. Safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	log       *logger.Logger
	cacheSize int
	cacheTTL  time.Duration
	cache     *expirable.LRU[string, json.RawMessage]

	mu        sync.Mutex
	rng       *rand.Rand
	searchGen uint64
	lookupGen uint64
	query     string
	results   []domain.Recipe
	current   *domain.Recipe
}

// New creates a client for the service at baseURL. An empty baseURL uses
// DefaultBaseURL.
func New(baseURL string, log *logger.Logger, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base url: %w", err)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{},
		log:       log,
		cacheSize: defaultCacheSize,
		cacheTTL:  defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		now := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(now, now>>17))
	}
	if c.cacheSize > 0 {
		c.cache = expirable.NewLRU[string, json.RawMessage](c.cacheSize, nil, c.cacheTTL)
	}
	return c, nil
}

type mealsResponse struct {
	Meals []json.RawMessage `json:"meals"`
}

// Search runs one name search. An empty or null result set is
// domain.ErrNoResults; anything that stops the response from being read is
// domain.ErrTransport. If another Search started after this one, the
// response is dropped and domain.ErrStale returned.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query: %w", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	c.searchGen++
	gen := c.searchGen
	c.mu.Unlock()

	c.log.Debug("search %q (gen=%d)", query, gen)
	meals, err := c.get(ctx, "search.php", url.Values{"s": {query}})
	if err != nil {
		return nil, err
	}
	recipes, err := decodeMeals(meals)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.searchGen {
		c.log.Debug("dropping stale search %q (gen=%d, latest=%d)", query, gen, c.searchGen)
		return nil, domain.ErrStale
	}
	if len(recipes) == 0 {
		c.query = query
		c.results = nil
		return nil, fmt.Errorf("search %q: %w", query, domain.ErrNoResults)
	}
	recipes = dedupe(recipes)
	for i := range recipes {
		enrich(&recipes[i], c.rng)
	}
	c.query = query
	c.results = recipes
	c.log.Info("search %q returned %d recipes", query, len(recipes))
	return cloneRecipes(recipes), nil
}

// LookupByID fetches one recipe and makes it the current recipe. The raw
// payload is cached, but display metadata is generated afresh on every
// call.
func (c *Client) LookupByID(ctx context.Context, id string) (*domain.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("recipe id: %w", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	c.lookupGen++
	gen := c.lookupGen
	c.mu.Unlock()

	raw, ok := c.cached(id)
	if !ok {
		meals, err := c.get(ctx, "lookup.php", url.Values{"i": {id}})
		if err != nil {
			return nil, err
		}
		if len(meals) == 0 {
			return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNoResults)
		}
		raw = meals[0]
		if c.cache != nil {
			c.cache.Add(id, raw)
		}
	}

	var r domain.Recipe
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: decode recipe %s: %v", domain.ErrTransport, id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.lookupGen {
		c.log.Debug("dropping stale lookup %s", id)
		return nil, domain.ErrStale
	}
	enrich(&r, c.rng)
	c.current = &r
	out := r
	return &out, nil
}

func (c *Client) cached(id string) (json.RawMessage, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, ok := c.cache.Get(id)
	if ok {
		c.log.Debug("lookup cache hit %s", id)
	}
	return raw, ok
}

// get performs one GET and returns the meals array, which is nil when the
// service answered {"meals": null}.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]json.RawMessage, error) {
	u := c.baseURL.JoinPath(endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("catalog %s: %v", endpoint, err)
		return nil, fmt.Errorf("%w: %s request failed: %v", domain.ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error("catalog %s: %s", endpoint, resp.Status)
		return nil, fmt.Errorf("%w: %s failed (%s): %s", domain.ErrTransport, endpoint, resp.Status, strings.TrimSpace(string(body)))
	}

	var payload mealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("catalog %s: decode: %v", endpoint, err)
		return nil, fmt.Errorf("%w: decode %s response: %v", domain.ErrTransport, endpoint, err)
	}
	return payload.Meals, nil
}

func decodeMeals(meals []json.RawMessage) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, 0, len(meals))
	for _, raw := range meals {
		var r domain.Recipe
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: decode recipe: %v", domain.ErrTransport, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func dedupe(recipes []domain.Recipe) []domain.Recipe {
	seen := make(map[string]struct{}, len(recipes))
	out := recipes[:0]
	for _, r := range recipes {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func cloneRecipes(in []domain.Recipe) []domain.Recipe {
	return append([]domain.Recipe(nil), in...)
}
