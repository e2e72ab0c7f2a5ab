package catalog

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithHTTPClient(srv.Client()), WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)
	c, err := New(srv.URL, logger.New(logger.LevelOff, nil), opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestSearchNullMealsIsNoResults(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.php" || r.URL.Query().Get("s") != "xyz_no_match" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))

	got, err := c.Search(context.Background(), "xyz_no_match")
	if !errors.Is(err, domain.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if len(got) != 0 || len(c.Results()) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	if errors.Is(err, domain.ErrTransport) {
		t.Fatal("not-found must be distinct from transport failure")
	}
}

func TestSearchTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meals": [`))
		}},
		{"bad recipe shape", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meals": [{"idMeal": 12}]}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			if _, err := c.Search(context.Background(), "chicken"); !errors.Is(err, domain.ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
		})
	}
}

func TestSearchEnrichesAndKeepsResultSet(t *testing.T) {
	c := newTestClient(t, NewOffline(logger.New(logger.LevelOff, nil)))
	ctx := context.Background()

	got, err := c.Search(ctx, "chicken")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 chicken recipes, got %d", len(got))
	}
	for _, r := range got {
		if r.CookTime == "" || r.Difficulty == "" || r.Calories == 0 || r.Servings == 0 {
			t.Fatalf("recipe %s not enriched: %+v", r.ID, r)
		}
	}

	if areas := c.Areas(); len(areas) != 2 || areas[0] != "Indian" || areas[1] != "Italian" {
		t.Fatalf("unexpected areas %v", areas)
	}
	if cats := c.Categories(); len(cats) != 1 || cats[0] != "Chicken" {
		t.Fatalf("unexpected categories %v", cats)
	}
	if f := c.Filter("", "Indian"); len(f) != 1 || f[0].ID != "90003" {
		t.Fatalf("unexpected area filter %v", f)
	}
	if f := c.Filter("Beef", ""); len(f) != 0 {
		t.Fatalf("expected empty category filter, got %v", f)
	}
	if _, ok := c.Random(); !ok {
		t.Fatal("random should pick from the result set")
	}
}

func TestLookupCachesPayloadButReEnriches(t *testing.T) {
	var hits atomic.Int32
	off := NewOffline(logger.New(logger.LevelOff, nil))
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		off.ServeHTTP(w, r)
	}))
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		r, err := c.LookupByID(ctx, "90004")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if r.Name != "Beef Stew" {
			t.Fatalf("unexpected recipe %q", r.Name)
		}
		seen[r.CookTime+r.Difficulty] = true
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one request thanks to the cache, got %d", hits.Load())
	}
	if len(seen) < 2 {
		t.Fatal("display metadata should vary between lookups")
	}
	if cur, ok := c.Current(); !ok || cur.ID != "90004" {
		t.Fatalf("current recipe not recorded: %+v", cur)
	}

	if _, err := c.LookupByID(ctx, "missing"); !errors.Is(err, domain.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestStaleSearchIsDropped(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	off := NewOffline(logger.New(logger.LevelOff, nil))
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") == "slow" {
			close(entered)
			<-release
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Slow"}]}`))
			return
		}
		off.ServeHTTP(w, r)
	}))
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() {
		_, err := c.Search(ctx, "slow")
		errc <- err
	}()
	<-entered

	if _, err := c.Search(ctx, "beef"); err != nil {
		t.Fatalf("fresh search: %v", err)
	}
	close(release)

	if err := <-errc; !errors.Is(err, domain.ErrStale) {
		t.Fatalf("expected ErrStale for superseded search, got %v", err)
	}
	if c.Query() != "beef" {
		t.Fatalf("stale response replaced result set, query=%q", c.Query())
	}
}

func TestOfflineTransport(t *testing.T) {
	off := NewOffline(logger.New(logger.LevelOff, nil))
	c, err := New("http://offline.invalid/api", logger.New(logger.LevelOff, nil),
		WithHTTPClient(&http.Client{Transport: off.Transport()}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := c.Search(context.Background(), "bread")
	if err != nil || len(got) != 1 || got[0].Name != "Banana Bread" {
		t.Fatalf("unexpected offline search %v, %v", got, err)
	}
}

func TestEmptyQueryRejected(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())
	if _, err := c.Search(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
