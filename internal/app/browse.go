package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/catalog"
	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/view"
)

func (a *App) handleSearch(ctx context.Context, cmd command.Command) error {
	in := searchInput{Query: strings.TrimSpace(cmd.Arg(0))}
	if err := a.validate.check(in); err != nil {
		return err
	}

	recipes, err := a.catalog.Search(ctx, in.Query)
	switch {
	case errors.Is(err, domain.ErrNoResults):
		a.listed = nil
		a.clearFilters()
		a.out.Println(a.view.NotFound(a.snapshot(), in.Query))
		return nil
	case err != nil:
		return err
	}

	a.clearFilters()
	a.listed = recipes
	a.out.Println(a.view.Results(a.snapshot(), fmt.Sprintf("Results for %q", in.Query), recipes))
	return nil
}

func (a *App) clearFilters() {
	a.filterCategory = ""
	a.filterArea = ""
}

func (a *App) handleFilter(_ context.Context, cmd command.Command) error {
	if len(a.catalog.Results()) == 0 {
		a.out.PrintHint("Search first, then filter the results.")
		return nil
	}

	field, value := strings.ToLower(cmd.Arg(0)), cmd.Arg(1)
	if field == "" {
		a.out.PrintHint("Categories: " + strings.Join(a.catalog.Categories(), ", "))
		a.out.PrintHint("Areas: " + strings.Join(a.catalog.Areas(), ", "))
		return nil
	}

	if field == "area" {
		canon, ok := matchOption(a.catalog.Areas(), value)
		if !ok {
			return fmt.Errorf("%w: no area %q in these results", domain.ErrInvalidInput, value)
		}
		a.filterArea = canon
	} else {
		canon, ok := matchOption(a.catalog.Categories(), value)
		if !ok {
			return fmt.Errorf("%w: no category %q in these results", domain.ErrInvalidInput, value)
		}
		a.filterCategory = canon
	}

	filtered := a.catalog.Filter(a.filterCategory, a.filterArea)
	a.listed = filtered
	snap := a.snapshot()
	if len(filtered) == 0 {
		a.out.Println(a.view.NoMatches(snap))
		return nil
	}
	a.out.Println(a.view.Results(snap, a.filterHeading(), filtered))
	return nil
}

func (a *App) filterHeading() string {
	var parts []string
	if a.filterCategory != "" {
		parts = append(parts, a.filterCategory)
	}
	if a.filterArea != "" {
		parts = append(parts, a.filterArea)
	}
	return fmt.Sprintf("Results for %q filtered by %s", a.catalog.Query(), strings.Join(parts, " + "))
}

func matchOption(options []string, value string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, strings.TrimSpace(value)) {
			return o, true
		}
	}
	return "", false
}

func (a *App) handleClearFilter(_ context.Context, _ command.Command) error {
	a.clearFilters()
	results := a.catalog.Results()
	if len(results) == 0 {
		a.out.PrintHint("No results to show. Try 'search chicken'.")
		return nil
	}
	a.listed = results
	a.out.Println(a.view.Results(a.snapshot(), fmt.Sprintf("Results for %q", a.catalog.Query()), results))
	return nil
}

// resolve maps a list number or a recipe id to a recipe id.
func (a *App) resolve(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%w: which recipe?", domain.ErrInvalidInput)
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(a.listed) {
		return a.listed[n-1].ID, nil
	}
	if n, err := strconv.Atoi(arg); err == nil && n < 1000 {
		return "", fmt.Errorf("%w: no recipe number %d in the last list", domain.ErrNotFound, n)
	}
	return arg, nil
}

func (a *App) handleOpen(ctx context.Context, cmd command.Command) error {
	id, err := a.resolve(cmd.Arg(0))
	if err != nil {
		return err
	}
	return a.open(ctx, id)
}

func (a *App) open(ctx context.Context, id string) error {
	r, err := a.catalog.LookupByID(ctx, id)
	if errors.Is(err, domain.ErrNoResults) {
		a.out.Println(a.view.NotFound(a.snapshot(), id))
		return nil
	}
	if err != nil {
		return err
	}
	a.servings = r.Servings
	a.renderDetail(*r)
	return nil
}

// lines returns the open recipe's ingredients at the session's serving
// count.
func (a *App) lines(r domain.Recipe) []domain.IngredientLine {
	lines := r.IngredientLines()
	if a.servings <= 0 || r.Servings <= 0 || a.servings == r.Servings {
		return lines
	}
	scaled, err := catalog.ScaleIngredients(lines, r.Servings, a.servings)
	if err != nil {
		a.log.Warn("scaling %s: %v", r.ID, err)
		return lines
	}
	return scaled
}

func (a *App) renderDetail(r domain.Recipe) {
	a.out.Println(a.view.Detail(a.snapshot(), r, a.lines(r), a.servings))
}

func (a *App) handleClose(_ context.Context, _ command.Command) error {
	if a.speaker != nil {
		a.speaker.Stop()
	}
	a.catalog.ClearCurrent()
	a.servings = 0
	a.out.Println(a.view.Welcome(a.snapshot()))
	return nil
}

func (a *App) handleRandom(ctx context.Context, _ command.Command) error {
	r, ok := a.catalog.Random()
	if !ok {
		a.out.PrintHint("Search first; random picks from the current results.")
		return nil
	}
	return a.open(ctx, r.ID)
}

func (a *App) handleRecs(_ context.Context, _ command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	snap := a.snapshot()
	recs := a.view.Recommendations(snap, r)
	return a.showList(snap, "Because you opened "+r.Name, recs)
}

func (a *App) handleForYou(_ context.Context, _ command.Command) error {
	snap := a.snapshot()
	picks := a.view.Personalized(snap)
	if len(picks) == 0 {
		a.out.PrintHint("Favorite or rate a few recipes from your results to get picks.")
		return nil
	}
	return a.showList(snap, "Picked for you", picks)
}

func (a *App) showList(snap view.Snapshot, heading string, recipes []domain.Recipe) error {
	if len(recipes) == 0 {
		a.out.Println(a.view.NoMatches(snap))
		return nil
	}
	a.listed = recipes
	a.out.Println(a.view.Results(snap, heading, recipes))
	return nil
}

func (a *App) handleTrending(_ context.Context, _ command.Command) error {
	snap := a.snapshot()
	a.out.Println(a.view.Trending(snap))
	scored := view.Trending(snap.Results, snap.History, snap.Ratings, snap.FavoriteIDs)
	a.listed = nil
	for _, s := range scored {
		a.listed = append(a.listed, s.Recipe)
	}
	return nil
}

func (a *App) handleHelp(_ context.Context, _ command.Command) error {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, h := range command.HelpEntries {
		fmt.Fprintf(&b, "  %-48s %s\n", h.Usage, h.Description)
	}
	a.out.Println(strings.TrimRight(b.String(), "\n"))
	return nil
}
