// Package view renders store snapshots into terminal text. It never
// mutates store state; handlers capture a Snapshot after their mutation
// and ask the Synchronizer for the fragments to redraw.
package view

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/timer"
)

// DefaultRecommendations is the target length of a recommendation list.
const DefaultRecommendations = 5

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithShuffler sets the random source for recommendation fill.
func WithShuffler(s Shuffler) Option {
	return func(v *Synchronizer) { v.shuffle = s }
}

// WithWidth sets the terminal width used to clamp wrapping.
func WithWidth(w int) Option {
	return func(v *Synchronizer) { v.width.Store(int64(w)) }
}

// WithRecommendationCount sets how many recommendations to show.
func WithRecommendationCount(n int) Option {
	return func(v *Synchronizer) {
		if n > 0 {
			v.target = n
		}
	}
}

// Synchronizer turns snapshots into rendered fragments.
type Synchronizer struct {
	shuffle Shuffler
	width   atomic.Int64
	target  int
}

// New creates a Synchronizer.
func New(opts ...Option) *Synchronizer {
	v := &Synchronizer{target: DefaultRecommendations}
	for _, o := range opts {
		o(v)
	}
	return v
}

// SetWidth updates the terminal width after a resize. Safe to call while
// another goroutine renders.
func (v *Synchronizer) SetWidth(w int) { v.width.Store(int64(w)) }

// RecommendationCount returns the configured target.
func (v *Synchronizer) RecommendationCount() int { return v.target }

// Recommendations derives suggestions for ref from the snapshot's result set.
func (v *Synchronizer) Recommendations(snap Snapshot, ref domain.Recipe) []domain.Recipe {
	return Recommend(ref, snap.Results, v.target, v.shuffle)
}

// Personalized derives suggestions from favorites and ratings.
func (v *Synchronizer) Personalized(snap Snapshot) []domain.Recipe {
	return Personalized(snap.Favorites, snap.Ratings, snap.Results, v.target, v.shuffle)
}

type pass struct {
	snap Snapshot
	p    Palette
	wrap int
}

func (v *Synchronizer) begin(snap Snapshot) pass {
	return pass{
		snap: snap,
		p:    PaletteFor(snap.Theme, snap.Accessibility.HighContrast),
		wrap: wrapWidth(snap.Accessibility.FontSize, int(v.width.Load())),
	}
}

func (ps pass) para(style lipgloss.Style, s string) string {
	return style.Width(ps.wrap).Render(s)
}

// Counts renders the header counters.
func (v *Synchronizer) Counts(snap Snapshot) string {
	ps := v.begin(snap)
	item := func(label string, n int) string {
		return ps.p.Secondary.Render(label+" ") + ps.p.Accent.Render(fmt.Sprint(n))
	}
	sep := ps.p.Secondary.Render("  |  ")
	return strings.Join([]string{
		item("Favorites", len(snap.Favorites)),
		item("Timers", len(snap.Timers)),
		item("Shopping", len(snap.Shopping)),
		item("Collections", len(snap.Collections)),
	}, sep)
}

// Stars renders a 1-5 rating.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > domain.MaxRating {
		n = domain.MaxRating
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", domain.MaxRating-n)
}

// Welcome is shown before the first search.
func (v *Synchronizer) Welcome(snap Snapshot) string {
	ps := v.begin(snap)
	var b strings.Builder
	b.WriteString(ps.p.Title.Render("Welcome to Recipe Box"))
	b.WriteByte('\n')
	b.WriteString(ps.para(ps.p.Primary, "Search for a dish to get started, for example: search chicken"))
	b.WriteByte('\n')
	b.WriteString(ps.p.Secondary.Render("Type help for every command."))
	return b.String()
}

// Suggestions offered when a search finds nothing.
var Suggestions = []string{"Chicken", "Pasta", "Pizza", "Soup"}

// NotFound is the empty state for a search without results.
func (v *Synchronizer) NotFound(snap Snapshot, query string) string {
	ps := v.begin(snap)
	var b strings.Builder
	b.WriteString(ps.p.Warn.Render("No recipes found"))
	b.WriteByte('\n')
	b.WriteString(ps.para(ps.p.Primary, fmt.Sprintf("We couldn't find any recipes matching %q. Try another search!", query)))
	b.WriteByte('\n')
	b.WriteString(ps.p.Secondary.Render("Why not try: " + strings.Join(Suggestions, ", ")))
	return b.String()
}

// NoMatches is the empty state when filters hide every result.
func (v *Synchronizer) NoMatches(snap Snapshot) string {
	ps := v.begin(snap)
	return ps.p.Warn.Render("No recipes match the selected filters.") + "\n" +
		ps.p.Secondary.Render("Use 'filter clear' to see every result.")
}

// Error is the generic failure state.
func (v *Synchronizer) Error(snap Snapshot, err error) string {
	ps := v.begin(snap)
	return ps.p.Bad.Render("Something went wrong") + "\n" +
		ps.para(ps.p.Secondary, "There was an error fetching the recipes. Please try again later. ("+err.Error()+")")
}

// Results renders a numbered recipe list with favorite and rating state.
func (v *Synchronizer) Results(snap Snapshot, heading string, recipes []domain.Recipe) string {
	ps := v.begin(snap)
	reading := snap.Accessibility.ReadingMode

	headers := []string{"#", "Recipe", "Category", "Area"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}
	if !reading {
		headers = append(headers, "Time", "Difficulty")
		aligns = append(aligns, alignLeft, alignLeft)
	}
	headers = append(headers, "Rating", "Fav")

	rows := make([][]string, 0, len(recipes))
	for i, r := range recipes {
		row := []string{fmt.Sprint(i + 1), r.Name, r.Category, r.Area}
		if !reading {
			row = append(row, r.CookTime, r.Difficulty)
		}
		heart := ""
		if snap.IsFavorite(r.ID) {
			heart = ps.p.Heart.Render("♥")
		}
		row = append(row, ps.p.Star.Render(Stars(snap.Rating(r.ID))), heart)
		rows = append(rows, row)
	}

	var b strings.Builder
	if heading != "" {
		b.WriteString(ps.p.Title.Render(heading))
		b.WriteByte('\n')
	}
	b.WriteString(renderTable(headers, rows, aligns))
	return b.String()
}

// Detail renders one recipe with the user's notes, rating, history,
// collections and, outside reading mode, recommendations.
func (v *Synchronizer) Detail(snap Snapshot, r domain.Recipe, lines []domain.IngredientLine, servings int) string {
	ps := v.begin(snap)
	reading := snap.Accessibility.ReadingMode

	var b strings.Builder
	title := r.Name
	if snap.IsFavorite(r.ID) {
		title += " " + ps.p.Heart.Render("♥")
	}
	b.WriteString(ps.p.Title.Render(title))
	b.WriteByte('\n')

	meta := []string{"Category: " + r.Category, "Area: " + r.Area}
	if !reading {
		meta = append(meta,
			"Cook time: "+r.CookTime,
			"Difficulty: "+r.Difficulty,
			fmt.Sprintf("Calories: %d per serving", r.Calories),
		)
	}
	if servings > 0 {
		meta = append(meta, fmt.Sprintf("Servings: %d", servings))
	}
	b.WriteString(ps.p.Secondary.Render(strings.Join(meta, " · ")))
	b.WriteByte('\n')
	if tags := r.TagList(); len(tags) > 0 {
		b.WriteString(ps.p.Secondary.Render("Tags: " + strings.Join(tags, ", ")))
		b.WriteByte('\n')
	}

	b.WriteString(ps.p.Star.Render(Stars(snap.Rating(r.ID))))
	if h, ok := snap.LastCooked(r.ID); ok {
		b.WriteString(ps.p.Secondary.Render("   Last cooked: " + h.CookedOn.Local().Format("Jan 2, 2006")))
	}
	b.WriteByte('\n')
	if cols := snap.CollectionsWith(r.ID); len(cols) > 0 {
		b.WriteString(ps.p.Secondary.Render("In collections: " + strings.Join(cols, ", ")))
		b.WriteByte('\n')
	}

	b.WriteString("\n" + ps.p.Heading.Render("Ingredients") + "\n")
	for _, l := range lines {
		b.WriteString(ps.p.Primary.Render("  • " + l.String()))
		b.WriteByte('\n')
	}

	b.WriteString("\n" + ps.p.Heading.Render("Instructions") + "\n")
	for i, step := range r.Steps() {
		b.WriteString(ps.para(ps.p.Primary, fmt.Sprintf("%d. %s", i+1, step)))
		b.WriteByte('\n')
	}

	if r.YouTube != "" {
		b.WriteString("\n" + ps.p.Accent.Render("Video: "+r.YouTube) + "\n")
	}
	if note := snap.Notes[r.ID].Note; note != "" {
		b.WriteString("\n" + ps.p.Heading.Render("My notes") + "\n")
		b.WriteString(ps.para(ps.p.Primary, note))
		b.WriteByte('\n')
	}

	if !reading {
		if recs := v.Recommendations(snap, r); len(recs) > 0 {
			b.WriteString("\n" + ps.p.Heading.Render("You might also like") + "\n")
			for _, rec := range recs {
				b.WriteString(ps.p.Secondary.Render(fmt.Sprintf("  %s  %s (%s)", Stars(snap.Rating(rec.ID)), rec.Name, rec.Category)))
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Favorites renders the favorites list.
func (v *Synchronizer) Favorites(snap Snapshot) string {
	if len(snap.Favorites) == 0 {
		ps := v.begin(snap)
		return ps.p.Secondary.Render("No favorites yet. Use 'fav' on an open recipe.")
	}
	return v.Results(snap, "Favorites", snap.Favorites)
}

// groupShopping buckets items by category, keeping list order inside each.
func groupShopping(items []domain.ShoppingItem) map[string][]domain.ShoppingItem {
	out := make(map[string][]domain.ShoppingItem)
	for _, it := range items {
		out[it.Category] = append(out[it.Category], it)
	}
	return out
}

// Shopping renders the list grouped by category in order.
func (v *Synchronizer) Shopping(snap Snapshot, order []string) string {
	ps := v.begin(snap)
	if len(snap.Shopping) == 0 {
		return ps.p.Secondary.Render("Your shopping list is empty. Open a recipe and use 'shop add'.")
	}

	groups := groupShopping(snap.Shopping)
	var b strings.Builder
	done := 0
	b.WriteString(ps.p.Title.Render("Shopping list"))
	b.WriteByte('\n')
	for _, cat := range order {
		items := groups[cat]
		if len(items) == 0 {
			continue
		}
		b.WriteString(ps.p.Heading.Render(cat))
		b.WriteByte('\n')
		for _, it := range items {
			box, style := "[ ]", ps.p.Primary
			if it.Completed {
				box, style = "[x]", ps.p.Secondary.Strikethrough(true)
				done++
			}
			line := fmt.Sprintf("  %s #%d %s", box, it.ID, it.Name)
			if it.Quantity > 1 {
				line += fmt.Sprintf(" ×%d", it.Quantity)
			}
			b.WriteString(style.Render(line))
			b.WriteString(ps.p.Secondary.Render("  (" + strings.Join(it.Recipes, ", ") + ")"))
			b.WriteByte('\n')
		}
	}
	b.WriteString(ps.p.Secondary.Render(fmt.Sprintf("%d of %d items checked", done, len(snap.Shopping))))
	return b.String()
}

// Collections renders every collection with a short preview.
func (v *Synchronizer) Collections(snap Snapshot) string {
	ps := v.begin(snap)
	if len(snap.Collections) == 0 {
		return ps.p.Secondary.Render("No collections yet. Create one with: coll new <name>")
	}
	var b strings.Builder
	b.WriteString(ps.p.Title.Render("Collections"))
	b.WriteByte('\n')
	for _, c := range snap.Collections {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
		b.WriteString(fmt.Sprintf("%s %s %s\n", swatch, ps.p.Heading.Render(fmt.Sprintf("#%d %s", c.ID, c.Name)),
			ps.p.Secondary.Render(fmt.Sprintf("(%d recipes)", len(c.Recipes)))))
		if c.Description != "" {
			b.WriteString(ps.para(ps.p.Secondary, "  "+c.Description))
			b.WriteByte('\n')
		}
		b.WriteString(ps.p.Primary.Render("  " + preview(c.Recipes, 3)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func preview(recipes []domain.Recipe, n int) string {
	if len(recipes) == 0 {
		return "empty"
	}
	var names []string
	for i, r := range recipes {
		if i == n {
			break
		}
		names = append(names, r.Name)
	}
	s := strings.Join(names, ", ")
	if extra := len(recipes) - n; extra > 0 {
		s += fmt.Sprintf(" +%d more", extra)
	}
	return s
}

// Collection renders one collection in full.
func (v *Synchronizer) Collection(snap Snapshot, c domain.Collection) string {
	ps := v.begin(snap)
	if len(c.Recipes) == 0 {
		return ps.p.Title.Render(c.Name) + "\n" + ps.p.Secondary.Render("This collection is empty.")
	}
	return v.Results(snap, c.Name, c.Recipes)
}

// Timers renders the timer table.
func (v *Synchronizer) Timers(snap Snapshot) string {
	ps := v.begin(snap)
	if len(snap.Timers) == 0 {
		return ps.p.Secondary.Render("No active timers. Add one with: timer 5m eggs")
	}
	rows := make([][]string, 0, len(snap.Timers))
	for _, t := range snap.Timers {
		remaining := timer.Format(t.Remaining)
		state := t.State.String()
		if t.Finished() {
			remaining = ps.p.Bad.Render("DONE")
		} else if t.Running() {
			remaining = ps.p.Warn.Render(remaining)
		}
		rows = append(rows, []string{fmt.Sprint(t.ID), t.Label, remaining, timer.Format(t.Total), state})
	}
	return renderTable([]string{"#", "Label", "Remaining", "Total", "State"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft})
}

// History renders the cooking history.
func (v *Synchronizer) History(snap Snapshot) string {
	ps := v.begin(snap)
	if len(snap.History) == 0 {
		return ps.p.Secondary.Render("Nothing cooked yet. Use 'cooked' on an open recipe.")
	}
	rows := make([][]string, 0, len(snap.History))
	for _, h := range snap.History {
		rows = append(rows, []string{h.CookedOn.Local().Format("Jan 2, 2006 15:04"), h.RecipeName, h.RecipeID})
	}
	return renderTable([]string{"Cooked", "Recipe", "ID"}, rows, nil)
}

// Trending renders the trending table.
func (v *Synchronizer) Trending(snap Snapshot) string {
	ps := v.begin(snap)
	scored := Trending(snap.Results, snap.History, snap.Ratings, snap.FavoriteIDs)
	if len(scored) == 0 {
		return ps.p.Secondary.Render("Search for recipes to see what's trending.")
	}
	rows := make([][]string, 0, len(scored))
	for i, s := range scored {
		rows = append(rows, []string{fmt.Sprint(i + 1), s.Name, s.Category, fmt.Sprint(s.Score)})
	}
	return ps.p.Title.Render("Trending") + "\n" +
		renderTable([]string{"#", "Recipe", "Category", "Score"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignRight})
}

// Accessibility renders the settings panel.
func (v *Synchronizer) Accessibility(snap Snapshot) string {
	ps := v.begin(snap)
	a := snap.Accessibility
	onOff := func(b bool) string {
		if b {
			return ps.p.Good.Render("on")
		}
		return ps.p.Secondary.Render("off")
	}
	rows := [][]string{
		{"Font size", string(a.FontSize), "a11y font small|medium|large|xlarge"},
		{"High contrast", onOff(a.HighContrast), "a11y contrast"},
		{"Text to speech", onOff(a.TextToSpeech), "a11y speech"},
		{"Reading mode", onOff(a.ReadingMode), "a11y reading"},
		{"Keyboard navigation", onOff(a.KeyboardNavigation), "a11y keys"},
		{"Theme", string(snap.Theme), "theme"},
	}
	return ps.p.Title.Render("Accessibility") + "\n" + renderTable([]string{"Setting", "Value", "Command"}, rows, nil)
}
