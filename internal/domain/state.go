package domain

import "time"

// ShoppingItem is one line of the shopping list. Items with the same name
// (case-insensitive) are merged by bumping Quantity.
type ShoppingItem struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Completed bool     `json:"completed"`
	Category  string   `json:"category"`
	Recipes   []string `json:"recipes"`
}

// Collection is a user-named, ordered group of recipe snapshots.
type Collection struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	Recipes     []Recipe  `json:"recipes"`
}

// HasRecipe reports whether the collection already holds the recipe id.
func (c *Collection) HasRecipe(id string) bool {
	for i := range c.Recipes {
		if c.Recipes[i].ID == id {
			return true
		}
	}
	return false
}

// RecipeNote is the free-text note attached to a recipe id.
type RecipeNote struct {
	Note         string    `json:"note"`
	LastModified time.Time `json:"lastModified"`
}

// RecipeRating is a 1-5 star rating attached to a recipe id.
type RecipeRating struct {
	Rating  int       `json:"rating"`
	RatedOn time.Time `json:"ratedOn"`
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// HistoryEntry records that a recipe was cooked.
type HistoryEntry struct {
	ID         string    `json:"id"`
	RecipeID   string    `json:"recipeId"`
	RecipeName string    `json:"recipeName"`
	CookedOn   time.Time `json:"cookedOn"`
}

// FontSize is the reading size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
	FontXLarge FontSize = "xlarge"
)

// Valid reports whether f is one of the known sizes.
func (f FontSize) Valid() bool {
	switch f {
	case FontSmall, FontMedium, FontLarge, FontXLarge:
		return true
	}
	return false
}

// AccessibilitySettings is the singleton accessibility preference record.
type AccessibilitySettings struct {
	FontSize           FontSize `json:"fontSize"`
	HighContrast       bool     `json:"highContrast"`
	TextToSpeech       bool     `json:"textToSpeech"`
	ReadingMode        bool     `json:"readingMode"`
	KeyboardNavigation bool     `json:"keyboardNavigation"`
}

// DefaultAccessibility returns the settings used before the user changes anything.
func DefaultAccessibility() AccessibilitySettings {
	return AccessibilitySettings{FontSize: FontMedium}
}

// Theme is the color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// TimerState is the lifecycle position of a countdown timer.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
	TimerFinished
)

// String returns a human-readable timer state.
func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Timer is a read-only snapshot of a countdown timer.
type Timer struct {
	ID        int
	Label     string
	Total     int // seconds
	Remaining int // seconds
	State     TimerState
}

// Running reports whether the timer is counting down.
func (t Timer) Running() bool { return t.State == TimerRunning }

// Finished reports whether the timer reached zero.
func (t Timer) Finished() bool { return t.State == TimerFinished }
