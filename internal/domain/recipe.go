// Package domain defines the core types and interfaces for the recipe box.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxIngredients is the number of ingredient/measure slots a catalog recipe carries.
const MaxIngredients = 20

// Recipe is a catalog recipe as served by the lookup service, plus the
// display metadata generated locally on every fetch.
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Thumbnail    string
	Instructions string
	YouTube      string
	Tags         string
	Ingredients  [MaxIngredients]string
	Measures     [MaxIngredients]string

	// Generated per fetch, never sent back to the catalog.
	CookTime   string
	Difficulty string
	Calories   int
	Servings   int
}

// IngredientLine is one non-empty ingredient slot of a recipe.
type IngredientLine struct {
	Name    string
	Measure string
}

// String renders the line the way the detail view and shopping list expect it.
func (l IngredientLine) String() string {
	if l.Measure == "" {
		return l.Name
	}
	return l.Name + " - " + l.Measure
}

// IngredientLines returns the filled ingredient slots in order.
func (r *Recipe) IngredientLines() []IngredientLine {
	var out []IngredientLine
	for i := 0; i < MaxIngredients; i++ {
		name := strings.TrimSpace(r.Ingredients[i])
		if name == "" {
			continue
		}
		out = append(out, IngredientLine{Name: name, Measure: strings.TrimSpace(r.Measures[i])})
	}
	return out
}

// IngredientNames returns just the ingredient names, in order.
func (r *Recipe) IngredientNames() []string {
	lines := r.IngredientLines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out
}

// Steps splits the instructions into non-empty lines.
func (r *Recipe) Steps() []string {
	normalized := strings.ReplaceAll(r.Instructions, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(normalized, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TagList returns the comma separated tags as a slice.
func (r *Recipe) TagList() []string {
	var out []string
	for _, t := range strings.Split(r.Tags, ",") {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Wire field names used by the catalog service and by the persisted snapshots.
const (
	fieldID           = "idMeal"
	fieldName         = "strMeal"
	fieldCategory     = "strCategory"
	fieldArea         = "strArea"
	fieldThumb        = "strMealThumb"
	fieldInstructions = "strInstructions"
	fieldYouTube      = "strYoutube"
	fieldTags         = "strTags"
	fieldCookTime     = "cookTime"
	fieldDifficulty   = "difficulty"
	fieldCalories     = "calories"
	fieldServings     = "servings"
)

// MarshalJSON writes the recipe in the catalog's flat shape so stored
// favorites and collections look exactly like service payloads.
func (r Recipe) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		fieldID:           r.ID,
		fieldName:         r.Name,
		fieldCategory:     r.Category,
		fieldArea:         r.Area,
		fieldThumb:        r.Thumbnail,
		fieldInstructions: r.Instructions,
		fieldYouTube:      r.YouTube,
		fieldTags:         r.Tags,
	}
	for i := 0; i < MaxIngredients; i++ {
		m[fmt.Sprintf("strIngredient%d", i+1)] = r.Ingredients[i]
		m[fmt.Sprintf("strMeasure%d", i+1)] = r.Measures[i]
	}
	if r.CookTime != "" {
		m[fieldCookTime] = r.CookTime
	}
	if r.Difficulty != "" {
		m[fieldDifficulty] = r.Difficulty
	}
	if r.Calories != 0 {
		m[fieldCalories] = r.Calories
	}
	if r.Servings != 0 {
		m[fieldServings] = r.Servings
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the catalog's flat shape. The service sends null for
// unused slots and optional fields; those become empty strings.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Recipe
	var err error
	str := func(key string) string {
		v, ok := raw[key]
		if !ok || err != nil {
			return ""
		}
		var s *string
		if e := json.Unmarshal(v, &s); e != nil {
			err = fmt.Errorf("field %s: %w", key, e)
			return ""
		}
		if s == nil {
			return ""
		}
		return *s
	}

	out.ID = str(fieldID)
	out.Name = str(fieldName)
	out.Category = str(fieldCategory)
	out.Area = str(fieldArea)
	out.Thumbnail = str(fieldThumb)
	out.Instructions = str(fieldInstructions)
	out.YouTube = str(fieldYouTube)
	out.Tags = str(fieldTags)
	for i := 0; i < MaxIngredients; i++ {
		out.Ingredients[i] = str(fmt.Sprintf("strIngredient%d", i+1))
		out.Measures[i] = str(fmt.Sprintf("strMeasure%d", i+1))
	}
	out.CookTime = str(fieldCookTime)
	out.Difficulty = str(fieldDifficulty)
	if err != nil {
		return err
	}

	for key, dst := range map[string]*int{fieldCalories: &out.Calories, fieldServings: &out.Servings} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		n, err := decodeCount(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		*dst = n
	}

	*r = out
	return nil
}

// decodeCount reads a number that older snapshots stored as a string.
func decodeCount(v json.RawMessage) (int, error) {
	var n *int
	if err := json.Unmarshal(v, &n); err == nil {
		if n == nil {
			return 0, nil
		}
		return *n, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, err
	}
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}
