package domain

import (
	"encoding/json"
	"testing"
)

const lookupPayload = `{
  "idMeal": "52772",
  "strMeal": "Teriyaki Chicken Casserole",
  "strCategory": "Chicken",
  "strArea": "Japanese",
  "strInstructions": "Preheat oven to 350.\r\n\r\nCombine soy sauce and water.\r\nBake 15 minutes.",
  "strMealThumb": "https://example.test/wvpsxx1468256321.jpg",
  "strTags": "Meat,Casserole",
  "strYoutube": null,
  "strIngredient1": "soy sauce",
  "strIngredient2": "water",
  "strIngredient3": "",
  "strIngredient4": null,
  "strMeasure1": "3/4 cup",
  "strMeasure2": "1/2 cup",
  "strMeasure3": " ",
  "calories": "450",
  "servings": 4
}`

func TestRecipeUnmarshalCatalogShape(t *testing.T) {
	var r Recipe
	if err := json.Unmarshal([]byte(lookupPayload), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r.ID != "52772" || r.Area != "Japanese" || r.YouTube != "" {
		t.Fatalf("unexpected recipe %+v", r)
	}
	if r.Calories != 450 || r.Servings != 4 {
		t.Fatalf("expected calories 450 servings 4, got %d/%d", r.Calories, r.Servings)
	}

	lines := r.IngredientLines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 ingredient lines, got %v", lines)
	}
	if got := lines[0].String(); got != "soy sauce - 3/4 cup" {
		t.Fatalf("unexpected line %q", got)
	}

	steps := r.Steps()
	if len(steps) != 3 || steps[2] != "Bake 15 minutes." {
		t.Fatalf("unexpected steps %q", steps)
	}
	if tags := r.TagList(); len(tags) != 2 || tags[1] != "Casserole" {
		t.Fatalf("unexpected tags %q", tags)
	}
}

func TestRecipeMarshalKeepsCatalogKeys(t *testing.T) {
	r := Recipe{ID: "1", Name: "Toast", CookTime: "15 min"}
	r.Ingredients[0] = "bread"

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	for _, k := range []string{"idMeal", "strMeal", "strIngredient1", "strMeasure20", "cookTime"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing key %s in %s", k, data)
		}
	}
	if _, ok := m["calories"]; ok {
		t.Fatal("unset calories should be omitted")
	}

	var back Recipe
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != r {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, r)
	}
}

func TestRecipeUnmarshalRejectsBadTypes(t *testing.T) {
	var r Recipe
	if err := json.Unmarshal([]byte(`{"idMeal": 5}`), &r); err == nil {
		t.Fatal("expected error for numeric id")
	}
	if err := json.Unmarshal([]byte(`{"calories": "lots"}`), &r); err == nil {
		t.Fatal("expected error for non-numeric calories")
	}
}
