package view

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// ShoppingText renders the shopping list as plain text grouped by
// category, suitable for the clipboard, a file or a share message.
func ShoppingText(items []domain.ShoppingItem, order []string) string {
	var b strings.Builder
	b.WriteString("Shopping List\n")
	groups := groupShopping(items)
	for _, cat := range order {
		list := groups[cat]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", cat)
		for _, it := range list {
			box := "[ ]"
			if it.Completed {
				box = "[x]"
			}
			fmt.Fprintf(&b, "%s %s", box, it.Name)
			if it.Quantity > 1 {
				fmt.Fprintf(&b, " (x%d)", it.Quantity)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RecipeText renders a recipe as plain text for sharing.
func RecipeText(r domain.Recipe, note string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Name)
	fmt.Fprintf(&b, "%s | %s", r.Category, r.Area)
	if r.CookTime != "" {
		fmt.Fprintf(&b, " | %s | %s", r.CookTime, r.Difficulty)
	}
	b.WriteString("\n\nIngredients:\n")
	for _, l := range r.IngredientLines() {
		fmt.Fprintf(&b, "- %s\n", l)
	}
	b.WriteString("\nInstructions:\n")
	for i, step := range r.Steps() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	if r.YouTube != "" {
		fmt.Fprintf(&b, "\nVideo: %s\n", r.YouTube)
	}
	if note != "" {
		fmt.Fprintf(&b, "\nMy notes:\n%s\n", note)
	}
	return b.String()
}

// EmailText builds the subject and body of a recipe email.
func EmailText(r domain.Recipe) (subject, body string) {
	var b strings.Builder
	b.WriteString("Hi there!\n\nI wanted to share this recipe with you:\n\n")
	fmt.Fprintf(&b, "%s\n%s cuisine\nCategory: %s\n", r.Name, r.Area, r.Category)
	if r.CookTime != "" {
		fmt.Fprintf(&b, "Cook time: %s\n", r.CookTime)
	}
	if r.Servings > 0 {
		fmt.Fprintf(&b, "Servings: %d\n", r.Servings)
	}
	b.WriteString("\nINGREDIENTS:\n")
	for _, l := range r.IngredientLines() {
		fmt.Fprintf(&b, "• %s\n", l)
	}
	b.WriteString("\nINSTRUCTIONS:\n")
	for i, step := range r.Steps() {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, step)
	}
	if r.YouTube != "" {
		fmt.Fprintf(&b, "Video recipe: %s\n\n", r.YouTube)
	}
	b.WriteString("Enjoy cooking!\n\n---\nShared from Recipe Box")
	return "Recipe: " + r.Name, b.String()
}

// ShareText is the one-line message used by the share links.
func ShareText(r domain.Recipe, link string) string {
	area := r.Area
	if area == "" {
		area = "tasty"
	}
	return fmt.Sprintf("Check out this delicious %s recipe for %s! %s", area, r.Name, link)
}
