package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/view"
)

const recipeLinkBase = "https://www.themealdb.com/meal/"

// RecipeLink is the public page for a recipe id.
func RecipeLink(id string) string { return recipeLinkBase + id }

// escape percent-encodes s for a URL query value, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// MailtoLink builds a mailto: URL with subject and body.
func MailtoLink(subject, body string) string {
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}

// ShareLinks returns the social share intents for a recipe.
func ShareLinks(r domain.Recipe) map[string]string {
	link := RecipeLink(r.ID)
	text := view.ShareText(r, link)
	return map[string]string{
		"Twitter":  "https://twitter.com/intent/tweet?text=" + escape(text),
		"Facebook": "https://www.facebook.com/sharer/sharer.php?u=" + escape(link),
		"WhatsApp": "https://wa.me/?text=" + escape(text),
	}
}

var shareOrder = []string{"Twitter", "Facebook", "WhatsApp"}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (a *App) handlePrint(_ context.Context, cmd command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	path := a.exportPath(cmd.Arg(0), slug(r.Name)+".txt")
	if err := writeExport(path, view.RecipeText(r, a.stores.Notes.Get(r.ID))); err != nil {
		return err
	}
	a.out.PrintHint("Recipe written to " + path)
	return nil
}

func (a *App) handleEmail(_ context.Context, _ command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	subject, body := view.EmailText(r)
	a.out.Println(MailtoLink(subject, body))
	a.out.PrintHint("Open the link above in your mail client.")
	return nil
}

func (a *App) handleShare(_ context.Context, _ command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	links := ShareLinks(r)
	var b strings.Builder
	b.WriteString(view.ShareText(r, RecipeLink(r.ID)))
	b.WriteByte('\n')
	for _, name := range shareOrder {
		fmt.Fprintf(&b, "\n%-9s %s", name+":", links[name])
	}
	a.out.Println(b.String())
	return nil
}

func (a *App) handleCopy(_ context.Context, cmd command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	text, what := RecipeLink(r.ID), "Recipe link"
	if strings.EqualFold(cmd.Arg(0), "recipe") {
		text, what = view.RecipeText(r, a.stores.Notes.Get(r.ID)), "Recipe"
	}
	if err := a.copyText(text); err != nil {
		a.log.Warn("clipboard write failed: %v", err)
		a.out.PrintError("Could not reach the clipboard. Here it is instead:")
		a.out.Println(text)
		return nil
	}
	a.out.PrintHint(what + " copied to clipboard!")
	return nil
}
