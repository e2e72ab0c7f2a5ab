package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/view"
)

const shoppingExportName = "shopping-list.txt"

func (a *App) handleFav(ctx context.Context, _ command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	if a.stores.Favorites.Toggle(ctx, r) {
		a.out.PrintHint(fmt.Sprintf("♥ Added %s to favorites.", r.Name))
	} else {
		a.out.PrintHint(fmt.Sprintf("Removed %s from favorites.", r.Name))
	}
	a.out.Println(a.view.Counts(a.snapshot()))
	return nil
}

func (a *App) handleFavs(_ context.Context, _ command.Command) error {
	snap := a.snapshot()
	a.listed = snap.Favorites
	a.out.Println(a.view.Favorites(snap))
	return nil
}

// atoi parses a numeric command argument.
func atoi(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidInput, what, s)
	}
	return n, nil
}

func (a *App) handleShopAdd(ctx context.Context, cmd command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	if s := cmd.Arg(0); s != "" {
		n, err := atoi("servings", s)
		if err != nil {
			return err
		}
		if err := a.validate.check(servingsInput{Servings: n}); err != nil {
			return err
		}
		a.servings = n
	}

	lines := a.lines(r)
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.String())
	}
	a.stores.Shopping.Add(ctx, names, r.Name)

	if a.servings > 0 && a.servings != r.Servings {
		a.out.PrintHint(fmt.Sprintf("Added %d ingredients from %s (scaled to %d servings).", len(names), r.Name, a.servings))
	} else {
		a.out.PrintHint(fmt.Sprintf("Added %d ingredients from %s.", len(names), r.Name))
	}
	a.out.Println(a.view.Counts(a.snapshot()))
	return nil
}

func (a *App) handleShop(_ context.Context, _ command.Command) error {
	a.out.Println(a.view.Shopping(a.snapshot(), store.CategoryOrder()))
	return nil
}

func (a *App) handleShopToggle(ctx context.Context, cmd command.Command) error {
	id, err := atoi("item", cmd.Arg(0))
	if err != nil {
		return err
	}
	if _, err := a.stores.Shopping.Toggle(ctx, id); err != nil {
		return err
	}
	a.out.Println(a.view.Shopping(a.snapshot(), store.CategoryOrder()))
	return nil
}

func (a *App) handleShopRemove(ctx context.Context, cmd command.Command) error {
	id, err := atoi("item", cmd.Arg(0))
	if err != nil {
		return err
	}
	if err := a.stores.Shopping.Remove(ctx, id); err != nil {
		return err
	}
	a.out.Println(a.view.Shopping(a.snapshot(), store.CategoryOrder()))
	return nil
}

func (a *App) handleShopClear(_ context.Context, _ command.Command) error {
	if a.stores.Shopping.Len() == 0 {
		a.out.PrintHint("The shopping list is already empty.")
		return nil
	}
	a.confirm("Clear the whole shopping list?", func(ctx context.Context) error {
		a.stores.Shopping.Clear(ctx)
		a.out.PrintHint("Shopping list cleared.")
		a.out.Println(a.view.Counts(a.snapshot()))
		return nil
	})
	return nil
}

func (a *App) handleShopExport(_ context.Context, cmd command.Command) error {
	items := a.stores.Shopping.All()
	if len(items) == 0 {
		a.out.PrintHint("The shopping list is empty; nothing to export.")
		return nil
	}
	path := a.exportPath(cmd.Arg(0), shoppingExportName)
	if err := writeExport(path, view.ShoppingText(items, store.CategoryOrder())); err != nil {
		return err
	}
	a.out.PrintHint("Shopping list written to " + path)
	return nil
}

func (a *App) handleCollections(_ context.Context, _ command.Command) error {
	a.out.Println(a.view.Collections(a.snapshot()))
	return nil
}

func (a *App) handleCollNew(ctx context.Context, cmd command.Command) error {
	in := collectionInput{Name: cmd.Arg(0), Description: cmd.Arg(1)}
	if err := a.validate.check(in); err != nil {
		return err
	}
	col, err := a.stores.Collections.Create(ctx, in.Name, in.Description)
	if err != nil {
		return err
	}
	a.out.PrintHint(fmt.Sprintf("Created collection %d %q.", col.ID, col.Name))
	a.out.Println(a.view.Collections(a.snapshot()))
	return nil
}

func (a *App) handleCollAdd(ctx context.Context, cmd command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	id, err := atoi("collection", cmd.Arg(0))
	if err != nil {
		return err
	}
	res, err := a.stores.Collections.AddRecipe(ctx, id, r)
	if err != nil {
		return err
	}
	col, _ := a.stores.Collections.Get(id)
	if res == store.Duplicate {
		a.out.PrintHint(fmt.Sprintf("%s is already in %s.", r.Name, col.Name))
		return nil
	}
	a.out.PrintHint(fmt.Sprintf("Added %s to %s.", r.Name, col.Name))
	a.out.Println(a.view.Counts(a.snapshot()))
	return nil
}

func (a *App) handleCollRemove(ctx context.Context, cmd command.Command) error {
	id, err := atoi("collection", cmd.Arg(0))
	if err != nil {
		return err
	}
	col, err := a.stores.Collections.Get(id)
	if err != nil {
		return err
	}

	// The recipe is a position in the collection or a recipe id.
	recipeID := cmd.Arg(1)
	if n, err := strconv.Atoi(recipeID); err == nil && n >= 1 && n <= len(col.Recipes) {
		recipeID = col.Recipes[n-1].ID
	}
	if !col.HasRecipe(recipeID) {
		return fmt.Errorf("recipe %s in collection %d: %w", recipeID, id, domain.ErrNotFound)
	}

	if err := a.stores.Collections.RemoveRecipe(ctx, id, recipeID); err != nil {
		return err
	}
	col, err = a.stores.Collections.Get(id)
	if err != nil {
		return err
	}
	a.out.Println(a.view.Collection(a.snapshot(), col))
	return nil
}

func (a *App) handleCollDelete(_ context.Context, cmd command.Command) error {
	id, err := atoi("collection", cmd.Arg(0))
	if err != nil {
		return err
	}
	col, err := a.stores.Collections.Get(id)
	if err != nil {
		return err
	}
	a.confirm(fmt.Sprintf("Delete collection %q?", col.Name), func(ctx context.Context) error {
		if err := a.stores.Collections.Delete(ctx, id); err != nil {
			return err
		}
		a.out.PrintHint(fmt.Sprintf("Deleted collection %q.", col.Name))
		a.out.Println(a.view.Collections(a.snapshot()))
		return nil
	})
	return nil
}

func (a *App) handleCollView(_ context.Context, cmd command.Command) error {
	id, err := atoi("collection", cmd.Arg(0))
	if err != nil {
		return err
	}
	col, err := a.stores.Collections.Get(id)
	if err != nil {
		return err
	}
	a.listed = col.Recipes
	a.out.Println(a.view.Collection(a.snapshot(), col))
	return nil
}
