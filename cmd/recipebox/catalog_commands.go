package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/catalog"
	"github.com/hammamikhairi/recipebox/internal/config"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/view"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and print the matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, closeLog, err := ctx.oneShotCatalog()
			if err != nil {
				return err
			}
			defer closeLog()

			query := strings.Join(args, " ")
			recipes, err := client.Search(cmd.Context(), query)
			out := cmd.OutOrStdout()
			if errors.Is(err, domain.ErrNoResults) {
				fmt.Fprintf(out, "No recipes found for %q\n", query)
				return nil
			}
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			if limit > 0 && len(recipes) > limit {
				recipes = recipes[:limit]
			}

			views := view.New(view.WithWidth(display.TermWidth()))
			heading := fmt.Sprintf("Results for %q", query)
			fmt.Fprintln(out, views.Results(standaloneSnapshot(cfg), heading, recipes))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many recipes (0 for all)")
	return cmd
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var servings int

	cmd := &cobra.Command{
		Use:   "lookup <id>",
		Short: "Print one recipe by catalog id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, closeLog, err := ctx.oneShotCatalog()
			if err != nil {
				return err
			}
			defer closeLog()

			r, err := client.LookupByID(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNoResults) {
				return fmt.Errorf("no recipe with id %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("lookup: %w", err)
			}

			lines := r.IngredientLines()
			if servings > 0 && r.Servings > 0 && servings != r.Servings {
				lines, err = catalog.ScaleIngredients(lines, r.Servings, servings)
				if err != nil {
					return fmt.Errorf("scale: %w", err)
				}
			} else {
				servings = r.Servings
			}

			views := view.New(view.WithWidth(display.TermWidth()))
			fmt.Fprintln(cmd.OutOrStdout(), views.Detail(standaloneSnapshot(cfg), *r, lines, servings))
			return nil
		},
	}

	cmd.Flags().IntVarP(&servings, "servings", "s", 0, "Scale the ingredients to this many servings")
	return cmd
}

// oneShotCatalog prepares a catalog client for a single non-interactive
// command. Logs go to the configured file so stdout stays clean.
func (c *commandContext) oneShotCatalog() (*config.Config, *catalog.Client, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log, closeLog := c.openLogger(cfg)
	client, err := newCatalog(cfg, log)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return cfg, client, closeLog, nil
}

// standaloneSnapshot is the render state for commands that run without
// the stores.
func standaloneSnapshot(cfg *config.Config) view.Snapshot {
	return view.Snapshot{
		Accessibility: domain.DefaultAccessibility(),
		Theme:         domain.Theme(cfg.UI.DefaultTheme),
	}
}
