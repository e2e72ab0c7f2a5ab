package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/config"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/view"
)

func newShoppingCommand(ctx *commandContext) *cobra.Command {
	shoppingCmd := &cobra.Command{
		Use:   "shopping",
		Short: "Shopping list utilities",
	}
	shoppingCmd.AddCommand(newShoppingExportCommand(ctx))
	return shoppingCmd
}

func newShoppingExportCommand(ctx *commandContext) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the saved shopping list as plain text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, closeLog := ctx.openLogger(cfg)
			defer closeLog()

			adapter, closeStorage, err := ctx.openStorage(cfg, log)
			if err != nil {
				return err
			}
			defer closeStorage()

			stores := store.Open(cmd.Context(), adapter, log.Named("store"), domain.Theme(cfg.UI.DefaultTheme))
			items := stores.Shopping.All()
			if pending {
				items = uncompleted(items)
			}
			text := view.ShoppingText(items, store.CategoryOrder())

			if len(args) == 0 || strings.TrimSpace(args[0]) == "-" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			target, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}
			if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write shopping list: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d items to %s\n", len(items), target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Leave out items already checked off")
	return cmd
}

func uncompleted(items []domain.ShoppingItem) []domain.ShoppingItem {
	out := make([]domain.ShoppingItem, 0, len(items))
	for _, it := range items {
		if !it.Completed {
			out = append(out, it)
		}
	}
	return out
}
