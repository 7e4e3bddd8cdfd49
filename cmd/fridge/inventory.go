package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smartfood/internal/catalog"
	"github.com/Veraticus/smartfood/internal/cli"
	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/edit"
	"github.com/Veraticus/smartfood/internal/engine"
	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/suggest"
)

const (
	shortIDLength   = 8
	defaultLocation = "Ngăn mát"
)

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Manage the food in the fridge",
		Long:    `List, add, remove and change the quantity of the items in the fridge.`,
	}

	cmd.AddCommand(listInventoryCmd())
	cmd.AddCommand(addItemCmd())
	cmd.AddCommand(deleteItemCmd())
	cmd.AddCommand(editItemCmd())

	return cmd
}

func listInventoryCmd() *cobra.Command {
	var filter model.InventoryFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items in the fridge",
		Long:  `Display the items sorted by expiry date with how urgently each must be used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			view, err := pantry.Inventory(ctx, filter)
			if err != nil {
				return err
			}
			stats, err := pantry.Stats(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Fridge"))
			fmt.Println(renderStats(stats))

			if len(view.Items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No items found. Use 'fridge inventory add' to add one."))
				return nil
			}
			printItems(view.Items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "only items whose name contains this text")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "only items of this category (all for every category)")

	return cmd
}

func printItems(items []engine.ItemView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	header := cli.TableHeaderStyle.UnsetBorderBottom()
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		header.Render("ID"),
		header.Render("Name"),
		header.Render("Quantity"),
		header.Render("Location"),
		header.Render("Category"),
		header.Render("Expires"),
		header.Render("Status"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", shortIDLength),
		strings.Repeat("-", 20),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 8))

	for _, iv := range items {
		item := iv.Item
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(item.ID),
			item.Name,
			cli.FormatQuantity(item.Quantity, item.Unit),
			item.StorageLocation,
			item.Category,
			item.ExpiryDate.Format(dateLayout),
			cli.UrgencyBadge(iv.Urgency, iv.DaysRemaining))
	}
}

func renderStats(stats engine.Stats) string {
	lines := []string{
		fmt.Sprintf("Items: %s   Expiring soon: %s   Expired: %s",
			cli.BoldStyle.Render(fmt.Sprint(stats.Expiry.Total)),
			cli.UrgentStyle.Render(fmt.Sprint(stats.Expiry.ExpiringSoon)),
			cli.ErrorStyle.Render(fmt.Sprint(stats.Expiry.Expired))),
	}
	if stats.SuggestionsDisabled {
		lines = append(lines, cli.SubtleStyle.Render("Recipe suggestions are not available for this role"))
	} else {
		lines = append(lines, fmt.Sprintf("Can make: %s   Almost (≤%d missing): %s   Recipes: %d",
			cli.SuccessStyle.Render(fmt.Sprint(stats.Suggestions.CanMake)),
			suggest.SmartMaxMissing,
			cli.InfoStyle.Render(fmt.Sprint(stats.Suggestions.SmartSuggested)),
			stats.Suggestions.Total))
	}
	return strings.Join(lines, "\n") + "\n"
}

func addItemCmd() *cobra.Command {
	var (
		item    model.InventoryItem
		expires string
		days    int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the fridge",
		Long: `Add an item with its quantity and expiry date. Unit and category are
filled in from the built-in ingredient list when not given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item.Name = strings.TrimSpace(args[0])

			if hint, ok := catalog.LookupHint(item.Name); ok {
				if item.Unit == "" {
					item.Unit = hint.Unit
				}
				if item.Category == "" {
					item.Category = hint.Category
				}
			}

			switch {
			case expires != "":
				expiry, err := parseExpiry(expires)
				if err != nil {
					return err
				}
				item.ExpiryDate = expiry
			case cmd.Flags().Changed("days"):
				now := time.Now()
				item.ExpiryDate = time.Date(now.Year(), now.Month(), now.Day()+days, 0, 0, 0, 0, time.Local)
			default:
				return common.NewUserError("Give an expiry date with --expires YYYY-MM-DD or --days N",
					common.NewValidationError("expires", "required"))
			}

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			created, err := pantry.AddItem(ctx, item)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s), expires %s [%s]",
				created.Name,
				cli.FormatQuantity(created.Quantity, created.Unit),
				created.ExpiryDate.Format(dateLayout),
				shortID(created.ID))))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&item.Quantity, "quantity", "n", 1, "quantity")
	cmd.Flags().StringVarP(&item.Unit, "unit", "u", "", "unit (kg, quả, bó, ...)")
	cmd.Flags().StringVarP(&item.StorageLocation, "location", "l", defaultLocation, "storage location")
	cmd.Flags().StringVarP(&item.Category, "category", "c", "", "category")
	cmd.Flags().StringVarP(&expires, "expires", "e", "", "expiry date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "days until the item expires")

	return cmd
}

func deleteItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Remove an item from the fridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			item, err := resolveItem(ctx, pantry, args[0])
			if err != nil {
				return err
			}
			if err := pantry.DeleteItem(ctx, item.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %s", item.Name)))
			return nil
		},
	}
}

func editItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id|name> [quantity]",
		Short: "Change the quantity of an item",
		Long: `Change how much of an item is left. With a quantity the change is saved
right away; without one an interactive prompt lets you step the quantity up
and down. A quantity of zero removes the item.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pantry, cfg, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			item, err := resolveItem(ctx, pantry, args[0])
			if err != nil {
				return err
			}
			if err := pantry.StartEdit(ctx, item.ID); err != nil {
				return err
			}
			editor := pantry.Editor()

			var outcome edit.Outcome
			if len(args) == 2 {
				if err := editor.SetInput(args[1]); err != nil {
					_ = editor.Cancel()
					return err
				}
				outcome, err = editor.Commit(ctx)
				if err != nil {
					_ = editor.Cancel()
					return common.NewUserError(cli.DescribeError(err), err)
				}
			} else {
				prompter := cli.NewQuantityPrompter(os.Stdin, os.Stdout, cfg.EditStep)
				outcome, err = prompter.Run(ctx, editor)
				if errors.Is(err, cli.ErrEditCancelled) {
					fmt.Println(cli.SubtleStyle.Render("Cancelled, nothing changed"))
					return nil
				}
				if err != nil {
					return err
				}
			}

			printOutcome(item, outcome)
			return nil
		},
	}
}

func printOutcome(item model.InventoryItem, outcome edit.Outcome) {
	switch outcome {
	case edit.OutcomeDeleted:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s used up and removed", item.Name)))
	case edit.OutcomeUpdated:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %s", item.Name)))
	default:
		fmt.Println(cli.SubtleStyle.Render("No change"))
	}
}

// resolveItem finds an item by full id, unique id prefix or exact name.
func resolveItem(ctx context.Context, pantry *engine.Pantry, ref string) (model.InventoryItem, error) {
	view, err := pantry.Inventory(ctx, model.InventoryFilter{})
	if err != nil {
		return model.InventoryItem{}, err
	}

	ref = strings.TrimSpace(ref)
	key := matcher.NormalizeName(ref)
	var matches []model.InventoryItem
	for _, iv := range view.Items {
		if iv.Item.ID == ref {
			return iv.Item, nil
		}
		if strings.HasPrefix(iv.Item.ID, ref) || matcher.NormalizeName(iv.Item.Name) == key {
			matches = append(matches, iv.Item)
		}
	}

	switch len(matches) {
	case 0:
		return model.InventoryItem{}, fmt.Errorf("inventory item %q: %w", ref, common.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.InventoryItem{}, common.NewUserError(
			fmt.Sprintf("%q matches %d items, use the id instead", ref, len(matches)), nil)
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}
