package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smartfood/internal/catalog"
	"github.com/Veraticus/smartfood/internal/cli"
	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/suggest"
)

func recipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"recipe"},
		Short:   "Manage the recipe catalog",
		Long:    `List, inspect, add, remove, import and export the recipes suggestions are made from.`,
	}

	cmd.AddCommand(listRecipesCmd())
	cmd.AddCommand(showRecipeCmd())
	cmd.AddCommand(addRecipeCmd())
	cmd.AddCommand(deleteRecipeCmd())
	cmd.AddCommand(importRecipesCmd())
	cmd.AddCommand(exportRecipesCmd())

	return cmd
}

func listRecipesCmd() *cobra.Command {
	var (
		search     string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the recipes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			level, err := parseDifficulty(difficulty, true)
			if err != nil {
				return err
			}

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			recipes, err := pantry.Recipes(ctx, service.RecipeFilter{Search: search, Difficulty: level})
			if err != nil {
				return err
			}
			result, err := pantry.Suggestions(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Recipes"))
			if len(recipes) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recipes found. Use 'fridge recipes import' to load a catalog."))
				return nil
			}
			printRecipes(recipes, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only recipes whose name contains this text")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "all", "only recipes of this difficulty (Dễ, Trung bình, Khó or all)")

	return cmd
}

func printRecipes(recipes []model.Recipe, result suggest.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	header := cli.TableHeaderStyle.UnsetBorderBottom()
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		header.Render("ID"),
		header.Render("Name"),
		header.Render("Difficulty"),
		header.Render("Time"),
		header.Render("Ingredients"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", shortIDLength),
		strings.Repeat("-", 24),
		strings.Repeat("-", 10),
		strings.Repeat("-", 8),
		strings.Repeat("-", 12))

	for _, recipe := range recipes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(recipe.ID),
			recipe.Name,
			recipe.Difficulty,
			recipe.CookTime,
			matchBadge(recipe, result))
	}
}

// matchBadge renders how many of the recipe's ingredients are in the fridge.
func matchBadge(recipe model.Recipe, result suggest.Result) string {
	match, ok := result.Lookup(recipe.ID)
	if !ok {
		return fmt.Sprint(len(recipe.Ingredients))
	}
	have := len(match.Available)
	total := have + len(match.Missing)
	badge := fmt.Sprintf("%d/%d", have, total)
	switch {
	case match.CanMake():
		return cli.SuccessStyle.Render(cli.CheckIcon + " " + badge)
	case len(match.Missing) <= suggest.SmartMaxMissing:
		return cli.InfoStyle.Render(badge)
	default:
		return cli.SubtleStyle.Render(badge)
	}
}

func showRecipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe and what is missing to cook it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			recipe, err := pantry.Recipe(ctx, args[0])
			if err != nil {
				return err
			}
			result, err := pantry.Suggestions(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(cli.RecipeIcon + " " + recipe.Name))
			details := []string{string(recipe.Difficulty)}
			if recipe.CookTime != "" {
				details = append(details, recipe.CookTime)
			}
			details = append(details, fmt.Sprintf("%d servings", recipe.Servings))
			fmt.Println(cli.SubtleStyle.Render(strings.Join(details, " · ")))
			if recipe.Description != "" {
				fmt.Println(recipe.Description)
			}
			fmt.Println()

			match, matched := result.Lookup(recipe.ID)
			missing := make(map[string]bool, len(match.Missing))
			for _, name := range match.Missing {
				missing[matcher.NormalizeName(name)] = true
			}

			for _, ing := range recipe.Ingredients {
				line := fmt.Sprintf("  %s  %s", ing.Name, cli.SubtleStyle.Render(cli.FormatQuantity(ing.Quantity, ing.Unit)))
				switch {
				case !matched:
					fmt.Println(line)
				case missing[matcher.NormalizeName(ing.Name)]:
					fmt.Println(cli.ErrorStyle.Render(cli.ErrorIcon) + line)
				default:
					fmt.Println(cli.SuccessStyle.Render(cli.CheckIcon) + line)
				}
			}

			if matched {
				fmt.Println()
				if match.CanMake() {
					fmt.Println(cli.FormatSuccess("Everything is in the fridge"))
				} else {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("Missing %d: %s",
						len(match.Missing), strings.Join(match.Missing, ", "))))
				}
			}
			return nil
		},
	}
}

func addRecipeCmd() *cobra.Command {
	var (
		recipe      model.Recipe
		difficulty  string
		ingredients []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recipe to the catalog",
		Long: `Add a recipe. Each --ingredient takes name[:quantity[:unit]], for example
--ingredient "Trứng gà:3:quả" --ingredient "Hành lá".`,
		Example: `  fridge recipes add "Trứng chiên" --ingredient "Trứng gà:3:quả" --ingredient "Hành lá"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			recipe.Name = strings.TrimSpace(args[0])
			level, err := parseDifficulty(difficulty, false)
			if err != nil {
				return err
			}
			recipe.Difficulty = level
			for _, spec := range ingredients {
				ing, err := parseIngredient(spec)
				if err != nil {
					return err
				}
				recipe.Ingredients = append(recipe.Ingredients, ing)
			}
			if len(recipe.Ingredients) == 0 {
				return common.NewUserError("Give at least one --ingredient",
					common.NewValidationError("ingredients", "at least one is required"))
			}

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			created, err := pantry.RecipeStore().CreateRecipe(ctx, recipe)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added recipe %s [%s] with %d ingredients",
				created.Name, created.ID, len(created.Ingredients))))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipe.ID, "id", "", "recipe id (generated when empty)")
	cmd.Flags().StringVar(&recipe.Description, "description", "", "short description")
	cmd.Flags().StringVar(&recipe.Category, "category", "", "category")
	cmd.Flags().StringVar(&recipe.CookTime, "time", "", "cooking time, e.g. \"20 phút\"")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(model.DifficultyEasy), "Dễ, Trung bình or Khó")
	cmd.Flags().IntVar(&recipe.Servings, "servings", 2, "number of servings")
	cmd.Flags().StringArrayVarP(&ingredients, "ingredient", "i", nil, "ingredient as name[:quantity[:unit]] (repeatable)")

	return cmd
}

func deleteRecipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a recipe from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := pantry.RecipeStore().DeleteRecipe(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed recipe %s", args[0])))
			return nil
		},
	}
}

func importRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import recipes from a YAML catalog",
		Long: `Import every recipe of a YAML catalog file. Recipes whose id already exists
are replaced, the rest are added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := catalog.LoadFile(path)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Could not read %s", path), err)
			}

			pantry, _, closeStore, err := openPantry(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			handler := cli.NewInterruptHandler(os.Stdout, "Import")
			ctx := handler.HandleInterrupts(cmd.Context(), "fridge recipes import "+path)
			defer handler.Stop()

			progress := cli.NewProgress(os.Stdout, len(f.Recipes), "Importing recipes")
			result, err := catalog.Import(ctx, pantry.RecipeStore(), f, func(model.Recipe) { progress.Step() })
			progress.Finish()
			if err != nil {
				if handler.WasInterrupted() {
					return nil
				}
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d recipes (%d new, %d updated)",
				result.Created+result.Updated, result.Created, result.Updated)))
			return nil
		},
	}
}

func exportRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the recipe catalog to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			f, err := catalog.Export(ctx, pantry.RecipeStore())
			if err != nil {
				return err
			}
			if err := catalog.WriteFile(args[0], f); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d recipes to %s", len(f.Recipes), args[0])))
			return nil
		},
	}
}

// parseDifficulty accepts a difficulty level. With allowAll, "all" or an
// empty value mean no difficulty filter.
func parseDifficulty(value string, allowAll bool) (model.Difficulty, error) {
	value = strings.TrimSpace(value)
	if allowAll && (value == "" || strings.EqualFold(value, "all")) {
		return "", nil
	}
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		if matcher.NormalizeName(value) == matcher.NormalizeName(string(d)) {
			return d, nil
		}
	}
	return "", common.NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", value))
}

// parseIngredient reads name[:quantity[:unit]].
func parseIngredient(spec string) (model.IngredientRequirement, error) {
	parts := strings.SplitN(spec, ":", 3)
	ing := model.IngredientRequirement{Name: strings.TrimSpace(parts[0]), Quantity: 1}
	if ing.Name == "" {
		return ing, common.NewValidationError("ingredient", "name is required")
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		q, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || q <= 0 {
			return ing, common.NewValidationError("ingredient", fmt.Sprintf("bad quantity in %q", spec))
		}
		ing.Quantity = q
	}
	if len(parts) > 2 {
		ing.Unit = strings.TrimSpace(parts[2])
	}
	return ing, nil
}
