package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
)

// ImportResult counts what an import changed.
type ImportResult struct {
	Created int
	Updated int
}

// Import writes every recipe of f to store. A recipe whose id already exists
// replaces the stored one. The optional progress callback runs after each
// recipe. A canceled context stops the import between recipes; the counts of
// the recipes already written are returned with the error.
func Import(ctx context.Context, store service.RecipeStore, f *File, progress func(model.Recipe)) (ImportResult, error) {
	var result ImportResult
	for _, recipe := range f.Recipes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, err := store.CreateRecipe(ctx, recipe)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, common.ErrDuplicateEntry) && recipe.ID != "":
			if _, err := store.UpdateRecipe(ctx, recipe); err != nil {
				return result, fmt.Errorf("failed to update recipe %q: %w", recipe.Name, err)
			}
			result.Updated++
		default:
			return result, fmt.Errorf("failed to import recipe %q: %w", recipe.Name, err)
		}

		if progress != nil {
			progress(recipe)
		}
	}

	slog.Info("Imported recipe catalog", "created", result.Created, "updated", result.Updated)
	return result, nil
}

// Export reads the whole catalog from store.
func Export(ctx context.Context, store service.RecipeStore) (*File, error) {
	recipes, err := store.ListRecipes(ctx, service.RecipeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return &File{Version: "1", Recipes: recipes}, nil
}
