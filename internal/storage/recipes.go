package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/google/uuid"
)

const recipeColumns = `id, name, description, category, image, cook_time, difficulty, servings, rating, created_at, updated_at`

// ListRecipes returns the catalog in name order, narrowed by filter. The name
// search is case-insensitive over the folded recipe name.
func (s *SQLiteStorage) ListRecipes(ctx context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes`
	var args []any
	if filter.Difficulty != "" {
		query += ` WHERE difficulty = ?`
		args = append(args, string(filter.Difficulty))
	}
	query += ` ORDER BY name, id`

	var recipes []model.Recipe
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to query recipes: %w", err)
		}
		defer func() { _ = rows.Close() }()

		search := matcher.NormalizeName(filter.Search)
		for rows.Next() {
			recipe, err := scanRecipe(rows)
			if err != nil {
				return err
			}
			if search != "" && !strings.Contains(matcher.NormalizeName(recipe.Name), search) {
				continue
			}
			recipes = append(recipes, *recipe)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating recipes: %w", err)
		}
		// The single connection is busy until rows is closed.
		_ = rows.Close()

		for i := range recipes {
			ingredients, err := s.getIngredientsTx(ctx, tx, recipes[i].ID)
			if err != nil {
				return err
			}
			recipes[i].Ingredients = ingredients
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetRecipe retrieves a recipe with its ingredients.
func (s *SQLiteStorage) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getRecipeTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getRecipeTx(ctx context.Context, q queryable, id string) (*model.Recipe, error) {
	row := q.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	recipe.Ingredients, err = s.getIngredientsTx(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateRecipe stores a new recipe with its ingredient list.
func (s *SQLiteStorage) CreateRecipe(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	recipe.Name = strings.TrimSpace(recipe.Name)
	if err := validateRecipe(&recipe); err != nil {
		return nil, err
	}

	now := s.now()
	if strings.TrimSpace(recipe.ID) == "" {
		recipe.ID = uuid.NewString()
	}
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (`+recipeColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, recipe.ID, recipe.Name, recipe.Description, recipe.Category, recipe.Image,
			recipe.CookTime, string(recipe.Difficulty), recipe.Servings, recipe.Rating,
			recipe.CreatedAt, recipe.UpdatedAt)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return fmt.Errorf("recipe %s: %w", recipe.ID, common.ErrDuplicateEntry)
			}
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return s.saveIngredientsTx(ctx, tx, recipe.ID, recipe.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// UpdateRecipe replaces a recipe's fields and ingredient list.
func (s *SQLiteStorage) UpdateRecipe(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recipe.ID, "id"); err != nil {
		return nil, err
	}
	recipe.Name = strings.TrimSpace(recipe.Name)
	if err := validateRecipe(&recipe); err != nil {
		return nil, err
	}

	var updated *model.Recipe
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE recipes SET
				name = ?, description = ?, category = ?, image = ?, cook_time = ?,
				difficulty = ?, servings = ?, rating = ?, updated_at = ?
			WHERE id = ?
		`, recipe.Name, recipe.Description, recipe.Category, recipe.Image, recipe.CookTime,
			string(recipe.Difficulty), recipe.Servings, recipe.Rating, s.now(), recipe.ID)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := requireAffected(result, "recipe", recipe.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
			return fmt.Errorf("failed to clear ingredients: %w", err)
		}
		if err := s.saveIngredientsTx(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
			return err
		}

		updated, err = s.getRecipeTx(ctx, tx, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecipe removes a recipe and its ingredients.
func (s *SQLiteStorage) DeleteRecipe(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete ingredients: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return requireAffected(result, "recipe", id)
	})
}

func (s *SQLiteStorage) saveIngredientsTx(ctx context.Context, tx *sql.Tx, recipeID string, ingredients []model.IngredientRequirement) error {
	if len(ingredients) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, position, name, quantity, unit)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare ingredient insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, ing := range ingredients {
		if _, err := stmt.ExecContext(ctx, recipeID, i, strings.TrimSpace(ing.Name), ing.Quantity, ing.Unit); err != nil {
			return fmt.Errorf("failed to save ingredient %q: %w", ing.Name, err)
		}
	}
	return nil
}

func (s *SQLiteStorage) getIngredientsTx(ctx context.Context, q queryable, recipeID string) ([]model.IngredientRequirement, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, quantity, unit
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ingredients []model.IngredientRequirement
	for rows.Next() {
		var ing model.IngredientRequirement
		if err := rows.Scan(&ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}
	return ingredients, nil
}

func scanRecipe(row rowScanner) (*model.Recipe, error) {
	var (
		recipe     model.Recipe
		difficulty string
	)
	err := row.Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Description,
		&recipe.Category,
		&recipe.Image,
		&recipe.CookTime,
		&difficulty,
		&recipe.Servings,
		&recipe.Rating,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}
	recipe.Difficulty = model.Difficulty(difficulty)
	return &recipe, nil
}
