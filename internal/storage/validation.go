// Package storage provides the data persistence layer for the fridge application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateQuantity rejects negative and non-finite quantities.
func validateQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return common.NewValidationError("quantity", "not a finite number")
	}
	if q < 0 {
		return common.NewValidationError("quantity", "must not be negative")
	}
	return nil
}

// validateNewItem checks the fields required to create an inventory item.
func validateNewItem(item *model.InventoryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return common.NewValidationError("name", "required")
	}
	if err := validateQuantity(item.Quantity); err != nil {
		return err
	}
	if item.Quantity == 0 {
		return common.NewValidationError("quantity", "must be greater than zero")
	}
	if strings.TrimSpace(item.Unit) == "" {
		return common.NewValidationError("unit", "required")
	}
	if strings.TrimSpace(item.StorageLocation) == "" {
		return common.NewValidationError("storage location", "required")
	}
	if item.ExpiryDate.IsZero() {
		return common.NewValidationError("expiry date", "required")
	}
	return nil
}

// validateRecipe checks a recipe before it is written.
func validateRecipe(recipe *model.Recipe) error {
	if strings.TrimSpace(recipe.Name) == "" {
		return common.NewValidationError("name", "required")
	}
	if recipe.Difficulty != "" && !recipe.Difficulty.IsValid() {
		return common.NewValidationError("difficulty", fmt.Sprintf("unknown level %q", recipe.Difficulty))
	}
	if recipe.Servings < 0 {
		return common.NewValidationError("servings", "must not be negative")
	}
	if recipe.Rating < 0 || recipe.Rating > 5 {
		return common.NewValidationError("rating", "must be between 0 and 5")
	}
	for i, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return common.NewValidationError(fmt.Sprintf("ingredient %d", i+1), "missing name")
		}
		if err := validateQuantity(ing.Quantity); err != nil {
			return fmt.Errorf("ingredient %q: %w", ing.Name, err)
		}
	}
	return nil
}
