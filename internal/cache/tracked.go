package cache

import (
	"context"

	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
)

// trackedInventory writes through to the inventory store and marks the
// inventory stale after every successful mutation.
type trackedInventory struct {
	service.InventoryStore
	c *Coordinator
}

// InventoryStore returns the inventory store wrapped so that successful
// creates, quantity updates and deletes invalidate the cached inventory.
// Reads pass straight through to the underlying store.
func (c *Coordinator) InventoryStore() service.InventoryStore {
	return &trackedInventory{InventoryStore: c.inventoryStore, c: c}
}

func (t *trackedInventory) CreateItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	created, err := t.InventoryStore.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	t.c.InvalidateInventory()
	return created, nil
}

func (t *trackedInventory) UpdateQuantity(ctx context.Context, id string, quantity float64) (*model.InventoryItem, error) {
	updated, err := t.InventoryStore.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	t.c.InvalidateInventory()
	return updated, nil
}

func (t *trackedInventory) DeleteItem(ctx context.Context, id string) error {
	if err := t.InventoryStore.DeleteItem(ctx, id); err != nil {
		return err
	}
	t.c.InvalidateInventory()
	return nil
}

// trackedRecipes marks the catalog, and with it the suggestions, stale after
// every successful recipe mutation.
type trackedRecipes struct {
	service.RecipeStore
	c *Coordinator
}

// RecipeStore returns the recipe store wrapped so that successful mutations
// invalidate both the cached catalog and the suggestions.
func (c *Coordinator) RecipeStore() service.RecipeStore {
	return &trackedRecipes{RecipeStore: c.recipeStore, c: c}
}

func (t *trackedRecipes) CreateRecipe(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	created, err := t.RecipeStore.CreateRecipe(ctx, recipe)
	if err != nil {
		return nil, err
	}
	t.c.MarkStale(ResourceRecipes)
	return created, nil
}

func (t *trackedRecipes) UpdateRecipe(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	updated, err := t.RecipeStore.UpdateRecipe(ctx, recipe)
	if err != nil {
		return nil, err
	}
	t.c.MarkStale(ResourceRecipes)
	return updated, nil
}

func (t *trackedRecipes) DeleteRecipe(ctx context.Context, id string) error {
	if err := t.RecipeStore.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	t.c.MarkStale(ResourceRecipes)
	return nil
}
