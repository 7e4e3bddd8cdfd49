package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/smartfood/internal/model"
)

const (
	loadTimeout  = 30 * time.Second
	writeTimeout = 15 * time.Second
)

// loadInventory reads the inventory through the cache. With refresh set the
// cached list is dropped first.
func (m Model) loadInventory(refresh bool) tea.Cmd {
	pantry := m.pantry
	filter := m.filter()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		if refresh {
			if _, err := pantry.Refresh(ctx); err != nil {
				return inventoryLoadedMsg{err: err}
			}
		}
		view, err := pantry.Inventory(ctx, filter)
		if err != nil {
			return inventoryLoadedMsg{err: err}
		}
		categories, err := pantry.Categories(ctx)
		if err != nil {
			return inventoryLoadedMsg{err: err}
		}
		return inventoryLoadedMsg{view: view, categories: categories}
	}
}

// loadSuggestions computes or reuses the suggestions for the current inventory.
func (m Model) loadSuggestions() tea.Cmd {
	pantry := m.pantry
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		result, err := pantry.Suggestions(ctx)
		return suggestionsLoadedMsg{result: result, err: err}
	}
}

// commitEdit resolves the open edit session against the store.
func (m Model) commitEdit(name string) tea.Cmd {
	editor := m.pantry.Editor()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		outcome, err := editor.Commit(ctx)
		return commitDoneMsg{outcome: outcome, err: err, name: name}
	}
}

// deleteItem removes an item outright.
func (m Model) deleteItem(item model.InventoryItem) tea.Cmd {
	pantry := m.pantry
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		return deleteDoneMsg{err: pantry.DeleteItem(ctx, item.ID), name: item.Name}
	}
}
