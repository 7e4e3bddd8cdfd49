package tui

import (
	"github.com/Veraticus/smartfood/internal/edit"
	"github.com/Veraticus/smartfood/internal/engine"
	"github.com/Veraticus/smartfood/internal/suggest"
)

// Data loading messages.
type inventoryLoadedMsg struct {
	err        error
	view       *engine.InventoryView
	categories []string
}

type suggestionsLoadedMsg struct {
	err    error
	result suggest.Result
}

// Write results.
type commitDoneMsg struct {
	err     error
	name    string
	outcome edit.Outcome
}

type deleteDoneMsg struct {
	err  error
	name string
}
