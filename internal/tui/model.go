package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/smartfood/internal/cli"
	"github.com/Veraticus/smartfood/internal/edit"
	"github.com/Veraticus/smartfood/internal/engine"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/suggest"
	"github.com/Veraticus/smartfood/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

const (
	StateList State = iota
	StateEditing
	StateSearch
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	theme       themes.Theme
	pantry      *engine.Pantry
	keymap      KeyMap
	help        help.Model
	quantity    textinput.Model
	search      textinput.Model
	status      string
	statusStyle lipgloss.Style
	category    string
	editingName string
	suggestions suggest.Result
	categories  []string
	items       []engine.ItemView
	summary     model.ExpirySummary
	config      Config
	step        float64
	version     uint64 // Inventory version the list was rendered from
	cursor      int
	width       int
	height      int
	state       State
	ready       bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	quantity := textinput.New()
	quantity.Prompt = ""
	quantity.CharLimit = 12
	quantity.Width = 8

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "tìm nguyên liệu"
	search.CharLimit = 64

	return Model{
		theme:    cfg.Theme,
		pantry:   cfg.Pantry,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		quantity: quantity,
		search:   search,
		config:   cfg,
		step:     cfg.Step,
		width:    cfg.Width,
		height:   cfg.Height,
		state:    StateList,
	}
}

// Init loads the inventory and the suggestions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadInventory(false), m.loadSuggestions())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case inventoryLoadedMsg:
		return m.handleInventory(msg), nil

	case suggestionsLoadedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("suggestions: %w", msg.err))
			return m, nil
		}
		m.suggestions = msg.result
		return m, nil

	case commitDoneMsg:
		return m.handleCommit(msg)

	case deleteDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Removed %s", msg.name), m.theme.StatusSuccess)
		return m, tea.Batch(m.loadInventory(false), m.loadSuggestions())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateEditing:
			return m.updateEditing(msg)
		case StateSearch:
			return m.updateSearch(msg)
		case StateHelp:
			m.state = StateList
			m.help.ShowAll = false
			return m, nil
		default:
			return m.updateList(msg)
		}
	}

	if m.state == StateEditing {
		var cmd tea.Cmd
		m.quantity, cmd = m.quantity.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleInventory(msg inventoryLoadedMsg) Model {
	if msg.err != nil {
		m.setError(msg.err)
		return m
	}
	m.ready = true
	m.items = msg.view.Items
	m.summary = msg.view.Summary
	m.categories = msg.categories
	m.version = msg.view.Version
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}

	if m.state == StateEditing && m.pantry.Editor().Status() == edit.StatusIdle {
		m.state = StateList
		m.quantity.Blur()
		m.setStatus("Inventory reloaded, edit discarded", m.theme.StatusWarning)
	}
	return m
}

func (m Model) handleCommit(msg commitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}

	m.state = StateList
	m.quantity.Blur()
	switch msg.outcome {
	case edit.OutcomeDeleted:
		m.setStatus(fmt.Sprintf("%s used up and removed", msg.name), m.theme.StatusSuccess)
	case edit.OutcomeUpdated:
		m.setStatus(fmt.Sprintf("Saved %s", msg.name), m.theme.StatusSuccess)
	default:
		m.setStatus("No change", m.theme.StatusPending)
		return m, nil
	}
	return m, tea.Batch(m.loadInventory(false), m.loadSuggestions())
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(len(m.items)-1, 0)
	case key.Matches(msg, m.keymap.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keymap.Delete):
		if item, ok := m.selected(); ok {
			return m, m.deleteItem(item.Item)
		}
	case key.Matches(msg, m.keymap.Search):
		m.state = StateSearch
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Category):
		m.category = m.nextCategory()
		m.cursor = 0
		return m, m.loadInventory(false)
	case key.Matches(msg, m.keymap.Refresh):
		m.setStatus("Reloading...", m.theme.StatusPending)
		return m, tea.Batch(m.loadInventory(true), m.loadSuggestions())
	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		m.help.ShowAll = true
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	item, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.pantry.Editor().StartAt(item.Item, m.version); err != nil {
		m.setError(err)
		return m, nil
	}
	m.state = StateEditing
	m.editingName = item.Item.Name
	m.quantity.SetValue(cli.FormatQuantity(item.Item.Quantity, ""))
	m.quantity.CursorEnd()
	m.status = ""
	cmd := m.quantity.Focus()
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editor := m.pantry.Editor()
	if editor.Status() == edit.StatusSaving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Increase), key.Matches(msg, m.keymap.Decrease):
		delta := m.step
		if key.Matches(msg, m.keymap.Decrease) {
			delta = -delta
		}
		if err := editor.SetInput(m.quantity.Value()); err != nil {
			m.setError(err)
			return m, nil
		}
		next, err := editor.Adjust(delta)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.quantity.SetValue(cli.FormatQuantity(next, ""))
		m.quantity.CursorEnd()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keymap.Save):
		if err := editor.SetInput(m.quantity.Value()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Saving...", m.theme.StatusPending)
		return m, m.commitEdit(m.editingName)

	case key.Matches(msg, m.keymap.Cancel):
		if err := editor.Cancel(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.state = StateList
		m.quantity.Blur()
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.quantity, cmd = m.quantity.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = StateList
		m.search.Blur()
		return m, nil
	case "esc":
		m.state = StateList
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
		return m, m.loadInventory(false)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	return m, tea.Batch(cmd, m.loadInventory(false))
}

func (m Model) filter() model.InventoryFilter {
	return model.InventoryFilter{Search: m.search.Value(), Category: m.category}
}

func (m Model) selected() (engine.ItemView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return engine.ItemView{}, false
	}
	return m.items[m.cursor], true
}

// nextCategory cycles all, then each category present in the inventory.
func (m Model) nextCategory() string {
	if m.category == "" {
		if len(m.categories) == 0 {
			return ""
		}
		return m.categories[0]
	}
	for i, c := range m.categories {
		if c == m.category && i+1 < len(m.categories) {
			return m.categories[i+1]
		}
	}
	return ""
}

func (m *Model) setStatus(text string, style lipgloss.Style) {
	m.status = text
	m.statusStyle = style
}

func (m *Model) setError(err error) {
	m.setStatus(cli.ErrorIcon+" "+cli.DescribeError(err), m.theme.StatusError)
}
