package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/smartfood/internal/cli"
	"github.com/Veraticus/smartfood/internal/engine"
	"github.com/Veraticus/smartfood/internal/tui/themes"
)

const (
	nameWidth     = 22
	quantityWidth = 12
	maxSuggested  = 5
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	sections := []string{
		m.theme.Title.Render(cli.FridgeIcon + " Fridge"),
		m.renderCards(),
		m.renderFilter(),
		m.renderItems(),
		m.renderSuggestions(),
	}
	if m.status != "" {
		sections = append(sections, m.statusStyle.Render(m.status))
	}
	if m.config.ShowHelp {
		if m.state == StateEditing {
			sections = append(sections, m.help.View(editKeys(m.keymap)))
		} else {
			sections = append(sections, m.help.View(m.keymap))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Loading fridge..."),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.status),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderCards() string {
	card := func(label string, value int, style lipgloss.Style) string {
		return m.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			style.Render(fmt.Sprintf("%d", value)),
			m.theme.Subtitle.Render(label)))
	}

	cards := []string{
		card("items", m.summary.Total, m.theme.Bold),
		card("expiring soon", m.summary.ExpiringSoon, m.theme.Critical),
		card("expired", m.summary.Expired, m.theme.DueToday),
	}
	if m.suggestions.Disabled {
		cards = append(cards, m.theme.Card.Render(m.theme.StatusPending.Render("suggestions off")))
	} else {
		cards = append(cards,
			card("can make", m.suggestions.Summary.CanMake, m.theme.StatusSuccess),
			card("almost", m.suggestions.Summary.SmartSuggested, m.theme.StatusInfo))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderFilter() string {
	category := m.category
	if category == "" {
		category = engine.CategoryAll
	}
	search := m.search.Value()
	if m.state == StateSearch {
		search = m.search.View()
	}
	parts := []string{"Category: " + m.theme.Bold.Render(category)}
	if search != "" {
		parts = append(parts, "Search: "+search)
	}
	return m.theme.Subtitle.Render(strings.Join(parts, "   "))
}

// listHeight is the number of item rows that fit on screen.
func (m Model) listHeight() int {
	return max(m.height-16, 3)
}

func (m Model) renderItems() string {
	if len(m.items) == 0 {
		return m.theme.StatusPending.Render("No items")
	}

	height := m.listHeight()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(m.items))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderItem(i))
	}
	if end < len(m.items) {
		rows = append(rows, m.theme.Subtitle.Render(fmt.Sprintf("… %d more", len(m.items)-end)))
	}
	return m.theme.RoundedBox.Render(strings.Join(rows, "\n"))
}

func (m Model) renderItem(i int) string {
	iv := m.items[i]
	item := iv.Item

	cursor := "  "
	if i == m.cursor {
		cursor = "› "
	}

	quantity := cli.FormatQuantity(item.Quantity, item.Unit)
	if i == m.cursor && m.state == StateEditing {
		quantity = m.quantity.View() + " " + item.Unit
	}

	row := fmt.Sprintf("%s%s %s %s %s %s",
		cursor,
		themes.GetCategoryIcon(item.Category),
		pad(item.Name, nameWidth),
		pad(quantity, quantityWidth),
		pad(item.StorageLocation, 12),
		m.theme.Urgency(iv.Urgency).Render(cli.UrgencyLabel(iv.Urgency, iv.DaysRemaining)))

	if i == m.cursor && m.state != StateEditing {
		return m.theme.Selected.Render(row)
	}
	return row
}

func (m Model) renderSuggestions() string {
	if m.suggestions.Disabled || len(m.suggestions.SmartSuggested) == 0 {
		return ""
	}

	lines := []string{m.theme.Bold.Render(cli.RecipeIcon + " Suggestions")}
	for i, id := range m.suggestions.SmartSuggested {
		if i == maxSuggested {
			lines = append(lines, m.theme.Subtitle.Render(
				fmt.Sprintf("… %d more", len(m.suggestions.SmartSuggested)-maxSuggested)))
			break
		}
		match, ok := m.suggestions.Lookup(id)
		if !ok {
			continue
		}
		if match.CanMake() {
			lines = append(lines, m.theme.StatusSuccess.Render("✓ ")+match.RecipeName)
			continue
		}
		lines = append(lines, m.theme.Soon.Render("~ ")+match.RecipeName+
			m.theme.Subtitle.Render(" (thiếu: "+strings.Join(match.Missing, ", ")+")"))
	}
	return strings.Join(lines, "\n")
}

// pad left-aligns s in a cell of the given display width.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
