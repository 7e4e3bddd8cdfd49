// Package themes holds the color schemes of the inventory TUI.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/smartfood/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Card          lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Expired       lipgloss.Style
	DueToday      lipgloss.Style
	Critical      lipgloss.Style
	Soon          lipgloss.Style
	Fresh         lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// Urgency returns the style of an expiry urgency level.
func (t Theme) Urgency(u model.Urgency) lipgloss.Style {
	switch u {
	case model.UrgencyExpired:
		return t.Expired
	case model.UrgencyDueToday:
		return t.DueToday
	case model.UrgencyCritical:
		return t.Critical
	case model.UrgencySoon:
		return t.Soon
	default:
		return t.Fresh
	}
}

func build(primary, fg, subtle, border, red, orange, yellow, green, blue lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   subtle,
		Border:  border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(subtle),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(border).
			Foreground(fg).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			MarginRight(1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().Foreground(green).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(yellow).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(red).Bold(true),
		StatusInfo:    lipgloss.NewStyle().Foreground(blue).Bold(true),
		StatusPending: lipgloss.NewStyle().Foreground(subtle).Italic(true),

		Expired:  lipgloss.NewStyle().Foreground(red).Bold(true).Strikethrough(true),
		DueToday: lipgloss.NewStyle().Foreground(red).Bold(true),
		Critical: lipgloss.NewStyle().Foreground(orange).Bold(true),
		Soon:     lipgloss.NewStyle().Foreground(yellow),
		Fresh:    lipgloss.NewStyle().Foreground(green),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#2ead6b"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#f97316"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#3b82f6"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#fab387"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#89dceb"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// CategoryIcons maps inventory categories to emoji icons.
var CategoryIcons = map[string]string{
	"Thịt cá":     "🥩",
	"Thịt":        "🥩",
	"Rau củ":      "🥬",
	"Gia vị":      "🧂",
	"Trái cây":    "🍎",
	"Sữa & trứng": "🥛",
	"Trứng":       "🥚",
	"Đồ khô":      "🌾",
	"Khác":        "📦",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
