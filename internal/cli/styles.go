// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/smartfood/internal/model"
)

var (
	// PrimaryColor is the main theme color (fresh green).
	PrimaryColor = lipgloss.Color("#2EAD6B")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray
	// UrgentColor marks items that must be used within days.
	UrgentColor = lipgloss.Color("#FF9F43") // Orange

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// UrgentStyle formats items close to expiry.
	UrgentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(UrgentColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	FridgeIcon  = "🧊"
	RecipeIcon  = "🍲"
	ChartIcon   = "📊"
	CheckIcon   = "✅"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the fridge icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(FridgeIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// UrgencyLabel returns the short text shown for an urgency level.
func UrgencyLabel(u model.Urgency, daysRemaining int) string {
	switch u {
	case model.UrgencyExpired:
		return "Hết hạn"
	case model.UrgencyDueToday:
		return "Hôm nay"
	case model.UrgencyCritical, model.UrgencySoon:
		return fmt.Sprintf("%d ngày", daysRemaining)
	default:
		return "Còn tốt"
	}
}

// UrgencyStyle returns the style used to render an urgency level.
func UrgencyStyle(u model.Urgency) lipgloss.Style {
	switch u {
	case model.UrgencyExpired, model.UrgencyDueToday:
		return ErrorStyle
	case model.UrgencyCritical:
		return UrgentStyle
	case model.UrgencySoon:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// UrgencyBadge renders the styled urgency label of an item.
func UrgencyBadge(u model.Urgency, daysRemaining int) string {
	return UrgencyStyle(u).Render(UrgencyLabel(u, daysRemaining))
}

// FormatQuantity renders a quantity with at most two decimals and its unit.
func FormatQuantity(quantity float64, unit string) string {
	q := decimal.NewFromFloat(quantity).Round(2).String()
	if unit == "" {
		return q
	}
	return q + " " + unit
}
