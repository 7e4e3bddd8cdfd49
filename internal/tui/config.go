// Package tui is the interactive inventory screen: the classified item list,
// the summary cards, recipe suggestions and the inline quantity editor.
package tui

import (
	"github.com/Veraticus/smartfood/internal/engine"
	"github.com/Veraticus/smartfood/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Pantry    *engine.Pantry
	Theme     themes.Theme
	Width     int
	Height    int
	Step      float64 // Amount added or removed by one +/- press
	ShowHelp  bool
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     100,
		Height:    30,
		Step:      1,
		ShowHelp:  true,
		AltScreen: true,
	}
}

// WithPantry sets the pantry the screen reads and edits.
func WithPantry(p *engine.Pantry) Option {
	return func(c *Config) {
		c.Pantry = p
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStep sets the quantity step of the +/- keys.
func WithStep(step float64) Option {
	return func(c *Config) {
		if step > 0 {
			c.Step = step
		}
	}
}

// WithAltScreen controls whether the TUI takes over the whole terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
