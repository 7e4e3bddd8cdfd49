package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/smartfood/internal/tui"
	"github.com/Veraticus/smartfood/internal/tui/themes"
)

func uiCmd() *cobra.Command {
	var (
		themeName string
		inline    bool
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive inventory screen",
		Long: `Browse the fridge, step quantities up and down and see which recipes
you can cook right now.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pantry, cfg, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			return tui.Run(ctx,
				tui.WithPantry(pantry),
				tui.WithStep(cfg.EditStep),
				tui.WithTheme(themes.GetTheme(themeName)),
				tui.WithAltScreen(!inline),
			)
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().BoolVar(&inline, "inline", false, "render below the prompt instead of taking over the terminal")

	return cmd
}
