package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smartfood/internal/cli"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/suggest"
)

func suggestCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show the recipes you can cook with what is in the fridge",
		Long: fmt.Sprintf(`List the recipes whose ingredients are all in the fridge, followed by
the ones that miss at most %d ingredients.`, suggest.SmartMaxMissing),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pantry, _, closeStore, err := openPantry(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			stats, err := pantry.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatTitle("Suggestions"))
			fmt.Println(cli.RenderBox(cli.ChartIcon+" Overview", strings.TrimRight(renderStats(stats), "\n")))
			fmt.Println()
			if stats.SuggestionsDisabled {
				return nil
			}

			result, err := pantry.Suggestions(ctx)
			if err != nil {
				return err
			}
			fmt.Print(renderSuggestions(result, showAll))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "also list recipes that miss more ingredients")

	return cmd
}

// renderSuggestions lists can-make recipes first, then the almost-ready
// ones with what they miss.
func renderSuggestions(result suggest.Result, showAll bool) string {
	var b strings.Builder

	var almost, rest []model.MatchResult
	canMake := make([]model.MatchResult, 0, len(result.CanMake))
	for _, m := range result.Matches {
		switch {
		case m.CanMake():
			canMake = append(canMake, m)
		case len(m.Missing) <= suggest.SmartMaxMissing:
			almost = append(almost, m)
		default:
			rest = append(rest, m)
		}
	}

	if len(canMake) == 0 && len(almost) == 0 {
		b.WriteString(cli.InfoStyle.Render("Nothing to cook yet. Add more to the fridge or import recipes."))
		b.WriteString("\n")
	}

	if len(canMake) > 0 {
		b.WriteString(cli.SuccessStyle.Bold(true).Render("Ready to cook"))
		b.WriteString("\n")
		for _, m := range canMake {
			fmt.Fprintf(&b, "  %s %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), m.RecipeName)
		}
		b.WriteString("\n")
	}

	if len(almost) > 0 {
		b.WriteString(cli.InfoStyle.Bold(true).Render("Almost there"))
		b.WriteString("\n")
		for _, m := range almost {
			fmt.Fprintf(&b, "  ~ %s %s\n", m.RecipeName,
				cli.SubtleStyle.Render("(thiếu: "+strings.Join(m.Missing, ", ")+")"))
		}
		b.WriteString("\n")
	}

	if showAll && len(rest) > 0 {
		b.WriteString(cli.SubtleStyle.Bold(true).Render("Needs shopping"))
		b.WriteString("\n")
		for _, m := range rest {
			fmt.Fprintf(&b, "  %s %s\n", m.RecipeName,
				cli.SubtleStyle.Render(fmt.Sprintf("(thiếu %d)", len(m.Missing))))
		}
		b.WriteString("\n")
	}

	return b.String()
}
