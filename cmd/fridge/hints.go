package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smartfood/internal/catalog"
	"github.com/Veraticus/smartfood/internal/cli"
)

func hintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hints [term]",
		Short: "Search the built-in ingredient list",
		Long: `Show the common ingredients with their usual unit and category. These are
used to fill in 'fridge inventory add' when unit or category are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}

			hints := catalog.SearchHints(term)
			if len(hints) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No ingredient matches %q", term)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			header := cli.TableHeaderStyle.UnsetBorderBottom()
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				header.Render("Name"),
				header.Render("Unit"),
				header.Render("Category"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 20),
				strings.Repeat("-", 6),
				strings.Repeat("-", 12))
			for _, h := range hints {
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.Name, h.Unit, h.Category)
			}
			return nil
		},
	}
}
