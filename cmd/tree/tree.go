// Package tree provides the "phrasekit tree" command.
package tree

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	"github.com/klytics/phrasekit/internal/output"
	"github.com/klytics/phrasekit/internal/render"
)

type treeJSONOutput struct {
	File       string      `json:"file"`
	Sheet      string      `json:"sheet"`
	Phrases    int         `json:"phrases"`
	Categories interface{} `json:"categories"`
}

// NewCommand returns the tree command.
func NewCommand() *cobra.Command {
	var (
		expand bool
		open   []string
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "tree [file.xlsx]",
		Short: "Show phrases grouped by category and sub-category",
		Long: `Loads the spreadsheet and prints the category accordion. Categories
start open and sub-categories closed; use --open or --expand to show the
phrases. The file defaults to data.path from the config.

Example:
  phrasekit tree phrases.xlsx --open "Sales/Intro"
  phrasekit tree phrases.xlsx --yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := app.FromContext(cmd.Context())

			path, err := env.DataPath(args)
			if err != nil {
				return err
			}
			_, snap, err := env.Load(cmd.Context(), path)
			if err != nil {
				return err
			}

			w := output.NewWriterTo(cmd.OutOrStdout(), output.ParseFormat(jsonFlag, asYAML))
			switch w.Format() {
			case output.FormatJSON:
				return w.Data("tree", treeJSONOutput{
					File:       snap.Source,
					Sheet:      snap.Sheet,
					Phrases:    len(snap.Records),
					Categories: snap.Tree,
				})
			case output.FormatYAML:
				return w.Data("tree", snap.Tree)
			}

			acc := render.NewAccordion(snap.Tree, nil)
			if expand {
				acc.SetAll(true)
			}
			for _, o := range open {
				cat, sub, _ := strings.Cut(o, "/")
				if snap.Tree.Category(cat) == nil {
					return fmt.Errorf("unknown category %q", cat)
				}
				if sub == "" {
					continue // categories start open
				}
				if !acc.IsOpen(cat, sub) {
					acc.Toggle(cat, sub)
				}
			}
			return render.WriteTree(w.Dest(), acc)
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Open every category and sub-category")
	cmd.Flags().StringSliceVar(&open, "open", nil, "Open a sub-category, as category/sub-category (repeatable)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output the tree as YAML")
	return cmd
}
