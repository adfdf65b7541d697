// Package search provides the "phrasekit search" command.
package search

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	"github.com/klytics/phrasekit/internal/output"
	"github.com/klytics/phrasekit/internal/phrases"
	"github.com/klytics/phrasekit/internal/render"
)

type searchJSONOutput struct {
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Results []phrases.Record `json:"results"`
}

// NewCommand returns the search command.
func NewCommand() *cobra.Command {
	var (
		file    string
		full    bool
		preview int
	)

	cmd := &cobra.Command{
		Use:   "search [words...]",
		Short: "Find phrases containing all the given words",
		Long: `Matches phrases whose text contains every word, case-insensitively and
in any order. Results keep spreadsheet order. Without words nothing is
printed.

Example:
  phrasekit search welcome aboard --file phrases.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := app.FromContext(cmd.Context())

			path, err := env.DataPath([]string{file})
			if err != nil {
				return err
			}
			cat, _, err := env.Load(cmd.Context(), path)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := cat.Search(query)
			if results == nil {
				results = []phrases.Record{}
			}

			if jsonFlag {
				return output.FprintJSON(cmd.OutOrStdout(), "search", searchJSONOutput{
					Query:   query,
					Count:   len(results),
					Results: results,
				})
			}

			// A blank query clears the results rather than reporting none found.
			if strings.TrimSpace(query) == "" {
				return nil
			}
			out := cmd.OutOrStdout()
			if err := render.WriteResults(out, render.Items(results, nil)); err != nil {
				return err
			}
			if !full {
				return nil
			}
			for i, r := range results {
				fmt.Fprintf(out, "\n[%d] %s\n", i+1, render.Preview(r.Text, preview))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Phrase spreadsheet (default: data.path)")
	cmd.Flags().BoolVar(&full, "text", false, "Also print each phrase's text")
	cmd.Flags().IntVar(&preview, "width", 0, "Shorten printed text to this many characters (0 = no limit)")
	return cmd
}
