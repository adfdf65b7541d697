// Package insert provides the "phrasekit insert" command.
package insert

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	ins "github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/output"
	"github.com/klytics/phrasekit/internal/phrases"
)

type insertJSONOutput struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Target string `json:"target"`
}

// NewCommand returns the insert command.
func NewCommand() *cobra.Command {
	var (
		file        string
		index       int
		category    string
		subcategory string
		literal     string
		overrides   app.InsertOverrides
	)

	cmd := &cobra.Command{
		Use:   "insert [words...]",
		Short: "Insert a phrase into a document, the clipboard or stdout",
		Long: `Picks a phrase and inserts it at the configured target. The phrase is
the --index'th search match for the given words, or the --index'th phrase of
--category/--sub. With --doc the phrase replaces the document's cursor
marker, and the marker moves to just after it; without a marker the phrase is
appended as a new paragraph.

Example:
  phrasekit insert welcome --file phrases.xlsx --doc reply.docx
  phrasekit insert --category Sales --sub Intro --index 2 --target clipboard
  phrasekit insert --text "Kind regards" --doc reply.docx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := app.FromContext(cmd.Context())

			rec := phrases.Record{Title: "text", Text: literal}
			if !cmd.Flags().Changed("text") {
				path, err := env.DataPath([]string{file})
				if err != nil {
					return err
				}
				cat, snap, err := env.Load(cmd.Context(), path)
				if err != nil {
					return err
				}

				var candidates []phrases.Record
				var what string
				if category != "" {
					if subcategory == "" {
						subcategory = phrases.UnsubcategorizedKey
					}
					candidates = snap.Tree.Phrases(category, subcategory)
					what = fmt.Sprintf("under %s/%s", category, subcategory)
				} else {
					if len(args) == 0 {
						return fmt.Errorf("give words to search for, --category, or --text\n\nExample: phrasekit insert welcome --file phrases.xlsx")
					}
					candidates = cat.Search(strings.Join(args, " "))
					what = fmt.Sprintf("matching %q", strings.Join(args, " "))
				}
				if index < 1 || index > len(candidates) {
					if len(candidates) == 0 {
						return fmt.Errorf("no phrase %s", what)
					}
					return fmt.Errorf("--index must be between 1 and %d for phrases %s", len(candidates), what)
				}
				rec = candidates[index-1]
			}

			var out io.Writer = cmd.OutOrStdout()
			if jsonFlag {
				out = io.Discard
			}
			sink, err := env.Inserter(overrides, out)
			if err != nil {
				return err
			}
			if err := sink.Insert(cmd.Context(), rec.Text); err != nil {
				return err
			}

			target := app.Target(sink)
			if jsonFlag {
				return output.FprintJSON(cmd.OutOrStdout(), "insert", insertJSONOutput{
					Title:  rec.Title,
					Text:   rec.Text,
					Target: target,
				})
			}
			if target != ins.TargetStdout {
				color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Inserted %q into %s\n", rec.Title, target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Phrase spreadsheet (default: data.path)")
	cmd.Flags().IntVarP(&index, "index", "n", 1, "Which match to insert, 1-based")
	cmd.Flags().StringVar(&category, "category", "", "Pick from this category")
	cmd.Flags().StringVar(&subcategory, "sub", "", "Pick from this sub-category (with --category)")
	cmd.Flags().StringVar(&literal, "text", "", "Insert this text instead of a phrase")
	cmd.Flags().StringVar(&overrides.Target, "target", "", "Insert target: docx | clipboard | stdout (default: insert.target)")
	cmd.Flags().StringVar(&overrides.Document, "doc", "", "Document to insert into (implies --target docx)")
	cmd.Flags().StringVar(&overrides.Marker, "marker", "", "Cursor marker in the document (default: insert.marker)")
	return cmd
}
