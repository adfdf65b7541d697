// Package doc provides the "phrasekit doc" commands for the documents that
// phrases are inserted into.
package doc

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	"github.com/klytics/phrasekit/internal/formats/docx"
	"github.com/klytics/phrasekit/internal/output"
)

type showJSONOutput struct {
	File       string   `json:"file"`
	Paragraphs []string `json:"paragraphs"`
	HasCursor  bool     `json:"hasCursor"`
}

// NewCommand returns the doc command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Create and inspect target documents",
		Long: `A target document is a .docx file with a cursor marker (default
{{cursor}}) where inserted phrases go.`,
	}
	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newShowCommand())
	return cmd
}

func newNewCommand() *cobra.Command {
	var (
		paragraphs []string
		noMarker   bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "new <file.docx>",
		Short: "Create a document with a cursor marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.FromContext(cmd.Context())
			path := args[0]
			if !strings.HasSuffix(strings.ToLower(path), ".docx") {
				path += ".docx"
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists — use --force to overwrite", path)
			}

			paras := append([]string{}, paragraphs...)
			if !noMarker {
				marker := env.Config.Insert.Marker
				if marker == "" {
					marker = docx.DefaultMarker
				}
				paras = append(paras, marker)
			}

			data, err := docx.WriteDocument(docx.New(paras...))
			if err != nil {
				return fmt.Errorf("could not generate document: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("could not write file %s: %w", path, err)
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&paragraphs, "paragraph", "p", nil, "Paragraph to put before the cursor (repeatable)")
	cmd.Flags().BoolVar(&noMarker, "no-marker", false, "Do not add a cursor marker")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.docx>",
		Short: "Print a document's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := app.FromContext(cmd.Context())

			d, err := docx.ReadFile(args[0])
			if err != nil {
				return err
			}
			marker := env.Config.Insert.Marker
			if marker == "" {
				marker = docx.DefaultMarker
			}
			text := d.Text()

			if jsonFlag {
				return output.FprintJSON(cmd.OutOrStdout(), "doc show", showJSONOutput{
					File:       args[0],
					Paragraphs: d.Paragraphs,
					HasCursor:  strings.Contains(text, marker),
				})
			}

			out := cmd.OutOrStdout()
			if text == "" {
				color.New(color.FgHiBlack).Fprintln(out, "(empty document)")
				return nil
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
}
