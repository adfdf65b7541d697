// Package browse provides the "phrasekit browse" full-screen browser.
package browse

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	"github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/tui"
)

// NewCommand returns the browse command.
func NewCommand() *cobra.Command {
	var (
		watchFile bool
		overrides app.InsertOverrides
	)

	cmd := &cobra.Command{
		Use:   "browse [file.xlsx]",
		Short: "Browse, search and insert phrases in a full-screen view",
		Long: `Opens the phrase browser. Type to search; with an empty search box the
category accordion is shown. Enter opens a header or inserts the phrase under
the cursor, ctrl+r reloads the spreadsheet.

The stdout target is not available here; use --doc or --target clipboard.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.FromContext(cmd.Context())
			ctx := cmd.Context()

			path, err := env.DataPath(args)
			if err != nil {
				return err
			}
			cat, _, err := env.Load(ctx, path)
			if err != nil {
				return err
			}

			// Writing phrases to stdout would corrupt the full-screen view.
			sink, err := env.Inserter(overrides, io.Discard)
			if err != nil {
				return err
			}
			if app.Target(sink) == insert.TargetStdout {
				return fmt.Errorf("browse needs a document or the clipboard — pass --doc <file.docx> or --target clipboard")
			}

			stop, err := env.Watch(ctx, cat, path, watchFile)
			if err != nil {
				return err
			}
			defer stop()

			return tui.Run(ctx, tui.NewApp(ctx, cat, sink, path))
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload when the spreadsheet changes (default: watch.enabled)")
	cmd.Flags().StringVar(&overrides.Target, "target", "", "Insert target: docx | clipboard")
	cmd.Flags().StringVar(&overrides.Document, "doc", "", "Document to insert into (implies --target docx)")
	cmd.Flags().StringVar(&overrides.Marker, "marker", "", "Cursor marker in the document")
	return cmd
}
