// Package shell provides the "phrasekit shell" interactive REPL command.
package shell

import (
	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	"github.com/klytics/phrasekit/internal/catalog"
	shellpkg "github.com/klytics/phrasekit/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd   string
		watchFile bool
		overrides app.InsertOverrides
	)

	cmd := &cobra.Command{
		Use:   "shell [file.xlsx]",
		Short: "Start an interactive phrase shell",
		Long: `Start an interactive REPL over a phrase spreadsheet, with history and
tab completion. Type words to search, 'tree' to see the categories and
'pick <n>' to insert a listed phrase.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.FromContext(cmd.Context())
			ctx := cmd.Context()

			sink, err := env.Inserter(overrides, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			cat := catalog.New(env.Logger)
			session := shellpkg.NewSession(cat, sink, cmd.OutOrStdout())

			// The shell starts empty when no spreadsheet is known; 'load' fills it.
			if path, err := env.DataPath(args); err == nil {
				if err := session.Eval(ctx, "load "+path); err != nil {
					return err
				}
				stop, err := env.Watch(ctx, cat, path, watchFile)
				if err != nil {
					return err
				}
				defer stop()
			}

			if evalCmd != "" {
				return session.Eval(ctx, evalCmd)
			}
			return session.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload when the spreadsheet changes (default: watch.enabled)")
	cmd.Flags().StringVar(&overrides.Target, "target", "", "Insert target: docx | clipboard | stdout")
	cmd.Flags().StringVar(&overrides.Document, "doc", "", "Document to insert into (implies --target docx)")
	cmd.Flags().StringVar(&overrides.Marker, "marker", "", "Cursor marker in the document")
	return cmd
}
