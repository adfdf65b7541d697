// Package watch provides the "phrasekit watch" command, which keeps a
// spreadsheet loaded and reports every reload.
package watch

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var debounce int

	cmd := &cobra.Command{
		Use:   "watch [file.xlsx]",
		Short: "Reload a phrase spreadsheet whenever it changes",
		Long: `Loads the spreadsheet, then reloads it each time it is saved and prints
a summary. Useful for checking a spreadsheet while editing it.

Example:
  phrasekit watch phrases.xlsx --debounce 500`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.FromContext(cmd.Context())
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			path, err := env.DataPath(args)
			if err != nil {
				return err
			}
			cat, snap, err := env.Load(ctx, path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				env.Config.Watch.DebounceMs = debounce
			}

			stop, err := env.Watch(ctx, cat, path, true)
			if err != nil {
				return err
			}
			defer stop()

			fmt.Fprintf(out, "Watching %s (%d phrases, %d categories)\n", path, len(snap.Records), len(snap.Tree.Categories))
			fmt.Fprintln(out, "Press Ctrl+C to stop")

			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()
			seen := snap.Generation
			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(out, "\nStopping watcher...")
					return nil
				case <-ticker.C:
					cur := cat.Current()
					if cur.Generation == seen {
						continue
					}
					seen = cur.Generation
					color.New(color.FgGreen).Fprintf(out, "[%s] reloaded: %d phrases, %d categories\n",
						cur.LoadedAt.Format("15:04:05"), len(cur.Records), len(cur.Tree.Categories))
				}
			}
		},
	}

	cmd.Flags().IntVar(&debounce, "debounce", 300, "Debounce interval in milliseconds")
	return cmd
}
