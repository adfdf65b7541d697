// Package history provides the "phrasekit history" commands for the log of
// inserted phrases.
package history

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/app"
	hist "github.com/klytics/phrasekit/internal/history"
	"github.com/klytics/phrasekit/internal/output"
	"github.com/klytics/phrasekit/internal/render"
)

// NewCommand creates the "history" command with its subcommands.
func NewCommand() *cobra.Command {
	var (
		last  int
		since string
	)

	cmd := &cobra.Command{
		Use:   "history [words...]",
		Short: "Show recently inserted phrases",
		Long: `Lists the phrases inserted by phrasekit, newest last. Words filter the
list the same way a phrase search does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			path := historyPath(cmd)

			entries, err := hist.Read(path)
			if err != nil {
				return err
			}

			var sinceTime time.Time
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date: %w (use YYYY-MM-DD)", err)
				}
				sinceTime = t
			}
			filtered := hist.Filter(entries, sinceTime, strings.Join(args, " "))
			if last > 0 && len(filtered) > last {
				filtered = filtered[len(filtered)-last:]
			}

			if jsonFlag {
				return output.FprintJSON(cmd.OutOrStdout(), "history", filtered)
			}

			out := cmd.OutOrStdout()
			if len(filtered) == 0 {
				fmt.Fprintln(out, "No insertions recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "TIME\tTARGET\tPHRASE\n")
			for _, e := range filtered {
				text := render.Preview(e.Text, 60)
				if e.Error != "" {
					text = "FAILED: " + e.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Target, text)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&last, "last", 20, "Show the last N entries (0 = all)")
	cmd.Flags().StringVar(&since, "since", "", "Only entries since this date (YYYY-MM-DD)")
	cmd.AddCommand(newClearCmd())
	return cmd
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the insertion history",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := historyPath(cmd)
			if err := hist.Clear(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History cleared: %s\n", path)
			return nil
		},
	}
}

func historyPath(cmd *cobra.Command) string {
	return hist.New(app.FromContext(cmd.Context()).Config.History.Path, true).Path
}
