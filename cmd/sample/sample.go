// Package sample provides the "phrasekit sample" command, which writes an
// example phrase spreadsheet.
package sample

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/internal/formats/xlsx"
)

// Header is the header row of a phrase spreadsheet.
var Header = []string{"Work types", "Themes", "Title", "Rating", "Phrase"}

// Rows are the sample phrases, in spreadsheet order.
var Rows = [][]string{
	{"Sales,Support", "Greeting", "Warm welcome", "Bon", "Thank you for reaching out, it is a pleasure to hear from you."},
	{"Sales", "Greeting", "Cold opener", "Mauvais", "To whom it may concern,"},
	{"Sales", "Follow-up", "Gentle nudge", "Bon", "I wanted to follow up on my previous message and see whether you had any questions."},
	{"Sales", "Closing", "Next steps", "", "Please let me know a time that suits you for a short call next week."},
	{"Support", "Apology", "Delay", "Bon", "I am sorry for the delay in getting back to you.\nWe are looking into this now."},
	{"Support", "Apology", "Blame", "Mauvais", "This is not our fault."},
	{"Support", "", "Ticket reference", "", "Your request has been logged; please quote your ticket number in any reply."},
	{"HR", "Onboarding,Greeting", "Welcome aboard", "Bon", "Welcome aboard! We are delighted to have you on the team."},
	{"", "", "", "", "Kind regards"},
}

// NewCommand returns the sample command.
func NewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample <file.xlsx>",
		Short: "Write an example phrase spreadsheet",
		Long: `Writes a small phrase spreadsheet showing the expected layout:

  A  work types   comma-separated categories
  B  themes       comma-separated sub-categories
  C  title        label shown in lists
  D  rating       "Bon" (good) or "Mauvais" (bad), anything else is unrated
  E  phrase       the text that gets inserted

The first row is a header and is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
				path += ".xlsx"
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists — use --force to overwrite", path)
			}

			wb := &xlsx.Workbook{Sheets: []xlsx.Sheet{{
				Name: "Phrases",
				Rows: append([][]string{Header}, Rows...),
			}}}
			if err := xlsx.WriteFile(wb, path); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %d sample phrases to %s\n", len(Rows), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
